package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/mobilehub-pos/internal/config"
)

// CORSMiddleware lets the browser dashboard call the API from its own origin
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     withHeader(cfg.AllowedHeaders, IdempotencyKeyHeader),
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID", IdempotencyReplayedHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// vite dev server
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	}
	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}

	return cors.New(corsConfig)
}

// withHeader appends h unless it is already allowed
func withHeader(headers []string, h string) []string {
	if len(headers) == 0 {
		headers = []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Request-ID"}
	}
	for _, existing := range headers {
		if existing == h {
			return headers
		}
	}
	return append(headers, h)
}
