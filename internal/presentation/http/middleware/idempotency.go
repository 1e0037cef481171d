package middleware

import (
	"bytes"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/internal/domain/repository"
	"github.com/sangkips/mobilehub-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/mobilehub-pos/pkg/apperror"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the key store
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// DefaultIdempotencyTTL is how long a stored response can be replayed
	DefaultIdempotencyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	TTL  time.Duration
}

// bodyRecorder tees the response body so it can be stored
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a POST/PUT already processed
// under the same Idempotency-Key for the same user. A request arriving while
// its key is still being processed gets 409. Only 2xx responses are stored,
// so a rejected submit can be corrected and resent with the same key.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	var inFlight sync.Map

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, ok := c.Get(ContextUserID)
		uid, isUUID := userID.(uuid.UUID)
		if !ok || !isUUID {
			c.Next()
			return
		}

		// the lock covers the lookup too, so a key cannot be seen as unused
		// by one request while another is still storing its response
		lockKey := uid.String() + ":" + key
		if _, busy := inFlight.LoadOrStore(lockKey, struct{}{}); busy {
			response.Error(c, apperror.ErrConflict)
			c.Abort()
			return
		}
		defer inFlight.Delete(lockKey)

		ctx := c.Request.Context()
		existing, err := cfg.Repo.GetByKey(ctx, key, uid)
		if err != nil {
			log.Printf("Idempotency lookup failed: %v", err)
			c.Next()
			return
		}
		if existing != nil && !existing.IsExpired() {
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rec

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		now := time.Now()
		if err := cfg.Repo.Create(ctx, &entity.IdempotencyKey{
			ID:           uuid.New(),
			Key:          key,
			UserID:       uid,
			Endpoint:     c.Request.Method + " " + c.FullPath(),
			ResponseCode: status,
			ResponseBody: rec.body.String(),
			CreatedAt:    now.UTC(),
			ExpiresAt:    now.Add(ttl).UTC(),
		}); err != nil {
			log.Printf("Idempotency store failed: %v", err)
		}
	}
}
