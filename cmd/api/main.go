package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/mobilehub-pos/internal/application/service"
	"github.com/sangkips/mobilehub-pos/internal/config"
	"github.com/sangkips/mobilehub-pos/internal/infrastructure/database"
	"github.com/sangkips/mobilehub-pos/internal/server"
	"github.com/sangkips/mobilehub-pos/pkg/printer"
)

func main() {
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := server.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer stores.Close()

	if err := database.SeedAdmin(ctx, stores.Users, cfg.Admin); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	}

	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NullPrinter{}
	}
	defer thermalPrinter.Close()

	router, err := server.NewRouter(cfg, stores, thermalPrinter)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	defer router.Close()

	go service.NewIdempotencyJanitor(stores.Idempotency, time.Hour).Run(ctx)

	port := cfg.App.Port
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s, database: %s", cfg.App.Env, cfg.Database.Driver)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
