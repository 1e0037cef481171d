package service

import (
	"context"
	"log"
	"time"

	"github.com/sangkips/mobilehub-pos/internal/domain/repository"
)

// IdempotencyJanitor periodically drops expired idempotency keys
type IdempotencyJanitor struct {
	repo     repository.IdempotencyRepository
	interval time.Duration
}

// NewIdempotencyJanitor creates a janitor that sweeps every interval
func NewIdempotencyJanitor(repo repository.IdempotencyRepository, interval time.Duration) *IdempotencyJanitor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &IdempotencyJanitor{repo: repo, interval: interval}
}

// Sweep removes keys that are already expired
func (j *IdempotencyJanitor) Sweep(ctx context.Context) (int64, error) {
	return j.repo.DeleteExpired(ctx, time.Now())
}

// Run sweeps until ctx is cancelled
func (j *IdempotencyJanitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := j.Sweep(ctx)
			if err != nil {
				log.Printf("Idempotency cleanup failed: %v", err)
			} else if n > 0 {
				log.Printf("Removed %d expired idempotency keys", n)
			}
		}
	}
}
