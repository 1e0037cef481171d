package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
)

// IdempotencyRepository remembers the response of a create/update submitted
// with an Idempotency-Key, so a repeated submit replays instead of duplicating.
type IdempotencyRepository interface {
	// GetByKey returns nil, nil when the user never used the key
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys that expired before the given instant and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
