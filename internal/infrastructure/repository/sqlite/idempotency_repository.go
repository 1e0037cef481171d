package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/mobilehub-pos/internal/domain/repository"
)

type idempotencyRepository struct {
	db *sqlx.DB
}

// NewIdempotencyRepository creates a SQLite backed idempotency store
func NewIdempotencyRepository(db *sqlx.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	var found entity.IdempotencyKey
	err := r.db.GetContext(ctx, &found, `SELECT id, "key", user_id, endpoint, response_code, response_body, created_at, expires_at
		FROM idempotency_keys WHERE "key" = ? AND user_id = ?`, key, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now().UTC()
	}
	ikey.ExpiresAt = ikey.ExpiresAt.UTC()
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO idempotency_keys
		(id, "key", user_id, endpoint, response_code, response_body, created_at, expires_at)
		VALUES (:id, :key, :user_id, :endpoint, :response_code, :response_body, :created_at, :expires_at)`, ikey)
	return err
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM idempotency_keys WHERE expires_at < ?`, before.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
