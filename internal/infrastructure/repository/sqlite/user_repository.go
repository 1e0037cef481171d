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

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a SQLite backed user repository
func NewUserRepository(db *sqlx.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO users (id, name, email, password, created_at, updated_at)
		VALUES (:id, :name, :email, :password, :created_at, :updated_at)`, user)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE id = ?`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE email = ?`, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var user entity.User
	err := r.db.GetContext(ctx, &user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
