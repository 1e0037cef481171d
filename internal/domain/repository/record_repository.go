package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
)

// RecordRepository defines the interface for sale/purchase record storage
type RecordRepository interface {
	Create(ctx context.Context, record *entity.Record) error
	// GetByID returns nil, nil when no record has the id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Record, error)
	Update(ctx context.Context, record *entity.Record) error
	// Delete removes the record permanently
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns the whole collection in creation order, optionally
	// narrowed by a search over name, phone, cnic, model and emi.
	List(ctx context.Context, search string) ([]entity.Record, error)
}
