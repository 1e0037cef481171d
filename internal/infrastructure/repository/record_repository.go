package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/mobilehub-pos/internal/domain/repository"
	"gorm.io/gorm"
)

// recordColumns are the user-editable columns written by Update
var recordColumns = []string{
	"name", "phone", "cnic", "model", "emi", "type",
	"price", "paid_amount", "remaining_amount", "date", "updated_at",
}

type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a gorm backed record repository
func NewRecordRepository(db *gorm.DB) domainRepo.RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, record *entity.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *recordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Record, error) {
	var record entity.Record
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *recordRepository) Update(ctx context.Context, record *entity.Record) error {
	return r.db.WithContext(ctx).
		Model(&entity.Record{ID: record.ID}).
		Select(recordColumns).
		Updates(record).Error
}

func (r *recordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Record{}, "id = ?", id).Error
}

func (r *recordRepository) List(ctx context.Context, search string) ([]entity.Record, error) {
	records := make([]entity.Record, 0)
	err := r.db.WithContext(ctx).
		Scopes(RecordSearch(search)).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}
