package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/internal/domain/enum"
	"github.com/sangkips/mobilehub-pos/internal/domain/repository"
	"github.com/sangkips/mobilehub-pos/internal/ledger"
	"github.com/sangkips/mobilehub-pos/pkg/apperror"
)

// RecordService handles sale and purchase records
type RecordService struct {
	recordRepo repository.RecordRepository
	validator  ledger.Validator
	now        func() time.Time
}

// NewRecordService creates a new record service
func NewRecordService(recordRepo repository.RecordRepository, validator ledger.Validator) *RecordService {
	return &RecordService{recordRepo: recordRepo, validator: validator, now: time.Now}
}

// RecordInput is the editable part of a record as submitted by the dashboard
type RecordInput struct {
	Name       string
	Phone      string
	CNIC       string
	Model      string
	EMI        string
	Type       enum.RecordType
	Price      string
	PaidAmount string
	Date       string
}

// prepare applies the same normalization and derived-field rules as the
// counter client, so stored records hold regardless of what was sent.
func (s *RecordService) prepare(input *RecordInput) (entity.Record, error) {
	rec := entity.Record{
		Name:       strings.TrimSpace(input.Name),
		Phone:      input.Phone,
		CNIC:       input.CNIC,
		Model:      strings.TrimSpace(input.Model),
		EMI:        strings.TrimSpace(input.EMI),
		Type:       input.Type,
		Price:      input.Price,
		PaidAmount: input.PaidAmount,
		Date:       strings.TrimSpace(input.Date),
	}
	rec = ledger.Recalculate(ledger.NormalizeRecord(rec))

	if rec.Date == "" {
		rec.Date = s.now().Format(entity.DateLayout)
	} else if _, err := time.Parse(entity.DateLayout, rec.Date); err != nil {
		return rec, apperror.NewValidationError([]apperror.FieldError{
			{Field: "date", Message: "date must be in YYYY-MM-DD format"},
		})
	}

	if err := s.validator.Validate(rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// CreateRecord validates and stores a new record
func (s *RecordService) CreateRecord(ctx context.Context, input *RecordInput) (*entity.Record, error) {
	rec, err := s.prepare(input)
	if err != nil {
		return nil, err
	}
	if err := s.recordRepo.Create(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetRecord retrieves a record by ID
func (s *RecordService) GetRecord(ctx context.Context, id uuid.UUID) (*entity.Record, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NewNotFoundError("Record")
	}
	return rec, nil
}

// ListRecords returns the full collection in creation order
func (s *RecordService) ListRecords(ctx context.Context, search string) ([]entity.Record, error) {
	return s.recordRepo.List(ctx, search)
}

// UpdateRecord replaces every editable field of an existing record
func (s *RecordService) UpdateRecord(ctx context.Context, id uuid.UUID, input *RecordInput) (*entity.Record, error) {
	existing, err := s.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	rec, err := s.prepare(input)
	if err != nil {
		return nil, err
	}
	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt

	if err := s.recordRepo.Update(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteRecord permanently removes a record
func (s *RecordService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetRecord(ctx, id); err != nil {
		return err
	}
	return s.recordRepo.Delete(ctx, id)
}
