package service

import (
	"context"

	"github.com/sangkips/mobilehub-pos/internal/domain/repository"
	"github.com/sangkips/mobilehub-pos/internal/ledger"
)

// DashboardService provides the ledger totals
type DashboardService struct {
	recordRepo repository.RecordRepository
	basis      ledger.SalesBasis
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(recordRepo repository.RecordRepository, basis ledger.SalesBasis) *DashboardService {
	return &DashboardService{recordRepo: recordRepo, basis: basis}
}

// GetSummary aggregates the whole collection
func (s *DashboardService) GetSummary(ctx context.Context) (*ledger.Summary, error) {
	records, err := s.recordRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	summary := ledger.Summarize(records, s.basis)
	return &summary, nil
}
