package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/internal/domain/enum"
	"github.com/sangkips/mobilehub-pos/internal/domain/repository"
	"github.com/sangkips/mobilehub-pos/internal/receipt"
	"github.com/sangkips/mobilehub-pos/pkg/apperror"
	"github.com/sangkips/mobilehub-pos/pkg/printer"
)

// PrinterService formats receipts and sends them to the thermal printer.
type PrinterService struct {
	printer    printer.Printer
	recordRepo repository.RecordRepository
	options    receipt.Options
	width      int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, recordRepo repository.RecordRepository, options receipt.Options, width int) *PrinterService {
	if width <= 0 {
		width = printer.Width58mm
	}
	return &PrinterService{printer: p, recordRepo: recordRepo, options: options, width: width}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus reports whether a printer is configured and reachable.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Kind() != "none",
		Connected:  s.printer.Ready(ctx),
		Type:       s.printer.Kind(),
		Width:      s.width,
	}
}

// Width is the configured paper width in characters.
func (s *PrinterService) Width() int { return s.width }

// TestPrint prints a sample receipt. The receipt is returned even when
// printing fails so the caller can show it instead.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	r := receipt.Format(entity.Record{
		Name:       "PRINTER TEST",
		Phone:      "03000000000",
		Model:      "Test Device",
		EMI:        "000000000000000",
		Type:       enum.RecordTypeSale,
		Price:      "1000",
		PaidAmount: "1000",
		Date:       time.Now().Format(entity.DateLayout),
	}, s.options)

	if err := s.printer.Print(ctx, receipt.RenderESCPOS(r, s.width)); err != nil {
		return r, fmt.Errorf("test print failed: %w", err)
	}
	return r, nil
}

// ReceiptFor formats the receipt of a stored record without printing it.
func (s *PrinterService) ReceiptFor(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NewNotFoundError("Record")
	}
	return receipt.Format(*rec, s.options), nil
}

// PrintRecord prints the receipt of a stored record.
func (s *PrinterService) PrintRecord(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	r, err := s.ReceiptFor(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(ctx, receipt.RenderESCPOS(r, s.width)); err != nil {
		log.Printf("Printer error (record %s): %v", id, err)
		return r, fmt.Errorf("failed to print receipt: %w", err)
	}
	return r, nil
}
