package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/internal/receipt"
	"github.com/sangkips/mobilehub-pos/pkg/apperror"
	"github.com/sangkips/mobilehub-pos/pkg/printer"
)

func TestPrintRecord(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRecordRepo{}
	rec, err := newRecordService(repo).CreateRecord(ctx, saleInput())
	if err != nil {
		t.Fatal(err)
	}

	var spool bytes.Buffer
	opts := receipt.Options{Header: entity.ReceiptHeader{ShopName: "MobileHub"}}
	s := NewPrinterService(printer.WriterPrinter{W: &spool}, repo, opts, 0)

	r, err := s.PrintRecord(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if r.Balance != 15000 {
		t.Errorf("balance = %d", r.Balance)
	}
	if !bytes.Contains(spool.Bytes(), []byte("MobileHub")) {
		t.Error("printer did not receive the receipt")
	}

	if _, err := s.PrintRecord(ctx, uuid.New()); apperror.GetAppError(err).Code != 404 {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestPrinterStatus(t *testing.T) {
	s := NewPrinterService(printer.NullPrinter{}, &fakeRecordRepo{}, receipt.Options{}, 48)
	st := s.GetStatus(context.Background())
	if st.Configured || st.Connected || st.Type != "none" || st.Width != 48 {
		t.Fatalf("unexpected status %+v", st)
	}
	if _, err := s.TestPrint(context.Background()); err != nil {
		t.Fatalf("null printer test print: %v", err)
	}
}
