// Package receipt turns a record into a printable invoice and renders it for
// the screen, a thermal printer or a browser print dialog.
package receipt

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/internal/ledger"
)

// GrandTotalMode picks the figure printed as the grand total.
type GrandTotalMode string

const (
	GrandTotalPrice GrandTotalMode = "price"
	GrandTotalPaid  GrandTotalMode = "paid"
)

// ParseGrandTotalMode reads a configured mode; empty means price.
func ParseGrandTotalMode(s string) (GrandTotalMode, error) {
	switch GrandTotalMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", GrandTotalPrice:
		return GrandTotalPrice, nil
	case GrandTotalPaid:
		return GrandTotalPaid, nil
	}
	return "", fmt.Errorf("unknown grand total mode %q (use price or paid)", s)
}

// DefaultFooter closes every receipt unless configured otherwise
const DefaultFooter = "Thank you for shopping with us!"

// Options carry the shop-level settings of a receipt
type Options struct {
	Header     entity.ReceiptHeader
	GrandTotal GrandTotalMode
	Footer     string
}

// NewOptions validates the configured grand total mode and bundles the
// shop settings.
func NewOptions(header entity.ReceiptHeader, grandTotal, footer string) (Options, error) {
	mode, err := ParseGrandTotalMode(grandTotal)
	if err != nil {
		return Options{}, err
	}
	return Options{Header: header, GrandTotal: mode, Footer: footer}, nil
}

// InvoiceNumber derives a short, stable invoice number from a record id.
func InvoiceNumber(id uuid.UUID) string {
	if id == uuid.Nil {
		return "INV-DRAFT"
	}
	hex := strings.ReplaceAll(id.String(), "-", "")
	return "INV-" + strings.ToUpper(hex[:8])
}

// Format builds the receipt for rec. It does not touch the printer.
func Format(rec entity.Record, opts Options) *entity.Receipt {
	rec = ledger.Recalculate(rec)
	price := ledger.ParseAmount(rec.Price)
	paid := ledger.ParseAmount(rec.PaidAmount)

	footer := opts.Footer
	if footer == "" {
		footer = DefaultFooter
	}

	r := &entity.Receipt{
		Header:    opts.Header,
		InvoiceNo: InvoiceNumber(rec.ID),
		Type:      rec.Type.String(),
		Customer:  rec.Name,
		Phone:     rec.Phone,
		CNIC:      rec.CNIC,
		Date:      rec.Date,
		Item: entity.ReceiptItem{
			Model:  rec.Model,
			Serial: rec.EMI,
			Price:  price,
		},
		NetTotal:   price,
		GrandTotal: price,
		Footer:     footer,
	}

	if rec.Type.IsSale() {
		r.ShowLedger = true
		r.Paid = paid
		r.Balance = ledger.Remaining(rec)
		if opts.GrandTotal == GrandTotalPaid {
			r.GrandTotal = paid
		}
	}
	return r
}
