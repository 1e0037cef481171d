package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/internal/domain/enum"
)

// SalesBasis selects which figure the dashboard headlines as "total sales".
type SalesBasis string

const (
	// SalesBasisReceived counts cash actually paid on sales
	SalesBasisReceived SalesBasis = "received"
	// SalesBasisInvoiced counts the full price of sales
	SalesBasisInvoiced SalesBasis = "invoiced"
)

// ParseSalesBasis reads a configured basis; empty means received.
func ParseSalesBasis(s string) (SalesBasis, error) {
	switch SalesBasis(strings.ToLower(strings.TrimSpace(s))) {
	case "", SalesBasisReceived:
		return SalesBasisReceived, nil
	case SalesBasisInvoiced:
		return SalesBasisInvoiced, nil
	}
	return "", fmt.Errorf("unknown sales basis %q (use received or invoiced)", s)
}

// Summary is the set of aggregates shown on the dashboard
type Summary struct {
	RecordCount         int        `json:"record_count"`
	CustomerCount       int        `json:"customer_count"`
	InvoiceCount        int        `json:"invoice_count"`
	PurchaseCount       int        `json:"purchase_count"`
	TotalReceivedCash   int64      `json:"total_received_cash"`
	TotalSalesValue     int64      `json:"total_sales_value"`
	TotalPurchasesValue int64      `json:"total_purchases_value"`
	OutstandingBalance  int64      `json:"outstanding_balance"`
	SalesBasis          SalesBasis `json:"sales_basis"`
	TotalSales          int64      `json:"total_sales"`
}

// ParseAmount reads a string-encoded amount. Empty or non-numeric input
// counts as zero.
func ParseAmount(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Remaining is price minus paid for a sale and zero for a purchase.
func Remaining(r entity.Record) int64 {
	if r.Type.IsPurchase() {
		return 0
	}
	return ParseAmount(r.Price) - ParseAmount(r.PaidAmount)
}

// Recalculate rewrites the derived fields of r. Call it after any change to
// price, paid amount or type. A purchase is settled by definition, so its
// paid and remaining amounts are forced to zero.
func Recalculate(r entity.Record) entity.Record {
	if r.Type == "" {
		r.Type = enum.RecordTypeSale
	}
	if r.Type.IsPurchase() {
		r.PaidAmount = "0"
		r.RemainingAmount = "0"
		return r
	}
	r.RemainingAmount = strconv.FormatInt(Remaining(r), 10)
	return r
}

// NewDraft returns an empty sale form dated on the given day.
func NewDraft(now time.Time) entity.Record {
	return entity.Record{
		Type:            enum.RecordTypeSale,
		PaidAmount:      "0",
		RemainingAmount: "0",
		Date:            now.Format(entity.DateLayout),
	}
}

// Summarize aggregates the full collection.
func Summarize(records []entity.Record, basis SalesBasis) Summary {
	s := Summary{RecordCount: len(records), SalesBasis: basis}
	for _, r := range records {
		if r.Type.IsPurchase() {
			s.PurchaseCount++
			s.TotalPurchasesValue += ParseAmount(r.Price)
			continue
		}
		s.InvoiceCount++
		s.TotalReceivedCash += ParseAmount(r.PaidAmount)
		s.TotalSalesValue += ParseAmount(r.Price)
		s.OutstandingBalance += Remaining(r)
	}
	// every entry of the customers collection, purchases included
	s.CustomerCount = s.RecordCount

	switch basis {
	case SalesBasisInvoiced:
		s.TotalSales = s.TotalSalesValue
	default:
		s.SalesBasis = SalesBasisReceived
		s.TotalSales = s.TotalReceivedCash
	}
	return s
}
