package receipt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/internal/domain/enum"
	"github.com/sangkips/mobilehub-pos/pkg/printer"
)

var testOptions = Options{
	Header: entity.ReceiptHeader{ShopName: "MobileHub", Address: "Main Bazar", Phone: "03001112222"},
}

func saleRecord() entity.Record {
	return entity.Record{
		ID:         uuid.MustParse("5f3a9c1e-0000-4000-8000-000000000001"),
		Name:       "Ali Khan",
		Phone:      "03001234567",
		CNIC:       "3610315149381",
		Model:      "Galaxy A15",
		EMI:        "356789012345678",
		Type:       enum.RecordTypeSale,
		Price:      "40000",
		PaidAmount: "25000",
		Date:       "2024-05-01",
	}
}

func TestInvoiceNumber(t *testing.T) {
	got := InvoiceNumber(uuid.MustParse("5f3a9c1e-0000-4000-8000-000000000001"))
	if got != "INV-5F3A9C1E" {
		t.Fatalf("InvoiceNumber = %q", got)
	}
	if InvoiceNumber(uuid.Nil) != "INV-DRAFT" {
		t.Fatal("nil id should give a draft number")
	}
}

func TestFormatSale(t *testing.T) {
	r := Format(saleRecord(), testOptions)

	if r.NetTotal != 40000 || r.GrandTotal != 40000 {
		t.Errorf("totals: net=%d grand=%d", r.NetTotal, r.GrandTotal)
	}
	if !r.ShowLedger || r.Paid != 25000 || r.Balance != 15000 {
		t.Errorf("ledger block: show=%v paid=%d balance=%d", r.ShowLedger, r.Paid, r.Balance)
	}
	if r.Item.Model != "Galaxy A15" || r.Item.Serial != "356789012345678" {
		t.Errorf("unexpected item %+v", r.Item)
	}
	if r.Footer != DefaultFooter {
		t.Errorf("footer = %q", r.Footer)
	}
}

func TestFormatGrandTotalPaid(t *testing.T) {
	opts := testOptions
	opts.GrandTotal = GrandTotalPaid
	if r := Format(saleRecord(), opts); r.GrandTotal != 25000 {
		t.Fatalf("grand total = %d, want paid amount", r.GrandTotal)
	}
}

func TestFormatPurchaseHasNoLedger(t *testing.T) {
	rec := saleRecord()
	rec.Type = enum.RecordTypePurchase
	opts := testOptions
	opts.GrandTotal = GrandTotalPaid

	r := Format(rec, opts)
	if r.ShowLedger || r.Paid != 0 || r.Balance != 0 {
		t.Fatalf("purchase should not carry a ledger block: %+v", r)
	}
	if r.GrandTotal != 40000 {
		t.Fatalf("purchase grand total = %d, want price", r.GrandTotal)
	}
}

func TestRenderText(t *testing.T) {
	out := RenderText(Format(saleRecord(), testOptions), printer.Width58mm)
	for _, want := range []string{"MobileHub", "INV-5F3A9C1E", "Ali Khan", "Rs 40,000", "Rs 25,000", "Rs 15,000", "Balance:"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if len([]rune(line)) > printer.Width58mm {
			t.Errorf("line exceeds paper width: %q", line)
		}
	}
}

func TestRenderTextPurchase(t *testing.T) {
	rec := saleRecord()
	rec.Type = enum.RecordTypePurchase
	out := RenderText(Format(rec, testOptions), printer.Width80mm)
	if strings.Contains(out, "Cash Paid") || strings.Contains(out, "Balance") {
		t.Fatalf("purchase preview shows ledger block:\n%s", out)
	}
}

func TestRenderESCPOS(t *testing.T) {
	data := RenderESCPOS(Format(saleRecord(), testOptions), printer.Width58mm)
	if !bytes.HasPrefix(data, []byte{printer.ESC, '@'}) {
		t.Fatal("missing init")
	}
	if !bytes.HasSuffix(data, []byte{printer.GS, 'V', 0x01}) {
		t.Fatal("missing cut")
	}
	if !bytes.Contains(data, []byte("Rs 40,000")) {
		t.Fatal("missing formatted price")
	}
}

func TestRenderHTML(t *testing.T) {
	rec := saleRecord()
	rec.Name = "<script>x</script>"
	var buf bytes.Buffer
	if err := RenderHTML(&buf, Format(rec, testOptions)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "window.print()") {
		t.Error("page does not trigger printing")
	}
	if strings.Contains(out, "<script>x</script>") {
		t.Error("customer name was not escaped")
	}
	if !strings.Contains(out, "Rs 15,000") {
		t.Error("missing balance")
	}
}

func TestNewOptions(t *testing.T) {
	opts, err := NewOptions(entity.ReceiptHeader{ShopName: "MobileHub"}, "PAID", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.GrandTotal != GrandTotalPaid || opts.Header.ShopName != "MobileHub" {
		t.Errorf("unexpected options %+v", opts)
	}
	if _, err := NewOptions(entity.ReceiptHeader{}, "gross", ""); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestReceiptJSONKeepsZeroLedger(t *testing.T) {
	rec := saleRecord()
	rec.PaidAmount = rec.Price
	b, err := json.Marshal(Format(rec, testOptions))
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(b, &fields); err != nil {
		t.Fatal(err)
	}
	if v, ok := fields["balance"]; !ok || v.(float64) != 0 {
		t.Errorf("fully paid sale should carry balance 0, got %v (present=%v)", v, ok)
	}

	rec.PaidAmount = "0"
	b, _ = json.Marshal(Format(rec, testOptions))
	fields = nil
	_ = json.Unmarshal(b, &fields)
	if v, ok := fields["paid"]; !ok || v.(float64) != 0 {
		t.Errorf("unpaid sale should carry paid 0, got %v (present=%v)", v, ok)
	}
}
