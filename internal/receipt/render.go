package receipt

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/pkg/printer"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/receipt.html
var templateFS embed.FS

var htmlTemplate = template.Must(template.New("receipt.html").Funcs(template.FuncMap{
	"amount": Amount,
}).ParseFS(templateFS, "templates/receipt.html"))

var amountPrinter = message.NewPrinter(language.English)

// Amount formats whole currency units with thousands separators, e.g. "Rs 12,500".
func Amount(n int64) string {
	return amountPrinter.Sprintf("Rs %d", n)
}

// RenderText renders a plain-text preview of width characters.
func RenderText(r *entity.Receipt, width int) string {
	doc := printer.NewTextDocument(width)
	layout(doc, r)
	return doc.String()
}

// RenderESCPOS renders the receipt for a thermal printer.
func RenderESCPOS(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)
	layout(doc, r)
	doc.FeedLines(3).PartialCut()
	return doc.Bytes()
}

// RenderHTML writes a standalone page that opens the browser print dialog.
func RenderHTML(w io.Writer, r *entity.Receipt) error {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func layout(doc *printer.Document, r *entity.Receipt) {
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.ShopName).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text("Tel: " + r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).Separator('-')
	doc.KeyValue("Invoice:", r.InvoiceNo).
		KeyValue("Type:", r.Type).
		KeyValue("Customer:", r.Customer).
		KeyValue("Phone:", r.Phone)
	if r.CNIC != "" {
		doc.KeyValue("CNIC:", r.CNIC)
	}
	doc.KeyValue("Date:", r.Date).Separator('-')

	doc.SetBold(true).Text(r.Item.Model).SetBold(false)
	if r.Item.Serial != "" {
		doc.Text("IMEI: " + r.Item.Serial)
	}
	doc.KeyValue("Price:", Amount(r.Item.Price)).Separator('-')

	doc.KeyValue("Net Total:", Amount(r.NetTotal)).
		SetBold(true).
		KeyValue("Grand Total:", Amount(r.GrandTotal)).
		SetBold(false)
	if r.ShowLedger {
		doc.KeyValue("Cash Paid:", Amount(r.Paid)).
			KeyValue("Balance:", Amount(r.Balance))
	}

	doc.Separator('-').
		SetAlign(printer.AlignCenter).
		Text(r.Footer).
		SetAlign(printer.AlignLeft)
}
