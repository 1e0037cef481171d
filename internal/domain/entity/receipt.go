package entity

// ReceiptHeader holds the shop identity printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ReceiptItem is the single device line of a receipt.
type ReceiptItem struct {
	Model  string `json:"model"`
	Serial string `json:"serial,omitempty"`
	Price  int64  `json:"price"`
}

// Receipt is a value object representing a printable receipt.
// It is NOT a database entity; it is composed from a finalized record at print time.
type Receipt struct {
	Header     ReceiptHeader `json:"header"`
	InvoiceNo  string        `json:"invoice_no"`
	Type       string        `json:"type"`
	Customer   string        `json:"customer"`
	Phone      string        `json:"phone,omitempty"`
	CNIC       string        `json:"cnic,omitempty"`
	Date       string        `json:"date"`
	Item       ReceiptItem   `json:"item"`
	NetTotal   int64         `json:"net_total"`
	GrandTotal int64         `json:"grand_total"`
	ShowLedger bool          `json:"show_ledger"`
	Paid       int64         `json:"paid"`
	Balance    int64         `json:"balance"`
	Footer     string        `json:"footer,omitempty"`
}
