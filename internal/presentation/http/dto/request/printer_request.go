package request

// PrintReceiptRequest is the request body for printing a record's receipt.
type PrintReceiptRequest struct {
	ID string `json:"id" binding:"required,uuid"`
}
