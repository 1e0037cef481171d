package request

import "github.com/sangkips/mobilehub-pos/internal/domain/enum"

// RecordRequest is the body of POST and PUT /customers. Required fields are
// checked by the record validator rather than binding tags, so the client
// gets the same "fill all required fields" error either way.
type RecordRequest struct {
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	CNIC       string          `json:"cnic"`
	Model      string          `json:"model"`
	EMI        string          `json:"emi"`
	Type       enum.RecordType `json:"type"`
	Price      string          `json:"price"`
	PaidAmount string          `json:"paidAmount"`
	Date       string          `json:"date"`
}
