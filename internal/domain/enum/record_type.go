package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// RecordType distinguishes a sale to a customer from a purchase by the shop
type RecordType string

const (
	RecordTypeSale     RecordType = "Sale"
	RecordTypePurchase RecordType = "Purchase"
)

// ParseRecordType accepts any letter case. Empty input is a Sale, which
// keeps records written before the type field existed readable.
func ParseRecordType(s string) (RecordType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sale":
		return RecordTypeSale, nil
	case "purchase":
		return RecordTypePurchase, nil
	}
	return "", fmt.Errorf("unknown record type %q", s)
}

func (t RecordType) String() string {
	if t == "" {
		return string(RecordTypeSale)
	}
	return string(t)
}

// IsSale reports whether the record counts towards sales. Absent type means Sale.
func (t RecordType) IsSale() bool {
	return t != RecordTypePurchase
}

// IsPurchase reports whether the record is a purchase
func (t RecordType) IsPurchase() bool {
	return t == RecordTypePurchase
}

func (t RecordType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *RecordType) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = RecordTypeSale
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseRecordType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t RecordType) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *RecordType) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = RecordTypeSale
		return nil
	case string:
		parsed, err := ParseRecordType(v)
		if err != nil {
			return err
		}
		*t = parsed
	case []byte:
		parsed, err := ParseRecordType(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	default:
		return fmt.Errorf("cannot scan %T into RecordType", value)
	}
	return nil
}
