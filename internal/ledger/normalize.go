// Package ledger holds the record rules shared by the counter client and the
// record service: input normalization, submit-time validation and the derived
// price/paid/remaining arithmetic.
package ledger

import (
	"strings"

	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
)

const (
	// CNICLength is the exact length of a national identity number
	CNICLength = 13
	// MaxIntlPhoneLength caps a "+"-prefixed phone number, sign included
	MaxIntlPhoneLength = 13
	// MaxLocalPhoneLength caps a phone number without a country prefix
	MaxLocalPhoneLength = 11
	// MaxAmountDigits keeps every amount, and sums of a few of them, in int64
	MaxAmountDigits = 18
)

// NormalizeCNIC keeps the digits of raw, at most 13 of them.
func NormalizeCNIC(raw string) string {
	return truncate(digitsOnly(raw), CNICLength)
}

// NormalizePhone keeps digits and a leading "+". International numbers are
// capped at 13 characters, local ones at 11 digits.
func NormalizePhone(raw string) string {
	cleaned := strings.TrimLeftFunc(raw, func(r rune) bool {
		return r != '+' && !isDigit(r)
	})
	if strings.HasPrefix(cleaned, "+") {
		return truncate("+"+digitsOnly(cleaned[1:]), MaxIntlPhoneLength)
	}
	return truncate(digitsOnly(cleaned), MaxLocalPhoneLength)
}

// NormalizeAmount keeps the digits of raw, at most 18 of them. Amounts are
// whole currency units, so a decimal point is dropped like any other character.
func NormalizeAmount(raw string) string {
	return truncate(digitsOnly(raw), MaxAmountDigits)
}

// NormalizeRecord applies the field normalizers to a whole record.
func NormalizeRecord(r entity.Record) entity.Record {
	r.CNIC = NormalizeCNIC(r.CNIC)
	r.Phone = NormalizePhone(r.Phone)
	r.Price = NormalizeAmount(r.Price)
	r.PaidAmount = NormalizeAmount(r.PaidAmount)
	return r
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// truncate cuts an ASCII string to n bytes
func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
