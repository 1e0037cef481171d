package dashboard

import (
	"strings"

	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
)

// Matches reports whether rec contains query. Name, model and IMEI match
// regardless of case; phone and CNIC are digit strings and match as typed.
func Matches(rec entity.Record, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	lower := strings.ToLower(q)
	for _, field := range []string{rec.Name, rec.Model, rec.EMI} {
		if strings.Contains(strings.ToLower(field), lower) {
			return true
		}
	}
	return strings.Contains(rec.Phone, q) || strings.Contains(rec.CNIC, q)
}

// Filter keeps the records matching query, in their original order
func Filter(records []entity.Record, query string) []entity.Record {
	out := make([]entity.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, query) {
			out = append(out, r)
		}
	}
	return out
}
