package ledger

import (
	"strings"
	"unicode/utf8"

	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/pkg/apperror"
)

// Validator checks a record at submit time. Rules run in order and the
// first failure wins.
type Validator struct {
	// RequirePrice also treats an empty price as a missing field
	RequirePrice bool
}

// Validate returns apperror.ErrMissingField (with the empty fields listed)
// or apperror.ErrInvalidCnic, or nil when the record may be persisted.
func (v Validator) Validate(r entity.Record) error {
	var missing []string
	if blank(r.Name) {
		missing = append(missing, "name")
	}
	if blank(r.Phone) {
		missing = append(missing, "phone")
	}
	if blank(r.CNIC) {
		missing = append(missing, "cnic")
	}
	if blank(r.Model) {
		missing = append(missing, "model")
	}
	if v.RequirePrice && blank(r.Price) {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return apperror.NewMissingFieldError(missing...)
	}

	// exact length, although the normalizer only enforces a maximum
	if utf8.RuneCountInString(r.CNIC) != CNICLength {
		return apperror.ErrInvalidCnic
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
