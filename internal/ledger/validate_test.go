package ledger

import (
	"errors"
	"testing"

	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/internal/domain/enum"
	"github.com/sangkips/mobilehub-pos/pkg/apperror"
)

func validRecord() entity.Record {
	return entity.Record{
		Name:  "Ali",
		Phone: "03001234567",
		CNIC:  "3610315149381",
		Model: "Galaxy A15",
		Price: "40000",
	}
}

func TestValidate(t *testing.T) {
	v := Validator{RequirePrice: true}

	tests := []struct {
		name    string
		mutate  func(*entity.Record)
		wantErr error
	}{
		{"valid", func(*entity.Record) {}, nil},
		{"missing name", func(r *entity.Record) { r.Name = "" }, apperror.ErrMissingField},
		{"blank name", func(r *entity.Record) { r.Name = "   " }, apperror.ErrMissingField},
		{"missing phone", func(r *entity.Record) { r.Phone = "" }, apperror.ErrMissingField},
		{"missing cnic", func(r *entity.Record) { r.CNIC = "" }, apperror.ErrMissingField},
		{"missing model", func(r *entity.Record) { r.Model = "" }, apperror.ErrMissingField},
		{"missing price", func(r *entity.Record) { r.Price = "" }, apperror.ErrMissingField},
		{"short cnic", func(r *entity.Record) { r.CNIC = "361031514938" }, apperror.ErrInvalidCnic},
		{"long cnic", func(r *entity.Record) { r.CNIC = "36103151493810" }, apperror.ErrInvalidCnic},
		{"missing wins over cnic", func(r *entity.Record) {
			r.Name = ""
			r.CNIC = "123"
		}, apperror.ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)
			err := v.Validate(r)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateListsMissingFields(t *testing.T) {
	err := Validator{RequirePrice: true}.Validate(entity.Record{Model: "X"})
	appErr := apperror.GetAppError(err)
	var fields []string
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	want := []string{"name", "phone", "cnic", "price"}
	if len(fields) != len(want) {
		t.Fatalf("fields = %v, want %v", fields, want)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("fields = %v, want %v", fields, want)
		}
	}
}

func TestValidatePriceOptional(t *testing.T) {
	r := validRecord()
	r.Price = ""
	if err := (Validator{}).Validate(r); err != nil {
		t.Fatalf("expected price to be optional, got %v", err)
	}
}

func TestValidateAcceptsPurchase(t *testing.T) {
	r := validRecord()
	r.Type = enum.RecordTypePurchase
	if err := (Validator{RequirePrice: true}).Validate(Recalculate(r)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
