package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// DateLayout is the calendar-date format used by record dates
const DateLayout = "2006-01-02"

// Record is one sale or purchase tying a customer to a device and its ledger.
// Amounts are integer currency units kept as strings, as typed at the counter.
type Record struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"_id" db:"id"`
	Name            string          `gorm:"size:255;not null" json:"name" db:"name"`
	Phone           string          `gorm:"size:13;not null" json:"phone" db:"phone"`
	CNIC            string          `gorm:"column:cnic;size:13;not null;index" json:"cnic" db:"cnic"`
	Model           string          `gorm:"size:255;not null" json:"model" db:"model"`
	EMI             string          `gorm:"column:emi;size:100;index" json:"emi" db:"emi"`
	Type            enum.RecordType `gorm:"type:varchar(20);default:'Sale'" json:"type" db:"type"`
	Price           string          `gorm:"size:20" json:"price" db:"price"`
	PaidAmount      string          `gorm:"column:paid_amount;size:20" json:"paidAmount" db:"paid_amount"`
	RemainingAmount string          `gorm:"column:remaining_amount;size:21" json:"remainingAmount" db:"remaining_amount"`
	Date            string          `gorm:"type:varchar(10);not null" json:"date" db:"date"`
	CreatedAt       time.Time       `json:"-" db:"created_at"`
	UpdatedAt       time.Time       `json:"-" db:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new record
func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName keeps the resource name the dashboard has always used
func (Record) TableName() string {
	return "customers"
}

// SameContent reports whether two records are equal on every user-visible
// field, ignoring the store-assigned id and bookkeeping timestamps.
func (r Record) SameContent(o Record) bool {
	return r.Name == o.Name &&
		r.Phone == o.Phone &&
		r.CNIC == o.CNIC &&
		r.Model == o.Model &&
		r.EMI == o.EMI &&
		r.Type.String() == o.Type.String() &&
		r.Price == o.Price &&
		r.PaidAmount == o.PaidAmount &&
		r.RemainingAmount == o.RemainingAmount &&
		r.Date == o.Date
}
