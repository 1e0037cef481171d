package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores processed requests to prevent duplicate records
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" db:"id"`
	Key          string    `gorm:"uniqueIndex:idx_idem_key_user;size:255;not null" db:"key"` // The idempotency key from client
	UserID       uuid.UUID `gorm:"uniqueIndex:idx_idem_key_user;type:uuid;not null" db:"user_id"`
	Endpoint     string    `gorm:"size:255;not null" db:"endpoint"` // e.g. "POST /api/customers"
	ResponseCode int       `gorm:"not null" db:"response_code"`
	ResponseBody string    `gorm:"type:text" db:"response_body"`
	CreatedAt    time.Time `gorm:"autoCreateTime" db:"created_at"`
	ExpiresAt    time.Time `gorm:"not null;index" db:"expires_at"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
