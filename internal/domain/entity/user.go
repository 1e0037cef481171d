package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a shop operator allowed to sign in to the dashboard
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id" db:"id"`
	Name      string    `gorm:"size:255;not null" json:"name" db:"name"`
	Email     string    `gorm:"size:255;unique;not null" json:"email" db:"email"`
	Password  string    `gorm:"size:255" json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
