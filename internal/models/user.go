package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered directory account.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"not null" json:"name" validate:"required"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Avatar       string    `json:"avatar"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
