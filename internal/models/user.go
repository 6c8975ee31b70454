package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents a registered marketplace account.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Username  string         `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string         `gorm:"size:255;not null" json:"-"` // never public
	FirstName string         `gorm:"size:150" json:"first_name,omitempty"`
	LastName  string         `gorm:"size:150" json:"last_name,omitempty"`
	Password  string         `gorm:"size:255;not null" json:"-"` // bcrypt hash
	// Profile is created lazily on first profile view.
	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// DisplayName returns "First Last" when set, the username otherwise.
func (u User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full
}
