package models

import (
	"time"
)

// Profile holds the editable freelancer attributes of a user.
// Exactly one profile exists per user.
type Profile struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	UserID      uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	HourlyRate  Money        `gorm:"embedded;embeddedPrefix:hourly_rate_" json:"hourly_rate"`
	AvatarPath  string       `gorm:"size:500" json:"avatar_path,omitempty"`
	Experiences []Experience `gorm:"constraint:OnDelete:CASCADE" json:"experiences,omitempty"`
}

// GetUserID implements policy.Ownable.
func (p *Profile) GetUserID() uint { return p.UserID }

// Experience is a work history entry attached to a profile.
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ProfileID   uint       `gorm:"index;not null" json:"profile_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Company     string     `gorm:"size:200" json:"company,omitempty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// Current reports whether the position has no end date.
func (e Experience) Current() bool { return e.EndDate == nil }
