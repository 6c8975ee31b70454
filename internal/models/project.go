package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Modality is the work arrangement of a project (remote, on-site, hybrid).
type Modality struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;size:50;not null" json:"slug"`
}

// Category classifies a project.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;size:50;not null" json:"slug"`
}

// Project is a job posting. The owner never changes after creation.
type Project struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	UserID         uint           `gorm:"index;not null" json:"user_id"`
	User           *User          `json:"user,omitempty"`
	Name           string         `gorm:"size:200;not null" json:"name"`
	NameFolded     string         `gorm:"size:200;index" json:"-"` // lower-cased Name for search
	Description    string         `gorm:"type:text" json:"description,omitempty"`
	ModalityID     uint           `gorm:"index;not null" json:"modality_id"`
	Modality       *Modality      `json:"modality,omitempty"`
	CategoryID     uint           `gorm:"index;not null" json:"category_id"`
	Category       *Category      `json:"category,omitempty"`
	Salary         Money          `gorm:"embedded;embeddedPrefix:salary_" json:"salary"`
	AttachmentPath string         `gorm:"size:500" json:"attachment_path,omitempty"`
}

// GetUserID implements policy.Ownable.
func (p *Project) GetUserID() uint { return p.UserID }

// BeforeSave keeps NameFolded in step with Name. SQLite's LOWER only folds
// ASCII, so search matches against a column lowered in Go.
func (p *Project) BeforeSave(tx *gorm.DB) error {
	p.NameFolded = strings.ToLower(p.Name)
	return nil
}
