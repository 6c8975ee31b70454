package models

import "time"

// ApplicationStatus is the flat status of an application. Any status may follow any other.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ApplicationStatuses lists the accepted values in display order.
var ApplicationStatuses = []ApplicationStatus{ApplicationPending, ApplicationAccepted, ApplicationRejected}

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Application records a user applying to a project. The (user, project)
// pair is unique at the database level.
type Application struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	UserID    uint              `gorm:"not null;uniqueIndex:idx_application_user_project" json:"user_id"`
	User      *User             `json:"user,omitempty"`
	ProjectID uint              `gorm:"not null;uniqueIndex:idx_application_user_project;index" json:"project_id"`
	Project   *Project          `gorm:"constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Status    ApplicationStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
}

// ApplicantID implements policy.ApplicationScoped.
func (a *Application) ApplicantID() uint { return a.UserID }

// ProjectOwnerID implements policy.ApplicationScoped. It returns 0 when the
// project was not loaded, which no authenticated user matches.
func (a *Application) ProjectOwnerID() uint {
	if a.Project == nil {
		return 0
	}
	return a.Project.UserID
}

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
}
