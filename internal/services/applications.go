package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/diewo77/go-freelance/gate"
	"github.com/diewo77/go-freelance/i18n"
	"github.com/diewo77/go-freelance/internal/metrics"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/notify"
	"github.com/diewo77/go-freelance/internal/policy"
	"github.com/diewo77/go-freelance/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationService struct {
	db     *gorm.DB
	mailer notify.Mailer
	gate   *policy.AuthGate

	// notifyTimeout bounds the owner email, which runs while the insert
	// transaction is open.
	notifyTimeout time.Duration
}

func NewApplicationService(db *gorm.DB, mailer notify.Mailer, g *policy.AuthGate) *ApplicationService {
	return &ApplicationService{db: db, mailer: mailer, gate: g, notifyTimeout: notify.DefaultSendTimeout}
}

// Apply records userID's application to projectID and emails the project owner.
//
// The row is inserted with ON CONFLICT DO NOTHING against the unique
// (user_id, project_id) index, so concurrent duplicates collapse into one row
// and the loser gets ErrAlreadyApplied. The email is sent inside the same
// transaction: when delivery fails the row is rolled back and the returned
// error wraps ErrNotification. The send is cut off after notifyTimeout so a
// stalled relay cannot hold the transaction open.
func (s *ApplicationService) Apply(ctx context.Context, userID, projectID uint) (*models.Application, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).Preload("User").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("apply: %w", err)
	}
	if err := s.gate.Allows(ctx, userID, gate.ActionApply, policy.ResourceProject, &project); err != nil {
		return nil, invalid(validation.Violations{"project": "own_project"})
	}
	var applicant models.User
	if err := s.db.WithContext(ctx).First(&applicant, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("apply: %w", err)
	}

	app := models.Application{UserID: userID, ProjectID: projectID, Status: models.ApplicationPending}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
			DoNothing: true,
		}).Create(&app)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyApplied
		}
		if err := s.notifyOwner(ctx, &applicant, &project); err != nil {
			return fmt.Errorf("%w: %w", ErrNotification, err)
		}
		return nil
	})
	switch {
	case errors.Is(err, ErrAlreadyApplied):
		metrics.Applications.WithLabelValues("duplicate").Inc()
		return nil, ErrAlreadyApplied
	case errors.Is(err, ErrNotification):
		metrics.Applications.WithLabelValues("failed").Inc()
		metrics.NotificationFailures.Inc()
		slog.ErrorContext(ctx, "notification_failed",
			slog.Uint64("project_id", uint64(projectID)),
			slog.Uint64("applicant_id", uint64(userID)),
			slog.String("err", err.Error()),
		)
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("apply: %w", err)
	}

	metrics.Applications.WithLabelValues("created").Inc()
	slog.InfoContext(ctx, "application_created",
		slog.Uint64("application_id", uint64(app.ID)),
		slog.Uint64("project_id", uint64(projectID)),
		slog.Uint64("applicant_id", uint64(userID)),
	)
	app.Project = &project
	app.User = &applicant
	return &app, nil
}

func (s *ApplicationService) notifyOwner(ctx context.Context, applicant *models.User, project *models.Project) error {
	if project.User == nil {
		return fmt.Errorf("project %d has no owner loaded", project.ID)
	}
	ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	return s.mailer.Send(ctx, notify.Message{
		To:      []string{project.User.Email},
		Subject: i18n.T(i18n.Default, "mail.application_subject"),
		Body:    i18n.Tf(i18n.Default, "mail.application_body", applicant.Username, project.Name),
	})
}

// HasApplied reports whether userID already applied to projectID.
func (s *ApplicationService) HasApplied(ctx context.Context, userID, projectID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Application{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("has applied: %w", err)
	}
	return count > 0, nil
}

// UpdateStatus sets the status of an application. Only the owner of the
// application's project may do it; anyone else gets ErrPermissionDenied and
// nothing changes. Any status may follow any other.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actorID, applicationID uint, status models.ApplicationStatus) (*models.Application, error) {
	if !status.Valid() {
		return nil, invalid(validation.Violations{"status": "invalid_choice"})
	}
	var app models.Application
	if err := s.db.WithContext(ctx).Preload("Project").First(&app, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update status: %w", err)
	}
	if err := s.gate.Allows(ctx, actorID, gate.ActionReview, policy.ResourceApplication, &app); err != nil {
		slog.WarnContext(ctx, "status_update_denied",
			slog.Uint64("application_id", uint64(applicationID)),
			slog.Uint64("actor_id", uint64(actorID)),
		)
		return nil, ErrPermissionDenied
	}
	if err := s.db.WithContext(ctx).Model(&app).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	app.Status = status
	metrics.StatusChanges.WithLabelValues(string(status)).Inc()
	return &app, nil
}

// ListForOwner returns the applications received on projects owned by ownerID.
func (s *ApplicationService) ListForOwner(ctx context.Context, ownerID uint) ([]models.Application, error) {
	var out []models.Application
	err := s.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = applications.project_id AND projects.deleted_at IS NULL").
		Where("projects.user_id = ?", ownerID).
		Preload("User").Preload("Project").
		Order("applications.id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list received applications: %w", err)
	}
	return out, nil
}

// ListForUser returns the applications sent by userID.
func (s *ApplicationService) ListForUser(ctx context.Context, userID uint) ([]models.Application, error) {
	var out []models.Application
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Project").Preload("Project.User").
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list sent applications: %w", err)
	}
	return out, nil
}
