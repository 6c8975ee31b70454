package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/diewo77/go-freelance/gate"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/policy"
	"github.com/diewo77/go-freelance/internal/storage"
	"github.com/diewo77/go-freelance/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Currencies accepted for hourly rates and salaries.
var Currencies = []string{"USD", "EUR", "GBP", "MXN", "ARS", "CLP", "COP"}

// AccountInput is the identity part of the profile form.
type AccountInput struct {
	FirstName string
	LastName  string
	Email     string
}

// ProfileInput is the freelancer part of the profile form.
type ProfileInput struct {
	HourlyRate string
	Currency   string
	Avatar     *multipart.FileHeader
}

// ExperienceInput is the experience form.
type ExperienceInput struct {
	Title       string
	Company     string
	Description string
	StartDate   string
	EndDate     string
}

// ProfilePage is everything the profile page shows.
type ProfilePage struct {
	User        *models.User
	Profile     *models.Profile
	Experiences []models.Experience
}

type ProfileService struct {
	db      *gorm.DB
	files   storage.Files
	gate    *policy.AuthGate
	uploads storage.Upload
}

func NewProfileService(db *gorm.DB, files storage.Files, g *policy.AuthGate, maxUpload int64) *ProfileService {
	return &ProfileService{
		db:      db,
		files:   files,
		gate:    g,
		uploads: storage.Upload{Folder: storage.FolderAvatars, MaxBytes: maxUpload, AllowedTypes: storage.ImageTypes},
	}
}

// GetOrCreate returns the user's profile, creating an empty one on first use.
// Concurrent first calls converge on a single row through the unique user_id index.
func (s *ProfileService) GetOrCreate(ctx context.Context, userID uint) (*models.Profile, error) {
	db := s.db.WithContext(ctx)
	fresh := models.Profile{UserID: userID, HourlyRate: models.NewMoney(0, "")}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&fresh).Error; err != nil {
		return nil, fmt.Errorf("get or create profile: %w", err)
	}
	var p models.Profile
	if err := db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, fmt.Errorf("get or create profile: %w", err)
	}
	p.HourlyRate = p.HourlyRate.Normalized()
	return &p, nil
}

// Page loads the user, the profile (creating it if needed) and the experiences.
func (s *ProfileService) Page(ctx context.Context, userID uint) (*ProfilePage, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("profile page: %w", err)
	}
	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	var exps []models.Experience
	if err := s.db.WithContext(ctx).
		Where("profile_id = ?", p.ID).
		Order("start_date DESC").Order("id DESC").
		Find(&exps).Error; err != nil {
		return nil, fmt.Errorf("profile page: %w", err)
	}
	return &ProfilePage{User: &user, Profile: p, Experiences: exps}, nil
}

// Update validates both parts of the profile form and writes them together,
// or not at all.
func (s *ProfileService) Update(ctx context.Context, userID uint, acc AccountInput, prof ProfileInput) error {
	acc.Email = strings.TrimSpace(acc.Email)
	av := validation.Violations{}
	validation.MaxLen("first_name", acc.FirstName, 150, av)
	validation.MaxLen("last_name", acc.LastName, 150, av)
	validation.Required("email", acc.Email, av)
	validation.Email("email", acc.Email, av)

	pv := validation.Violations{}
	rate, ok := validation.NonNegativeFloat("hourly_rate", prof.HourlyRate, pv)
	if ok {
		validation.RangeFloat("hourly_rate", rate, 0, maxAmount, pv)
	}
	currency := strings.ToUpper(strings.TrimSpace(prof.Currency))
	validation.OneOf("currency", currency, Currencies, pv)

	av.Merge(pv)
	if !av.Empty() {
		return invalid(av)
	}

	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	var newAvatar string
	if prof.Avatar != nil {
		key, err := storage.Save(ctx, s.files, s.uploads, prof.Avatar)
		switch {
		case errors.Is(err, storage.ErrTooLarge):
			return invalid(validation.Violations{"avatar": "file_too_large"})
		case errors.Is(err, storage.ErrUnsupportedType):
			return invalid(validation.Violations{"avatar": "unsupported_file_type"})
		case err != nil:
			return fmt.Errorf("update profile: %w", err)
		}
		newAvatar = key
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
			"first_name": strings.TrimSpace(acc.FirstName),
			"last_name":  strings.TrimSpace(acc.LastName),
			"email":      acc.Email,
		}).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"hourly_rate_amount":   rate,
			"hourly_rate_currency": models.NewMoney(rate, currency).Currency,
		}
		if newAvatar != "" {
			updates["avatar_path"] = newAvatar
		}
		return tx.Model(&models.Profile{}).Where("id = ?", p.ID).Updates(updates).Error
	})
	if err != nil {
		if newAvatar != "" {
			_ = s.files.Delete(ctx, newAvatar)
		}
		return fmt.Errorf("update profile: %w", err)
	}
	if newAvatar != "" && p.AvatarPath != "" {
		if err := s.files.Delete(ctx, p.AvatarPath); err != nil && !errors.Is(err, storage.ErrNotFound) {
			slog.WarnContext(ctx, "avatar_cleanup_failed", slog.String("key", p.AvatarPath), slog.String("err", err.Error()))
		}
	}
	return nil
}

// Experience returns an entry of the user's own profile. Entries of other
// profiles are reported as ErrNotFound.
func (s *ProfileService) Experience(ctx context.Context, userID, id uint) (*models.Experience, error) {
	return s.ownExperience(ctx, userID, id, gate.ActionView)
}

// ownExperience loads an entry and checks action against its profile.
func (s *ProfileService) ownExperience(ctx context.Context, userID, id uint, action gate.Action) (*models.Experience, error) {
	var e models.Experience
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get experience: %w", err)
	}
	var p models.Profile
	if err := s.db.WithContext(ctx).First(&p, e.ProfileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get experience: %w", err)
	}
	if err := s.gate.Allows(ctx, userID, action, policy.ResourceProfile, &p); err != nil {
		slog.WarnContext(ctx, "experience_access_denied",
			slog.Uint64("experience_id", uint64(id)),
			slog.Uint64("user_id", uint64(userID)),
			slog.String("action", string(action)),
		)
		return nil, ErrNotFound
	}
	return &e, nil
}

// SaveExperience creates an entry when id is 0, otherwise edits the user's own entry.
func (s *ProfileService) SaveExperience(ctx context.Context, userID, id uint, in ExperienceInput) (*models.Experience, error) {
	var e *models.Experience
	if id != 0 {
		found, err := s.ownExperience(ctx, userID, id, gate.ActionUpdate)
		if err != nil {
			return nil, err
		}
		e = found
	} else {
		p, err := s.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}
		e = &models.Experience{ProfileID: p.ID}
	}

	v := validation.Violations{}
	validation.Required("title", in.Title, v)
	validation.MaxLen("title", in.Title, 200, v)
	validation.MaxLen("company", in.Company, 200, v)
	validation.Required("start_date", in.StartDate, v)
	start, hasStart := validation.Date("start_date", in.StartDate, v)
	end, hasEnd := validation.Date("end_date", in.EndDate, v)
	if hasStart && hasEnd && end.Before(start) {
		v["end_date"] = "end_before_start"
	}
	if !v.Empty() {
		return nil, invalid(v)
	}

	e.Title = strings.TrimSpace(in.Title)
	e.Company = strings.TrimSpace(in.Company)
	e.Description = strings.TrimSpace(in.Description)
	e.StartDate = start
	e.EndDate = nil
	if hasEnd {
		e.EndDate = &end
	}
	if err := s.db.WithContext(ctx).Save(e).Error; err != nil {
		return nil, fmt.Errorf("save experience: %w", err)
	}
	return e, nil
}

// DeleteExperience removes the user's own entry.
func (s *ProfileService) DeleteExperience(ctx context.Context, userID, id uint) error {
	e, err := s.ownExperience(ctx, userID, id, gate.ActionDelete)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(e).Error; err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	return nil
}

// ExperienceForm returns the form values for an existing entry.
func ExperienceForm(e *models.Experience) ExperienceInput {
	in := ExperienceInput{
		Title:       e.Title,
		Company:     e.Company,
		Description: e.Description,
		StartDate:   e.StartDate.Format(validation.DateLayout),
	}
	if e.EndDate != nil {
		in.EndDate = e.EndDate.Format(validation.DateLayout)
	}
	return in
}

// ProfileForm returns the form values for the edit page. A rate stored
// without a currency is shown with the default one.
func ProfileForm(u *models.User, p *models.Profile) (AccountInput, ProfileInput) {
	rate := p.HourlyRate.Normalized()
	return AccountInput{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email},
		ProfileInput{HourlyRate: trimFloat(rate.Amount), Currency: rate.Currency}
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "" {
		return "0"
	}
	return s
}
