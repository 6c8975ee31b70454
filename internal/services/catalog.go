package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/diewo77/go-freelance/internal/metrics"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/storage"
	"github.com/diewo77/go-freelance/validation"
	"gorm.io/gorm"
)

// SearchInput is the raw search query string.
type SearchInput struct {
	Name     string
	Modality string // slug
	Category string // slug
	Salary   string
}

// Empty reports whether no filter was supplied.
func (in SearchInput) Empty() bool {
	return strings.TrimSpace(in.Name) == "" && in.Modality == "" && in.Category == "" && strings.TrimSpace(in.Salary) == ""
}

// Criteria is a validated search. Zero fields impose no constraint.
type Criteria struct {
	Name       string
	ModalityID uint
	CategoryID uint
	MinSalary  *float64
}

// ProjectInput is the "add project" form.
type ProjectInput struct {
	Name        string
	Description string
	Modality    string // slug
	Category    string // slug
	Salary      string
	Currency    string
	Attachment  *multipart.FileHeader
}

type CatalogService struct {
	db      *gorm.DB
	files   storage.Files
	uploads storage.Upload
}

func NewCatalogService(db *gorm.DB, files storage.Files, maxUpload int64) *CatalogService {
	return &CatalogService{
		db:      db,
		files:   files,
		uploads: storage.Upload{Folder: storage.FolderAttachments, MaxBytes: maxUpload},
	}
}

// Modalities lists the lookup rows in id order.
func (s *CatalogService) Modalities(ctx context.Context) ([]models.Modality, error) {
	var out []models.Modality
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list modalities: %w", err)
	}
	return out, nil
}

// Categories lists the lookup rows in id order.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (s *CatalogService) modalityID(ctx context.Context, slug string) (uint, bool, error) {
	var m models.Modality
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	return m.ID, err == nil, err
}

func (s *CatalogService) categoryID(ctx context.Context, slug string) (uint, bool, error) {
	var c models.Category
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	return c.ID, err == nil, err
}

// ParseSearch validates the raw query. Unknown slugs and bad salaries are
// returned as a *ValidationError.
func (s *CatalogService) ParseSearch(ctx context.Context, in SearchInput) (Criteria, error) {
	v := validation.Violations{}
	c := Criteria{Name: strings.TrimSpace(in.Name)}
	validation.MaxLen("name", c.Name, 200, v)

	if in.Modality != "" {
		id, ok, err := s.modalityID(ctx, in.Modality)
		if err != nil {
			return Criteria{}, fmt.Errorf("parse search: %w", err)
		}
		if !ok {
			v["modality"] = "invalid_choice"
		}
		c.ModalityID = id
	}
	if in.Category != "" {
		id, ok, err := s.categoryID(ctx, in.Category)
		if err != nil {
			return Criteria{}, fmt.Errorf("parse search: %w", err)
		}
		if !ok {
			v["category"] = "invalid_choice"
		}
		c.CategoryID = id
	}
	if salary, ok := validation.NonNegativeFloat("salary", in.Salary, v); ok {
		c.MinSalary = &salary
	}
	if !v.Empty() {
		return Criteria{}, invalid(v)
	}
	return c, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *CatalogService) listQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Modality").Preload("Category").Preload("User").
		Order("projects.id ASC")
}

// Search returns the projects matching every supplied criterion, in insertion order.
func (s *CatalogService) Search(ctx context.Context, c Criteria) ([]models.Project, error) {
	q := s.listQuery(ctx)
	if c.Name != "" {
		q = q.Where(`projects.name_folded LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(c.Name))+"%")
	}
	if c.ModalityID != 0 {
		q = q.Where("projects.modality_id = ?", c.ModalityID)
	}
	if c.CategoryID != 0 {
		q = q.Where("projects.category_id = ?", c.CategoryID)
	}
	if c.MinSalary != nil {
		q = q.Where("projects.salary_amount >= ?", *c.MinSalary)
	}
	var out []models.Project
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}
	return out, nil
}

// Get loads one project with its owner and lookups.
func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	if err := s.listQuery(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// ListByOwner returns the projects posted by userID.
func (s *CatalogService) ListByOwner(ctx context.Context, userID uint) ([]models.Project, error) {
	var out []models.Project
	if err := s.listQuery(ctx).Where("projects.user_id = ?", userID).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list own projects: %w", err)
	}
	return out, nil
}

// ListAll returns the whole catalog.
func (s *CatalogService) ListAll(ctx context.Context) ([]models.Project, error) {
	return s.Search(ctx, Criteria{})
}

// Create validates in and stores a project owned by ownerID.
func (s *CatalogService) Create(ctx context.Context, ownerID uint, in ProjectInput) (*models.Project, error) {
	v := validation.Violations{}
	name := strings.TrimSpace(in.Name)
	validation.Required("name", name, v)
	validation.MaxLen("name", name, 200, v)
	validation.Required("modality", in.Modality, v)
	validation.Required("category", in.Category, v)
	validation.Required("salary", in.Salary, v)
	salary, ok := validation.NonNegativeFloat("salary", in.Salary, v)
	if ok {
		validation.RangeFloat("salary", salary, 0, maxAmount, v)
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	validation.OneOf("currency", currency, Currencies, v)

	var modalityID, categoryID uint
	if in.Modality != "" {
		id, ok, err := s.modalityID(ctx, in.Modality)
		if err != nil {
			return nil, fmt.Errorf("create project: %w", err)
		}
		if !ok {
			v["modality"] = "invalid_choice"
		}
		modalityID = id
	}
	if in.Category != "" {
		id, ok, err := s.categoryID(ctx, in.Category)
		if err != nil {
			return nil, fmt.Errorf("create project: %w", err)
		}
		if !ok {
			v["category"] = "invalid_choice"
		}
		categoryID = id
	}
	if !v.Empty() {
		return nil, invalid(v)
	}

	p := models.Project{
		UserID:      ownerID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		ModalityID:  modalityID,
		CategoryID:  categoryID,
		Salary:      models.NewMoney(salary, currency),
	}
	if in.Attachment != nil {
		key, err := storage.Save(ctx, s.files, s.uploads, in.Attachment)
		switch {
		case errors.Is(err, storage.ErrTooLarge):
			return nil, invalid(validation.Violations{"attachment": "file_too_large"})
		case err != nil:
			return nil, fmt.Errorf("create project: %w", err)
		}
		p.AttachmentPath = key
	}

	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		if p.AttachmentPath != "" {
			_ = s.files.Delete(ctx, p.AttachmentPath)
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	metrics.ProjectsCreated.Inc()
	slog.InfoContext(ctx, "project_created",
		slog.Uint64("project_id", uint64(p.ID)),
		slog.Uint64("owner_id", uint64(ownerID)),
		slog.String("name", p.Name),
	)
	return &p, nil
}
