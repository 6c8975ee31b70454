package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/validation"
	"gorm.io/gorm"
)

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

// Submit validates and stores a contact message.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) error {
	msg := models.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}
	v := validation.Violations{}
	validation.Required("name", msg.Name, v)
	validation.MaxLen("name", msg.Name, 150, v)
	validation.Required("email", msg.Email, v)
	validation.Email("email", msg.Email, v)
	validation.Required("message", msg.Message, v)
	validation.MaxLen("message", msg.Message, 5000, v)
	if !v.Empty() {
		return invalid(v)
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return fmt.Errorf("submit contact: %w", err)
	}
	slog.InfoContext(ctx, "contact_received", slog.Uint64("id", uint64(msg.ID)))
	return nil
}
