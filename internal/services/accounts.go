package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLen = 8

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Username        string
	Email           string
	FirstName       string
	LastName        string
	Password        string
	PasswordConfirm string
}

type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// Register validates in, stores a new user with a bcrypt hash and returns it.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	v := validation.Violations{}
	validation.Required("username", in.Username, v)
	validation.MaxLen("username", in.Username, 150, v)
	if _, bad := v["username"]; !bad && !usernameRe.MatchString(in.Username) {
		v["username"] = "invalid_username"
	}
	validation.Required("email", in.Email, v)
	validation.Email("email", in.Email, v)
	validation.Required("password", in.Password, v)
	if _, bad := v["password"]; !bad && len(in.Password) < minPasswordLen {
		v["password"] = "password_too_short"
	}
	if in.Password != in.PasswordConfirm {
		v["password_confirm"] = "password_mismatch"
	}
	if _, bad := v["username"]; !bad {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("register: %w", err)
		}
		if count > 0 {
			v["username"] = "username_taken"
		}
	}
	if !v.Empty() {
		return nil, invalid(v)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}
	user := models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Password:  string(hash),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, invalid(validation.Violations{"username": "username_taken"})
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	return &user, nil
}

// Authenticate returns the user matching username and password.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get loads a user by id.
func (s *AccountService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// Exists reports whether a user with id is still present.
func (s *AccountService) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return count > 0, nil
}

// SessionValid drops sessions of deleted users. A failed lookup keeps the
// session so a database hiccup does not sign everyone out.
func (s *AccountService) SessionValid(ctx context.Context, id uint) bool {
	ok, err := s.Exists(ctx, id)
	if err != nil {
		slog.WarnContext(ctx, "session_check_failed",
			slog.Uint64("user_id", uint64(id)),
			slog.Any("err", err),
		)
		return true
	}
	return ok
}

// isUniqueViolation matches driver messages for unique constraint failures
// when the dialector does not translate them.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
