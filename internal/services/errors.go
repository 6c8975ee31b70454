package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/diewo77/go-freelance/validation"
)

// Sentinel errors shared by the services. Handlers map them to responses.
var (
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrAlreadyApplied     = errors.New("already applied")
	ErrNotification       = errors.New("notification delivery failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// maxAmount caps salaries and hourly rates.
const maxAmount = 1e9

// ValidationError carries per-field violations for a form.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f, code := range e.Violations {
		fields = append(fields, f+"="+code)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

func invalid(v validation.Violations) error {
	return &ValidationError{Violations: v}
}

// Violations returns the field errors in err, or nil.
func Violations(err error) validation.Violations {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Violations
	}
	return nil
}
