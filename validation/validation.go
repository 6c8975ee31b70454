package validation

import (
	"net/mail"
	"strconv"
	"strings"
	"time"
)

// Violations maps a form field to an i18n message code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Merge copies other's entries into v, keeping existing ones.
func (v Violations) Merge(other Violations) {
	for k, msg := range other {
		if _, exists := v[k]; !exists {
			v[k] = msg
		}
	}
}

// DateLayout is the HTML date input format.
const DateLayout = "2006-01-02"

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func MaxLen(field, value string, max int, v Violations) {
	if len([]rune(value)) > max {
		v[field] = "too_long"
	}
}

func Email(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v[field] = "invalid_email"
	}
}

// RangeFloat flags val outside [minVal, maxVal].
func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// OneOf flags value unless it is one of allowed. Empty values are left to Required.
func OneOf(field, value string, allowed []string, v Violations) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_choice"
}

// NonNegativeFloat parses raw as a float >= 0. Empty input yields (0, false) with no violation.
func NonNegativeFloat(field, raw string, v Violations) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		v[field] = "invalid_number"
		return 0, false
	}
	if f < 0 {
		v[field] = "must_not_be_negative"
		return 0, false
	}
	return f, true
}

// Date parses raw with DateLayout. Empty input yields (zero, false) with no violation.
func Date(field, raw string, v Violations) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		v[field] = "invalid_date"
		return time.Time{}, false
	}
	return t, true
}
