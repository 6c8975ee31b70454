package models

import (
	"fmt"
	"strings"
)

// DefaultCurrency is applied to amounts entered as a bare number.
const DefaultCurrency = "USD"

// Money is a currency-tagged amount stored as two columns.
type Money struct {
	Amount   float64 `gorm:"not null;default:0" json:"amount"`
	Currency string  `gorm:"size:3;not null;default:'USD'" json:"currency"`
}

// NewMoney builds an amount tagged with currency, falling back to DefaultCurrency.
func NewMoney(amount float64, currency string) Money {
	return Money{Amount: amount, Currency: normalizeCurrency(currency)}
}

// Normalized returns m with an upper-case currency code, defaulting when empty.
func (m Money) Normalized() Money {
	return Money{Amount: m.Amount, Currency: normalizeCurrency(m.Currency)}
}

// String renders the amount as "1234.50 USD".
func (m Money) String() string {
	n := m.Normalized()
	return fmt.Sprintf("%.2f %s", n.Amount, n.Currency)
}

func normalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return DefaultCurrency
	}
	return c
}
