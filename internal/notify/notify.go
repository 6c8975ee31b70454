// Package notify delivers email notifications.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

// ErrNoRecipients is returned when a message has no destination address.
var ErrNoRecipients = errors.New("notify: no recipients")

// Message is a plain-text email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

func (m Message) validate() error {
	for _, to := range m.To {
		if strings.TrimSpace(to) != "" {
			return nil
		}
	}
	return ErrNoRecipients
}

// Mailer sends messages synchronously. Delivery errors are returned to the caller.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the logger instead of sending them. Used in development.
type LogMailer struct {
	log *slog.Logger
}

func NewLogMailer(l *slog.Logger) *LogMailer {
	if l == nil {
		l = slog.Default()
	}
	return &LogMailer{log: l}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	m.log.InfoContext(ctx, "mail_logged",
		slog.Any("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}

// MemoryMailer keeps sent messages in memory. Setting Err makes every Send fail.
type MemoryMailer struct {
	mu   sync.Mutex
	sent []Message
	Err  error
}

func (m *MemoryMailer) Send(_ context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of the delivered messages.
func (m *MemoryMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}
