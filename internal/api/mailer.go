// internal/api/mailer.go

package api

import (
	"context"

	"github.com/rs/zerolog"
)

// Message is an outgoing email with one PDF attachment.
type Message struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
}

// Mailer delivers a rendered document to a client.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer records messages instead of delivering them.
type LogMailer struct {
	log zerolog.Logger
}

// NewLogMailer returns a Mailer that only logs what it would send.
func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send logs msg and reports success.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("attachment", msg.AttachmentPath).
		Msg("email delivery disabled, message not sent")
	return nil
}
