// Package mail provides the outbound mail transport used for buyer receipts.
package mail

import (
	"context"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers a composed document to a recipient address.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer backed by the given SMTP relay.
func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// NoopMailer logs the message instead of sending it. Used in development
// and whenever no SMTP relay is configured.
type NoopMailer struct {
	logger *zap.Logger
}

func NewNoopMailer(logger *zap.Logger) *NoopMailer {
	return &NoopMailer{logger: logger}
}

func (m *NoopMailer) Send(_ context.Context, to, subject, _ string) error {
	m.logger.Info("mail transport disabled, dropping message",
		zap.String("to", to), zap.String("subject", subject))
	return nil
}
