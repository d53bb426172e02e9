// Package notify delivers outbound email for account lifecycle changes.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/servicelink/admin-service/internal/config"
)

// Mailer sends lifecycle emails.
type Mailer interface {
	SendProviderVerificationEmail(ctx context.Context, address, firstName string) error
}

const verificationSubject = "Your provider account has been verified"

var verificationBody = template.Must(template.New("verification").Parse(
	`Hi {{if .FirstName}}{{.FirstName}}{{else}}there{{end}},

Good news: an administrator has reviewed your documents and verified your
service provider account. You can now publish services and accept bookings.

The ServiceLink team
`))

// RenderVerificationEmail returns the subject and plain-text body of the
// provider verification mail.
func RenderVerificationEmail(firstName string) (string, string, error) {
	var buf bytes.Buffer
	if err := verificationBody.Execute(&buf, struct{ FirstName string }{firstName}); err != nil {
		return "", "", fmt.Errorf("render verification email: %w", err)
	}
	return verificationSubject, buf.String(), nil
}

// New picks the SMTP mailer when a relay is configured and the log mailer otherwise.
func New(cfg config.NotificationConfig, logger *zap.Logger) Mailer {
	if cfg.SMTPAddr() == "" {
		logger.Warn("NOTIFY_SMTP_HOST not provided; emails will only be logged")
		return NewLogMailer(cfg.EmailFrom, logger)
	}
	return NewSMTPMailer(cfg)
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer relays mail through an SMTP server.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
	send sendFunc
}

// NewSMTPMailer builds a mailer for the configured relay. PLAIN auth is used
// only when a username is set.
func NewSMTPMailer(cfg config.NotificationConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &SMTPMailer{addr: cfg.SMTPAddr(), from: cfg.EmailFrom, auth: auth, send: smtp.SendMail}
}

// SendProviderVerificationEmail implements Mailer.
func (m *SMTPMailer) SendProviderVerificationEmail(ctx context.Context, address, firstName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("send verification email: empty recipient")
	}
	subject, body, err := RenderVerificationEmail(firstName)
	if err != nil {
		return err
	}
	msg := buildMessage(m.from, address, subject, body)
	if err := m.send(m.addr, m.auth, m.from, []string{address}, msg); err != nil {
		return fmt.Errorf("send verification email to %s: %w", address, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

// LogMailer writes emails to the log instead of sending them.
type LogMailer struct {
	from   string
	logger *zap.Logger
}

// NewLogMailer returns a LogMailer.
func NewLogMailer(from string, logger *zap.Logger) *LogMailer {
	return &LogMailer{from: from, logger: logger}
}

// SendProviderVerificationEmail implements Mailer.
func (m *LogMailer) SendProviderVerificationEmail(_ context.Context, address, firstName string) error {
	subject, _, err := RenderVerificationEmail(firstName)
	if err != nil {
		return err
	}
	m.logger.Info("email",
		zap.String("from", m.from),
		zap.String("to", address),
		zap.String("subject", subject))
	return nil
}
