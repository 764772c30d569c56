package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strconv"

	"commission-backend/internal/model"
	"commission-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// ErrNotConfigured is returned when SMTP credentials are absent. Callers
// report the e-mail as unsent and carry on; a missing mail setup never
// blocks the workflow.
var ErrNotConfigured = errors.New("mailer: SMTP credentials not configured")

// Mailer sends one HTML e-mail to a recipient list.
type Mailer interface {
	Send(to []string, subject, htmlBody string) error
}

// SMTPMailer delivers through a plain SMTP relay (STARTTLS handled by
// the dialer).
type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// NewSMTPMailerFromEnv builds a mailer from SMTP_HOST, SMTP_PORT,
// SMTP_USER, SMTP_PASSWORD and EMAIL_FROM.
func NewSMTPMailerFromEnv() *SMTPMailer {
	port := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			port = parsed
		}
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}

	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "sistema@incorporadora.com.br"
	}

	return &SMTPMailer{
		host:     host,
		port:     port,
		user:     os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     from,
	}
}

func (m *SMTPMailer) Send(to []string, subject, htmlBody string) error {
	if m.user == "" || m.password == "" {
		return ErrNotConfigured
	}
	if len(to) == 0 {
		return errors.New("mailer: no recipients")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.user, m.password)
	return d.DialAndSend(msg)
}

// Fallback recipient lists, used when no active configuration row
// exists or the configuration read fails.
var fallbackRecipients = map[string][]string{
	model.RecipientDirection: {"direcao@incorporadora.com.br"},
	model.RecipientFinance:   {"financeiro@incorporadora.com.br", "contasapagar@incorporadora.com.br"},
}

// RecipientResolver resolves a role tag (direction/finance) to a list of
// e-mail addresses via the configuration table, degrading to the
// hardcoded fallbacks.
type RecipientResolver struct {
	configs repository.EmailConfigRepository
	log     *logrus.Logger
}

func NewRecipientResolver(configs repository.EmailConfigRepository, log *logrus.Logger) *RecipientResolver {
	return &RecipientResolver{configs: configs, log: log}
}

func (r *RecipientResolver) Resolve(ctx context.Context, recipientType string) []string {
	cfg, err := r.configs.FindActiveByType(ctx, recipientType)
	if err != nil {
		r.log.WithError(err).WithField("type", recipientType).
			Warn("e-mail config lookup failed, using fallback recipients")
		return fallbackRecipients[recipientType]
	}

	var emails []string
	if err := json.Unmarshal(cfg.Emails, &emails); err != nil || len(emails) == 0 {
		return fallbackRecipients[recipientType]
	}
	return emails
}
