package email

import (
	"context"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/motoarena/backend-go/internal/config"
)

// Sender delivers transactional mail. Delivery failures are the caller's to
// log; they must never fail the operation that triggered the mail.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

// NewSender returns an SMTP-backed sender when SMTP_HOST is configured and a
// log-only sender otherwise, so development setups work without a mail relay.
func NewSender(cfg *config.Config, logger *slog.Logger) Sender {
	if cfg.SMTPHost == "" {
		logger.Warn("⚠️ [Email] SMTP not configured, mail will only be logged")
		return &logSender{logger: logger}
	}

	dialer := gomail.NewDialer(cfg.SMTPHost, int(cfg.SMTPPort), cfg.SMTPUser, cfg.SMTPPassword)
	return &smtpSender{
		dialer: dialer,
		from:   cfg.SMTPFrom,
		logger: logger,
	}
}

func (s *smtpSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return err
	}

	s.logger.Debug("📧 [Email] Mail delivered", "to", to, "subject", subject)
	return nil
}

// logSender writes mail to the log instead of delivering it
type logSender struct {
	logger *slog.Logger
}

func (s *logSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Info("📧 [Email] Mail (log only)",
		"to", to,
		"subject", subject,
		"body_length", len(htmlBody),
	)
	return nil
}
