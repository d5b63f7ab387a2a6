// Package mail implements outbound transactional email over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gopkg.in/gomail.v2"

	"storefront/config"
	"storefront/internal/domain/service"
)

// smtpMailer is a concrete implementation of the Mailer interface using gomail.
type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

// SMTPMailerParams holds dependencies for the SMTP mailer, injected by Fx.
type SMTPMailerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewSMTPMailer is the constructor for smtpMailer. Without SMTP settings it
// falls back to a mailer that only logs the code, so local environments can
// run without a mail relay.
func NewSMTPMailer(params SMTPMailerParams) (service.Mailer, error) {
	cfg := params.Config.SMTP
	if cfg == nil || cfg.Host == "" {
		params.Logger.Warn("SMTP not configured, one-time codes will be logged instead of mailed")

		return &logMailer{logger: params.Logger}, nil
	}
	if cfg.Port == 0 || cfg.Sender == "" {
		return nil, errors.New("smtp port and sender must be configured")
	}

	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.Sender,
		logger: params.Logger,
	}, nil
}

// logMailer stands in for SMTP in local environments.
type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) SendOTP(_ context.Context, to string, code string) error {
	m.logger.Info("One-time login code issued", slog.String("to", to), slog.String("code", code))

	return nil
}

// SendOTP delivers a one-time login code. The blocking dial runs in a
// goroutine so the context deadline is honored.
func (m *smtpMailer) SendOTP(ctx context.Context, to string, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your one-time login code")
	msg.SetBody("text/plain", fmt.Sprintf("Your login code is %s. It expires in 15 minutes.", code))

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case <-ctx.Done():
		m.logger.Warn("OTP email cancelled by context", slog.String("to", to), slog.Any("error", ctx.Err()))

		return errors.Wrap(ctx.Err(), "otp email cancelled")
	case err := <-done:
		if err != nil {
			m.logger.Error("Failed to send OTP email", slog.String("to", to), slog.Any("error", err))

			return errors.Wrap(err, "failed to send otp email")
		}
	}
	m.logger.Debug("OTP email sent", slog.String("to", to))

	return nil
}
