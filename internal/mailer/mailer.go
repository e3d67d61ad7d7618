package mailer

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer delivers verification-code emails over SMTP.
type Mailer struct {
	config *mailerConfig
	dialer *gomail.Dialer
	logger *zerolog.Logger
}

// NewMailer creates a Mailer from SMTP_* environment variables. When no SMTP
// host is configured it returns nil, meaning email delivery is disabled and
// verification codes are surfaced through the API responses instead.
func NewMailer(logger *zerolog.Logger) *Mailer {
	cfg := newMailerConfig(logger)

	if cfg.Host == "" {
		logger.Info().Msg("SMTP not configured, verification codes will not be emailed")
		return nil
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate mailer configuration")
	}

	dialer := gomail.NewDialer(
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
	)

	return &Mailer{
		config: cfg,
		dialer: dialer,
		logger: logger,
	}
}

// SendVerificationCode emails the 6-digit code to the given address.
func (m *Mailer) SendVerificationCode(to, username, code string) error {
	htmlBody := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your verification code is:</p>
		<h2>%s</h2>
		<p>It expires in 15 minutes. If you did not sign up, you can safely ignore this email.</p>
	`, username, code)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your verification code")
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}

// mailerConfig holds SMTP configuration for sending emails.
type mailerConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// newMailerConfig creates a mailerConfig instance from environment variables.
func newMailerConfig(logger *zerolog.Logger) *mailerConfig {
	cfg, err := env.ParseAs[mailerConfig]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	return &cfg
}

// validate checks if the mailer configuration is complete.
func (c *mailerConfig) validate() error {
	if c.Username == "" {
		return fmt.Errorf("missing SMTP_USERNAME environment variable")
	}
	if c.Password == "" {
		return fmt.Errorf("missing SMTP_PASSWORD environment variable")
	}
	if c.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}
