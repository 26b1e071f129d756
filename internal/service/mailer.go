//go:generate mockery --name Mailer --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"log/slog"

	"cinepetro_api/internal/config"
	"cinepetro_api/internal/middleware"

	"gopkg.in/gomail.v2"
)

// Mailer はユーザー向け通知メールの送信口
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// --- LogMailer ---
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// --- SMTPMailer ---
type SMTPMailer struct {
	cfg    *config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Debug("Attempting to send email via SMTP",
		"smtp_host", m.cfg.Host,
		"smtp_port", m.cfg.Port,
		"from", m.cfg.From,
		"to", to,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		logger.Error("Failed to send email via SMTP", "error", err, "to", to)
		return err
	}

	logger.Info("Email sent successfully via SMTP", "to", to, "subject", subject)
	return nil
}

// --- NewMailer ファクトリ関数 ---
func NewMailer(cfg *config.Config) Mailer {
	logger := slog.Default()
	switch cfg.Mailer.Type {
	case "smtp":
		logger.Info("Initializing SMTP mailer...")
		return NewSMTPMailer(&cfg.SMTP)
	case "ses":
		logger.Info("Initializing SES mailer...")
		return NewSESMailer(cfg)
	case "log":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Mailer.Type)
		return &LogMailer{}
	}
}

// welcomeMail はユーザー登録完了メールの件名と本文
func welcomeMail(appName, name string) (string, string) {
	subject := "Bem-vindo(a) ao " + appName
	body := "Olá, " + name + "!\n\n" +
		"Sua conta no " + appName + " foi criada com sucesso.\n" +
		"Agora você pode salvar seu progresso e continuar assistindo de onde parou.\n"
	return subject, body
}
