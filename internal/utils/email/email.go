package email

import (
	"fmt"
	"net/smtp"

	"github.com/Dan9191/delinquency-assistant/internal/config"
	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// NewDigest builds the insight digest message
func (s *Sender) NewDigest(to []string, period models.Period, report string) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = to
	e.Subject = fmt.Sprintf("Análise de inadimplência - %s", period.Short())

	body := "Olá,\n\n"
	body += fmt.Sprintf("Segue a análise estratégica de inadimplência referente a %s.\n\n", period.Long())
	body += report
	body += "\n\nAtenciosamente,\nAssistente de Inadimplência"
	e.Text = []byte(body)
	return e
}

// SendInsightDigest emails the report to the recipients
func (s *Sender) SendInsightDigest(to []string, period models.Period, report string) error {
	e := s.NewDigest(to, period, report)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send digest to %v: %v", to, err)
		return fmt.Errorf("failed to send digest: %w", err)
	}

	s.logger.Infof("Email sent to %v: %s", to, e.Subject)
	return nil
}
