package email

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/delinquency-assistant/internal/config"
	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/sirupsen/logrus"
)

func TestNewDigest(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewSender(&config.Config{SenderEmail: "insights@bank.test"}, log)

	to := []string{"a@bank.test", "b@bank.test"}
	e := s.NewDigest(to, models.Period{Month: time.December, Year: 2024}, "# RELATÓRIO")

	if e.From != "insights@bank.test" || len(e.To) != 2 {
		t.Errorf("From/To = %q/%v", e.From, e.To)
	}
	if e.Subject != "Análise de inadimplência - DEZ/2024" {
		t.Errorf("Subject = %q", e.Subject)
	}
	body := string(e.Text)
	if !strings.Contains(body, "dezembro de 2024") || !strings.Contains(body, "# RELATÓRIO") {
		t.Errorf("body = %q", body)
	}
}
