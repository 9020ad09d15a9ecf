package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/delinquency-assistant/internal/config"
	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReportGenerator rebuilds the insight report from the data source
type ReportGenerator interface {
	GenerateReport(ctx context.Context) (string, error)
}

// DigestSender delivers a report by email
type DigestSender interface {
	SendInsightDigest(to []string, period models.Period, report string) error
}

// Digest emails the insight report on a cron schedule
type Digest struct {
	reports ReportGenerator
	sender  DigestSender
	cfg     *config.Config
	log     *logrus.Logger
	cron    *cron.Cron
}

// NewDigest creates a digest job; it does nothing until Start
func NewDigest(reports ReportGenerator, sender DigestSender, cfg *config.Config, log *logrus.Logger) *Digest {
	return &Digest{
		reports: reports,
		sender:  sender,
		cfg:     cfg,
		log:     log,
		cron:    cron.New(),
	}
}

// Start registers the job under DIGEST_SCHEDULE. An empty schedule disables it.
func (d *Digest) Start() error {
	if d.cfg.DigestSchedule == "" {
		d.log.Info("Digest schedule not set, email digests disabled")
		return nil
	}
	if _, err := d.cron.AddFunc(d.cfg.DigestSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := d.Run(ctx); err != nil {
			d.log.Errorf("Digest run failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid DIGEST_SCHEDULE %q: %w", d.cfg.DigestSchedule, err)
	}
	d.cron.Start()
	d.log.Infof("Email digest scheduled: %s", d.cfg.DigestSchedule)
	return nil
}

// Stop waits for a running job to finish
func (d *Digest) Stop() {
	<-d.cron.Stop().Done()
}

// Run regenerates the report and sends it once
func (d *Digest) Run(ctx context.Context) error {
	period, err := d.cfg.Period()
	if err != nil {
		return err
	}
	report, err := d.reports.GenerateReport(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate digest: %w", err)
	}
	if err := d.sender.SendInsightDigest(d.cfg.DigestRecipients, period, report); err != nil {
		return err
	}
	d.log.Infof("Digest for %s delivered to %d recipients", period.Short(), len(d.cfg.DigestRecipients))
	return nil
}
