// Package app wires the shared dependencies of the API server and the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/delinquency-assistant/internal/config"
	"github.com/Dan9191/delinquency-assistant/internal/llm"
	"github.com/Dan9191/delinquency-assistant/internal/repository"
	"github.com/Dan9191/delinquency-assistant/internal/service"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// NewLogger builds the JSON logger. Unknown levels fall back to info.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// OpenDB connects to the configured database and pings it
func OpenDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// NewRepository binds the data table
func NewRepository(db *sql.DB, cfg *config.Config) *repository.Repository {
	return repository.NewRepository(db, cfg.DBDriver, cfg.Table)
}

// NewReportService builds a service that can only generate reports
func NewReportService(db *sql.DB, cfg *config.Config, log *logrus.Logger) *service.Service {
	return service.NewService(NewRepository(db, cfg), nil, nil, nil, log, cfg)
}

// NewChatService builds the full chat service with its LLM chains
func NewChatService(ctx context.Context, repo *repository.Repository, cfg *config.Config, log *logrus.Logger) (*service.Service, error) {
	period, err := cfg.Period()
	if err != nil {
		return nil, err
	}

	chatModel, err := llm.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	classifier, err := llm.NewClassifier(ctx, chatModel, log)
	if err != nil {
		return nil, err
	}
	generator, err := llm.NewQueryGenerator(ctx, chatModel, repo.Table())
	if err != nil {
		return nil, err
	}
	responder, err := llm.NewResponder(ctx, chatModel, period, repo.Table())
	if err != nil {
		return nil, err
	}

	return service.NewService(repo, classifier, generator, responder, log, cfg), nil
}
