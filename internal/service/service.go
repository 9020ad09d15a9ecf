package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Dan9191/delinquency-assistant/internal/config"
	"github.com/Dan9191/delinquency-assistant/internal/insights"
	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/Dan9191/delinquency-assistant/internal/repository"
	"github.com/Dan9191/delinquency-assistant/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmptyQuestion is returned when a chat turn carries no text
	ErrEmptyQuestion = errors.New("question is empty")
	// ErrUnauthorized is returned on a failed login
	ErrUnauthorized = errors.New("invalid credentials")
)

// NoDynamicResults stands in for the query output when the query fails
const NoDynamicResults = "Não foi possível gerar resultados dinâmicos específicos."

// Store is the data access the service needs
type Store interface {
	LoadRecords(ctx context.Context) ([]models.Record, error)
	RunQuery(ctx context.Context, query string) (*repository.QueryResult, error)
}

// IntentClassifier maps a question to an intent category
type IntentClassifier interface {
	Classify(ctx context.Context, question string) (models.Intent, error)
}

// QueryGenerator turns a question into an SQL query
type QueryGenerator interface {
	Generate(ctx context.Context, intent models.Intent, question string) (string, error)
}

// Responder produces the final answer text
type Responder interface {
	Answer(ctx context.Context, intent models.Intent, question, insights, dynamicResults string) (string, error)
	Converse(ctx context.Context, history []models.ChatMessage, question, insights string) (string, error)
}

// Service handles business logic
type Service struct {
	repo       Store
	classifier IntentClassifier
	generator  QueryGenerator
	responder  Responder
	log        *logrus.Logger
	config     *config.Config

	mu       sync.RWMutex
	insights string
}

// NewService initializes a new service
func NewService(repo Store, classifier IntentClassifier, generator QueryGenerator, responder Responder, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		classifier: classifier,
		generator:  generator,
		responder:  responder,
		log:        log,
		config:     cfg,
	}
}

// GenerateReport loads the table and builds a fresh insight report
func (s *Service) GenerateReport(ctx context.Context) (string, error) {
	period, err := s.config.Period()
	if err != nil {
		return "", err
	}

	records, err := s.repo.LoadRecords(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load records: %w", err)
	}
	s.log.Infof("Loaded %d rows from the database", len(records))

	report, err := insights.Generate(records, period)
	if err != nil {
		return "", fmt.Errorf("failed to generate insights: %w", err)
	}
	return report, nil
}

// LoadInsights generates the report the chat is grounded on
func (s *Service) LoadInsights(ctx context.Context) error {
	report, err := s.GenerateReport(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.insights = report
	s.mu.Unlock()
	return nil
}

// Insights returns the report loaded by LoadInsights
func (s *Service) Insights() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.insights
}

// Ask runs one chat turn. Failures while answering are reported to the user
// as the assistant's reply rather than returned.
func (s *Service) Ask(ctx context.Context, sess *session.Session, question string) (*models.ChatReply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if s.Insights() == "" {
		if err := s.LoadInsights(ctx); err != nil {
			return nil, err
		}
	}

	history := sess.History()
	sess.Append(models.RoleUser, question)

	reply, err := s.answer(ctx, history, question)
	if err != nil {
		s.log.Errorf("Failed to answer question: %v", err)
		reply.Answer = fmt.Sprintf("Erro no processamento: %v", err)
	}

	sess.Append(models.RoleAssistant, reply.Answer)
	return reply, nil
}

func (s *Service) answer(ctx context.Context, history []models.ChatMessage, question string) (*models.ChatReply, error) {
	reply := &models.ChatReply{}

	intent, err := s.classifier.Classify(ctx, question)
	if err != nil {
		return reply, fmt.Errorf("failed to classify intent: %w", err)
	}
	reply.Intent = intent
	s.log.Infof("Intent classified as: %s", intent)

	if intent == models.IntentGeneral {
		reply.Answer, err = s.responder.Converse(ctx, history, question, s.Insights())
		return reply, err
	}

	reply.Query, err = s.generator.Generate(ctx, intent, question)
	if err != nil {
		return reply, fmt.Errorf("failed to generate query: %w", err)
	}
	s.log.Infof("Dynamic query generated: %s", reply.Query)

	dynamic := NoDynamicResults
	result, err := s.repo.RunQuery(ctx, reply.Query)
	if err != nil {
		s.log.Warnf("Failed to run dynamic query: %v", err)
	} else {
		dynamic = result.String()
	}

	reply.Answer, err = s.responder.Answer(ctx, intent, question, s.Insights(), dynamic)
	return reply, err
}

// Login checks the analyst credentials and returns a JWT
func (s *Service) Login(username, password string) (string, error) {
	if username != s.config.AnalystUsername || s.config.AnalystPasswordHash == "" {
		return "", ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AnalystPasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("Analyst logged in: %s", username)
	return tokenString, nil
}

// Suggestions are example questions shown to new users
func (s *Service) Suggestions() []string {
	return []string{
		"Qual estado com maior inadimplência e quais os valores devidos?",
		"Qual tipo de cliente apresenta o maior número de operações?",
		"Em qual modalidade existe maior inadimplência?",
		"Compare a inadimplência entre PF e PJ",
		"Qual ocupação entre PF possui maior inadimplência?",
		"Qual o principal porte de cliente com inadimplência entre PF?",
	}
}
