package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Dan9191/delinquency-assistant/internal/integrations/bcb"
	"github.com/Dan9191/delinquency-assistant/internal/middleware"
	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/Dan9191/delinquency-assistant/internal/service"
	"github.com/Dan9191/delinquency-assistant/internal/session"
	"github.com/sirupsen/logrus"
)

// ChatService is the part of the service the HTTP layer uses
type ChatService interface {
	Ask(ctx context.Context, sess *session.Session, question string) (*models.ChatReply, error)
	Insights() string
	Login(username, password string) (string, error)
	Suggestions() []string
}

// RateSource provides the current Selic rate
type RateSource interface {
	GetSelicRate(ctx context.Context) (*bcb.SelicRate, error)
}

// Pinger checks the database connection
type Pinger interface {
	Ping(ctx context.Context) error
}

// ChatTurnTimeout bounds one chat turn, which may call the model three times
const ChatTurnTimeout = 5 * time.Minute

type Handler struct {
	svc   ChatService
	sess  *session.Session
	rates RateSource
	db    Pinger
	log   *logrus.Logger

	// turn serializes chat turns and resets on the shared session
	turn sync.Mutex
}

func NewHandler(svc ChatService, sess *session.Session, rates RateSource, db Pinger, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, sess: sess, rates: rates, db: db, log: log}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type chatRequest struct {
	Question string `json:"question"`
}

type historyResponse struct {
	SessionID string               `json:"session_id"`
	Messages  []models.ChatMessage `json:"messages"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Login handles analyst authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Username, req.Password)
	if errors.Is(err, service.ErrUnauthorized) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.log.Errorf("Login failed: %v", err)
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Chat answers one question
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ChatTurnTimeout)
	defer cancel()

	h.turn.Lock()
	reply, err := h.svc.Ask(ctx, h.sess, req.Question)
	h.turn.Unlock()
	if errors.Is(err, service.ErrEmptyQuestion) {
		http.Error(w, "Question is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.log.Errorf("Chat failed for %s: %v", middleware.Subject(r.Context()), err)
		http.Error(w, fmt.Sprintf("Failed to answer: %v", err), http.StatusInternalServerError)
		return
	}
	h.log.Infof("Answered %s question from %s", reply.Intent, middleware.Subject(r.Context()))
	writeJSON(w, http.StatusOK, reply)
}

// History returns the current conversation
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, historyResponse{SessionID: h.sess.ID(), Messages: h.sess.History()})
}

// Reset starts a new conversation
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.turn.Lock()
	h.sess.Reset()
	h.turn.Unlock()
	h.log.Infof("Conversation reset, new session %s", h.sess.ID())
	h.History(w, r)
}

// Insights returns the loaded report as text
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	report := h.svc.Insights()
	if report == "" {
		http.Error(w, "Insights not loaded", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, report)
}

// Suggestions lists example questions
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"suggestions": h.svc.Suggestions()})
}

// SelicRate returns the latest Selic rate
func (h *Handler) SelicRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.rates.GetSelicRate(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get Selic rate: %v", err), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

// Healthz reports whether the database is reachable
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.log.Warnf("Health check failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
