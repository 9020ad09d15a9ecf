package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dan9191/delinquency-assistant/internal/integrations/bcb"
	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/Dan9191/delinquency-assistant/internal/service"
	"github.com/Dan9191/delinquency-assistant/internal/session"
	"github.com/sirupsen/logrus"
)

type fakeService struct {
	insights    string
	hasDeadline bool
}

func (f *fakeService) Ask(ctx context.Context, sess *session.Session, question string) (*models.ChatReply, error) {
	if strings.TrimSpace(question) == "" {
		return nil, service.ErrEmptyQuestion
	}
	_, f.hasDeadline = ctx.Deadline()
	sess.Append(models.RoleUser, question)
	time.Sleep(time.Millisecond)
	sess.Append(models.RoleAssistant, "SP lidera.")
	return &models.ChatReply{Intent: models.IntentRanking, Answer: "SP lidera."}, nil
}

func (f *fakeService) Insights() string { return f.insights }

func (f *fakeService) Login(username, password string) (string, error) {
	if username == "analyst" && password == "s3nha" {
		return "token-123", nil
	}
	return "", service.ErrUnauthorized
}

func (f *fakeService) Suggestions() []string { return []string{"Qual estado?"} }

type fakeRates struct {
	err error
}

func (f *fakeRates) GetSelicRate(ctx context.Context) (*bcb.SelicRate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &bcb.SelicRate{Date: "11/12/2024", Value: 12.25}, nil
}

type fakeDB struct {
	err error
}

func (f *fakeDB) Ping(ctx context.Context) error { return f.err }

func newHandler(svc *fakeService, rates *fakeRates) (*Handler, *session.Session) {
	return newHandlerWithDB(svc, rates, &fakeDB{})
}

func newHandlerWithDB(svc *fakeService, rates *fakeRates, db *fakeDB) (*Handler, *session.Session) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	sess := session.New()
	return NewHandler(svc, sess, rates, db, log), sess
}

func TestLogin(t *testing.T) {
	h, _ := newHandler(&fakeService{}, &fakeRates{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"ok", `{"username":"analyst","password":"s3nha"}`, http.StatusOK},
		{"wrong password", `{"username":"analyst","password":"x"}`, http.StatusUnauthorized},
		{"bad json", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body)))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusOK {
				var resp map[string]string
				json.NewDecoder(rec.Body).Decode(&resp)
				if resp["token"] != "token-123" {
					t.Errorf("token = %q", resp["token"])
				}
			}
		})
	}
}

func TestChatAndHistory(t *testing.T) {
	svc := &fakeService{}
	h, sess := newHandler(svc, &fakeRates{})

	rec := httptest.NewRecorder()
	h.Chat(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"question":"Qual estado lidera?"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var reply models.ChatReply
	if err := json.NewDecoder(rec.Body).Decode(&reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply.Intent != models.IntentRanking || reply.Answer != "SP lidera." {
		t.Errorf("reply = %+v", reply)
	}
	if !svc.hasDeadline {
		t.Error("chat turn should run with a deadline")
	}

	rec = httptest.NewRecorder()
	h.History(rec, httptest.NewRequest(http.MethodGet, "/chat/history", nil))
	var history historyResponse
	json.NewDecoder(rec.Body).Decode(&history)
	if history.SessionID != sess.ID() || len(history.Messages) != 3 {
		t.Errorf("history = %+v", history)
	}

	oldID := sess.ID()
	rec = httptest.NewRecorder()
	h.Reset(rec, httptest.NewRequest(http.MethodPost, "/chat/reset", nil))
	json.NewDecoder(rec.Body).Decode(&history)
	if history.SessionID == oldID || len(history.Messages) != 1 || history.Messages[0].Content != session.Greeting {
		t.Errorf("after reset = %+v", history)
	}
}

func TestChat_EmptyQuestion(t *testing.T) {
	h, _ := newHandler(&fakeService{}, &fakeRates{})
	rec := httptest.NewRecorder()
	h.Chat(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"question":"  "}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestInsights(t *testing.T) {
	h, _ := newHandler(&fakeService{}, &fakeRates{})
	rec := httptest.NewRecorder()
	h.Insights(rec, httptest.NewRequest(http.MethodGet, "/insights", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 before load", rec.Code)
	}

	h, _ = newHandler(&fakeService{insights: "# ANÁLISE"}, &fakeRates{})
	rec = httptest.NewRecorder()
	h.Insights(rec, httptest.NewRequest(http.MethodGet, "/insights", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "# ANÁLISE" {
		t.Errorf("status = %d body = %q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestSuggestions(t *testing.T) {
	h, _ := newHandler(&fakeService{}, &fakeRates{})
	rec := httptest.NewRecorder()
	h.Suggestions(rec, httptest.NewRequest(http.MethodGet, "/suggestions", nil))

	var resp map[string][]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if len(resp["suggestions"]) != 1 {
		t.Errorf("suggestions = %v", resp)
	}
}

func TestSelicRate(t *testing.T) {
	h, _ := newHandler(&fakeService{}, &fakeRates{})
	rec := httptest.NewRecorder()
	h.SelicRate(rec, httptest.NewRequest(http.MethodGet, "/selic", nil))

	var rate bcb.SelicRate
	json.NewDecoder(rec.Body).Decode(&rate)
	if rec.Code != http.StatusOK || rate.Value != 12.25 {
		t.Errorf("status = %d rate = %+v", rec.Code, rate)
	}

	h, _ = newHandler(&fakeService{}, &fakeRates{err: errors.New("timeout")})
	rec = httptest.NewRecorder()
	h.SelicRate(rec, httptest.NewRequest(http.MethodGet, "/selic", nil))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestChat_ConcurrentTurnsStayPaired(t *testing.T) {
	h, sess := newHandler(&fakeService{}, &fakeRates{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			h.Chat(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"question":"Qual estado?"}`)))
		}()
	}
	wg.Wait()

	history := sess.History()
	if len(history) != 17 {
		t.Fatalf("history has %d messages, want 17", len(history))
	}
	for i, m := range history[1:] {
		want := models.RoleUser
		if i%2 == 1 {
			want = models.RoleAssistant
		}
		if m.Role != want {
			t.Fatalf("message %d role = %q, want %q", i+1, m.Role, want)
		}
	}
}

func TestHealthz(t *testing.T) {
	h, _ := newHandler(&fakeService{}, &fakeRates{})
	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	h, _ = newHandlerWithDB(&fakeService{}, &fakeRates{}, &fakeDB{err: errors.New("connection refused")})
	rec = httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
