package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/delinquency-assistant/internal/app"
	"github.com/Dan9191/delinquency-assistant/internal/config"
	"github.com/Dan9191/delinquency-assistant/internal/handler"
	"github.com/Dan9191/delinquency-assistant/internal/integrations/bcb"
	"github.com/Dan9191/delinquency-assistant/internal/middleware"
	"github.com/Dan9191/delinquency-assistant/internal/scheduler"
	"github.com/Dan9191/delinquency-assistant/internal/session"
	"github.com/Dan9191/delinquency-assistant/internal/utils/email"
	"github.com/gorilla/mux"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := app.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := app.OpenDB(ctx, cfg)
	if err != nil {
		logger.Fatalf("Database unavailable: %v", err)
	}
	defer db.Close()

	// Initialize layers
	repo := app.NewRepository(db, cfg)
	svc, err := app.NewChatService(ctx, repo, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize chat service: %v", err)
	}
	if err := svc.LoadInsights(ctx); err != nil {
		logger.Fatalf("Failed to load insights: %v", err)
	}
	bcbClient := bcb.NewBCBClient(cfg, logger)
	h := handler.NewHandler(svc, session.New(), bcbClient, repo, logger)

	// Email digests
	digest := scheduler.NewDigest(svc, email.NewSender(cfg, logger), cfg, logger)
	if err := digest.Start(); err != nil {
		logger.Fatalf("Failed to schedule digest: %v", err)
	}
	defer digest.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/selic", h.SelicRate).Methods("GET")
	r.HandleFunc("/healthz", h.Healthz).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/chat", h.Chat).Methods("POST")
	authRouter.HandleFunc("/chat/history", h.History).Methods("GET")
	authRouter.HandleFunc("/chat/reset", h.Reset).Methods("POST")
	authRouter.HandleFunc("/insights", h.Insights).Methods("GET")
	authRouter.HandleFunc("/suggestions", h.Suggestions).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: handler.ChatTurnTimeout + 10*time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed: %v", err)
	}
}
