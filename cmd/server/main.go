package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/gorilla/sessions"
	_ "github.com/islamizindagi/backend/docs"
	"github.com/islamizindagi/backend/internal/config"
	"github.com/islamizindagi/backend/internal/handlers"
	"github.com/islamizindagi/backend/internal/logger"
	"github.com/islamizindagi/backend/internal/middleware"
	"github.com/islamizindagi/backend/internal/notify"
	"github.com/islamizindagi/backend/internal/remote"
	"github.com/islamizindagi/backend/internal/session"
	"github.com/islamizindagi/backend/internal/store"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Islami Zindagi API
// @version 1.0
// @description API for the Islami Zindagi content portal: dars lessons, questions and answers, and community events

// @contact.name API Support
// @contact.email support@islamizindagi.app

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for privileged backend scripts. Never shipped to browsers.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Islami Zindagi API")

	// Remote backend client: documents, storage, account, teams
	client := remote.NewClient(cfg.Remote, cfg.APIKey)

	// Notification sink for mutation outcomes
	notifier := notify.NewZapNotifier(logger.Logger)

	// Entity cache over the remote collections
	cache := store.New(client, client, notifier, logger.Logger)

	// Initial full fetch of the public collections; per-user collections
	// load once a session authenticates
	refreshCtx, cancelRefresh := context.WithTimeout(context.Background(), 30*time.Second)
	cache.RefreshData(refreshCtx, "")
	cancelRefresh()

	// Session store over the identity and teams contracts
	sessionStore := session.NewStore(client, client, cfg.Remote.AdminTeamID, cfg.VerificationURL, logger.Logger)

	// Browser cookie store carrying the remote session secret
	cookies := sessions.NewCookieStore([]byte(cfg.Session.Secret))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(sessionStore, cache, cookies, logger.Logger)
	darsHandler := handlers.NewDarsHandler(cache, logger.Logger)
	questionHandler := handlers.NewQuestionHandler(cache, logger.Logger)
	eventHandler := handlers.NewEventHandler(cache, logger.Logger)
	savedHandler := handlers.NewSavedHandler(cache, logger.Logger)
	adminHandler := handlers.NewAdminHandler(cache, logger.Logger)
	internalHandler := handlers.NewInternalHandler(cache, logger.Logger)

	// Initialize auth middleware
	authMiddleware := middleware.AuthMiddleware(cookies, sessionStore)
	verifiedMiddleware := middleware.RequireVerified(sessionStore)
	apiKeyMiddleware := middleware.APIKeyMiddleware(cfg.APIKey)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(10 * 1024 * 1024)) // 10MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		authHandler.RegisterRoutes(r)
		darsHandler.RegisterRoutes(r)
		questionHandler.RegisterRoutes(r)
		eventHandler.RegisterRoutes(r)

		// Authenticated endpoints (session cookie, verification not yet required)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			authHandler.RegisterProtectedRoutes(r)
		})

		// Authenticated + verified user endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(verifiedMiddleware)
			darsHandler.RegisterProtectedRoutes(r)
			questionHandler.RegisterProtectedRoutes(r)
			savedHandler.RegisterProtectedRoutes(r)
		})

		// Admin endpoints (role resolved from team membership)
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(verifiedMiddleware)
			r.Use(middleware.RequireAdmin)
			adminHandler.RegisterRoutes(r)
		})

		// Internal endpoints (API key protected)
		r.Route("/internal", func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			internalHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
