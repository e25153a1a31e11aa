package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/devconnect/api/internal/api"
	"github.com/devconnect/api/internal/api/handlers"
	"github.com/devconnect/api/internal/github"
	"github.com/devconnect/api/internal/repository"
	"github.com/devconnect/api/internal/services"
	"github.com/devconnect/api/internal/token"
	"github.com/devconnect/api/pkg/config"
	"github.com/devconnect/api/pkg/database"
	"github.com/devconnect/api/pkg/keys"
	"github.com/devconnect/api/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting devconnect API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	// Signing keypair, generated on first start
	if err := keys.Ensure(cfg.KeysDir, cfg.KeyPassphrase); err != nil {
		log.Fatal("Failed to provision signing keys", zap.Error(err))
	}
	pair, err := keys.Load(cfg.KeysDir, cfg.KeyPassphrase)
	if err != nil {
		log.Fatal("Failed to load signing keys", zap.Error(err))
	}

	// Connect to database
	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// Services
	issuer := token.NewIssuer(pair.Private, cfg.TokenTTL)
	verifier := token.NewVerifier(pair.Public)
	authSvc := services.NewAuthService(userRepo, issuer)
	profileSvc := services.NewProfileService(profileRepo, userRepo)
	ghClient := github.NewClient(cfg.GithubAPIURL, cfg.GithubToken, &http.Client{Timeout: cfg.GithubTimeout})

	// Handlers
	validate := validator.New(validator.WithRequiredStructEnabled())
	authHandler := handlers.NewAuthHandler(authSvc, validate)
	profileHandler := handlers.NewProfileHandler(profileSvc, ghClient, validate)

	// Router
	router := api.NewRouter(api.Dependencies{
		Verifier:       verifier,
		AuthHandler:    authHandler,
		ProfileHandler: profileHandler,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
