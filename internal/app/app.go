// Package app wires configuration, storage backends, services, and the HTTP
// server into a running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/formsink/formsink/internal/adapter/keyval"
	"github.com/formsink/formsink/internal/adapter/postgres"
	"github.com/formsink/formsink/internal/adapter/postgres/ratelimit"
	"github.com/formsink/formsink/internal/adapter/postgres/submission"
	"github.com/formsink/formsink/internal/adapter/provider/mailer"
	"github.com/formsink/formsink/internal/adapter/provider/turnstile"
	"github.com/formsink/formsink/internal/auth"
	"github.com/formsink/formsink/internal/config"
	"github.com/formsink/formsink/internal/domain"
	"github.com/formsink/formsink/internal/service/intake"
	"github.com/formsink/formsink/internal/service/submissions"
	"github.com/formsink/formsink/internal/storage"
	"github.com/formsink/formsink/internal/transport/rest"
)

// submissionVerifier and submissionNotifier mirror the intake service's
// optional collaborators. Declaring them here keeps a disabled stage a true
// nil interface instead of a typed-nil adapter pointer.
type submissionVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (domain.Verdict, error)
}

type submissionNotifier interface {
	Notify(ctx context.Context, sub domain.Submission) error
}

// Run is the application entry point. It loads configuration, wires whatever
// backends are configured into the services, and serves HTTP until ctx is
// canceled. Every backend is optional; a fully backendless process still
// boots and answers, rejecting writes with 503 and allowing all callers
// through the rate limiter.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting formsink",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	healthH := rest.NewHealthHandler(BuildVersion())

	var (
		tableStore   storage.Submissions
		tableLimiter storage.RateLimiter
		kvStore      storage.Submissions
		kvLimiter    storage.RateLimiter
	)

	if cfg.Database.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()

		if err := runMigrations(ctx, cfg.Database, logger); err != nil {
			return err
		}

		tableStore = submission.New(pool)
		tableLimiter = ratelimit.New(pool)
		healthH.Add("database", pool)
		logger.Info("table backend configured")
	}

	if cfg.Redis.Enabled() {
		client, err := keyval.NewClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()

		kvStore = keyval.NewSubmissions(client)
		kvLimiter = keyval.NewRateLimiter(client)
		healthH.Add("keyval", rest.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}))
		logger.Info("log backend configured", slog.String("addr", cfg.Redis.Addr))
	}

	store := storage.SelectSubmissions(tableStore, kvStore)
	limiter := storage.SelectRateLimiter(kvLimiter, tableLimiter)

	if _, ok := store.(storage.Disabled); ok {
		logger.Warn("no storage backend configured, submissions will be rejected")
	}
	if _, ok := limiter.(storage.AllowAll); ok {
		logger.Warn("no rate limit backend configured, all requests allowed")
	}

	var verifier submissionVerifier
	if cfg.Verify.Enabled() {
		verifier = turnstile.NewVerifier(cfg.Verify.TurnstileSecret, cfg.Verify.Timeout, logger)
		logger.Info("verification enabled")
	}

	var notifier submissionNotifier
	if cfg.Notify.Enabled() {
		notifier = mailer.NewNotifier(cfg.Notify, logger)
		logger.Info("notifications enabled", slog.String("to", cfg.Notify.To))
	}

	intakeSvc := intake.NewService(logger, store, limiter, verifier, notifier, cfg.RateLimit)
	readSvc := submissions.NewService(logger, store)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	router := rest.NewRouter(
		cfg.CORS,
		logger,
		rest.NewIntakeHandler(intakeSvc, cfg.Server.MaxBodyBytes, logger),
		rest.NewSubmissionsHandler(readSvc, logger),
		healthH,
		tokens,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
