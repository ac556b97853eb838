// Package intake accepts form submissions. Each submission runs through
// verification, rate limiting, persistence, and notification, strictly in
// that order; only persistence is required, the collaborators around it are
// optional.
package intake

import (
	"context"
	"log/slog"
	"time"

	"github.com/formsink/formsink/internal/config"
	"github.com/formsink/formsink/internal/domain"
)

// notifyTimeout bounds the detached notification send.
const notifyTimeout = 30 * time.Second

type submissionStore interface {
	Store(ctx context.Context, sub domain.Submission) (domain.Submission, error)
}

type rateLimiter interface {
	Check(ctx context.Context, identifier string, maxRequests, windowSeconds int) (domain.RateDecision, error)
}

type verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (domain.Verdict, error)
}

type notifier interface {
	Notify(ctx context.Context, sub domain.Submission) error
}

// Service provides the submission intake pipeline.
type Service struct {
	store    submissionStore
	limiter  rateLimiter
	verifier verifier // nil disables verification
	notifier notifier // nil disables notification
	limits   config.RateLimitConfig
	log      *slog.Logger
}

// NewService creates a new Intake service. verifier and notifier may be nil;
// the corresponding pipeline stage is then skipped.
func NewService(
	log *slog.Logger,
	store submissionStore,
	limiter rateLimiter,
	verifier verifier,
	notifier notifier,
	limits config.RateLimitConfig,
) *Service {
	return &Service{
		store:    store,
		limiter:  limiter,
		verifier: verifier,
		notifier: notifier,
		limits:   limits,
		log:      log.With("service", "intake"),
	}
}
