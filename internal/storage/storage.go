// Package storage defines the backend contracts for submission persistence
// and rate limiting, plus the no-op variants used when a backend is absent.
// Which concrete backend serves each contract is decided once at construction
// time, never re-checked per call.
package storage

import (
	"context"

	"github.com/formsink/formsink/internal/domain"
)

// Submissions persists and retrieves form submissions. Implementations:
// the relational table backend (postgres), the key/value log backend
// (keyval), and Disabled.
type Submissions interface {
	// Store assigns an ID to the submission, persists it, and returns the
	// stored copy. Failures surface as *domain.StorageError; they are never
	// swallowed.
	Store(ctx context.Context, sub domain.Submission) (domain.Submission, error)

	// ListByForm returns submissions of one form, newest first.
	ListByForm(ctx context.Context, formID string, limit, offset int) ([]domain.Submission, error)

	// GetByID returns a single submission by its bare ID.
	// Returns domain.ErrNotFound when no such submission exists.
	GetByID(ctx context.Context, id string) (domain.Submission, error)
}

// RateLimiter enforces a fixed-window request quota per caller identifier.
type RateLimiter interface {
	Check(ctx context.Context, identifier string, maxRequests, windowSeconds int) (domain.RateDecision, error)
}

// SelectSubmissions picks the submission backend: the table backend when
// configured, otherwise the log backend, otherwise Disabled. Pass nil for
// an unconfigured backend.
func SelectSubmissions(table, kv Submissions) Submissions {
	switch {
	case table != nil:
		return table
	case kv != nil:
		return kv
	default:
		return Disabled{}
	}
}

// SelectRateLimiter picks the rate-limit backend: the log backend when
// configured (cheaper counter round-trips), otherwise the table backend,
// otherwise AllowAll. Pass nil for an unconfigured backend.
func SelectRateLimiter(kv, table RateLimiter) RateLimiter {
	switch {
	case kv != nil:
		return kv
	case table != nil:
		return table
	default:
		return AllowAll{}
	}
}
