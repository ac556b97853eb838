// Package ratelimit implements the fixed-window rate limiter backed by
// PostgreSQL. Each caller identifier owns at most one row in the rate_limits
// table holding the in-window request count and the window reset time in
// epoch milliseconds.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/formsink/formsink/internal/adapter/postgres"
	"github.com/formsink/formsink/internal/domain"
)

const table = "rate_limits"

// builder produces queries with PostgreSQL placeholders ($1, $2, ...).
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo enforces fixed-window request quotas backed by PostgreSQL.
type Repo struct {
	q postgres.Querier

	// now is swappable for deterministic window tests.
	now func() time.Time
}

// New creates a new rate-limit repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q, now: time.Now}
}

// Check records one request for the identifier and reports whether it fits
// the current window. Windows are fixed: the first request opens a window of
// windowSeconds, and every later request shares it until the reset time
// passes. A denied request is not recorded.
func (r *Repo) Check(ctx context.Context, identifier string, maxRequests, windowSeconds int) (domain.RateDecision, error) {
	nowMs := r.now().UnixMilli()

	query, args, err := builder.
		Select("count", "reset_at").
		From(table).
		Where(sq.Eq{"key": identifier}).
		ToSql()
	if err != nil {
		return domain.RateDecision{}, fmt.Errorf("load rate window: build query: %w", err)
	}

	var count, resetAt int64
	err = r.q.QueryRow(ctx, query, args...).Scan(&count, &resetAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return r.startWindow(ctx, identifier, nowMs, windowSeconds)
	case err != nil:
		return domain.RateDecision{}, postgres.MapError(err, "load rate window")
	}

	// A reset time at or before now means the window expired: replace it,
	// the count restarts at one.
	if nowMs >= resetAt {
		return r.startWindow(ctx, identifier, nowMs, windowSeconds)
	}

	if count >= int64(maxRequests) {
		retryAfter := (resetAt - nowMs + 999) / 1000 // round up to whole seconds
		return domain.RateDecision{Allowed: false, RetryAfterSeconds: retryAfter}, nil
	}

	return r.advanceWindow(ctx, identifier)
}

// startWindow replaces any stale row for the identifier with a fresh window
// counting this request. Delete and insert run as two statements; a
// concurrent start loses the race on the primary key and surfaces as an
// error for the caller to handle.
func (r *Repo) startWindow(ctx context.Context, identifier string, nowMs int64, windowSeconds int) (domain.RateDecision, error) {
	del, args, err := builder.
		Delete(table).
		Where(sq.Eq{"key": identifier}).
		ToSql()
	if err != nil {
		return domain.RateDecision{}, fmt.Errorf("start rate window: build query: %w", err)
	}
	if _, err := r.q.Exec(ctx, del, args...); err != nil {
		return domain.RateDecision{}, postgres.MapError(err, "start rate window")
	}

	ins, args, err := builder.
		Insert(table).
		Columns("key", "count", "reset_at").
		Values(identifier, 1, nowMs+int64(windowSeconds)*1000).
		ToSql()
	if err != nil {
		return domain.RateDecision{}, fmt.Errorf("start rate window: build query: %w", err)
	}
	if _, err := r.q.Exec(ctx, ins, args...); err != nil {
		return domain.RateDecision{}, postgres.MapError(err, "start rate window")
	}

	return domain.RateDecision{Allowed: true}, nil
}

// advanceWindow increments the in-window counter in place.
func (r *Repo) advanceWindow(ctx context.Context, identifier string) (domain.RateDecision, error) {
	query, args, err := builder.
		Update(table).
		Set("count", sq.Expr("count + 1")).
		Where(sq.Eq{"key": identifier}).
		ToSql()
	if err != nil {
		return domain.RateDecision{}, fmt.Errorf("advance rate window: build query: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return domain.RateDecision{}, postgres.MapError(err, "advance rate window")
	}

	return domain.RateDecision{Allowed: true}, nil
}
