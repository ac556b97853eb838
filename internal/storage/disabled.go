package storage

import (
	"context"

	"github.com/formsink/formsink/internal/domain"
)

// Disabled is the submission store used when neither backend is configured.
// Writes fail with domain.ErrStorageUnavailable; reads return empty results
// so that a misconfigured deployment degrades to a visibly empty API rather
// than a broken one.
type Disabled struct{}

func (Disabled) Store(_ context.Context, _ domain.Submission) (domain.Submission, error) {
	return domain.Submission{}, domain.ErrStorageUnavailable
}

func (Disabled) ListByForm(_ context.Context, _ string, _, _ int) ([]domain.Submission, error) {
	return nil, nil
}

func (Disabled) GetByID(_ context.Context, _ string) (domain.Submission, error) {
	return domain.Submission{}, domain.ErrNotFound
}

// AllowAll is the rate limiter used when neither backend is configured.
// Absence of a rate-limit store must never block legitimate traffic, so
// every check passes.
type AllowAll struct{}

func (AllowAll) Check(_ context.Context, _ string, _, _ int) (domain.RateDecision, error) {
	return domain.RateDecision{Allowed: true}, nil
}
