// Package submissions serves the authenticated read side: listing a form's
// submissions and fetching one by ID, scoped to the caller's token.
package submissions

import (
	"context"
	"log/slog"

	"github.com/formsink/formsink/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type submissionReader interface {
	ListByForm(ctx context.Context, formID string, limit, offset int) ([]domain.Submission, error)
	GetByID(ctx context.Context, id string) (domain.Submission, error)
}

// Service provides submission retrieval operations.
type Service struct {
	store submissionReader
	log   *slog.Logger
}

// NewService creates a new Submissions service.
func NewService(log *slog.Logger, store submissionReader) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "submissions"),
	}
}
