package submissions

import (
	"context"
	"fmt"
	"strings"

	"github.com/formsink/formsink/internal/domain"
	"github.com/formsink/formsink/pkg/ctxutil"
)

// Get returns a single submission by ID. A submission outside the caller's
// form scope reads as missing, so IDs cannot be probed across forms.
func (s *Service) Get(ctx context.Context, id string) (domain.Submission, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return domain.Submission{}, domain.ErrUnauthorized
	}

	if strings.TrimSpace(id) == "" {
		return domain.Submission{}, domain.NewValidationError("id", "required")
	}

	sub, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.Submission{}, err
	}

	if !principal.CanAccess(sub.FormID) {
		return domain.Submission{}, fmt.Errorf("get submission %s: %w", id, domain.ErrNotFound)
	}

	return sub, nil
}
