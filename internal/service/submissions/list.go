package submissions

import (
	"context"
	"fmt"

	"github.com/formsink/formsink/internal/domain"
	"github.com/formsink/formsink/pkg/ctxutil"
)

// List returns submissions of one form, newest first. The caller's token
// must grant access to the form.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Submission, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if !principal.CanAccess(input.FormID) {
		return nil, fmt.Errorf("list submissions for %s: %w", input.FormID, domain.ErrForbidden)
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	return s.store.ListByForm(ctx, input.FormID, limit, input.Offset)
}
