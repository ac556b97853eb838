package submissions

import (
	"strings"

	"github.com/formsink/formsink/internal/domain"
)

// ListInput holds the parameters for listing submissions of one form.
type ListInput struct {
	FormID string
	Limit  int // 0 means DefaultLimit
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.FormID) == "" {
		errs = append(errs, domain.FieldError{Field: "formId", Message: "required"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
