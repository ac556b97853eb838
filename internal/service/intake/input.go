package intake

import (
	"strings"

	"github.com/formsink/formsink/internal/domain"
)

// SubmitInput holds one form post: the target form, the submitted fields,
// and the request context the transport extracted.
type SubmitInput struct {
	FormID    string
	Data      map[string]any
	Token     string // anti-abuse challenge token, may be empty
	ClientIP  string
	UserAgent string
}

// Validate checks all fields and collects all errors. The form ID is a
// partition key chosen by the caller; it is required but not shape-checked.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.FormID) == "" {
		errs = append(errs, domain.FieldError{Field: "formId", Message: "required"})
	}
	if len(i.Data) == 0 {
		errs = append(errs, domain.FieldError{Field: "data", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
