package ctxutil

import "context"

type ctxKey string

const (
	principalKey ctxKey = "principal"
	requestIDKey ctxKey = "request_id"
)

// Principal identifies an authenticated read-API caller.
// An empty Forms list grants access to every form.
type Principal struct {
	Subject string
	Forms   []string
}

// CanAccess reports whether the principal may read submissions of formID.
func (p Principal) CanAccess(formID string) bool {
	if len(p.Forms) == 0 {
		return true
	}
	for _, f := range p.Forms {
		if f == formID {
			return true
		}
	}
	return false
}

// WithPrincipal stores the authenticated principal in the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromCtx extracts the principal from the context.
// Returns false if the request was not authenticated.
func PrincipalFromCtx(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
