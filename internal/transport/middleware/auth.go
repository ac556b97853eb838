package middleware

import (
	"net/http"
	"strings"

	"github.com/formsink/formsink/pkg/ctxutil"
)

type tokenValidator interface {
	Validate(token string) (subject string, forms []string, err error)
}

// Auth returns middleware that requires a valid bearer token and stores the
// resulting principal in the request context. The read API has no anonymous
// access: a missing or invalid token is rejected outright.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="submissions"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			subject, forms, err := validator.Validate(token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="submissions", error="invalid_token"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithPrincipal(r.Context(), ctxutil.Principal{Subject: subject, Forms: forms})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the token out of the Authorization header.
// The scheme is matched case-insensitively per RFC 7235.
func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) < 7 || !strings.EqualFold(auth[:7], "Bearer ") {
		return ""
	}
	return auth[7:]
}
