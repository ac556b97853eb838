// Package rest wires the HTTP surface: one public intake endpoint, the
// authenticated read API, health probes, and the embedded client script.
package rest

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/formsink/formsink/internal/config"
	mw "github.com/formsink/formsink/internal/transport/middleware"
)

// tokenValidator validates a read-API bearer token and returns the principal
// it encodes. It mirrors the middleware's requirement so callers can hand the
// same token manager to both.
type tokenValidator interface {
	Validate(token string) (subject string, forms []string, err error)
}

// NewRouter builds the HTTP routing tree. Intake is public; the read
// endpoints sit behind bearer auth.
func NewRouter(
	cfg config.CORSConfig,
	log *slog.Logger,
	intakeH *IntakeHandler,
	subH *SubmissionsHandler,
	healthH *HealthHandler,
	validator tokenValidator,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(mw.RequestID())
	r.Use(chimw.RealIP)
	r.Use(mw.Recovery(log))
	r.Use(mw.CORS(cfg))
	r.Use(mw.Logger(log))

	r.Get("/healthz", healthH.Live)
	r.Get("/readyz", healthH.Ready)
	r.Get("/health", healthH.Health)
	r.Get("/client.js", ClientScript)

	r.Route("/api/v1", func(r chi.Router) {
		// Public intake
		r.Post("/forms/{formID}/submissions", intakeH.Create)

		// Authenticated reads
		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(validator))

			r.Get("/forms/{formID}/submissions", subH.List)
			r.Get("/submissions/{id}", subH.Get)
		})
	})

	return r
}
