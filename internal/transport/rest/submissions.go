package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/formsink/formsink/internal/domain"
	"github.com/formsink/formsink/internal/service/submissions"
)

// submissionsService defines the minimal interface needed by SubmissionsHandler.
type submissionsService interface {
	List(ctx context.Context, input submissions.ListInput) ([]domain.Submission, error)
	Get(ctx context.Context, id string) (domain.Submission, error)
}

// SubmissionsHandler serves the authenticated read endpoints.
type SubmissionsHandler struct {
	svc submissionsService
	log *slog.Logger
}

// NewSubmissionsHandler creates a SubmissionsHandler.
func NewSubmissionsHandler(svc submissionsService, logger *slog.Logger) *SubmissionsHandler {
	return &SubmissionsHandler{svc: svc, log: logger.With("handler", "submissions")}
}

type listResponse struct {
	Submissions []domain.Submission `json:"submissions"`
	Count       int                 `json:"count"`
}

// List handles GET /api/v1/forms/{formID}/submissions?limit=&offset=.
// Results are newest-first.
func (h *SubmissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	input := submissions.ListInput{FormID: chi.URLParam(r, "formID")}

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		input.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "offset must be an integer")
			return
		}
		input.Offset = n
	}

	subs, err := h.svc.List(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if subs == nil {
		subs = []domain.Submission{}
	}

	writeJSON(w, http.StatusOK, listResponse{Submissions: subs, Count: len(subs)})
}

// Get handles GET /api/v1/submissions/{id}.
func (h *SubmissionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

func (h *SubmissionsHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var stErr *domain.StorageError

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, "no storage backend configured")
	case errors.As(err, &stErr):
		h.log.ErrorContext(r.Context(), "storage error", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "storage error")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
