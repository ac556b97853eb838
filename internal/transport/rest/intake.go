package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/formsink/formsink/internal/domain"
	"github.com/formsink/formsink/internal/service/intake"
)

// tokenField is the form field browsers post the anti-abuse challenge token in.
const tokenField = "cf-turnstile-response"

// intakeService defines the minimal interface needed by IntakeHandler.
type intakeService interface {
	Submit(ctx context.Context, input intake.SubmitInput) (domain.Submission, error)
}

// IntakeHandler serves the public submission endpoint.
type IntakeHandler struct {
	svc          intakeService
	maxBodyBytes int64
	log          *slog.Logger
}

// NewIntakeHandler creates an IntakeHandler.
func NewIntakeHandler(svc intakeService, maxBodyBytes int64, logger *slog.Logger) *IntakeHandler {
	return &IntakeHandler{
		svc:          svc,
		maxBodyBytes: maxBodyBytes,
		log:          logger.With("handler", "intake"),
	}
}

type submitRequest struct {
	Data  map[string]any `json:"data"`
	Token string         `json:"token"`
}

type submitResponse struct {
	ID string `json:"id"`
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type rateLimitedResponse struct {
	Error             string `json:"error"`
	RetryAfterSeconds int64  `json:"retryAfterSeconds"`
}

// Create handles POST /api/v1/forms/{formID}/submissions. It accepts a JSON
// body or a classic urlencoded form post, so a plain <form action=...> works
// without any script.
func (h *IntakeHandler) Create(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	data, token, err := parseSubmitBody(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.svc.Submit(r.Context(), intake.SubmitInput{
		FormID:    formID,
		Data:      data,
		Token:     token,
		ClientIP:  clientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{ID: sub.ID})
}

// parseSubmitBody decodes the submission payload. Urlencoded posts map every
// field into data, except the challenge token field which is extracted
// separately. JSON posts carry data and token explicitly.
func parseSubmitBody(r *http.Request) (map[string]any, string, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return nil, "", err
		}
		data := make(map[string]any, len(r.PostForm))
		for field, values := range r.PostForm {
			if field == tokenField {
				continue
			}
			data[field] = values[0]
		}
		return data, r.PostForm.Get(tokenField), nil
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, "", err
	}
	return req.Data, req.Token, nil
}

func (h *IntakeHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	var rlErr *domain.RateLimitError
	var stErr *domain.StorageError

	switch {
	case errors.As(err, &vErr):
		fields := make(map[string]string, len(vErr.Errors))
		for _, fe := range vErr.Errors {
			fields[fe.Field] = fe.Message
		}
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Error:  "validation failed",
			Fields: fields,
		})
	case errors.As(err, &rlErr):
		w.Header().Set("Retry-After", strconv.FormatInt(rlErr.RetryAfterSeconds, 10))
		writeJSON(w, http.StatusTooManyRequests, rateLimitedResponse{
			Error:             "rate limit exceeded",
			RetryAfterSeconds: rlErr.RetryAfterSeconds,
		})
	case errors.Is(err, domain.ErrVerificationFailed):
		// Provider error codes stay server-side.
		writeError(w, http.StatusForbidden, "verification failed")
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

// clientIP returns the request's source address without the port. The RealIP
// middleware has already substituted the forwarded address when the request
// came through a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
