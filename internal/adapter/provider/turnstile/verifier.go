// Package turnstile verifies submission challenge tokens against the
// Cloudflare Turnstile siteverify API.
package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/formsink/formsink/internal/domain"
)

// Made a variable for testing purposes
var siteverifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// Verifier checks challenge tokens with the siteverify endpoint.
type Verifier struct {
	secret     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewVerifier creates a Turnstile verifier.
// Parameters come from config.VerifyConfig: TurnstileSecret, Timeout.
func NewVerifier(secret string, timeout time.Duration, logger *slog.Logger) *Verifier {
	return &Verifier{
		secret:     secret,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "turnstile"),
	}
}

// siteverifyResponse represents the siteverify API response. Score is only
// present on plans that report one.
type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks a challenge token and returns the provider's verdict.
// A rejected token is a valid verdict, not an error; errors mean the
// provider could not be consulted.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) (domain.Verdict, error) {
	data := url.Values{}
	data.Set("secret", v.secret)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}
	encodedData := data.Encode()

	bodyReader := strings.NewReader(encodedData)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, siteverifyURL, bodyReader)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("create siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Reusable body so the retry can replay the POST.
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(encodedData)), nil
	}

	resp, err := v.doWithRetry(ctx, req)
	if err != nil {
		v.log.ErrorContext(ctx, "turnstile siteverify failed", slog.String("error", err.Error()))
		return domain.Verdict{}, fmt.Errorf("verify: turnstile unavailable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		v.log.ErrorContext(ctx, "turnstile siteverify failed", slog.String("error", "failed to read response"))
		return domain.Verdict{}, fmt.Errorf("verify: failed to read siteverify response")
	}

	if resp.StatusCode != http.StatusOK {
		v.log.ErrorContext(ctx, "turnstile siteverify failed", slog.Int("status", resp.StatusCode))
		return domain.Verdict{}, fmt.Errorf("verify: turnstile unavailable")
	}

	var sv siteverifyResponse
	if err := json.Unmarshal(body, &sv); err != nil {
		v.log.ErrorContext(ctx, "turnstile siteverify failed", slog.String("error", "invalid json"))
		return domain.Verdict{}, fmt.Errorf("verify: invalid siteverify response")
	}

	verdict := domain.Verdict{
		Accepted: sv.Success,
		Score:    sv.Score,
		Codes:    sv.ErrorCodes,
	}

	if !verdict.Accepted {
		v.log.DebugContext(ctx, "turnstile token rejected", slog.Any("codes", verdict.Codes))
	}

	return verdict, nil
}

// doWithRetry executes an HTTP request with retry logic.
// Retries once on 5xx errors or network errors with 500ms backoff.
// Note: the request body must be reusable (strings.Reader + GetBody).
func (v *Verifier) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil || (resp != nil && resp.StatusCode >= 500) {
		if resp != nil {
			resp.Body.Close()
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		select {
		case <-time.After(500 * time.Millisecond):
			// Continue to retry
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		// The first attempt consumed the body; rewind it before resending.
		body, gerr := req.GetBody()
		if gerr != nil {
			return nil, fmt.Errorf("rewind request body: %w", gerr)
		}
		req.Body = body

		resp, err = v.httpClient.Do(req)
	}

	return resp, err
}
