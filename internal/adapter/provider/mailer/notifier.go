// Package mailer sends submission notification emails through a
// MailChannels-compatible transactional send API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/formsink/formsink/internal/config"
	"github.com/formsink/formsink/internal/domain"
)

// Notifier delivers one email per stored submission.
type Notifier struct {
	endpoint   string
	apiKey     string
	from       string
	to         string
	httpClient *http.Client
	log        *slog.Logger
}

// NewNotifier creates a mail notifier configured from NotifyConfig.
func NewNotifier(cfg config.NotifyConfig, logger *slog.Logger) *Notifier {
	return &Notifier{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		from:       cfg.From,
		to:         cfg.To,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "mailer"),
	}
}

// Send API request shapes.
type address struct {
	Email string `json:"email"`
}

type personalization struct {
	To []address `json:"to"`
}

type bodyPart struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []bodyPart        `json:"content"`
}

// Notify emails the configured recipient about a stored submission.
func (n *Notifier) Notify(ctx context.Context, sub domain.Submission) error {
	payload := sendRequest{
		Personalizations: []personalization{{To: []address{{Email: n.to}}}},
		From:             address{Email: n.from},
		Subject:          fmt.Sprintf("New submission to %s", sub.FormID),
		Content:          []bodyPart{{Type: "text/plain", Value: renderBody(sub)}},
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notify: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("notify: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("X-Api-Key", n.apiKey)
	}

	// Reusable body so the retry can replay the POST.
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(encoded)), nil
	}

	resp, err := n.doWithRetry(ctx, req)
	if err != nil {
		n.log.ErrorContext(ctx, "mail send failed", slog.String("error", err.Error()))
		return fmt.Errorf("notify: mail api unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.log.ErrorContext(ctx, "mail send failed", slog.Int("status", resp.StatusCode))
		return fmt.Errorf("notify: mail api status %d", resp.StatusCode)
	}

	n.log.DebugContext(ctx, "mail sent",
		slog.String("submission_id", sub.ID),
		slog.String("form_id", sub.FormID))

	return nil
}

// renderBody renders the submission as plain text, fields in name order so
// identical submissions produce identical emails.
func renderBody(sub domain.Submission) string {
	keys := make([]string, 0, len(sub.Data))
	for k := range sub.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, sub.Data[k])
	}
	fmt.Fprintf(&b, "\n--\nsubmission %s\nreceived %s from %s\n", sub.ID, sub.Metadata.Timestamp, sub.Metadata.IP)

	return b.String()
}

// doWithRetry executes an HTTP request with retry logic.
// Retries once on 5xx errors or network errors with 500ms backoff.
// Note: the request body must be reusable (bytes.Reader + GetBody).
func (n *Notifier) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := n.httpClient.Do(req)
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

		resp, err = n.httpClient.Do(req)
	}

	return resp, err
}
