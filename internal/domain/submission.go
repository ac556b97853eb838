package domain

import "time"

// TimestampLayout is the wire and storage format for submission timestamps.
// Fixed-width UTC with millisecond precision, so lexicographic order of the
// rendered strings matches chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Submission is a single accepted form post. Immutable after creation:
// there is no update operation, only create and read.
type Submission struct {
	ID       string         `json:"id"`
	FormID   string         `json:"formId"`
	Data     map[string]any `json:"data"`
	Metadata Metadata       `json:"metadata"`
}

// Metadata captures the request context recorded alongside a submission.
// SpamScore is set only when an anti-abuse verifier reported a confidence score.
type Metadata struct {
	IP        string   `json:"ip"`
	UserAgent string   `json:"userAgent"`
	Timestamp string   `json:"timestamp"`
	SpamScore *float64 `json:"spamScore,omitempty"`
}

// NowTimestamp returns the current UTC time in TimestampLayout.
func NowTimestamp() string {
	return time.Now().UTC().Format(TimestampLayout)
}
