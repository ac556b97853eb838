package domain

// RateDecision is the outcome of a fixed-window rate-limit check.
// RetryAfterSeconds is set only when the request was denied: it is the
// number of whole seconds until the current window rolls over, rounded up.
type RateDecision struct {
	Allowed           bool
	RetryAfterSeconds int64
}
