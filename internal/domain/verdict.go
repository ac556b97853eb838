package domain

// Verdict is the outcome of an anti-abuse verification check.
type Verdict struct {
	// Accepted reports whether the provider accepted the challenge token.
	Accepted bool

	// Score is the provider's spam likelihood when it reports one,
	// 0 (clean) to 1 (certain spam).
	Score *float64

	// Codes carry the provider's failure codes on rejection.
	Codes []string
}
