package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNowTimestamp_RoundTrips(t *testing.T) {
	t.Parallel()

	ts := NowTimestamp()

	parsed, err := time.Parse(TimestampLayout, ts)
	if err != nil {
		t.Fatalf("parse %q: %v", ts, err)
	}
	if parsed.Location() != time.UTC {
		t.Errorf("parsed location: got %v, want UTC", parsed.Location())
	}
}

// The layout is fixed-width, so comparing rendered timestamps as strings
// must agree with comparing the instants they represent.
func TestTimestampLayout_LexicographicOrder(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 9, 23, 59, 59, 900*int(time.Millisecond), time.UTC)
	earlier := base.Format(TimestampLayout)
	later := base.Add(200 * time.Millisecond).Format(TimestampLayout)

	if !(earlier < later) {
		t.Errorf("expected %q < %q", earlier, later)
	}
}

func TestSubmission_JSONShape(t *testing.T) {
	t.Parallel()

	score := 0.91
	sub := Submission{
		ID:     "abc123",
		FormID: "contact",
		Data:   map[string]any{"name": "Ada"},
		Metadata: Metadata{
			IP:        "203.0.113.7",
			UserAgent: "curl/8.0",
			Timestamp: "2024-03-09T23:59:59.900Z",
			SpamScore: &score,
		},
	}

	raw, err := json.Marshal(sub)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"id", "formId", "data", "metadata"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	meta, ok := decoded["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("metadata is not an object: %T", decoded["metadata"])
	}
	for _, key := range []string{"ip", "userAgent", "timestamp", "spamScore"} {
		if _, ok := meta[key]; !ok {
			t.Errorf("missing metadata key %q", key)
		}
	}
}

func TestMetadata_SpamScoreOmittedWhenNil(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Metadata{
		IP:        "203.0.113.7",
		UserAgent: "curl/8.0",
		Timestamp: NowTimestamp(),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, present := decoded["spamScore"]; present {
		t.Error("spamScore should be omitted when unset")
	}
}
