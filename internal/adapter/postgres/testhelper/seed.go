package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/formsink/formsink/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueFormID returns a form identifier that no other test run shares, so
// tests against the shared database never see each other's rows.
func UniqueFormID(t *testing.T, prefix string) string {
	t.Helper()
	return prefix + "-" + uniqueSuffix()
}

// SeedSubmission inserts a submission row directly, bypassing the repository,
// and returns the stored domain.Submission. createdAt controls the sort
// position; pass time.Time{} for "now".
func SeedSubmission(t *testing.T, pool *pgxpool.Pool, formID string, createdAt time.Time) domain.Submission {
	t.Helper()
	ctx := context.Background()

	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	id, err := domain.NewID()
	if err != nil {
		t.Fatalf("testhelper: SeedSubmission generate id: %v", err)
	}

	suffix := uniqueSuffix()
	sub := domain.Submission{
		ID:     id,
		FormID: formID,
		Data: map[string]any{
			"name":    "Seed " + suffix,
			"message": "seeded submission " + suffix,
		},
		Metadata: domain.Metadata{
			IP:        "203.0.113.7",
			UserAgent: "testhelper/1.0",
			Timestamp: createdAt.UTC().Format(domain.TimestampLayout),
		},
	}

	data, err := json.Marshal(sub.Data)
	if err != nil {
		t.Fatalf("testhelper: SeedSubmission marshal data: %v", err)
	}
	metadata, err := json.Marshal(sub.Metadata)
	if err != nil {
		t.Fatalf("testhelper: SeedSubmission marshal metadata: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO submissions (id, form_id, data, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		sub.ID, sub.FormID, string(data), string(metadata), sub.Metadata.Timestamp,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSubmission insert submission: %v", err)
	}

	return sub
}
