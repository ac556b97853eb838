package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/formsink/formsink/internal/adapter/postgres/ratelimit"
	"github.com/formsink/formsink/internal/adapter/postgres/testhelper"
)

// uniqueIdentifier keeps parallel tests out of each other's windows in the
// shared database.
func uniqueIdentifier(prefix string) string {
	return prefix + ":" + uuid.New().String()[:8]
}

func TestRepo_Check_SequenceUntilCap(t *testing.T) {
	t.Parallel()
	repo := ratelimit.New(testhelper.SetupTestDB(t))
	ctx := context.Background()
	id := uniqueIdentifier("seq")

	for i := 1; i <= 3; i++ {
		got, err := repo.Check(ctx, id, 3, 60)
		if err != nil {
			t.Fatalf("Check[%d]: unexpected error: %v", i, err)
		}
		if !got.Allowed {
			t.Fatalf("Check[%d]: denied, want allowed", i)
		}
	}

	got, err := repo.Check(ctx, id, 3, 60)
	if err != nil {
		t.Fatalf("Check[4]: unexpected error: %v", err)
	}
	if got.Allowed {
		t.Fatal("Check[4]: allowed, want denied")
	}
	if got.RetryAfterSeconds <= 0 || got.RetryAfterSeconds > 60 {
		t.Errorf("RetryAfterSeconds = %d, want in (0, 60]", got.RetryAfterSeconds)
	}
}

func TestRepo_Check_WindowExpiryStartsFresh(t *testing.T) {
	t.Parallel()
	repo := ratelimit.New(testhelper.SetupTestDB(t))
	ctx := context.Background()
	id := uniqueIdentifier("expiry")

	for i := 1; i <= 2; i++ {
		got, err := repo.Check(ctx, id, 2, 1)
		if err != nil {
			t.Fatalf("Check[%d]: %v", i, err)
		}
		if !got.Allowed {
			t.Fatalf("Check[%d]: denied, want allowed", i)
		}
	}

	got, err := repo.Check(ctx, id, 2, 1)
	if err != nil {
		t.Fatalf("Check[3]: %v", err)
	}
	if got.Allowed {
		t.Fatal("Check[3]: allowed, want denied at cap")
	}

	// Let the 1s window lapse; the next request opens a fresh window.
	time.Sleep(1100 * time.Millisecond)

	got, err = repo.Check(ctx, id, 2, 1)
	if err != nil {
		t.Fatalf("Check after expiry: %v", err)
	}
	if !got.Allowed {
		t.Fatal("Check after expiry: denied, want allowed in new window")
	}
}

func TestRepo_Check_IdentifierIsolation(t *testing.T) {
	t.Parallel()
	repo := ratelimit.New(testhelper.SetupTestDB(t))
	ctx := context.Background()

	first := uniqueIdentifier("iso-a")
	second := uniqueIdentifier("iso-b")

	// Exhaust the first identifier's window.
	for i := 0; i < 2; i++ {
		if _, err := repo.Check(ctx, first, 2, 60); err != nil {
			t.Fatalf("Check first[%d]: %v", i, err)
		}
	}
	got, err := repo.Check(ctx, first, 2, 60)
	if err != nil {
		t.Fatalf("Check first at cap: %v", err)
	}
	if got.Allowed {
		t.Fatal("first identifier should be at cap")
	}

	// The second identifier still has a fresh window.
	got, err = repo.Check(ctx, second, 2, 60)
	if err != nil {
		t.Fatalf("Check second: %v", err)
	}
	if !got.Allowed {
		t.Fatal("second identifier should be allowed")
	}
}
