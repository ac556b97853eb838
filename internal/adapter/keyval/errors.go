package keyval

import (
	"context"
	"errors"
	"fmt"

	"github.com/formsink/formsink/internal/domain"
)

const backendName = "keyval"

// mapError converts backend failures into *domain.StorageError. redis.Nil
// is not a failure; callers handle it before mapping.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return domain.NewStorageError(backendName, op, err)
}
