package keyval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/formsink/formsink/internal/domain"
)

const (
	submissionKeyPrefix = "submission:"
	indexKeyPrefix      = "index:"

	// maxIndexEntries bounds the per-form index; the oldest ids fall off.
	maxIndexEntries = 1000
)

// Submissions persists form submissions in the key/value store. Each record
// lives under submission:{formId}:{id}; a per-form index:{formId} key holds
// the JSON id list, newest first, capped at maxIndexEntries.
type Submissions struct {
	client *redis.Client
}

// NewSubmissions creates a new key/value submission store.
func NewSubmissions(client *redis.Client) *Submissions {
	return &Submissions{client: client}
}

func submissionKey(formID, id string) string {
	return submissionKeyPrefix + formID + ":" + id
}

func indexKey(formID string) string {
	return indexKeyPrefix + formID
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Store assigns a fresh ID to the submission, writes the record, and
// prepends the id to the form's index. An empty metadata timestamp is
// filled in with the current time.
func (s *Submissions) Store(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	id, err := domain.NewID()
	if err != nil {
		return domain.Submission{}, fmt.Errorf("store submission: %w", err)
	}
	sub.ID = id

	if sub.Metadata.Timestamp == "" {
		sub.Metadata.Timestamp = domain.NowTimestamp()
	}

	record, err := json.Marshal(sub)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("store submission: marshal record: %w", err)
	}

	if err := s.client.Set(ctx, submissionKey(sub.FormID, sub.ID), record, 0).Err(); err != nil {
		return domain.Submission{}, mapError(err, "store submission")
	}

	if err := s.prependToIndex(ctx, sub.FormID, sub.ID); err != nil {
		return domain.Submission{}, err
	}

	return sub, nil
}

// prependToIndex reads the form's index, prepends the id, truncates to the
// cap, and writes it back. The read-modify-write is not atomic: of two
// concurrent stores one prepend can be lost. The record itself survives,
// only its index entry goes missing.
func (s *Submissions) prependToIndex(ctx context.Context, formID, id string) error {
	ids, err := s.readIndex(ctx, formID)
	if err != nil {
		return err
	}

	ids = append([]string{id}, ids...)
	if len(ids) > maxIndexEntries {
		ids = ids[:maxIndexEntries]
	}

	encoded, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("store submission: marshal index: %w", err)
	}
	if err := s.client.Set(ctx, indexKey(formID), encoded, 0).Err(); err != nil {
		return mapError(err, "store submission index")
	}

	return nil
}

// readIndex returns the form's id list, newest first. A missing index means
// the form has no submissions yet.
func (s *Submissions) readIndex(ctx context.Context, formID string) ([]string, error) {
	raw, err := s.client.Get(ctx, indexKey(formID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, "read submission index")
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("read submission index: unmarshal: %w", err)
	}

	return ids, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByForm slices the form's index at [offset, offset+limit) and fetches
// each referenced record in one multi-read. Index entries whose record is
// not readable yet are skipped.
func (s *Submissions) ListByForm(ctx context.Context, formID string, limit, offset int) ([]domain.Submission, error) {
	ids, err := s.readIndex(ctx, formID)
	if err != nil {
		return nil, err
	}

	if offset >= len(ids) {
		return []domain.Submission{}, nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	page := ids[offset:end]
	if len(page) == 0 {
		return []domain.Submission{}, nil
	}

	keys := make([]string, len(page))
	for i, id := range page {
		keys[i] = submissionKey(formID, id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, mapError(err, "list submissions")
	}

	subs := make([]domain.Submission, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var sub domain.Submission
		if err := json.Unmarshal([]byte(raw), &sub); err != nil {
			return nil, fmt.Errorf("list submissions: unmarshal record: %w", err)
		}
		subs = append(subs, sub)
	}

	return subs, nil
}

// GetByID returns a single submission by bare id. The key space is
// partitioned by form, so there is no direct key: this enumerates
// submission keys and matches on the id suffix, costing O(total
// submissions). Callers with frequent point lookups belong on the table
// backend.
func (s *Submissions) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	suffix := ":" + id
	op := fmt.Sprintf("get submission %s", id)

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, submissionKeyPrefix+"*"+suffix, 100).Result()
		if err != nil {
			return domain.Submission{}, mapError(err, op)
		}

		for _, key := range keys {
			if !strings.HasSuffix(key, suffix) {
				continue
			}

			raw, err := s.client.Get(ctx, key).Result()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return domain.Submission{}, mapError(err, op)
			}

			var sub domain.Submission
			if err := json.Unmarshal([]byte(raw), &sub); err != nil {
				return domain.Submission{}, fmt.Errorf("%s: unmarshal record: %w", op, err)
			}
			return sub, nil
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return domain.Submission{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
}
