// Package submission implements the submission store backed by PostgreSQL.
// Each submission is one row in the submissions table; the flexible payload
// and metadata travel as JSON text columns.
package submission

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/formsink/formsink/internal/adapter/postgres"
	"github.com/formsink/formsink/internal/domain"
)

const table = "submissions"

// builder produces queries with PostgreSQL placeholders ($1, $2, ...).
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides submission persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new submission repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Store assigns a fresh ID to the submission, persists it, and returns the
// stored copy. An empty metadata timestamp is filled in with the current time.
func (r *Repo) Store(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	id, err := domain.NewID()
	if err != nil {
		return domain.Submission{}, fmt.Errorf("store submission: %w", err)
	}
	sub.ID = id

	if sub.Metadata.Timestamp == "" {
		sub.Metadata.Timestamp = domain.NowTimestamp()
	}

	data, err := json.Marshal(sub.Data)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("store submission: marshal data: %w", err)
	}
	metadata, err := json.Marshal(sub.Metadata)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("store submission: marshal metadata: %w", err)
	}

	query, args, err := builder.
		Insert(table).
		Columns("id", "form_id", "data", "metadata", "created_at").
		Values(sub.ID, sub.FormID, string(data), string(metadata), sub.Metadata.Timestamp).
		ToSql()
	if err != nil {
		return domain.Submission{}, fmt.Errorf("store submission: build query: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return domain.Submission{}, postgres.MapError(err, "store submission")
	}

	return sub, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByForm returns submissions of one form ordered newest first.
// Returns an empty slice when the form has no submissions.
func (r *Repo) ListByForm(ctx context.Context, formID string, limit, offset int) ([]domain.Submission, error) {
	query, args, err := builder.
		Select("id", "form_id", "data", "metadata").
		From(table).
		Where(sq.Eq{"form_id": formID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("list submissions: build query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "list submissions")
	}
	defer rows.Close()

	subs := make([]domain.Submission, 0)
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("list submissions: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "list submissions")
	}

	return subs, nil
}

// GetByID returns a single submission by primary key.
// Returns domain.ErrNotFound if no such submission exists.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	query, args, err := builder.
		Select("id", "form_id", "data", "metadata").
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Submission{}, fmt.Errorf("get submission: build query: %w", err)
	}

	sub, err := scanSubmission(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Submission{}, postgres.MapError(err, fmt.Sprintf("get submission %s", id))
	}

	return sub, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSubmission reads one submissions row and unmarshals the JSON columns.
func scanSubmission(row rowScanner) (domain.Submission, error) {
	var (
		sub      domain.Submission
		data     string
		metadata string
	)

	if err := row.Scan(&sub.ID, &sub.FormID, &data, &metadata); err != nil {
		return domain.Submission{}, err
	}

	if err := json.Unmarshal([]byte(data), &sub.Data); err != nil {
		return domain.Submission{}, fmt.Errorf("unmarshal data: %w", err)
	}
	if err := json.Unmarshal([]byte(metadata), &sub.Metadata); err != nil {
		return domain.Submission{}, fmt.Errorf("unmarshal metadata: %w", err)
	}

	return sub, nil
}
