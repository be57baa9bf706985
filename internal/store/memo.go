package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/memo-api/internal/domain"
)

// MemoStore defines the interface for memo data persistence.
type MemoStore interface {
	// Create saves a new memo to the store.
	// Returns ErrInvalidEntity if the memo references a nonexistent group.
	Create(ctx context.Context, memo *domain.Memo) error

	// GetByID retrieves a memo by its unique ID.
	// Returns ErrMemoNotFound if the memo does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Memo, error)

	// Update saves changes to an existing memo.
	// Returns ErrMemoNotFound if the memo does not exist.
	Update(ctx context.Context, memo *domain.Memo) error

	// Delete removes a memo.
	// Returns ErrMemoNotFound if the memo does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListAll retrieves all memos ordered by creation time, newest first.
	ListAll(ctx context.Context) ([]*domain.Memo, error)

	// ListByTag retrieves the memos whose tag set contains tag, ordered by
	// creation time, newest first. Returns an empty slice if none match.
	ListByTag(ctx context.Context, tag string) ([]*domain.Memo, error)

	// ListByDateRange retrieves the memos created in [start, end]
	// inclusive, ordered by creation time, newest first. Callers are
	// expected to extend end to the end of its calendar day.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Memo, error)

	// ListByGroup retrieves the memos belonging to the given group,
	// ordered by creation time, oldest first.
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Memo, error)

	// ListTags retrieves every distinct tag across all memos, sorted
	// lexicographically. The result always reflects current state.
	ListTags(ctx context.Context) ([]string, error)

	// WithTx returns a new MemoStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) MemoStore
}
