package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/memo-api/internal/domain"
)

// GroupStore defines the interface for group data persistence.
//
// Group reads always carry the live memo count, computed at query time.
// Name uniqueness is enforced by the storage backend's unique constraint;
// violations surface as ErrGroupNameExists.
type GroupStore interface {
	// Create saves a new group to the store.
	// Returns ErrGroupNameExists if a group with the same name exists.
	Create(ctx context.Context, group *domain.Group) error

	// GetByID retrieves a group, with its live memo count, by ID.
	// Returns ErrGroupNotFound if the group does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)

	// ListAll retrieves all groups with live memo counts, ordered by
	// update time, most recently touched first. Groups without memos are
	// included with a count of zero.
	ListAll(ctx context.Context) ([]*domain.Group, error)

	// Update saves changes to an existing group.
	// Returns ErrGroupNotFound if the group does not exist and
	// ErrGroupNameExists if the new name collides with another group.
	Update(ctx context.Context, group *domain.Group) error

	// Delete removes a group. Member memos are removed in the same atomic
	// statement through the ON DELETE CASCADE foreign key.
	// Returns ErrGroupNotFound if the group does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Touch refreshes the group's updated_at timestamp. Used by
	// group-scoped memo operations so that "most recently touched"
	// ordering accounts for member changes.
	// Returns ErrGroupNotFound if the group does not exist.
	Touch(ctx context.Context, id uuid.UUID, updatedAt time.Time) error

	// WithTx returns a new GroupStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) GroupStore
}
