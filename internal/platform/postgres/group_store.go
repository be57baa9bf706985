package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/memo-api/internal/domain"
	"github.com/phrazzld/memo-api/internal/platform/logger"
	"github.com/phrazzld/memo-api/internal/store"
)

// PostgresGroupStore implements the store.GroupStore interface
// using a PostgreSQL database as the storage backend.
//
// Memo counts are computed at query time with a LEFT JOIN so reads always
// reflect live membership. Name uniqueness is enforced by the UNIQUE
// constraint on groups.name; violations surface as
// store.ErrGroupNameExists via MapError.
type PostgresGroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGroupStore creates a new PostgreSQL implementation of the
// GroupStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresGroupStore(db store.DBTX, log *slog.Logger) *PostgresGroupStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresGroupStore{
		db:     db,
		logger: log.With(slog.String("component", "group_store")),
	}
}

// Ensure PostgresGroupStore implements store.GroupStore interface
var _ store.GroupStore = (*PostgresGroupStore)(nil)

// WithTx implements store.GroupStore.WithTx
func (s *PostgresGroupStore) WithTx(tx *sql.Tx) store.GroupStore {
	return &PostgresGroupStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.GroupStore.Create
// Returns store.ErrGroupNameExists if a group with the same name exists.
func (s *PostgresGroupStore) Create(ctx context.Context, group *domain.Group) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		log.Warn("group validation failed during create",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	query := `
		INSERT INTO groups (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		group.ID,
		group.Name,
		group.Description,
		group.CreatedAt,
		group.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate group name during create",
				slog.String("group_id", group.ID.String()),
				slog.String("name", group.Name))
			return MapError(err)
		}

		log.Error("failed to create group",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	log.Info("group created successfully",
		slog.String("group_id", group.ID.String()),
		slog.String("name", group.Name))
	return nil
}

// groupQuery selects groups decorated with their live memo count.
const groupQuery = `
	SELECT g.id, g.name, g.description, g.created_at, g.updated_at,
	       COUNT(m.id) AS memo_count
	FROM groups g
	LEFT JOIN memos m ON m.group_id = g.id
`

// GetByID implements store.GroupStore.GetByID
// Returns store.ErrGroupNotFound if the group does not exist.
func (s *PostgresGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := groupQuery + `
	WHERE g.id = $1
	GROUP BY g.id, g.name, g.description, g.created_at, g.updated_at
	`

	var group domain.Group
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.CreatedAt,
		&group.UpdatedAt,
		&group.MemoCount,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("group not found", slog.String("group_id", id.String()))
			return nil, store.ErrGroupNotFound
		}
		log.Error("failed to get group by ID",
			slog.String("error", err.Error()),
			slog.String("group_id", id.String()))
		return nil, err
	}

	return &group, nil
}

// ListAll implements store.GroupStore.ListAll
// Zero-memo groups are included with a count of zero.
func (s *PostgresGroupStore) ListAll(ctx context.Context) ([]*domain.Group, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := groupQuery + `
	GROUP BY g.id, g.name, g.description, g.created_at, g.updated_at
	ORDER BY g.updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query groups",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	groups := []*domain.Group{}
	for rows.Next() {
		var group domain.Group
		err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.CreatedAt,
			&group.UpdatedAt,
			&group.MemoCount,
		)
		if err != nil {
			log.Error("failed to scan group row",
				slog.String("error", err.Error()))
			return nil, err
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning group rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return groups, nil
}

// Update implements store.GroupStore.Update
// Returns store.ErrGroupNotFound if the group does not exist and
// store.ErrGroupNameExists on a name collision.
func (s *PostgresGroupStore) Update(ctx context.Context, group *domain.Group) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		log.Warn("group validation failed during update",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	query := `
		UPDATE groups
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		group.Name,
		group.Description,
		group.UpdatedAt,
		group.ID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate group name during update",
				slog.String("group_id", group.ID.String()),
				slog.String("name", group.Name))
			return MapError(err)
		}

		log.Error("failed to update group",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrGroupNotFound); err != nil {
		log.Debug("group not found for update",
			slog.String("group_id", group.ID.String()))
		return err
	}

	log.Info("group updated successfully",
		slog.String("group_id", group.ID.String()),
		slog.String("name", group.Name))
	return nil
}

// Delete implements store.GroupStore.Delete
// The ON DELETE CASCADE foreign key removes member memos in the same
// atomic statement, so a crash cannot leave orphaned memos.
// Returns store.ErrGroupNotFound if the group does not exist.
func (s *PostgresGroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM groups
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete group",
			slog.String("error", err.Error()),
			slog.String("group_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrGroupNotFound); err != nil {
		log.Debug("group not found for delete",
			slog.String("group_id", id.String()))
		return err
	}

	log.Info("group deleted successfully", slog.String("group_id", id.String()))
	return nil
}

// Touch implements store.GroupStore.Touch
// Returns store.ErrGroupNotFound if the group does not exist.
func (s *PostgresGroupStore) Touch(ctx context.Context, id uuid.UUID, updatedAt time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE groups
		SET updated_at = $1
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, updatedAt, id)
	if err != nil {
		log.Error("failed to touch group",
			slog.String("error", err.Error()),
			slog.String("group_id", id.String()))
		return err
	}

	return CheckRowsAffected(result, store.ErrGroupNotFound)
}
