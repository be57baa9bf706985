package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/memo-api/internal/domain"
	"github.com/phrazzld/memo-api/internal/platform/logger"
	"github.com/phrazzld/memo-api/internal/store"
)

// PostgresMemoStore implements the store.MemoStore interface
// using a PostgreSQL database as the storage backend.
//
// Tags are persisted as a JSONB array so that membership tests and
// distinct listing stay inside SQL.
type PostgresMemoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMemoStore creates a new PostgreSQL implementation of the
// MemoStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresMemoStore(db store.DBTX, log *slog.Logger) *PostgresMemoStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresMemoStore{
		db:     db,
		logger: log.With(slog.String("component", "memo_store")),
	}
}

// Ensure PostgresMemoStore implements store.MemoStore interface
var _ store.MemoStore = (*PostgresMemoStore)(nil)

// WithTx implements store.MemoStore.WithTx
func (s *PostgresMemoStore) WithTx(tx *sql.Tx) store.MemoStore {
	return &PostgresMemoStore{
		db:     tx,
		logger: s.logger,
	}
}

// memoColumns is the column list shared by all memo reads.
const memoColumns = "id, text, tags, group_id, created_at, updated_at"

// Create implements store.MemoStore.Create
// Returns store.ErrInvalidEntity if the memo references a group that
// doesn't exist (foreign key violation).
func (s *PostgresMemoStore) Create(ctx context.Context, memo *domain.Memo) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := memo.Validate(); err != nil {
		log.Warn("memo validation failed during create",
			slog.String("error", err.Error()),
			slog.String("memo_id", memo.ID.String()))
		return err
	}

	tags, err := json.Marshal(memo.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal memo tags: %w", err)
	}

	query := `
		INSERT INTO memos (id, text, tags, group_id, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4, $5, $6)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		memo.ID,
		memo.Text,
		string(tags),
		memo.GroupID,
		memo.CreatedAt,
		memo.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during memo creation",
				slog.String("error", err.Error()),
				slog.String("memo_id", memo.ID.String()))
			return MapError(err)
		}

		log.Error("failed to create memo",
			slog.String("error", err.Error()),
			slog.String("memo_id", memo.ID.String()))
		return err
	}

	log.Info("memo created successfully",
		slog.String("memo_id", memo.ID.String()),
		slog.Int("tag_count", len(memo.Tags)))
	return nil
}

// GetByID implements store.MemoStore.GetByID
// Returns store.ErrMemoNotFound if the memo does not exist.
func (s *PostgresMemoStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Memo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + memoColumns + `
		FROM memos
		WHERE id = $1
	`

	memo, err := scanMemo(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("memo not found", slog.String("memo_id", id.String()))
			return nil, store.ErrMemoNotFound
		}
		log.Error("failed to get memo by ID",
			slog.String("error", err.Error()),
			slog.String("memo_id", id.String()))
		return nil, err
	}

	return memo, nil
}

// Update implements store.MemoStore.Update
// It persists the memo's current text, tags and updated_at timestamp.
// Returns store.ErrMemoNotFound if the memo does not exist.
func (s *PostgresMemoStore) Update(ctx context.Context, memo *domain.Memo) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := memo.Validate(); err != nil {
		log.Warn("memo validation failed during update",
			slog.String("error", err.Error()),
			slog.String("memo_id", memo.ID.String()))
		return err
	}

	tags, err := json.Marshal(memo.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal memo tags: %w", err)
	}

	query := `
		UPDATE memos
		SET text = $1, tags = $2::jsonb, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		memo.Text,
		string(tags),
		memo.UpdatedAt,
		memo.ID,
	)

	if err != nil {
		log.Error("failed to update memo",
			slog.String("error", err.Error()),
			slog.String("memo_id", memo.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrMemoNotFound); err != nil {
		log.Debug("memo not found for update",
			slog.String("memo_id", memo.ID.String()))
		return err
	}

	log.Info("memo updated successfully",
		slog.String("memo_id", memo.ID.String()),
		slog.Int("tag_count", len(memo.Tags)))
	return nil
}

// Delete implements store.MemoStore.Delete
// Returns store.ErrMemoNotFound if the memo does not exist.
func (s *PostgresMemoStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM memos
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete memo",
			slog.String("error", err.Error()),
			slog.String("memo_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrMemoNotFound); err != nil {
		log.Debug("memo not found for delete",
			slog.String("memo_id", id.String()))
		return err
	}

	log.Info("memo deleted successfully", slog.String("memo_id", id.String()))
	return nil
}

// ListAll implements store.MemoStore.ListAll
func (s *PostgresMemoStore) ListAll(ctx context.Context) ([]*domain.Memo, error) {
	query := `
		SELECT ` + memoColumns + `
		FROM memos
		ORDER BY created_at DESC
	`
	return s.queryMemos(ctx, query)
}

// ListByTag implements store.MemoStore.ListByTag
// Tag membership is tested with the JSONB containment operator, backed by
// the GIN index on the tags column.
func (s *PostgresMemoStore) ListByTag(ctx context.Context, tag string) ([]*domain.Memo, error) {
	query := `
		SELECT ` + memoColumns + `
		FROM memos
		WHERE tags @> jsonb_build_array($1::text)
		ORDER BY created_at DESC
	`
	return s.queryMemos(ctx, query, tag)
}

// ListByDateRange implements store.MemoStore.ListByDateRange
func (s *PostgresMemoStore) ListByDateRange(
	ctx context.Context,
	start, end time.Time,
) ([]*domain.Memo, error) {
	query := `
		SELECT ` + memoColumns + `
		FROM memos
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC
	`
	return s.queryMemos(ctx, query, start, end)
}

// ListByGroup implements store.MemoStore.ListByGroup
func (s *PostgresMemoStore) ListByGroup(
	ctx context.Context,
	groupID uuid.UUID,
) ([]*domain.Memo, error) {
	query := `
		SELECT ` + memoColumns + `
		FROM memos
		WHERE group_id = $1
		ORDER BY created_at ASC
	`
	return s.queryMemos(ctx, query, groupID)
}

// ListTags implements store.MemoStore.ListTags
// It unnests every memo's tag array and returns the distinct values in
// lexicographic order.
func (s *PostgresMemoStore) ListTags(ctx context.Context) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT DISTINCT tag
		FROM memos
		CROSS JOIN LATERAL jsonb_array_elements_text(tags) AS t(tag)
		ORDER BY tag
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query distinct tags",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			log.Error("failed to scan tag row",
				slog.String("error", err.Error()))
			return nil, err
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning tag rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return tags, nil
}

// queryMemos runs a memo SELECT and scans the result set.
func (s *PostgresMemoStore) queryMemos(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Memo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query memos",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	// Return an empty slice rather than nil when nothing matches.
	memos := []*domain.Memo{}
	for rows.Next() {
		memo, err := scanMemo(rows)
		if err != nil {
			log.Error("failed to scan memo row",
				slog.String("error", err.Error()))
			return nil, err
		}
		memos = append(memos, memo)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning memo rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return memos, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMemo scans a single memo row in memoColumns order.
func scanMemo(row rowScanner) (*domain.Memo, error) {
	var memo domain.Memo
	var tagsJSON []byte
	var groupID uuid.NullUUID

	err := row.Scan(
		&memo.ID,
		&memo.Text,
		&tagsJSON,
		&groupID,
		&memo.CreatedAt,
		&memo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &memo.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal memo tags: %w", err)
	}
	if memo.Tags == nil {
		memo.Tags = []string{}
	}
	if groupID.Valid {
		memo.GroupID = &groupID.UUID
	}

	return &memo, nil
}

// closeRows closes rows and logs a close failure.
func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
