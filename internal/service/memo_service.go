package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/memo-api/internal/domain"
	"github.com/phrazzld/memo-api/internal/store"
)

// MemoService provides memo-related operations.
//
// Update follows full-replacement semantics: the caller supplies the
// complete new text and tags are always recomputed from it.
type MemoService interface {
	// CreateMemo creates a new memo with tags extracted from text.
	// When groupID is set, the group must exist; otherwise
	// store.ErrGroupNotFound is returned before any memo state changes.
	CreateMemo(ctx context.Context, text string, groupID *uuid.UUID) (*domain.Memo, error)

	// GetMemo retrieves a memo by its ID.
	GetMemo(ctx context.Context, id uuid.UUID) (*domain.Memo, error)

	// UpdateMemo replaces a memo's text, recomputing tags and refreshing
	// the update timestamp.
	UpdateMemo(ctx context.Context, id uuid.UUID, text string) (*domain.Memo, error)

	// DeleteMemo removes a memo.
	DeleteMemo(ctx context.Context, id uuid.UUID) error

	// ListMemos retrieves all memos, newest first.
	ListMemos(ctx context.Context) ([]*domain.Memo, error)

	// ListMemosByTag retrieves the memos carrying the given tag, newest first.
	ListMemosByTag(ctx context.Context, tag string) ([]*domain.Memo, error)

	// ListMemosByDateRange retrieves the memos created between start and
	// the end of end's calendar day, inclusive, newest first.
	ListMemosByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Memo, error)

	// ListMemosByGroup retrieves the memos belonging to the given group
	// in creation order. Returns store.ErrGroupNotFound for a missing
	// group rather than an empty list.
	ListMemosByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Memo, error)

	// ListTags retrieves every distinct tag across all memos, sorted
	// lexicographically.
	ListTags(ctx context.Context) ([]string, error)
}

// memoService implements the MemoService interface.
type memoService struct {
	memoStore  store.MemoStore
	groupStore store.GroupStore
	logger     *slog.Logger
}

// NewMemoService creates a new MemoService backed by the given stores.
// If logger is nil, a default logger will be used.
func NewMemoService(
	memoStore store.MemoStore,
	groupStore store.GroupStore,
	log *slog.Logger,
) MemoService {
	if memoStore == nil {
		panic("memoStore cannot be nil")
	}
	if groupStore == nil {
		panic("groupStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &memoService{
		memoStore:  memoStore,
		groupStore: groupStore,
		logger:     log.With(slog.String("component", "memo_service")),
	}
}

// EndOfDay extends t to the last represented instant of its calendar day
// (23:59:59.999), so a same-day range covers the whole day.
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 999*int(time.Millisecond), t.Location())
}

func (s *memoService) CreateMemo(
	ctx context.Context,
	text string,
	groupID *uuid.UUID,
) (*domain.Memo, error) {
	// A grouped memo must reference an existing group before any memo
	// state is touched.
	if groupID != nil {
		if _, err := s.groupStore.GetByID(ctx, *groupID); err != nil {
			return nil, err
		}
	}

	memo, err := domain.NewMemo(text, groupID)
	if err != nil {
		return nil, err
	}

	if err := s.memoStore.Create(ctx, memo); err != nil {
		return nil, fmt.Errorf("failed to create memo: %w", err)
	}

	return memo, nil
}

func (s *memoService) GetMemo(ctx context.Context, id uuid.UUID) (*domain.Memo, error) {
	return s.memoStore.GetByID(ctx, id)
}

func (s *memoService) UpdateMemo(
	ctx context.Context,
	id uuid.UUID,
	text string,
) (*domain.Memo, error) {
	memo, err := s.memoStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := memo.UpdateText(text); err != nil {
		return nil, err
	}

	if err := s.memoStore.Update(ctx, memo); err != nil {
		return nil, fmt.Errorf("failed to update memo: %w", err)
	}

	return memo, nil
}

func (s *memoService) DeleteMemo(ctx context.Context, id uuid.UUID) error {
	return s.memoStore.Delete(ctx, id)
}

func (s *memoService) ListMemos(ctx context.Context) ([]*domain.Memo, error) {
	return s.memoStore.ListAll(ctx)
}

func (s *memoService) ListMemosByTag(ctx context.Context, tag string) ([]*domain.Memo, error) {
	return s.memoStore.ListByTag(ctx, tag)
}

func (s *memoService) ListMemosByDateRange(
	ctx context.Context,
	start, end time.Time,
) ([]*domain.Memo, error) {
	return s.memoStore.ListByDateRange(ctx, start, EndOfDay(end))
}

func (s *memoService) ListMemosByGroup(
	ctx context.Context,
	groupID uuid.UUID,
) ([]*domain.Memo, error) {
	if _, err := s.groupStore.GetByID(ctx, groupID); err != nil {
		return nil, err
	}

	return s.memoStore.ListByGroup(ctx, groupID)
}

func (s *memoService) ListTags(ctx context.Context) ([]string, error) {
	return s.memoStore.ListTags(ctx)
}
