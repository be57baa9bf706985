package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/memo-api/internal/domain"
	"github.com/phrazzld/memo-api/internal/store"
)

// GroupService provides group-related operations, including the
// group-scoped memo sub-operations.
//
// Update follows partial-patch semantics: only the supplied fields
// change, and at least one field must be supplied.
//
// Every group-scoped memo sub-operation verifies the group exists before
// touching memo state, runs inside a single transaction, and refreshes
// the group's updated_at so "most recently touched first" ordering
// accounts for member changes.
type GroupService interface {
	// CreateGroup creates a new group with an empty memo set.
	// Returns store.ErrGroupNameExists if the name is taken; the
	// existing group is left unmodified.
	CreateGroup(ctx context.Context, name, description string) (*domain.Group, error)

	// GetGroup retrieves a group, with its live memo count, by ID.
	GetGroup(ctx context.Context, id uuid.UUID) (*domain.Group, error)

	// ListGroups retrieves all groups with live memo counts, most
	// recently touched first.
	ListGroups(ctx context.Context) ([]*domain.Group, error)

	// UpdateGroup applies a partial patch of name and/or description.
	UpdateGroup(ctx context.Context, id uuid.UUID, name, description *string) (*domain.Group, error)

	// DeleteGroup removes a group and all of its member memos atomically.
	DeleteGroup(ctx context.Context, id uuid.UUID) error

	// AddMemoToGroup creates a memo inside the given group.
	AddMemoToGroup(ctx context.Context, groupID uuid.UUID, text string) (*domain.Memo, error)

	// ListGroupMemos retrieves the group's memos in creation order.
	// Returns store.ErrGroupNotFound for a missing group rather than an
	// empty list.
	ListGroupMemos(ctx context.Context, groupID uuid.UUID) ([]*domain.Memo, error)

	// UpdateGroupMemo replaces the text of a memo belonging to the group.
	UpdateGroupMemo(
		ctx context.Context,
		groupID, memoID uuid.UUID,
		text string,
	) (*domain.Memo, error)

	// RemoveGroupMemo deletes a memo belonging to the group.
	RemoveGroupMemo(ctx context.Context, groupID, memoID uuid.UUID) error
}

// groupService implements the GroupService interface.
type groupService struct {
	groupStore store.GroupStore
	memoStore  store.MemoStore
	runTx      func(ctx context.Context, fn store.TxFn) error
	logger     *slog.Logger
}

// NewGroupService creates a new GroupService backed by the given stores.
// The database handle is used to run group-scoped memo sub-operations in
// a single transaction. If logger is nil, a default logger will be used.
func NewGroupService(
	db *sql.DB,
	groupStore store.GroupStore,
	memoStore store.MemoStore,
	log *slog.Logger,
) GroupService {
	if db == nil {
		panic("db cannot be nil")
	}
	if groupStore == nil {
		panic("groupStore cannot be nil")
	}
	if memoStore == nil {
		panic("memoStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &groupService{
		groupStore: groupStore,
		memoStore:  memoStore,
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
		logger: log.With(slog.String("component", "group_service")),
	}
}

func (s *groupService) CreateGroup(
	ctx context.Context,
	name, description string,
) (*domain.Group, error) {
	group, err := domain.NewGroup(name, description)
	if err != nil {
		return nil, err
	}

	if err := s.groupStore.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *groupService) GetGroup(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	return s.groupStore.GetByID(ctx, id)
}

func (s *groupService) ListGroups(ctx context.Context) ([]*domain.Group, error) {
	return s.groupStore.ListAll(ctx)
}

func (s *groupService) UpdateGroup(
	ctx context.Context,
	id uuid.UUID,
	name, description *string,
) (*domain.Group, error) {
	group, err := s.groupStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := group.ApplyPatch(name, description); err != nil {
		return nil, err
	}

	if err := s.groupStore.Update(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *groupService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	// A single DELETE; the foreign key cascade removes member memos in
	// the same atomic statement.
	return s.groupStore.Delete(ctx, id)
}

func (s *groupService) AddMemoToGroup(
	ctx context.Context,
	groupID uuid.UUID,
	text string,
) (*domain.Memo, error) {
	var memo *domain.Memo

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		groups := s.groupStore.WithTx(tx)
		memos := s.memoStore.WithTx(tx)

		if _, err := groups.GetByID(ctx, groupID); err != nil {
			return err
		}

		m, err := domain.NewMemo(text, &groupID)
		if err != nil {
			return err
		}

		if err := memos.Create(ctx, m); err != nil {
			return fmt.Errorf("failed to create group memo: %w", err)
		}

		if err := groups.Touch(ctx, groupID, m.UpdatedAt); err != nil {
			return err
		}

		memo = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	return memo, nil
}

func (s *groupService) ListGroupMemos(
	ctx context.Context,
	groupID uuid.UUID,
) ([]*domain.Memo, error) {
	if _, err := s.groupStore.GetByID(ctx, groupID); err != nil {
		return nil, err
	}

	return s.memoStore.ListByGroup(ctx, groupID)
}

func (s *groupService) UpdateGroupMemo(
	ctx context.Context,
	groupID, memoID uuid.UUID,
	text string,
) (*domain.Memo, error) {
	var memo *domain.Memo

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		groups := s.groupStore.WithTx(tx)
		memos := s.memoStore.WithTx(tx)

		if _, err := groups.GetByID(ctx, groupID); err != nil {
			return err
		}

		m, err := s.getGroupMember(ctx, memos, groupID, memoID)
		if err != nil {
			return err
		}

		if err := m.UpdateText(text); err != nil {
			return err
		}

		if err := memos.Update(ctx, m); err != nil {
			return fmt.Errorf("failed to update group memo: %w", err)
		}

		if err := groups.Touch(ctx, groupID, m.UpdatedAt); err != nil {
			return err
		}

		memo = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	return memo, nil
}

func (s *groupService) RemoveGroupMemo(ctx context.Context, groupID, memoID uuid.UUID) error {
	return s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		groups := s.groupStore.WithTx(tx)
		memos := s.memoStore.WithTx(tx)

		if _, err := groups.GetByID(ctx, groupID); err != nil {
			return err
		}

		m, err := s.getGroupMember(ctx, memos, groupID, memoID)
		if err != nil {
			return err
		}

		if err := memos.Delete(ctx, m.ID); err != nil {
			return fmt.Errorf("failed to delete group memo: %w", err)
		}

		return groups.Touch(ctx, groupID, time.Now().UTC())
	})
}

// getGroupMember fetches a memo and verifies it belongs to the given
// group. A memo outside the group is reported as not found rather than
// revealed.
func (s *groupService) getGroupMember(
	ctx context.Context,
	memos store.MemoStore,
	groupID, memoID uuid.UUID,
) (*domain.Memo, error) {
	memo, err := memos.GetByID(ctx, memoID)
	if err != nil {
		return nil, err
	}

	if memo.GroupID == nil || *memo.GroupID != groupID {
		return nil, store.ErrMemoNotFound
	}

	return memo, nil
}
