package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/memo-api/internal/domain"
	"github.com/phrazzld/memo-api/internal/store"
)

// mockMemoStore is a mock implementation of store.MemoStore using
// function fields so each test supplies only the behavior it needs.
type mockMemoStore struct {
	createFn          func(ctx context.Context, memo *domain.Memo) error
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.Memo, error)
	updateFn          func(ctx context.Context, memo *domain.Memo) error
	deleteFn          func(ctx context.Context, id uuid.UUID) error
	listAllFn         func(ctx context.Context) ([]*domain.Memo, error)
	listByTagFn       func(ctx context.Context, tag string) ([]*domain.Memo, error)
	listByDateRangeFn func(ctx context.Context, start, end time.Time) ([]*domain.Memo, error)
	listByGroupFn     func(ctx context.Context, groupID uuid.UUID) ([]*domain.Memo, error)
	listTagsFn        func(ctx context.Context) ([]string, error)
}

var _ store.MemoStore = (*mockMemoStore)(nil)

func (m *mockMemoStore) Create(ctx context.Context, memo *domain.Memo) error {
	return m.createFn(ctx, memo)
}

func (m *mockMemoStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Memo, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockMemoStore) Update(ctx context.Context, memo *domain.Memo) error {
	return m.updateFn(ctx, memo)
}

func (m *mockMemoStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockMemoStore) ListAll(ctx context.Context) ([]*domain.Memo, error) {
	return m.listAllFn(ctx)
}

func (m *mockMemoStore) ListByTag(ctx context.Context, tag string) ([]*domain.Memo, error) {
	return m.listByTagFn(ctx, tag)
}

func (m *mockMemoStore) ListByDateRange(
	ctx context.Context,
	start, end time.Time,
) ([]*domain.Memo, error) {
	return m.listByDateRangeFn(ctx, start, end)
}

func (m *mockMemoStore) ListByGroup(
	ctx context.Context,
	groupID uuid.UUID,
) ([]*domain.Memo, error) {
	return m.listByGroupFn(ctx, groupID)
}

func (m *mockMemoStore) ListTags(ctx context.Context) ([]string, error) {
	return m.listTagsFn(ctx)
}

func (m *mockMemoStore) WithTx(tx *sql.Tx) store.MemoStore {
	return m
}

// mockGroupStore is a mock implementation of store.GroupStore.
type mockGroupStore struct {
	createFn  func(ctx context.Context, group *domain.Group) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	listAllFn func(ctx context.Context) ([]*domain.Group, error)
	updateFn  func(ctx context.Context, group *domain.Group) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
	touchFn   func(ctx context.Context, id uuid.UUID, updatedAt time.Time) error
}

var _ store.GroupStore = (*mockGroupStore)(nil)

func (m *mockGroupStore) Create(ctx context.Context, group *domain.Group) error {
	return m.createFn(ctx, group)
}

func (m *mockGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockGroupStore) ListAll(ctx context.Context) ([]*domain.Group, error) {
	return m.listAllFn(ctx)
}

func (m *mockGroupStore) Update(ctx context.Context, group *domain.Group) error {
	return m.updateFn(ctx, group)
}

func (m *mockGroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockGroupStore) Touch(ctx context.Context, id uuid.UUID, updatedAt time.Time) error {
	return m.touchFn(ctx, id, updatedAt)
}

func (m *mockGroupStore) WithTx(tx *sql.Tx) store.GroupStore {
	return m
}

// existingGroup returns a getByIDFn that succeeds for the given ID and
// reports any other group as missing.
func existingGroup(id uuid.UUID) func(context.Context, uuid.UUID) (*domain.Group, error) {
	return func(ctx context.Context, got uuid.UUID) (*domain.Group, error) {
		if got != id {
			return nil, store.ErrGroupNotFound
		}
		return &domain.Group{
			ID:          id,
			Name:        "reading",
			Description: "books",
			CreatedAt:   time.Now().UTC(),
			UpdatedAt:   time.Now().UTC(),
		}, nil
	}
}
