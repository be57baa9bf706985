package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/memo-api/internal/domain"
	"github.com/phrazzld/memo-api/internal/store"
)

// mockMemoService is a mock implementation of the MemoService interface
type mockMemoService struct {
	createMemoFn           func(ctx context.Context, text string, groupID *uuid.UUID) (*domain.Memo, error)
	getMemoFn              func(ctx context.Context, id uuid.UUID) (*domain.Memo, error)
	updateMemoFn           func(ctx context.Context, id uuid.UUID, text string) (*domain.Memo, error)
	deleteMemoFn           func(ctx context.Context, id uuid.UUID) error
	listMemosFn            func(ctx context.Context) ([]*domain.Memo, error)
	listMemosByTagFn       func(ctx context.Context, tag string) ([]*domain.Memo, error)
	listMemosByDateRangeFn func(ctx context.Context, start, end time.Time) ([]*domain.Memo, error)
	listMemosByGroupFn     func(ctx context.Context, groupID uuid.UUID) ([]*domain.Memo, error)
	listTagsFn             func(ctx context.Context) ([]string, error)
}

func (m *mockMemoService) CreateMemo(
	ctx context.Context,
	text string,
	groupID *uuid.UUID,
) (*domain.Memo, error) {
	return m.createMemoFn(ctx, text, groupID)
}

func (m *mockMemoService) GetMemo(ctx context.Context, id uuid.UUID) (*domain.Memo, error) {
	return m.getMemoFn(ctx, id)
}

func (m *mockMemoService) UpdateMemo(
	ctx context.Context,
	id uuid.UUID,
	text string,
) (*domain.Memo, error) {
	return m.updateMemoFn(ctx, id, text)
}

func (m *mockMemoService) DeleteMemo(ctx context.Context, id uuid.UUID) error {
	return m.deleteMemoFn(ctx, id)
}

func (m *mockMemoService) ListMemos(ctx context.Context) ([]*domain.Memo, error) {
	return m.listMemosFn(ctx)
}

func (m *mockMemoService) ListMemosByTag(
	ctx context.Context,
	tag string,
) ([]*domain.Memo, error) {
	return m.listMemosByTagFn(ctx, tag)
}

func (m *mockMemoService) ListMemosByDateRange(
	ctx context.Context,
	start, end time.Time,
) ([]*domain.Memo, error) {
	return m.listMemosByDateRangeFn(ctx, start, end)
}

func (m *mockMemoService) ListMemosByGroup(
	ctx context.Context,
	groupID uuid.UUID,
) ([]*domain.Memo, error) {
	return m.listMemosByGroupFn(ctx, groupID)
}

func (m *mockMemoService) ListTags(ctx context.Context) ([]string, error) {
	return m.listTagsFn(ctx)
}

// newMemoRouter mounts the handler on a chi router so URL parameters
// resolve the same way they do in production.
func newMemoRouter(svc *mockMemoService) http.Handler {
	handler := NewMemoHandler(svc, nil)
	r := chi.NewRouter()
	r.Post("/api/memos", handler.CreateMemo)
	r.Get("/api/memos", handler.ListMemos)
	r.Get("/api/memos/{id}", handler.GetMemo)
	r.Put("/api/memos/{id}", handler.UpdateMemo)
	r.Delete("/api/memos/{id}", handler.DeleteMemo)
	r.Get("/api/tags", handler.ListTags)
	return r
}

func sampleMemo(text string, tags []string) *domain.Memo {
	return &domain.Memo{
		ID:        uuid.New(),
		Text:      text,
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestCreateMemo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceResult  *domain.Memo
		serviceError   error
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"text":"hello #work"}`,
			serviceResult:  sampleMemo("hello #work", []string{"work"}),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Empty text",
			body:           `{"text":""}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			body:           `{"text":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed group ID",
			body:           `{"text":"hi","group_id":"not-a-uuid"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing group",
			body:           `{"text":"hi","group_id":"` + uuid.NewString() + `"}`,
			serviceError:   store.ErrGroupNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockMemoService{
				createMemoFn: func(ctx context.Context, text string, groupID *uuid.UUID) (*domain.Memo, error) {
					return tc.serviceResult, tc.serviceError
				},
			}
			router := newMemoRouter(svc)

			req := httptest.NewRequest(
				http.MethodPost, "/api/memos", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d (body: %s)",
					tc.expectedStatus, rec.Code, rec.Body.String())
			}

			if tc.expectedStatus == http.StatusCreated {
				var resp MemoResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if resp.Text != tc.serviceResult.Text {
					t.Errorf("Expected text %q, got %q", tc.serviceResult.Text, resp.Text)
				}
			}
		})
	}
}

func TestGetMemo(t *testing.T) {
	t.Parallel()

	memo := sampleMemo("hello #work", []string{"work"})

	tests := []struct {
		name           string
		path           string
		serviceResult  *domain.Memo
		serviceError   error
		expectedStatus int
	}{
		{
			name:           "Success",
			path:           "/api/memos/" + memo.ID.String(),
			serviceResult:  memo,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not found",
			path:           "/api/memos/" + uuid.NewString(),
			serviceError:   store.ErrMemoNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Malformed ID",
			path:           "/api/memos/not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockMemoService{
				getMemoFn: func(ctx context.Context, id uuid.UUID) (*domain.Memo, error) {
					return tc.serviceResult, tc.serviceError
				},
			}
			router := newMemoRouter(svc)

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
		})
	}
}

func TestUpdateMemo(t *testing.T) {
	t.Parallel()

	memo := sampleMemo("hello #home", []string{"home"})

	svc := &mockMemoService{
		updateMemoFn: func(ctx context.Context, id uuid.UUID, text string) (*domain.Memo, error) {
			if text != "hello #home" {
				t.Errorf("Expected text passed through, got %q", text)
			}
			return memo, nil
		},
	}
	router := newMemoRouter(svc)

	req := httptest.NewRequest(http.MethodPut,
		"/api/memos/"+memo.ID.String(),
		bytes.NewBufferString(`{"text":"hello #home"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp MemoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Tags) != 1 || resp.Tags[0] != "home" {
		t.Errorf("Expected tags [home], got %v", resp.Tags)
	}
}

func TestDeleteMemo(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		svc := &mockMemoService{
			deleteMemoFn: func(ctx context.Context, id uuid.UUID) error { return nil },
		}
		router := newMemoRouter(svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/memos/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", rec.Code)
		}
	})

	t.Run("Not found", func(t *testing.T) {
		t.Parallel()

		svc := &mockMemoService{
			deleteMemoFn: func(ctx context.Context, id uuid.UUID) error {
				return store.ErrMemoNotFound
			},
		}
		router := newMemoRouter(svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/memos/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rec.Code)
		}
	})
}

func TestListMemosFilters(t *testing.T) {
	t.Parallel()

	groupID := uuid.New()

	var gotTag string
	var gotStart, gotEnd time.Time
	var gotGroup uuid.UUID
	var listedAll bool

	svc := &mockMemoService{
		listMemosFn: func(ctx context.Context) ([]*domain.Memo, error) {
			listedAll = true
			return []*domain.Memo{}, nil
		},
		listMemosByTagFn: func(ctx context.Context, tag string) ([]*domain.Memo, error) {
			gotTag = tag
			return []*domain.Memo{}, nil
		},
		listMemosByDateRangeFn: func(ctx context.Context, start, end time.Time) ([]*domain.Memo, error) {
			gotStart, gotEnd = start, end
			return []*domain.Memo{}, nil
		},
		listMemosByGroupFn: func(ctx context.Context, id uuid.UUID) ([]*domain.Memo, error) {
			gotGroup = id
			return []*domain.Memo{}, nil
		},
	}
	router := newMemoRouter(svc)

	do := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	if rec := do("/api/memos"); rec.Code != http.StatusOK || !listedAll {
		t.Errorf("Expected unfiltered list, got status %d", rec.Code)
	}

	if rec := do("/api/memos?tag=work"); rec.Code != http.StatusOK || gotTag != "work" {
		t.Errorf("Expected tag filter 'work', got %q (status %d)", gotTag, rec.Code)
	}

	rec := do("/api/memos?start_date=2025-03-01&end_date=2025-03-14")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200 for date range, got %d", rec.Code)
	}
	if gotStart.IsZero() || gotEnd.IsZero() {
		t.Error("Expected date range to reach the service")
	}

	if rec := do("/api/memos?group_id=" + groupID.String()); rec.Code != http.StatusOK ||
		gotGroup != groupID {
		t.Errorf("Expected group filter %s, got %s (status %d)", groupID, gotGroup, rec.Code)
	}
}

func TestListMemosDateRangeValidation(t *testing.T) {
	t.Parallel()

	svc := &mockMemoService{
		listMemosByDateRangeFn: func(ctx context.Context, start, end time.Time) ([]*domain.Memo, error) {
			t.Fatal("Service should not be called for invalid dates")
			return nil, nil
		},
	}
	router := newMemoRouter(svc)

	paths := []string{
		"/api/memos?start_date=03-01-2025&end_date=2025-03-14",
		"/api/memos?start_date=2025-03-01&end_date=tomorrow",
		"/api/memos?start_date=2025-03-01", // missing end_date
		"/api/memos?end_date=2025-03-14",   // missing start_date
	}

	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for %s, got %d", path, rec.Code)
		}
	}
}

func TestListTags(t *testing.T) {
	t.Parallel()

	svc := &mockMemoService{
		listTagsFn: func(ctx context.Context) ([]string, error) {
			return []string{"home", "work"}, nil
		},
	}
	router := newMemoRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp TagsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Tags) != 2 || resp.Tags[0] != "home" || resp.Tags[1] != "work" {
		t.Errorf("Expected tags [home work], got %v", resp.Tags)
	}
}
