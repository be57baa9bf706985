package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorHierarchy(t *testing.T) {
	t.Parallel()

	if !errors.Is(ErrMemoNotFound, ErrNotFound) {
		t.Error("Expected ErrMemoNotFound to wrap ErrNotFound")
	}
	if !errors.Is(ErrGroupNotFound, ErrNotFound) {
		t.Error("Expected ErrGroupNotFound to wrap ErrNotFound")
	}
	if !errors.Is(ErrGroupNameExists, ErrDuplicate) {
		t.Error("Expected ErrGroupNameExists to wrap ErrDuplicate")
	}
	if errors.Is(ErrGroupNameExists, ErrNotFound) {
		t.Error("Expected ErrGroupNameExists not to wrap ErrNotFound")
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"direct sentinel", ErrNotFound, true},
		{"memo sentinel", ErrMemoNotFound, true},
		{"group sentinel", ErrGroupNotFound, true},
		{"wrapped sentinel", fmt.Errorf("lookup: %w", ErrMemoNotFound), true},
		{"duplicate error", ErrGroupNameExists, false},
		{"unrelated error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsNotFoundError(tc.err); got != tc.want {
				t.Errorf("IsNotFoundError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	if !IsDuplicateError(ErrGroupNameExists) {
		t.Error("Expected ErrGroupNameExists to be a duplicate error")
	}
	if !IsDuplicateError(fmt.Errorf("create: %w", ErrDuplicate)) {
		t.Error("Expected wrapped ErrDuplicate to be a duplicate error")
	}
	if IsDuplicateError(ErrMemoNotFound) {
		t.Error("Expected ErrMemoNotFound not to be a duplicate error")
	}
}
