package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Entity-specific validation errors wrap this sentinel so callers
	// can detect the whole class with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyMemoID is returned when a memo has no ID.
	ErrEmptyMemoID = fmt.Errorf("%w: memo ID cannot be empty", ErrValidation)

	// ErrEmptyMemoText is returned when a memo's text is empty.
	ErrEmptyMemoText = fmt.Errorf("%w: memo text cannot be empty", ErrValidation)

	// ErrEmptyGroupID is returned when a group has no ID.
	ErrEmptyGroupID = fmt.Errorf("%w: group ID cannot be empty", ErrValidation)

	// ErrEmptyGroupName is returned when a group's name is empty.
	ErrEmptyGroupName = fmt.Errorf("%w: group name cannot be empty", ErrValidation)

	// ErrEmptyGroupDescription is returned when a group's description is empty.
	ErrEmptyGroupDescription = fmt.Errorf("%w: group description cannot be empty", ErrValidation)

	// ErrEmptyGroupPatch is returned when a group update supplies no fields.
	ErrEmptyGroupPatch = fmt.Errorf("%w: group update requires at least one field", ErrValidation)
)
