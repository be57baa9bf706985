package domain

import (
	"time"

	"github.com/google/uuid"
)

// Group represents a named collection that owns zero or more memos.
// Name is unique across all groups. MemoCount is populated on reads with
// the live count of member memos; it is never stored.
type Group struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemoCount   int       `json:"memo_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewGroup creates a new Group with the given name and description.
// Returns an error if validation fails.
func NewGroup(name, description string) (*Group, error) {
	now := time.Now().UTC()
	group := &Group{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := group.Validate(); err != nil {
		return nil, err
	}

	return group, nil
}

// Validate checks if the Group has valid data.
func (g *Group) Validate() error {
	if g.ID == uuid.Nil {
		return ErrEmptyGroupID
	}

	if g.Name == "" {
		return ErrEmptyGroupName
	}

	if g.Description == "" {
		return ErrEmptyGroupDescription
	}

	return nil
}

// ApplyPatch updates the supplied fields (nil fields are left as-is) and
// refreshes the UpdatedAt timestamp. At least one field must be supplied,
// and supplied fields must be non-empty. The group is left untouched if
// validation fails.
func (g *Group) ApplyPatch(name, description *string) error {
	if name == nil && description == nil {
		return ErrEmptyGroupPatch
	}

	if name != nil && *name == "" {
		return ErrEmptyGroupName
	}

	if description != nil && *description == "" {
		return ErrEmptyGroupDescription
	}

	if name != nil {
		g.Name = *name
	}
	if description != nil {
		g.Description = *description
	}
	g.UpdatedAt = time.Now().UTC()
	return nil
}
