package domain

import (
	"time"

	"github.com/google/uuid"
)

// Memo represents a free-text note. Its tags are always derived from the
// current text and are never set independently by a caller. A memo may
// optionally belong to a group via GroupID.
type Memo struct {
	ID        uuid.UUID  `json:"id"`
	Text      string     `json:"text"`
	Tags      []string   `json:"tags"`
	GroupID   *uuid.UUID `json:"group_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewMemo creates a new Memo with the given text and optional group ID.
// It generates a new UUID for the memo, extracts tags from the text, and
// sets the creation/update timestamps.
// Returns an error if validation fails.
func NewMemo(text string, groupID *uuid.UUID) (*Memo, error) {
	now := time.Now().UTC()
	memo := &Memo{
		ID:        uuid.New(),
		Text:      text,
		Tags:      ExtractTags(text),
		GroupID:   groupID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := memo.Validate(); err != nil {
		return nil, err
	}

	return memo, nil
}

// Validate checks if the Memo has valid data.
func (m *Memo) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMemoID
	}

	if m.Text == "" {
		return ErrEmptyMemoText
	}

	return nil
}

// UpdateText replaces the memo's text, recomputes its tags, and refreshes
// the UpdatedAt timestamp. The memo is left untouched if validation fails.
func (m *Memo) UpdateText(text string) error {
	if text == "" {
		return ErrEmptyMemoText
	}

	m.Text = text
	m.Tags = ExtractTags(text)
	m.UpdatedAt = time.Now().UTC()
	return nil
}
