package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingID        = errors.New("model: task id is required")
	ErrMissingCreatedAt = errors.New("model: task created_at is required")
)

// Task is a single entry of the day list. ID and CreatedAt never change after
// construction; ExpiresAt is nil when the task only lives until the day ends.
//
// ExpiresAt is serialized as an explicit null rather than omitted so that
// every persisted record carries the same five fields.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

func NewTask(title string, now time.Time, expiresAt *time.Time) Task {
	return NewTaskWithID(uuid.New(), title, now, expiresAt)
}

func NewTaskWithID(id uuid.UUID, title string, now time.Time, expiresAt *time.Time) Task {
	t := Task{
		ID:        id,
		Title:     title,
		CreatedAt: now,
	}
	if expiresAt != nil {
		exp := *expiresAt
		t.ExpiresAt = &exp
	}
	return t
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	out := t
	if t.ExpiresAt != nil {
		exp := *t.ExpiresAt
		out.ExpiresAt = &exp
	}
	return out
}

func (t Task) HasExpiry() bool {
	return t.ExpiresAt != nil
}

// Identifier is the canonical string form of the id, used as the key for
// reminders and command lookups.
func (t Task) Identifier() string {
	return t.ID.String()
}

// Validate checks structural fields only. An empty title is allowed here;
// gating empty submissions is the caller's job.
func (t Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrMissingID
	}
	if t.CreatedAt.IsZero() {
		return ErrMissingCreatedAt
	}
	return nil
}

// Equal compares every field, including the expiry instant.
func (t Task) Equal(o Task) bool {
	if t.ID != o.ID || t.Title != o.Title || t.IsCompleted != o.IsCompleted || !t.CreatedAt.Equal(o.CreatedAt) {
		return false
	}
	if t.ExpiresAt == nil || o.ExpiresAt == nil {
		return t.ExpiresAt == nil && o.ExpiresAt == nil
	}
	return t.ExpiresAt.Equal(*o.ExpiresAt)
}
