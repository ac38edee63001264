package task

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("task not found")
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrInvalidDescription = errors.New("description cannot contain '|' or line breaks")
	ErrInvalidPriority    = errors.New("priority must be between 1 and 5")
)

// Patch represents a partial update.
// nil pointer => "no change"
type Patch struct {
	Description *string    `json:"description,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Description == nil && p.Priority == nil && p.Completed == nil && p.DueDate == nil
}

// applyPatch applies fields in order description, priority, completed,
// due date. A validation failure returns immediately; fields applied
// before the failing one stay applied.
func applyPatch(t *Task, p Patch) error {
	if p.Description != nil {
		if err := validate(*p.Description, t.Priority); err != nil {
			return err
		}
		t.Description = *p.Description
	}
	if p.Priority != nil {
		if err := validate(t.Description, *p.Priority); err != nil {
			return err
		}
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	return nil
}
