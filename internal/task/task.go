package task

import (
	"strings"
	"time"
)

type Priority int

const (
	PriorityHighest Priority = iota + 1
	PriorityHigh
	PriorityMedium
	PriorityLow
	PriorityLowest
)

func (p Priority) String() string {
	switch p {
	case PriorityHighest:
		return "Highest"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	case PriorityLowest:
		return "Lowest"
	default:
		return "Unknown"
	}
}

// Valid reports whether p is one of the five defined levels.
func (p Priority) Valid() bool {
	return p >= PriorityHighest && p <= PriorityLowest
}

// ParsePriority accepts "1" through "5".
func ParsePriority(s string) (Priority, bool) {
	switch strings.TrimSpace(s) {
	case "1":
		return PriorityHighest, true
	case "2":
		return PriorityHigh, true
	case "3":
		return PriorityMedium, true
	case "4":
		return PriorityLow, true
	case "5":
		return PriorityLowest, true
	}
	return 0, false
}

type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	DueDate     time.Time `json:"due_date"`
}

// DueDate builds a due date at noon local time so the calendar day
// survives DST shifts and the epoch round-trip through the task file.
func DueDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
}

func (t Task) Status() string {
	if t.Completed {
		return "Completed"
	}
	return "Pending"
}

func validate(description string, priority Priority) error {
	if description == "" {
		return ErrEmptyDescription
	}
	if strings.ContainsAny(description, "|\r\n") {
		return ErrInvalidDescription
	}
	if !priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}
