package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "Highest", PriorityHighest.String())
	assert.Equal(t, "High", PriorityHigh.String())
	assert.Equal(t, "Medium", PriorityMedium.String())
	assert.Equal(t, "Low", PriorityLow.String())
	assert.Equal(t, "Lowest", PriorityLowest.String())
	assert.Equal(t, "Unknown", Priority(0).String())
	assert.Equal(t, "Unknown", Priority(6).String())
}

func TestPriority_Valid(t *testing.T) {
	for p := PriorityHighest; p <= PriorityLowest; p++ {
		assert.True(t, p.Valid(), "priority %d", p)
	}
	assert.False(t, Priority(0).Valid())
	assert.False(t, Priority(6).Valid())
	assert.False(t, Priority(-1).Valid())
}

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in   string
		want Priority
		ok   bool
	}{
		{"1", PriorityHighest, true},
		{"3", PriorityMedium, true},
		{" 5 ", PriorityLowest, true},
		{"0", 0, false},
		{"6", 0, false},
		{"high", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParsePriority(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestDueDate_IsNoonLocal(t *testing.T) {
	d := DueDate(2026, time.March, 8)

	assert.Equal(t, 12, d.Hour())
	assert.Equal(t, 0, d.Minute())
	assert.Equal(t, time.Local, d.Location())
	assert.Equal(t, 8, d.Day())
}

func TestTask_Status(t *testing.T) {
	task := Task{ID: 1, Description: "water plants", Priority: PriorityLow}
	assert.Equal(t, "Pending", task.Status())

	task.Completed = true
	assert.Equal(t, "Completed", task.Status())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validate("pick up eggs", PriorityMedium))
	assert.ErrorIs(t, validate("", PriorityMedium), ErrEmptyDescription)
	assert.ErrorIs(t, validate("a|b", PriorityMedium), ErrInvalidDescription)
	assert.ErrorIs(t, validate("two\nlines", PriorityMedium), ErrInvalidDescription)
	assert.ErrorIs(t, validate("ok", 0), ErrInvalidPriority)
	assert.ErrorIs(t, validate("ok", 6), ErrInvalidPriority)
}
