package task

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTaskFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStore_SaveFormat(t *testing.T) {
	s := NewDiscardStore()
	due := DueDate(2026, 3, 1)
	_, err := s.Add("pick up eggs", PriorityHigh, due)
	require.NoError(t, err)
	_, err = s.Add("water plants", PriorityLowest, due)
	require.NoError(t, err)
	_, err = s.Complete(2)
	require.NoError(t, err)

	var buf bytes.Buffer
	rep, err := s.Encode(&buf)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Saved)
	assert.Empty(t, rep.Skipped)
	want := "pick up eggs|2 0 " + itoa(due.Unix()) + "\n" +
		"water plants|5 1 " + itoa(due.Unix()) + "\n"
	assert.Equal(t, want, buf.String())
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := NewDiscardStore()
	_, err := s.Add("c", PriorityLow, DueDate(2026, 7, 4))
	require.NoError(t, err)
	_, err = s.Add("a", PriorityHighest, DueDate(2026, 1, 2))
	require.NoError(t, err)
	_, err = s.Add("b", PriorityMedium, DueDate(2025, 12, 31))
	require.NoError(t, err)
	require.NoError(t, s.Delete(1))
	_, err = s.Complete(3)
	require.NoError(t, err)
	s.SortByDueDate(true)

	path := filepath.Join(t.TempDir(), "tasks.txt")
	rep, err := s.Save(path)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Saved)

	loaded := NewDiscardStore()
	lrep, err := loaded.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, lrep.Loaded)
	assert.Zero(t, lrep.StoppedAt)

	want := s.List()
	got := loaded.List()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, i+1, got[i].ID)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.Equal(t, want[i].Priority, got[i].Priority)
		assert.Equal(t, want[i].Completed, got[i].Completed)
		assert.True(t, want[i].DueDate.Equal(got[i].DueDate))
	}
	assert.Equal(t, 3, loaded.NextID())
}

func TestStore_SaveSkipsInvalidTasks(t *testing.T) {
	s := seedStore(t, "a", "b")
	// Tasks are normally validated on the way in; force one bad row.
	s.tasks[0].Priority = 0

	var buf bytes.Buffer
	rep, err := s.Encode(&buf)
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Saved)
	require.Len(t, rep.Skipped, 1)
	assert.Equal(t, 1, rep.Skipped[0].Task.ID)
	assert.ErrorIs(t, rep.Skipped[0].Reason, ErrInvalidPriority)
	assert.True(t, strings.HasPrefix(buf.String(), "b|3 0 "))
}

func TestStore_SaveUnwritablePath(t *testing.T) {
	s := seedStore(t, "a")
	path := filepath.Join(t.TempDir(), "missing-dir", "tasks.txt")

	_, err := s.Save(path)

	assert.Error(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestStore_LoadMissingFileIsEmpty(t *testing.T) {
	s := seedStore(t, "left over")

	rep, err := s.Load(filepath.Join(t.TempDir(), "nope.txt"))

	require.NoError(t, err)
	assert.Zero(t, rep.Loaded)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, s.NextID())
}

func TestStore_LoadStopsAtMalformedLine(t *testing.T) {
	path := writeTaskFile(t, ""+
		"first|1 0 1767268800\n"+
		"second|2 1 1767268800\n"+
		"third|high 0 1767268800\n"+
		"fourth|4 0 1767268800\n")
	s := NewDiscardStore()

	rep, err := s.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Loaded)
	assert.Equal(t, 3, rep.StoppedAt)
	assert.Error(t, rep.StopErr)
	assert.Equal(t, []string{"first", "second"}, descriptions(s.List()))
	assert.Equal(t, 3, s.NextID())
}

func TestStore_LoadStopsOnMissingFields(t *testing.T) {
	cases := map[string]string{
		"no delimiter":  "just words\n",
		"no completed":  "x|1\n",
		"no due date":   "x|1 0\n",
		"bad due date":  "x|1 0 soon\n",
		"bad completed": "x|1 yes 1767268800\n",
		"due suffix":    "x|1 0 1767268800abc\n",
		"prio suffix":   "x|2x 0 1767268800\n",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeTaskFile(t, "ok|3 0 1767268800\n"+line+"after|3 0 1767268800\n")
			s := NewDiscardStore()

			rep, err := s.Load(path)
			require.NoError(t, err)

			assert.Equal(t, 2, rep.StoppedAt)
			assert.Equal(t, []string{"ok"}, descriptions(s.List()))
		})
	}
}

func TestStore_LoadSkipsInvalidButContinues(t *testing.T) {
	path := writeTaskFile(t, ""+
		"|1 0 1767268800\n"+
		"too urgent|0 0 1767268800\n"+
		"kept|5 1 1767268800\n"+
		"too lax|6 0 1767268800\n"+
		"also kept|2 0 1767268800\n")
	s := NewDiscardStore()

	rep, err := s.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Loaded)
	assert.Zero(t, rep.StoppedAt)
	require.Len(t, rep.Skipped, 3)
	assert.Equal(t, 1, rep.Skipped[0].Line)
	assert.ErrorIs(t, rep.Skipped[0].Reason, ErrEmptyDescription)
	assert.ErrorIs(t, rep.Skipped[1].Reason, ErrInvalidPriority)
	assert.Equal(t, 4, rep.Skipped[2].Line)

	list := s.List()
	assert.Equal(t, []string{"kept", "also kept"}, descriptions(list))
	assert.Equal(t, 1, list[0].ID)
	assert.Equal(t, 2, list[1].ID)
	assert.True(t, list[0].Completed)
	assert.Equal(t, 3, s.NextID())
}

func TestStore_LoadToleratesCRLFAndTrailingFields(t *testing.T) {
	path := writeTaskFile(t, "dos line|2 0 1767268800 extra\r\n")
	s := NewDiscardStore()

	_, err := s.Load(path)
	require.NoError(t, err)

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "dos line", got.Description)
	assert.Equal(t, int64(1767268800), got.DueDate.Unix())
}

func TestStore_AddAfterLoadContinuesNumbering(t *testing.T) {
	path := writeTaskFile(t, "a|1 0 1767268800\nb|1 0 1767268800\n")
	s := NewDiscardStore()
	_, err := s.Load(path)
	require.NoError(t, err)

	got, err := s.Add("c", PriorityLow, DueDate(2026, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, got.ID)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
