package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/internal/task"
)

func newStore(t *testing.T) *task.Store {
	t.Helper()

	s := task.NewDiscardStore()
	_, err := s.Add("pick up eggs", task.PriorityHigh, task.DueDate(2026, 3, 8))
	require.NoError(t, err)
	_, err = s.Add("file, taxes", task.PriorityHighest, task.DueDate(2026, 4, 15))
	require.NoError(t, err)
	_, err = s.Complete(2)
	require.NoError(t, err)
	return s
}

func TestExport_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter(newStore(t), "").Export(&buf, "csv"))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "description", "priority", "priority_name", "completed", "due_date"}, rows[0])
	assert.Equal(t, []string{"1", "pick up eggs", "2", "High", "false", "2026-03-08"}, rows[1])
	assert.Equal(t, []string{"2", "file, taxes", "1", "Highest", "true", "2026-04-15"}, rows[2])
}

func TestExport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter(newStore(t), "").Export(&buf, "JSON"))

	var got []task.Task
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "file, taxes", got[1].Description)
	assert.True(t, got[1].Completed)
}

func TestExport_PDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter(newStore(t), "").Export(&buf, "pdf"))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExport_UnknownFormat(t *testing.T) {
	err := NewExporter(newStore(t), "").Export(&bytes.Buffer{}, "xml")

	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExport_ICS(t *testing.T) {
	e := NewExporter(newStore(t), "")
	e.now = func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }

	var buf bytes.Buffer
	require.NoError(t, e.Export(&buf, "ics"))

	assert.Contains(t, buf.String(), "SUMMARY:pick up eggs")
	assert.NotContains(t, buf.String(), "file")
}
