package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"todolist/internal/task"
)

var ErrUnknownFormat = errors.New("unknown export format")

type Exporter struct {
	st         *task.Store
	dateFormat string
	now        func() time.Time
}

func NewExporter(st *task.Store, dateFormat string) *Exporter {
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}
	return &Exporter{st: st, dateFormat: dateFormat, now: time.Now}
}

// Formats lists what Export accepts.
func Formats() []string {
	return []string{"csv", "ics", "json", "pdf"}
}

// Export writes the store's tasks, in their current order, to w.
func (e *Exporter) Export(w io.Writer, format string) error {
	all := e.st.List()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	case "csv":
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"id", "description", "priority", "priority_name", "completed", "due_date"})
		for _, t := range all {
			_ = cw.Write([]string{
				strconv.Itoa(t.ID),
				t.Description,
				strconv.Itoa(int(t.Priority)),
				t.Priority.String(),
				strconv.FormatBool(t.Completed),
				t.DueDate.Format(e.dateFormat),
			})
		}
		cw.Flush()
		return cw.Error()
	case "ics":
		_, err := io.WriteString(w, BuildCalendarICS(all, e.now()))
		return err
	case "pdf":
		return e.writePDF(w, all)
	default:
		return fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
}

func (e *Exporter) writePDF(w io.Writer, all []task.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "To-Do List")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Completion: %.2f%% of %d tasks", e.st.CompletionPercentage(), len(all)))
	pdf.Ln(10)

	widths := []float64{12, 88, 25, 25, 30}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range []string{"ID", "Description", "Priority", "Status", "Due Date"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, t := range all {
		cells := []string{
			strconv.Itoa(t.ID),
			tr(t.Description),
			t.Priority.String(),
			t.Status(),
			t.DueDate.Format(e.dateFormat),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
