// Package render formats tasks for the terminal.
package render

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"todolist/internal/task"
)

type Options struct {
	DateFormat       string
	DescriptionWidth int
	NoColor          bool
}

func (o *Options) applyDefaults() {
	if o.DateFormat == "" {
		o.DateFormat = "2006-01-02"
	}
	if o.DescriptionWidth <= 0 {
		o.DescriptionWidth = 25
	}
}

var priorityColors = map[task.Priority]lipgloss.Color{
	task.PriorityHighest: lipgloss.Color("196"),
	task.PriorityHigh:    lipgloss.Color("208"),
	task.PriorityMedium:  lipgloss.Color("220"),
	task.PriorityLow:     lipgloss.Color("39"),
	task.PriorityLowest:  lipgloss.Color("244"),
}

var headers = []string{"ID", "Description", "Priority", "Status", "Due Date"}

// Tasks renders the full task list, or a notice when there is nothing to show.
func Tasks(tasks []task.Task, opts Options) string {
	if len(tasks) == 0 {
		return "No tasks available.\n"
	}
	return renderTable(tasks, opts)
}

// Filtered renders the result of a status filter.
func Filtered(tasks []task.Task, completed bool, opts Options) string {
	if len(tasks) == 0 {
		return fmt.Sprintf("No tasks found with status: %s\n", statusLabel(completed))
	}
	return renderTable(tasks, opts)
}

// Percentage formats the completion percentage with two decimals.
func Percentage(pct float64, total int) string {
	if total == 0 {
		return "No tasks. Completion percentage: 0%\n"
	}
	return fmt.Sprintf("Completion Percentage: %.2f%%\n", pct)
}

func renderTable(tasks []task.Task, opts Options) string {
	opts.applyDefaults()

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			truncate(t.Description, opts.DescriptionWidth),
			priorityCell(t.Priority, opts.NoColor),
			t.Status(),
			t.DueDate.Format(opts.DateFormat),
		})
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style { return cell }).
		Headers(headers...).
		Rows(rows...)

	return tbl.String() + "\n"
}

func priorityCell(p task.Priority, noColor bool) string {
	color, ok := priorityColors[p]
	if noColor || !ok {
		return p.String()
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(p == task.PriorityHighest).
		Render(p.String())
}

func statusLabel(completed bool) string {
	if completed {
		return "Completed"
	}
	return "Pending"
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
