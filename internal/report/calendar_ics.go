package report

import (
	"fmt"
	"strings"
	"time"

	"todolist/internal/task"
)

const icsDateLayout = "20060102"

// BuildCalendarICS builds an iCalendar document with one all-day event per
// task on its due date. Completed tasks are left out.
func BuildCalendarICS(tasks []task.Task, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//todolist//Task Export//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}
	stamp := now.UTC().Format("20060102T150405Z")
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		due := t.DueDate.In(time.Local)
		start := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.Local)
		end := start.AddDate(0, 0, 1)

		lines = append(lines,
			"BEGIN:VEVENT",
			fmt.Sprintf("UID:task-%d-%d@todolist", t.ID, t.DueDate.Unix()),
			"DTSTAMP:"+stamp,
			"SUMMARY:"+escapeICSText(t.Description),
			"DTSTART;VALUE=DATE:"+start.Format(icsDateLayout),
			"DTEND;VALUE=DATE:"+end.Format(icsDateLayout),
			fmt.Sprintf("PRIORITY:%d", icsPriority(t.Priority)),
			"END:VEVENT",
		)
	}
	lines = append(lines, "END:VCALENDAR", "")

	return strings.Join(lines, "\r\n")
}

// icsPriority maps the five levels onto RFC 5545's 1 (high) .. 9 (low).
func icsPriority(p task.Priority) int {
	switch p {
	case task.PriorityHighest:
		return 1
	case task.PriorityHigh:
		return 3
	case task.PriorityMedium:
		return 5
	case task.PriorityLow:
		return 7
	case task.PriorityLowest:
		return 9
	default:
		return 0
	}
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}
