package menu

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"todolist/internal/task"
)

func (m *Menu) readLine(prompt string) (string, error) {
	if m.opts.Prompt {
		fmt.Fprint(m.out, prompt)
	}
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(m.in.Text(), "\r"), nil
}

// readID returns ok=false after reporting a non-numeric id.
func (m *Menu) readID(prompt string) (int, bool, error) {
	line, err := m.readLine(prompt)
	if err != nil {
		return 0, false, err
	}
	id, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		fmt.Fprintln(m.errOut, "Invalid ID.")
		return 0, false, nil
	}
	return id, true, nil
}

func (m *Menu) readYesNo(prompt string) (bool, error) {
	line, err := m.readLine(prompt)
	if err != nil {
		return false, err
	}
	line = strings.TrimSpace(line)
	return line != "" && (line[0] == 'y' || line[0] == 'Y'), nil
}

func (m *Menu) readPriority() (task.Priority, error) {
	for {
		line, err := m.readLine("Enter priority (1=Highest, 2=High, 3=Medium, 4=Low, 5=Lowest): ")
		if err != nil {
			return 0, err
		}
		if p, ok := task.ParsePriority(line); ok {
			return p, nil
		}
		fmt.Fprintln(m.errOut, "Invalid priority. Must be 1 to 5.")
	}
}

func (m *Menu) readDueDate() (time.Time, error) {
	for {
		line, err := m.readLine("Enter due date (YYYY MM DD): ")
		if err != nil {
			return time.Time{}, err
		}
		due, ok := parseDate(line)
		if ok {
			return due, nil
		}
		fmt.Fprintln(m.errOut, "Invalid date input. Please try again.")
	}
}

// parseDate reads "YYYY MM DD" and rejects dates that do not exist.
func parseDate(line string) (time.Time, bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return time.Time{}, false
	}
	var nums [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}
	year, month, day := nums[0], time.Month(nums[1]), nums[2]
	due := task.DueDate(year, month, day)
	if due.Year() != year || due.Month() != month || due.Day() != day {
		return time.Time{}, false
	}
	return due, true
}
