// Package menu runs the numbered-choice interactive loop on top of a
// task.Store. It owns prompting, input retry and output; all task rules
// live in the store.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"todolist/internal/render"
	"todolist/internal/task"
)

type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// DataFile is where choice 10 (and auto-save) writes.
	DataFile string
	AutoSave bool

	// Prompt controls whether the banner and field prompts are printed.
	// Turned off when input is piped.
	Prompt bool

	Render render.Options
}

type Menu struct {
	store  *task.Store
	in     *bufio.Scanner
	out    io.Writer
	errOut io.Writer
	opts   Options
}

func New(store *task.Store, opts Options) *Menu {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Err == nil {
		opts.Err = opts.Out
	}
	if opts.In == nil {
		opts.In = strings.NewReader("")
	}
	return &Menu{
		store:  store,
		in:     newScanner(opts.In),
		out:    opts.Out,
		errOut: opts.Err,
		opts:   opts,
	}
}

// maxInputBytes matches the longest line the task file accepts.
const maxInputBytes = 1 << 20

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxInputBytes)
	return sc
}

const banner = `
========== TO-DO LIST MANAGER ==========
1. Add Task
2. Edit Task
3. Delete Task
4. Mark Task as Completed
5. Display All Tasks
6. Filter by Status (Completed/Pending)
7. Sort Tasks by Priority
8. Sort Tasks by Due Date
9. Display Completion Percentage
10. Save Tasks
0. Exit
========================================
`

// Run loops until the user picks 0 or input ends. It only returns an
// error for a failed read or a failed auto-save.
func (m *Menu) Run() error {
	for {
		if m.opts.Prompt {
			fmt.Fprint(m.out, banner)
		}
		line, err := m.readLine("Enter your choice: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return m.exit()
			}
			return err
		}

		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			fmt.Fprintln(m.errOut, "Invalid input. Try again.")
			continue
		}
		if choice == 0 {
			return m.exit()
		}

		if err := m.dispatch(choice); err != nil {
			if errors.Is(err, io.EOF) {
				return m.exit()
			}
			return err
		}
	}
}

func (m *Menu) dispatch(choice int) error {
	switch choice {
	case 1:
		return m.addTask()
	case 2:
		return m.editTask()
	case 3:
		return m.deleteTask()
	case 4:
		return m.completeTask()
	case 5:
		fmt.Fprint(m.out, render.Tasks(m.store.List(), m.opts.Render))
	case 6:
		return m.filterByStatus()
	case 7:
		return m.sortBy("priority", m.store.SortByPriority)
	case 8:
		return m.sortBy("due date", m.store.SortByDueDate)
	case 9:
		fmt.Fprint(m.out, render.Percentage(m.store.CompletionPercentage(), m.store.Len()))
	case 10:
		_ = m.save()
	default:
		fmt.Fprintln(m.errOut, "Invalid menu choice. Please try again.")
	}
	return nil
}

func (m *Menu) exit() error {
	var err error
	if m.opts.AutoSave {
		err = m.save()
	}
	fmt.Fprintln(m.out, "Exiting program. Goodbye.")
	return err
}

func (m *Menu) addTask() error {
	desc, err := m.readLine("Enter task description: ")
	if err != nil {
		return err
	}
	prio, err := m.readPriority()
	if err != nil {
		return err
	}
	due, err := m.readDueDate()
	if err != nil {
		return err
	}

	t, err := m.store.Add(desc, prio, due)
	if err != nil {
		fmt.Fprintf(m.errOut, "Error: %v.\n", err)
		return nil
	}
	fmt.Fprintf(m.out, "Task %d added successfully.\n", t.ID)
	return nil
}

func (m *Menu) editTask() error {
	id, ok, err := m.readID("Enter task ID to edit: ")
	if err != nil || !ok {
		return err
	}

	var p task.Patch

	yes, err := m.readYesNo("Update description? (y/n): ")
	if err != nil {
		return err
	}
	if yes {
		desc, err := m.readLine("New description: ")
		if err != nil {
			return err
		}
		p.Description = &desc
	}

	if yes, err = m.readYesNo("Update priority? (y/n): "); err != nil {
		return err
	}
	if yes {
		prio, err := m.readPriority()
		if err != nil {
			return err
		}
		p.Priority = &prio
	}

	if yes, err = m.readYesNo("Update completion status? (y/n): "); err != nil {
		return err
	}
	if yes {
		line, err := m.readLine("Mark as completed? (1=Yes, 0=No): ")
		if err != nil {
			return err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			fmt.Fprintln(m.errOut, "Invalid input for completion.")
			return nil
		}
		done := n != 0
		p.Completed = &done
	}

	if yes, err = m.readYesNo("Update due date? (y/n): "); err != nil {
		return err
	}
	if yes {
		due, err := m.readDueDate()
		if err != nil {
			return err
		}
		p.DueDate = &due
	}

	if p.IsEmpty() {
		if _, ok := m.store.Get(id); !ok {
			m.reportTaskErr(id, task.ErrNotFound)
			return nil
		}
		fmt.Fprintln(m.out, "No changes.")
		return nil
	}
	if _, err := m.store.Update(id, p); err != nil {
		m.reportTaskErr(id, err)
		return nil
	}
	fmt.Fprintln(m.out, "Task updated.")
	return nil
}

func (m *Menu) deleteTask() error {
	id, ok, err := m.readID("Enter task ID to delete: ")
	if err != nil || !ok {
		return err
	}
	if err := m.store.Delete(id); err != nil {
		m.reportTaskErr(id, err)
		return nil
	}
	fmt.Fprintln(m.out, "Task deleted.")
	return nil
}

func (m *Menu) completeTask() error {
	id, ok, err := m.readID("Enter task ID to mark as completed: ")
	if err != nil || !ok {
		return err
	}
	if _, err := m.store.Complete(id); err != nil {
		m.reportTaskErr(id, err)
		return nil
	}
	fmt.Fprintln(m.out, "Task marked as completed.")
	return nil
}

func (m *Menu) filterByStatus() error {
	line, err := m.readLine("Filter tasks by status:\n1. Completed\n2. Pending\nEnter your choice: ")
	if err != nil {
		return err
	}
	var completed bool
	switch strings.TrimSpace(line) {
	case "1":
		completed = true
	case "2":
		completed = false
	default:
		fmt.Fprintln(m.errOut, "Invalid choice.")
		return nil
	}
	tasks, _ := m.store.FilterByStatus(completed)
	fmt.Fprint(m.out, render.Filtered(tasks, completed, m.opts.Render))
	return nil
}

func (m *Menu) sortBy(what string, sortFn func(ascending bool)) error {
	line, err := m.readLine(fmt.Sprintf("Sort by %s:\n1. Ascending\n2. Descending\nEnter your choice: ", what))
	if err != nil {
		return err
	}
	switch strings.TrimSpace(line) {
	case "1":
		sortFn(true)
	case "2":
		sortFn(false)
	default:
		fmt.Fprintln(m.errOut, "Invalid choice.")
		return nil
	}
	fmt.Fprintf(m.out, "Tasks sorted by %s.\n", what)
	return nil
}

func (m *Menu) save() error {
	rep, err := m.store.Save(m.opts.DataFile)
	if err != nil {
		fmt.Fprintf(m.errOut, "Error: Unable to save tasks: %v\n", err)
		return err
	}
	for _, sk := range rep.Skipped {
		fmt.Fprintf(m.errOut, "Error: Invalid Task with ID %d - not saved (%v).\n", sk.Task.ID, sk.Reason)
	}
	fmt.Fprintf(m.out, "Tasks saved to file (%d written).\n", rep.Saved)
	return nil
}

func (m *Menu) reportTaskErr(id int, err error) {
	if errors.Is(err, task.ErrNotFound) {
		fmt.Fprintf(m.errOut, "Warning: No task found with ID %d.\n", id)
		return
	}
	fmt.Fprintf(m.errOut, "Update failed: %v.\n", err)
}
