package task

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// maxLineBytes bounds a single line in the task file.
const maxLineBytes = 1 << 20

// SkippedTask is a task left out of a save because it no longer validates.
type SkippedTask struct {
	Task   Task
	Reason error
}

type SaveReport struct {
	Saved   int
	Skipped []SkippedTask
}

// SkippedLine is a line that parsed but held an empty description or an
// out-of-range priority.
type SkippedLine struct {
	Line   int
	Reason error
}

type LoadReport struct {
	Loaded  int
	Skipped []SkippedLine

	// StoppedAt is the 1-based line number where parsing failed. Nothing
	// from that line onward was loaded. Zero means the whole file was read.
	StoppedAt int
	StopErr   error
}

// Save writes every task as
//
//	description|priority completed dueUnix
//
// Tasks that fail validation are skipped and listed in the report.
func (s *Store) Save(path string) (SaveReport, error) {
	f, err := os.Create(path)
	if err != nil {
		return SaveReport{}, fmt.Errorf("open %s for saving: %w", path, err)
	}
	defer f.Close()

	rep, err := s.Encode(f)
	if err != nil {
		return rep, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return rep, fmt.Errorf("close %s: %w", path, err)
	}
	return rep, nil
}

func (s *Store) Encode(w io.Writer) (SaveReport, error) {
	var rep SaveReport
	bw := bufio.NewWriter(w)
	for _, t := range s.tasks {
		if err := validate(t.Description, t.Priority); err != nil {
			s.logger.Printf("task %d not saved: %v", t.ID, err)
			rep.Skipped = append(rep.Skipped, SkippedTask{Task: t, Reason: err})
			continue
		}
		if _, err := bw.WriteString(formatLine(t)); err != nil {
			return rep, err
		}
		rep.Saved++
	}
	return rep, bw.Flush()
}

// Load replaces the store's contents with the tasks in path. A file that
// cannot be opened leaves the store empty and is not an error.
func (s *Store) Load(path string) (LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		s.reset()
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Printf("task file %s not readable, starting empty: %v", path, err)
		}
		return LoadReport{}, nil
	}
	defer f.Close()

	rep, err := s.Decode(f)
	if err != nil {
		return rep, fmt.Errorf("read %s: %w", path, err)
	}
	return rep, nil
}

// Decode replaces the store's contents with tasks read from r. Loaded tasks
// are numbered 1..n in file order.
func (s *Store) Decode(r io.Reader) (LoadReport, error) {
	s.reset()

	var rep LoadReport
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		t, err := parseLine(strings.TrimSuffix(sc.Text(), "\r"))
		if err != nil {
			s.logger.Printf("stopped loading at line %d: %v", lineNo, err)
			rep.StoppedAt = lineNo
			rep.StopErr = err
			break
		}
		if err := validate(t.Description, t.Priority); err != nil {
			s.logger.Printf("skipping invalid task on line %d: %v", lineNo, err)
			rep.Skipped = append(rep.Skipped, SkippedLine{Line: lineNo, Reason: err})
			continue
		}
		t.ID = s.allocateID()
		s.tasks = append(s.tasks, t)
		rep.Loaded++
	}
	s.nextID = len(s.tasks) + 1

	if err := sc.Err(); err != nil {
		return rep, err
	}
	return rep, nil
}

func (s *Store) reset() {
	s.tasks = []Task{}
	s.nextID = 1
}

func formatLine(t Task) string {
	completed := 0
	if t.Completed {
		completed = 1
	}
	return fmt.Sprintf("%s|%d %d %d\n", t.Description, int(t.Priority), completed, t.DueDate.Unix())
}

// parseLine reads description, priority, completed and due date in that
// order. Anything after the due date is ignored.
func parseLine(line string) (Task, error) {
	desc, rest, ok := strings.Cut(line, "|")
	if !ok {
		return Task{}, errors.New("missing '|' after description")
	}
	fields := strings.Fields(rest)

	field := func(i int, name string) (int64, error) {
		if i >= len(fields) {
			return 0, fmt.Errorf("missing %s", name)
		}
		n, err := strconv.ParseInt(fields[i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("bad %s %q", name, fields[i])
		}
		return n, nil
	}

	prio, err := field(0, "priority")
	if err != nil {
		return Task{}, err
	}
	comp, err := field(1, "completed flag")
	if err != nil {
		return Task{}, err
	}
	due, err := field(2, "due date")
	if err != nil {
		return Task{}, err
	}

	return Task{
		Description: desc,
		Priority:    Priority(prio),
		Completed:   comp != 0,
		DueDate:     time.Unix(due, 0),
	}, nil
}
