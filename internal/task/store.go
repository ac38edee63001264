package task

import (
	"io"
	"log"
	"sort"
	"time"
)

type Options struct {
	Logger *log.Logger
}

// Store is the in-memory, insertion-ordered task list. It is owned by a
// single caller and is not safe for concurrent use.
type Store struct {
	tasks  []Task
	nextID int
	logger *log.Logger
}

func NewStore(opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Store{
		tasks:  []Task{},
		nextID: 1,
		logger: opts.Logger,
	}
}

// NewDiscardStore returns a store whose reports go nowhere. Handy in tests.
func NewDiscardStore() *Store {
	return NewStore(Options{Logger: log.New(io.Discard, "", 0)})
}

func (s *Store) allocateID() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) indexOf(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Len() int {
	return len(s.tasks)
}

// NextID is the id the next added task will receive.
func (s *Store) NextID() int {
	return s.nextID
}

func (s *Store) Add(description string, priority Priority, due time.Time) (Task, error) {
	if err := validate(description, priority); err != nil {
		return Task{}, err
	}
	t := Task{
		ID:          s.allocateID(),
		Description: description,
		Priority:    priority,
		Completed:   false,
		DueDate:     due,
	}
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *Store) Get(id int) (Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// List returns a copy of every task in the current order.
func (s *Store) List() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Delete(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// Update applies p to the task with the given id. On a validation error the
// task keeps whatever fields were applied before the failing one; the
// returned Task reflects that state.
func (s *Store) Update(id int, p Patch) (Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	err := applyPatch(&s.tasks[i], p)
	return s.tasks[i], err
}

func (s *Store) Complete(id int) (Task, error) {
	done := true
	return s.Update(id, Patch{Completed: &done})
}

func (s *Store) SortByPriority(ascending bool) {
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if ascending {
			return s.tasks[i].Priority < s.tasks[j].Priority
		}
		return s.tasks[i].Priority > s.tasks[j].Priority
	})
}

func (s *Store) SortByDueDate(ascending bool) {
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if ascending {
			return s.tasks[i].DueDate.Before(s.tasks[j].DueDate)
		}
		return s.tasks[i].DueDate.After(s.tasks[j].DueDate)
	})
}

// FilterByStatus returns the tasks whose Completed flag matches, in store
// order. found is false when nothing matched.
func (s *Store) FilterByStatus(completed bool) (out []Task, found bool) {
	out = make([]Task, 0)
	for _, t := range s.tasks {
		if t.Completed == completed {
			out = append(out, t)
		}
	}
	return out, len(out) > 0
}

// CompletionPercentage is 0 for an empty store.
func (s *Store) CompletionPercentage() float64 {
	if len(s.tasks) == 0 {
		return 0
	}
	count := 0
	for _, t := range s.tasks {
		if t.Completed {
			count++
		}
	}
	return float64(count) / float64(len(s.tasks)) * 100
}
