package task

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// ErrOutOfRange is returned for a 0-based index outside 0..Size()-1.
var ErrOutOfRange = errors.New("task index out of range")

// List is the ordered task collection. Insertion order is display order
// and store order. Indices are 0-based; translating user-facing 1-based
// numbers is the caller's job.
//
// List is not safe for concurrent use.
type List struct {
	tasks []Task
}

// NewList returns a List holding a copy of tasks.
func NewList(tasks []Task) *List {
	return &List{tasks: slices.Clone(tasks)}
}

// Add appends t.
func (l *List) Add(t Task) {
	l.tasks = append(l.tasks, t)
}

// Get returns the task at index i.
func (l *List) Get(i int) (Task, error) {
	if err := l.check(i); err != nil {
		return Task{}, err
	}
	return l.tasks[i], nil
}

// SetDone sets the done flag of the task at index i and returns the
// updated task.
func (l *List) SetDone(i int, done bool) (Task, error) {
	if err := l.check(i); err != nil {
		return Task{}, err
	}
	l.tasks[i].Done = done
	return l.tasks[i], nil
}

// Remove deletes the task at index i and returns it.
func (l *List) Remove(i int) (Task, error) {
	if err := l.check(i); err != nil {
		return Task{}, err
	}
	removed := l.tasks[i]
	l.tasks = slices.Delete(l.tasks, i, i+1)
	return removed, nil
}

// Find yields, in list order, every task whose description contains
// keyword. Matching is case-sensitive. The sequence reads the list lazily,
// so it reflects mutations made before iteration starts.
func (l *List) Find(keyword string) iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, t := range l.tasks {
			if !strings.Contains(t.Description, keyword) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Size returns the number of tasks.
func (l *List) Size() int {
	return len(l.tasks)
}

// Clear removes every task.
func (l *List) Clear() {
	l.tasks = nil
}

// All returns a snapshot of the tasks. Changing the returned slice does not
// affect the list, and later list mutations do not show up in it.
func (l *List) All() []Task {
	return slices.Clone(l.tasks)
}

func (l *List) check(i int) error {
	if i < 0 || i >= len(l.tasks) {
		return fmt.Errorf("%w: %d (size %d)", ErrOutOfRange, i, len(l.tasks))
	}
	return nil
}
