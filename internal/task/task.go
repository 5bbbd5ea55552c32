// Package task holds the task model: the three task kinds, their line
// encoding in the store file, their display form, and the ordered List
// that owns them for the lifetime of a session.
package task

import (
	"encoding/json"
	"fmt"

	"github.com/twiced-technology-gmbh/malt/internal/date"
)

// Kind identifies which variant a Task is.
type Kind int

// Task kinds. The zero value is not a valid kind.
const (
	KindTodo Kind = iota + 1
	KindDeadline
	KindEvent
)

// Tag returns the one-letter tag used in the store file and display form.
func (k Kind) Tag() string {
	switch k {
	case KindTodo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	}
	return "?"
}

// String returns the lowercase kind name, which is also the command word
// that creates it.
func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// kindFromTag maps a store tag back to its Kind.
func kindFromTag(tag string) (Kind, bool) {
	switch tag {
	case "T":
		return KindTodo, true
	case "D":
		return KindDeadline, true
	case "E":
		return KindEvent, true
	}
	return 0, false
}

// Task is a closed tagged union over todo, deadline and event. Only the
// payload fields of its Kind are meaningful: By for deadlines, From and To
// for events.
type Task struct {
	Kind        Kind
	Description string
	Done        bool

	By   date.Date
	From string
	To   string
}

// NewTodo returns a pending todo.
func NewTodo(description string) Task {
	return Task{Kind: KindTodo, Description: description}
}

// NewDeadline returns a pending deadline due on by, which must be in
// YYYY-MM-DD form.
func NewDeadline(description, by string) (Task, error) {
	d, err := date.Parse(by)
	if err != nil {
		return Task{}, err
	}
	return Task{Kind: KindDeadline, Description: description, By: d}, nil
}

// NewEvent returns a pending event spanning from..to. Both values are kept
// verbatim.
func NewEvent(description, from, to string) Task {
	return Task{Kind: KindEvent, Description: description, From: from, To: to}
}

// StatusIcon returns "X" for a done task and a space otherwise.
func (t Task) StatusIcon() string {
	if t.Done {
		return "X"
	}
	return " "
}

// String renders the task for people, e.g. "[D][ ] return book (by: Oct 15 2023)".
func (t Task) String() string {
	base := "[" + t.Kind.Tag() + "][" + t.StatusIcon() + "] " + t.Description
	switch t.Kind {
	case KindDeadline:
		return base + " (by: " + t.By.Display() + ")"
	case KindEvent:
		return base + " (from: " + t.From + " to: " + t.To + ")"
	}
	return base
}

// Equal reports whether two tasks have the same kind, status and fields.
func (t Task) Equal(other Task) bool {
	if t.Kind != other.Kind || t.Description != other.Description || t.Done != other.Done {
		return false
	}
	switch t.Kind {
	case KindDeadline:
		return t.By.Equal(other.By)
	case KindEvent:
		return t.From == other.From && t.To == other.To
	}
	return true
}

type taskJSON struct {
	Type        Kind       `json:"type"`
	Description string     `json:"description"`
	Done        bool       `json:"done"`
	By          *date.Date `json:"by,omitempty"`
	From        string     `json:"from,omitempty"`
	To          string     `json:"to,omitempty"`
}

// MarshalJSON emits only the fields that belong to the task's kind.
func (t Task) MarshalJSON() ([]byte, error) {
	v := taskJSON{Type: t.Kind, Description: t.Description, Done: t.Done}
	switch t.Kind {
	case KindDeadline:
		by := t.By
		v.By = &by
	case KindEvent:
		v.From, v.To = t.From, t.To
	}
	return json.Marshal(v)
}
