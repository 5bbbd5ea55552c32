package task

import (
	"fmt"
	"slices"
	"strings"
)

// Entry is a task together with its 1-based position in the full list,
// so filtered views keep the numbers that mark, unmark and delete expect.
type Entry struct {
	Number int  `json:"number"`
	Task   Task `json:"task"`
}

// Number pairs every task with its position.
func Number(tasks []Task) []Entry {
	entries := make([]Entry, len(tasks))
	for i, t := range tasks {
		entries[i] = Entry{Number: i + 1, Task: t}
	}
	return entries
}

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Kinds      []Kind
	Done       *bool  // nil=no filter, true=only done, false=only pending
	Search     string // substring of the description
	IgnoreCase bool   // match Search case-insensitively
}

// Filter returns the entries matching all specified criteria (AND logic),
// in list order.
func Filter(tasks []Task, opts FilterOptions) []Entry {
	var result []Entry
	for _, e := range Number(tasks) {
		if matches(e.Task, opts) {
			result = append(result, e)
		}
	}
	return result
}

func matches(t Task, opts FilterOptions) bool {
	if len(opts.Kinds) > 0 && !slices.Contains(opts.Kinds, t.Kind) {
		return false
	}
	if opts.Done != nil && t.Done != *opts.Done {
		return false
	}
	if opts.Search == "" {
		return true
	}
	if opts.IgnoreCase {
		return strings.Contains(strings.ToLower(t.Description), strings.ToLower(opts.Search))
	}
	return strings.Contains(t.Description, opts.Search)
}

// ParseKind accepts a kind name ("todo") or tag ("T"), in any case.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindTodo, KindDeadline, KindEvent} {
		if strings.EqualFold(s, k.String()) || strings.EqualFold(s, k.Tag()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown task type %q (expected todo, deadline or event)", s)
}
