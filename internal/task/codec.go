package task

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/malt/internal/clierr"
	"github.com/twiced-technology-gmbh/malt/internal/date"
)

// Field counts per kind in the store file.
const (
	minFields      = 3
	todoFields     = 3
	deadlineFields = 4
	eventFields    = 5
)

// fieldSep splits a store line on pipes, absorbing whitespace around them.
var fieldSep = regexp.MustCompile(`\s*\|\s*`)

// Encode returns the task's store line, e.g. "D | 0 | return book | 2023-10-15".
// Fields are not escaped: a description containing " | " will not decode
// back to the same task.
func (t Task) Encode() string {
	done := 0
	if t.Done {
		done = 1
	}
	line := t.Kind.Tag() + " | " + strconv.Itoa(done) + " | " + t.Description
	switch t.Kind {
	case KindDeadline:
		line += " | " + t.By.String()
	case KindEvent:
		line += " | " + t.From + " | " + t.To
	}
	return line
}

// Decode parses one store line. Every failure is a *clierr.Error with code
// CorruptedLine (or InvalidDate for a deadline whose date does not parse),
// so callers can skip the line and carry on.
func Decode(line string) (Task, error) {
	parts := splitFields(line)
	if len(parts) < minFields {
		return Task{}, corrupted(line, "not enough fields")
	}

	done, err := strconv.Atoi(parts[1])
	if err != nil || (done != 0 && done != 1) {
		return Task{}, corrupted(line, "done status must be 0 or 1")
	}

	kind, ok := kindFromTag(parts[0])
	if !ok {
		return Task{}, corrupted(line, fmt.Sprintf("unrecognized task type %q", parts[0]))
	}

	description := parts[2]
	if description == "" {
		return Task{}, corrupted(line, "empty description")
	}

	var t Task
	switch kind {
	case KindTodo:
		if len(parts) != todoFields {
			return Task{}, corrupted(line, "todo needs 3 fields")
		}
		t = NewTodo(description)
	case KindDeadline:
		if len(parts) != deadlineFields {
			return Task{}, corrupted(line, "deadline needs 4 fields")
		}
		by, err := date.Parse(parts[3])
		if err != nil {
			return Task{}, clierr.Newf(clierr.InvalidDate, "corrupted line: %v", err).
				WithDetails(map[string]any{"line": line})
		}
		t = Task{Kind: KindDeadline, Description: description, By: by}
	case KindEvent:
		if len(parts) != eventFields {
			return Task{}, corrupted(line, "event needs 5 fields")
		}
		if parts[3] == "" || parts[4] == "" {
			return Task{}, corrupted(line, "event needs from and to")
		}
		t = NewEvent(description, parts[3], parts[4])
	}

	t.Done = done == 1
	return t, nil
}

// splitFields splits on the pipe delimiter and drops trailing empty fields,
// so "T | 1 | " has two fields rather than three.
func splitFields(line string) []string {
	parts := fieldSep.Split(strings.TrimSpace(line), -1)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func corrupted(line, reason string) *clierr.Error {
	return clierr.Newf(clierr.CorruptedLine, "corrupted line (%s): %s", reason, line).
		WithDetails(map[string]any{"line": line, "reason": reason})
}
