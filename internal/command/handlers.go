package command

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/malt/internal/clierr"
	"github.com/twiced-technology-gmbh/malt/internal/task"
)

// Canonical command words.
const (
	cmdList     = "list"
	cmdFind     = "find"
	cmdTodo     = "todo"
	cmdDeadline = "deadline"
	cmdEvent    = "event"
	cmdMark     = "mark"
	cmdUnmark   = "unmark"
	cmdDelete   = "delete"
	cmdClear    = "clear"
	cmdBye      = "bye"
)

// Flags scanned by deadline and event.
const (
	flagBy   = "/by"
	flagFrom = "/from"
	flagTo   = "/to"
)

type handler func(it *Interpreter, args []string) (Response, error)

var handlers = map[string]handler{
	cmdList:     (*Interpreter).list,
	cmdFind:     (*Interpreter).find,
	cmdTodo:     (*Interpreter).todo,
	cmdDeadline: (*Interpreter).deadline,
	cmdEvent:    (*Interpreter).event,
	cmdMark:     (*Interpreter).mark,
	cmdUnmark:   (*Interpreter).unmark,
	cmdDelete:   (*Interpreter).remove,
	cmdClear:    (*Interpreter).clear,
	cmdBye:      (*Interpreter).bye,
}

func (it *Interpreter) list(_ []string) (Response, error) {
	if it.tasks.Size() == 0 {
		return Response{Text: "You haven't added any tasks yet!"}, nil
	}
	return Response{Text: numbered(it.tasks.All())}, nil
}

func (it *Interpreter) find(args []string) (Response, error) {
	var matches []task.Task
	for t := range it.tasks.Find(joinArgs(args)) {
		matches = append(matches, t)
	}
	if len(matches) == 0 {
		return Response{Text: "No matching tasks found."}, nil
	}
	return Response{Text: "Here are the matching tasks in your list:\n" + numbered(matches)}, nil
}

func (it *Interpreter) todo(args []string) (Response, error) {
	description := joinArgs(args)
	if description == "" {
		return Response{}, clierr.New(clierr.MissingArgument,
			"OOPS!!! The description of a todo cannot be empty.")
	}
	return it.add(task.NewTodo(description)), nil
}

func (it *Interpreter) deadline(args []string) (Response, error) {
	description, values, err := scanFlags(args, flagBy)
	if err != nil {
		return Response{}, err
	}
	by := values[flagBy]
	if description == "" || by == "" {
		return Response{}, clierr.New(clierr.MissingArgument,
			"OOPS!!! Both description and /by part cannot be empty.")
	}

	t, err := task.NewDeadline(description, by)
	if err != nil {
		return Response{}, clierr.New(clierr.InvalidDate,
			"Invalid date format! Please use yyyy-MM-dd (e.g., 2023-10-15)").
			WithDetails(map[string]any{"input": by})
	}
	return it.add(t), nil
}

func (it *Interpreter) event(args []string) (Response, error) {
	description, values, err := scanFlags(args, flagFrom, flagTo)
	if err != nil {
		return Response{}, err
	}
	from, to := values[flagFrom], values[flagTo]
	if description == "" || from == "" || to == "" {
		return Response{}, clierr.New(clierr.MissingArgument,
			"OOPS!!! Make sure description, /from, and /to parts are not empty.")
	}
	return it.add(task.NewEvent(description, from, to)), nil
}

func (it *Interpreter) mark(args []string) (Response, error) {
	return it.setDone(args, true, "Perfect, marking this task as done now:")
}

func (it *Interpreter) unmark(args []string) (Response, error) {
	return it.setDone(args, false, "OK, I've unmarked this task:")
}

func (it *Interpreter) remove(args []string) (Response, error) {
	n, err := parseIndex(args)
	if err != nil {
		return Response{}, err
	}
	removed, err := it.tasks.Remove(n - 1)
	if err != nil {
		return Response{}, it.indexError(n, err)
	}

	warnings := it.persist(cmdDelete, removed.String())
	text := "Noted. I've removed this task:\n  " + removed.String() +
		"\nNow you have " + strconv.Itoa(it.tasks.Size()) + " tasks in the list. Get working :("
	return Response{Text: text, Warnings: warnings}, nil
}

func (it *Interpreter) clear(_ []string) (Response, error) {
	it.tasks.Clear()
	warnings := it.persist(cmdClear, "")
	return Response{Text: "All tasks have been cleared!", Warnings: warnings}, nil
}

func (it *Interpreter) bye(_ []string) (Response, error) {
	return Response{Text: "Bye. Hope to see you again soon!", Exit: true}, nil
}

// add appends t, persists, and builds the confirmation.
func (it *Interpreter) add(t task.Task) Response {
	it.tasks.Add(t)
	warnings := it.persist("add", t.String())
	text := "Adding this task:\n  " + t.String() +
		"\nNow you have " + strconv.Itoa(it.tasks.Size()) + " tasks in the list! Get working :("
	return Response{Text: text, Warnings: warnings}
}

func (it *Interpreter) setDone(args []string, done bool, header string) (Response, error) {
	n, err := parseIndex(args)
	if err != nil {
		return Response{}, err
	}
	t, err := it.tasks.SetDone(n-1, done)
	if err != nil {
		return Response{}, it.indexError(n, err)
	}

	action := cmdMark
	if !done {
		action = cmdUnmark
	}
	warnings := it.persist(action, t.String())
	return Response{Text: header + "\n  " + t.String(), Warnings: warnings}, nil
}

// indexError turns a list range error into a message about the 1-based
// number the user typed.
func (it *Interpreter) indexError(n int, err error) error {
	if !errors.Is(err, task.ErrOutOfRange) {
		return err
	}
	return clierr.Newf(clierr.IndexOutOfRange,
		"Task %d does not exist. You have %d tasks in the list.", n, it.tasks.Size()).
		WithDetails(map[string]any{"index": n, "size": it.tasks.Size()})
}

// parseIndex reads the 1-based task number from the argument tail.
func parseIndex(args []string) (int, error) {
	raw := joinArgs(args)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, clierr.New(clierr.InvalidIndex, "Invalid task index provided!").
			WithDetails(map[string]any{"input": raw})
	}
	return n, nil
}

// flagMessages are reported when a flag is the last token.
var flagMessages = map[string]string{
	flagBy:   "Please provide a date after /by.",
	flagFrom: "Please provide a start time after /from.",
	flagTo:   "Please provide an end time after /to.",
}

// scanFlags walks tokens once. A token equal to one of flags consumes the
// token right after it as its value, whatever that token is; every other
// token joins the description. Values are therefore always single tokens.
// A repeated flag keeps its last value.
func scanFlags(tokens []string, flags ...string) (string, map[string]string, error) {
	values := make(map[string]string, len(flags))
	var desc []string

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !slices.Contains(flags, tok) {
			desc = append(desc, tok)
			continue
		}
		if i+1 >= len(tokens) {
			return "", nil, clierr.New(clierr.MissingFlagValue, flagMessages[tok]).
				WithDetails(map[string]any{"flag": tok})
		}
		i++
		values[tok] = tokens[i]
	}

	return strings.TrimSpace(strings.Join(desc, " ")), values, nil
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// numbered renders tasks as a 1-based list, one per line.
func numbered(tasks []task.Task) string {
	var b strings.Builder
	for i, t := range tasks {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(t.String())
	}
	return b.String()
}
