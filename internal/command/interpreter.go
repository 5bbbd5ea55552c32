// Package command interprets single-line malt commands against a task list
// and writes the list back to its store after every change.
package command

import (
	"maps"
	"slices"
	"strings"

	"github.com/twiced-technology-gmbh/malt/internal/clierr"
	"github.com/twiced-technology-gmbh/malt/internal/storage"
	"github.com/twiced-technology-gmbh/malt/internal/task"
)

// Greeting is shown by interactive front ends before the first command.
const Greeting = "Hey! I'm Malt, like the chocolate Maltesers hehe\nWhat can I help you with?"

// Store loads and saves the full task list.
type Store interface {
	Load() ([]task.Task, []storage.LineWarning, error)
	Save(tasks []task.Task) error
}

// Recorder is notified once per successful mutation.
type Recorder interface {
	Record(action, taskText string, count int)
}

// Response is the outcome of one command line.
type Response struct {
	Text     string   `json:"text"`
	Exit     bool     `json:"exit"`
	Code     string   `json:"code,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// OK reports whether the command succeeded.
func (r Response) OK() bool {
	return r.Code == ""
}

// DefaultAliases maps the built-in short forms to their commands.
var DefaultAliases = map[string]string{
	"t":  cmdTodo,
	"dl": cmdDeadline,
	"ev": cmdEvent,
	"b":  cmdBye,
	"c":  cmdClear,
}

// Interpreter runs commands against a task list. It holds no locks:
// callers must not invoke it from more than one goroutine at a time.
type Interpreter struct {
	tasks    *task.List
	store    Store
	recorder Recorder
	aliases  map[string]string
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithAliases adds extra aliases on top of DefaultAliases. Entries whose
// name is a command, or whose target is not one, are ignored.
func WithAliases(aliases map[string]string) Option {
	return func(it *Interpreter) {
		for name, target := range aliases {
			name = strings.ToLower(name)
			if IsCommand(name) || !IsCommand(target) {
				continue
			}
			it.aliases[name] = target
		}
	}
}

// WithRecorder reports every successful mutation to r.
func WithRecorder(r Recorder) Option {
	return func(it *Interpreter) {
		it.recorder = r
	}
}

// New returns an Interpreter over tasks that persists to store.
func New(tasks *task.List, store Store, opts ...Option) *Interpreter {
	it := &Interpreter{
		tasks:   tasks,
		store:   store,
		aliases: maps.Clone(DefaultAliases),
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Open hydrates a new Interpreter from store. The returned diagnostics
// describe skipped lines and load failures; neither is fatal.
func Open(store Store, opts ...Option) (*Interpreter, []string) {
	it := New(task.NewList(nil), store, opts...)
	return it, it.Reload()
}

// Reload replaces the in-memory list with the store's content. A store
// that cannot be read leaves the interpreter with an empty list.
func (it *Interpreter) Reload() []string {
	tasks, warnings, err := it.store.Load()

	diags := make([]string, 0, len(warnings)+1)
	for _, w := range warnings {
		diags = append(diags, "Skipping corrupted line: "+w.Text)
	}
	if err != nil {
		diags = append(diags, "Error loading tasks: "+err.Error())
		tasks = nil
	}

	it.tasks = task.NewList(tasks)
	return diags
}

// Tasks returns a snapshot of the current list.
func (it *Interpreter) Tasks() []task.Task {
	return it.tasks.All()
}

// Aliases returns the active alias table.
func (it *Interpreter) Aliases() map[string]string {
	return maps.Clone(it.aliases)
}

// Handle runs line and folds any command error into the response text, so
// front ends can display the result without inspecting the error.
func (it *Interpreter) Handle(line string) Response {
	resp, err := it.Execute(line)
	if err != nil {
		return Response{
			Text: "Error: " + err.Error(),
			Code: clierr.CodeOf(err),
		}
	}
	return resp
}

// Execute parses and runs one command line. Malformed commands, bad
// indices and bad dates come back as *clierr.Error and leave the list
// untouched. A failed save does not undo the change; it is reported in
// Response.Warnings instead.
func (it *Interpreter) Execute(line string) (Response, error) {
	name, args, err := it.parse(line)
	if err != nil {
		return Response{}, err
	}

	h, ok := handlers[name]
	if !ok {
		return Response{}, clierr.New(clierr.UnrecognizedCommand,
			"I'm sorry, but I don't know what that means!").
			WithDetails(map[string]any{"command": name})
	}
	return h(it, args)
}

// parse splits line on whitespace and resolves the command word.
func (it *Interpreter) parse(line string) (string, []string, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return "", nil, clierr.New(clierr.EmptyCommand, "No command provided!")
	}

	name := strings.ToLower(tokens[0])
	if target, ok := it.aliases[name]; ok {
		name = target
	}
	return name, tokens[1:], nil
}

// persist rewrites the store and records the mutation. A save failure is
// returned as a warning for the response.
func (it *Interpreter) persist(action, taskText string) []string {
	var warnings []string
	if err := it.store.Save(it.tasks.All()); err != nil {
		warnings = append(warnings, "Error saving tasks: "+err.Error())
	}
	if it.recorder != nil {
		it.recorder.Record(action, taskText, it.tasks.Size())
	}
	return warnings
}

// Commands returns the canonical command names in sorted order.
func Commands() []string {
	return slices.Sorted(maps.Keys(handlers))
}

// IsCommand reports whether name is a canonical command.
func IsCommand(name string) bool {
	_, ok := handlers[name]
	return ok
}
