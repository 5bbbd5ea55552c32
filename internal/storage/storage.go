// Package storage persists the task list as a plain text file, one encoded
// task per line.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/twiced-technology-gmbh/malt/internal/clierr"
	"github.com/twiced-technology-gmbh/malt/internal/task"
)

const fileMode = 0o600

// LineWarning describes a store line that could not be decoded and was
// skipped during Load.
type LineWarning struct {
	Line int    // 1-based line number
	Text string // raw line content
	Err  error
}

// File is a store file. It does not create parent directories; that is
// left to whoever bootstraps the malt directory.
type File struct {
	path string
}

// New returns a File backed by path.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the store file path.
func (f *File) Path() string {
	return f.path
}

// Load reads every task from the store. A missing file is an empty list.
// Lines that fail to decode are skipped and reported as warnings; the
// remaining lines still load. Blank lines are ignored without a warning.
func (f *File) Load() ([]task.Task, []LineWarning, error) {
	data, err := os.ReadFile(f.path) //nolint:gosec // store path from trusted config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, clierr.Newf(clierr.StorageError, "reading %s: %v", f.path, err).
			WithDetails(map[string]any{"path": f.path})
	}

	var tasks []task.Task
	var warnings []LineWarning
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, decodeErr := task.Decode(line)
		if decodeErr != nil {
			warnings = append(warnings, LineWarning{Line: i + 1, Text: line, Err: decodeErr})
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks, warnings, nil
}

// Save replaces the store with tasks, one encoded line each, newline
// terminated. The file is always rewritten in full.
func (f *File) Save(tasks []task.Task) error {
	var buf bytes.Buffer
	for _, t := range tasks {
		buf.WriteString(t.Encode())
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(f.path, buf.Bytes(), fileMode); err != nil {
		return clierr.Newf(clierr.StorageError, "writing %s: %v", f.path, err).
			WithDetails(map[string]any{"path": f.path})
	}
	return nil
}

// String implements fmt.Stringer for diagnostics.
func (w LineWarning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Text)
}
