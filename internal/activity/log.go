// Package activity keeps an append-only JSONL record of task mutations
// next to the store file.
package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// FileName is the activity log's name inside the malt directory.
	FileName      = "activity.jsonl"
	logFileMode   = 0o600
	maxLogEntries = 10000 // truncate oldest entries when log exceeds this size
)

// Entry is a single activity log record.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Task      string    `json:"task,omitempty"`
	Count     int       `json:"count"`
}

// Log appends entries to the activity file in a malt directory.
type Log struct {
	path string
	now  func() time.Time
}

// New returns a Log writing to FileName inside dir.
func New(dir string) *Log {
	return &Log{path: filepath.Join(dir, FileName), now: time.Now}
}

// Path returns the activity file path.
func (l *Log) Path() string {
	return l.path
}

// Record appends an entry for a mutation. Errors are silently discarded
// because logging should never fail a command.
func (l *Log) Record(action, taskText string, count int) {
	_ = l.Append(Entry{
		Timestamp: l.now(),
		Action:    action,
		Task:      taskText,
		Count:     count,
	})
}

// Append writes entry to the log. If the log exceeds maxLogEntries, the
// oldest entries are truncated.
func (l *Log) Append(entry Entry) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from trusted malt dir
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	// Truncate if needed (best-effort; errors are non-fatal).
	_ = truncateIfNeeded(l.path, maxLogEntries)

	return nil
}

// Recent returns up to n of the newest entries, oldest first. A missing
// log yields no entries. Lines that are not valid JSON are skipped.
func (l *Log) Recent(n int) ([]Entry, error) {
	lines, err := readLines(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading log file: %w", err)
	}

	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// truncateIfNeeded rewrites the log keeping only the newest limit lines.
func truncateIfNeeded(path string, limit int) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	if len(lines) <= limit {
		return nil
	}

	lines = lines[len(lines)-limit:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // trusted path
	if err != nil {
		return nil, err
	}

	var lines []string
	for line := range strings.SplitSeq(string(data), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
