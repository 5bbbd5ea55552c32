package activity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRecordAndRecent(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	l.Record("add", "[T][ ] read book", 1)
	l.Record("mark", "[T][X] read book", 1)
	l.Record("clear", "", 0)

	entries, err := l.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Action != "add" || entries[2].Action != "clear" {
		t.Fatalf("entries out of order: %+v", entries)
	}
	if !entries[1].Timestamp.Equal(fixed) {
		t.Fatalf("timestamp = %v", entries[1].Timestamp)
	}

	last, err := l.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(last) != 2 || last[0].Action != "mark" {
		t.Fatalf("Recent(2) = %+v", last)
	}
}

func TestRecentMissingLog(t *testing.T) {
	entries, err := New(t.TempDir()).Recent(5)
	if err != nil || len(entries) != 0 {
		t.Fatalf("Recent = %v, %v", entries, err)
	}
}

func TestRecordIgnoresWriteErrors(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "missing"))
	l.Record("add", "x", 1) // must not panic
	if _, err := os.Stat(l.Path()); err == nil {
		t.Fatal("log file unexpectedly created")
	}
}

func TestTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	var buf strings.Builder
	for i := range 12 {
		fmt.Fprintf(&buf, `{"action":"a%d","count":%d}`+"\n", i, i)
	}
	if err := os.WriteFile(path, []byte(buf.String()), logFileMode); err != nil {
		t.Fatal(err)
	}

	if err := truncateIfNeeded(path, 5); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	lines, err := readLines(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 5 || !strings.Contains(lines[0], `"a7"`) {
		t.Fatalf("lines after truncate = %v", lines)
	}
}

func TestLongEntry(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)
	long := strings.Repeat("z", 70000)

	l.Record("add", "[T][ ] "+long, 1)
	l.Record("delete", "[T][ ] short", 0)

	entries, err := l.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 || entries[0].Task != "[T][ ] "+long || entries[1].Action != "delete" {
		t.Fatalf("got %d entries", len(entries))
	}

	if err := truncateIfNeeded(l.Path(), 1); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	entries, err = l.Recent(0)
	if err != nil || len(entries) != 1 || entries[0].Action != "delete" {
		t.Fatalf("after truncate = %+v, %v", entries, err)
	}
}
