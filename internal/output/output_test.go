package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/malt/internal/activity"
	"github.com/twiced-technology-gmbh/malt/internal/task"
)

func TestMain(m *testing.M) {
	DisableColor()
	os.Exit(m.Run())
}

func sampleTasks(t *testing.T) []task.Task {
	t.Helper()
	dl, err := task.NewDeadline("return book", "2023-10-15")
	if err != nil {
		t.Fatal(err)
	}
	dl.Done = true
	return []task.Task{
		task.NewTodo("read book"),
		dl,
		task.NewEvent("meeting", "Mon", "4pm"),
	}
}

func TestDetect(t *testing.T) {
	t.Setenv(EnvFormat, "")
	tests := []struct {
		name                 string
		json, table, compact bool
		env                  string
		want                 Format
	}{
		{"default", false, false, false, "", FormatTable},
		{"json flag", true, false, true, "", FormatJSON},
		{"compact flag", false, true, true, "", FormatCompact},
		{"env json", false, false, false, "json", FormatJSON},
		{"env oneline", false, false, false, "oneline", FormatCompact},
		{"flag beats env", false, true, false, "json", FormatTable},
		{"env mixed case", false, false, false, " JSON ", FormatJSON},
		{"env unknown", false, false, false, "yaml", FormatTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvFormat, tt.env)
			if got := Detect(tt.json, tt.table, tt.compact); got != tt.want {
				t.Fatalf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"table": FormatTable, "Json": FormatJSON, "oneline": FormatCompact} {
		got, ok := ParseFormat(name)
		if !ok || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", name, got, ok, want)
		}
	}
	if _, ok := ParseFormat("csv"); ok {
		t.Error("ParseFormat(csv) accepted")
	}
	if FormatCompact.String() != "compact" {
		t.Errorf("FormatCompact.String() = %q", FormatCompact.String())
	}
}

func TestTaskTable(t *testing.T) {
	var buf bytes.Buffer
	TaskTable(&buf, task.Number(sampleTasks(t)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "#") || !strings.Contains(lines[0], "DESCRIPTION") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "deadline") || !strings.Contains(lines[2], "yes") ||
		!strings.Contains(lines[2], "by Oct 15 2023") {
		t.Fatalf("deadline row = %q", lines[2])
	}
	if !strings.Contains(lines[3], "Mon - 4pm") {
		t.Fatalf("event row = %q", lines[3])
	}
}

func TestTaskCompact(t *testing.T) {
	var buf bytes.Buffer
	TaskCompact(&buf, task.Number(sampleTasks(t)))
	want := "1. [T][ ] read book\n2. [D][X] return book (by: Oct 15 2023)\n3. [E][ ] meeting (from: Mon to: 4pm)\n"
	if buf.String() != want {
		t.Fatalf("compact = %q", buf.String())
	}
}

func TestTaskCompactKeepsNumbers(t *testing.T) {
	var buf bytes.Buffer
	TaskCompact(&buf, []task.Entry{{Number: 3, Task: task.NewTodo("third")}})
	if buf.String() != "3. [T][ ] third\n" {
		t.Fatalf("compact = %q", buf.String())
	}
}

func TestHistory(t *testing.T) {
	entries := []activity.Entry{
		{Timestamp: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), Action: "add", Task: "[T][ ] a", Count: 1},
		{Timestamp: time.Date(2024, 3, 1, 9, 31, 0, 0, time.UTC), Action: "clear", Count: 0},
	}

	var buf bytes.Buffer
	HistoryCompact(&buf, entries)
	want := "2024-03-01T09:30:00Z add n=1 [T][ ] a\n2024-03-01T09:31:00Z clear n=0\n"
	if buf.String() != want {
		t.Fatalf("compact history = %q", buf.String())
	}

	buf.Reset()
	HistoryTable(&buf, entries)
	if !strings.Contains(buf.String(), "ACTION") || !strings.Contains(buf.String(), "[T][ ] a") {
		t.Fatalf("history table:\n%s", buf.String())
	}
}

func TestBlock(t *testing.T) {
	var buf bytes.Buffer
	Block(&buf, "hello")
	want := Divider + "\nhello\n" + Divider + "\n"
	if buf.String() != want {
		t.Fatalf("block = %q", buf.String())
	}
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "INVALID_INDEX", "bad", map[string]any{"input": "x"})

	var got ErrorResponse
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Code != "INVALID_INDEX" || got.Error != "bad" || got.Details["input"] != "x" {
		t.Fatalf("got %+v", got)
	}
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown(&buf, "# Commands\n\n- `list` shows tasks\n", 0); err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !strings.Contains(buf.String(), "Commands") || !strings.Contains(buf.String(), "list") {
		t.Fatalf("rendered:\n%s", buf.String())
	}
}
