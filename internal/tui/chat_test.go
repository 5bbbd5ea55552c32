package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/malt/internal/command"
	"github.com/twiced-technology-gmbh/malt/internal/storage"
)

func newTestChat(t *testing.T) (*Chat, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "malt.txt")
	interp, diags := command.Open(storage.New(path))
	c := NewChat(interp, path, diags)
	c.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return c, path
}

func send(t *testing.T, c *Chat, line string) tea.Cmd {
	t.Helper()
	c.input.SetValue(line)
	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestChatGreeting(t *testing.T) {
	c, _ := newTestChat(t)
	if len(c.transcript) != 1 || c.transcript[0].text != command.Greeting {
		t.Fatalf("transcript = %+v", c.transcript)
	}
	if !strings.Contains(c.View(), "What can I help you with?") {
		t.Fatalf("view:\n%s", c.View())
	}
}

func TestChatSubmit(t *testing.T) {
	c, path := newTestChat(t)

	if cmd := send(t, c, "todo read book"); isQuit(cmd) {
		t.Fatal("todo quit the chat")
	}
	if c.input.Value() != "" {
		t.Fatalf("input not cleared: %q", c.input.Value())
	}

	n := len(c.transcript)
	if c.transcript[n-2].from != speakerUser || c.transcript[n-2].text != "todo read book" {
		t.Fatalf("user entry = %+v", c.transcript[n-2])
	}
	if c.transcript[n-1].from != speakerMalt || !strings.HasPrefix(c.transcript[n-1].text, "Adding this task:") {
		t.Fatalf("reply = %+v", c.transcript[n-1])
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "T | 0 | read book\n" {
		t.Fatalf("store = %q, %v", data, err)
	}
}

func TestChatError(t *testing.T) {
	c, _ := newTestChat(t)
	send(t, c, "mark 1")
	last := c.transcript[len(c.transcript)-1]
	if last.from != speakerError || last.text != "Error: Task 1 does not exist. You have 0 tasks in the list." {
		t.Fatalf("last = %+v", last)
	}
}

func TestChatBye(t *testing.T) {
	c, _ := newTestChat(t)
	cmd := send(t, c, "bye")
	if !isQuit(cmd) {
		t.Fatal("bye did not quit")
	}
	if !c.quitting {
		t.Fatal("quitting not set")
	}
	if !strings.Contains(c.View(), "Bye. Hope to see you again soon!") {
		t.Fatalf("view:\n%s", c.View())
	}
}

func TestChatQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		c, _ := newTestChat(t)
		_, cmd := c.Update(msg)
		if !isQuit(cmd) {
			t.Fatalf("%s did not quit", msg.String())
		}
	}
}

func TestChatReload(t *testing.T) {
	c, path := newTestChat(t)
	content := "T | 1 | written elsewhere\nbroken line\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	c.Update(ReloadMsg{})

	tasks := c.interp.Tasks()
	if len(tasks) != 1 || tasks[0].Description != "written elsewhere" || !tasks[0].Done {
		t.Fatalf("tasks = %+v", tasks)
	}
	last := c.transcript[len(c.transcript)-1]
	if last.from != speakerNotice || last.text != "Skipping corrupted line: broken line" {
		t.Fatalf("last = %+v", last)
	}
}

func TestChatNotices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "malt.txt")
	interp, _ := command.Open(storage.New(path))
	c := NewChat(interp, path, []string{"Skipping corrupted line: x"})
	if len(c.transcript) != 2 || c.transcript[1].from != speakerNotice {
		t.Fatalf("transcript = %+v", c.transcript)
	}
	if c.View() != "Loading..." {
		t.Fatal("view before size should be a placeholder")
	}
	if got := c.WatchPaths(); len(got) != 1 || got[0] != path {
		t.Fatalf("WatchPaths = %v", got)
	}
}
