// Package tui implements a terminal chat window for malt.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/malt/internal/command"
)

// Layout constants.
const (
	headerChrome = 1 // title line above the transcript
	footerChrome = 3 // blank line, input line and help line
	bubblePad    = 2
	minWidth     = 20
)

// speaker tags a transcript entry.
type speaker int

const (
	speakerUser speaker = iota
	speakerMalt
	speakerError
	speakerNotice
)

type entry struct {
	from speaker
	text string
}

type keyMap struct {
	send     key.Binding
	quit     key.Binding
	pageUp   key.Binding
	pageDown key.Binding
}

var keys = keyMap{
	send:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	pageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
	pageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
}

// Chat is the top-level bubbletea model: a scrolling transcript above a
// single input line.
type Chat struct {
	interp     *command.Interpreter
	dataPath   string
	input      textinput.Model
	viewport   viewport.Model
	transcript []entry
	width      int
	height     int
	ready      bool
	quitting   bool
}

// NewChat creates a Chat over interp. notices are shown under the greeting,
// typically the diagnostics from loading the store.
func NewChat(interp *command.Interpreter, dataPath string, notices []string) *Chat {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "todo read book"
	in.Focus()

	c := &Chat{
		interp:   interp,
		dataPath: dataPath,
		input:    in,
	}
	c.transcript = append(c.transcript, entry{speakerMalt, command.Greeting})
	for _, n := range notices {
		c.transcript = append(c.transcript, entry{speakerNotice, n})
	}
	return c
}

// WatchPaths returns the files whose changes should trigger a ReloadMsg.
func (c *Chat) WatchPaths() []string {
	return []string{c.dataPath}
}

// Init implements tea.Model.
func (c *Chat) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return c.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(msg)
		return c, cmd
	case tea.WindowSizeMsg:
		c.resize(msg.Width, msg.Height)
		return c, nil
	case ReloadMsg:
		for _, d := range c.interp.Reload() {
			c.transcript = append(c.transcript, entry{speakerNotice, d})
		}
		c.refresh()
		return c, nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *Chat) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		c.quitting = true
		return c, tea.Quit
	case key.Matches(msg, keys.send):
		return c.submit()
	case key.Matches(msg, keys.pageUp), key.Matches(msg, keys.pageDown):
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(msg)
		return c, cmd
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// submit sends the input line to the interpreter and appends both sides of
// the exchange to the transcript.
func (c *Chat) submit() (tea.Model, tea.Cmd) {
	line := c.input.Value()
	c.input.Reset()

	resp := c.interp.Handle(line)
	c.transcript = append(c.transcript, entry{speakerUser, line})
	for _, w := range resp.Warnings {
		c.transcript = append(c.transcript, entry{speakerNotice, w})
	}
	from := speakerMalt
	if !resp.OK() {
		from = speakerError
	}
	c.transcript = append(c.transcript, entry{from, resp.Text})
	c.refresh()

	if resp.Exit {
		c.quitting = true
		return c, tea.Quit
	}
	return c, nil
}

func (c *Chat) resize(width, height int) {
	c.width = max(width, minWidth)
	c.height = height
	vpHeight := max(height-headerChrome-footerChrome, 1)
	if !c.ready {
		c.viewport = viewport.New(c.width, vpHeight)
		c.ready = true
	} else {
		c.viewport.Width = c.width
		c.viewport.Height = vpHeight
	}
	c.input.Width = c.width - lipgloss.Width(c.input.Prompt) - 1
	c.refresh()
}

// refresh re-renders the transcript into the viewport and scrolls to the
// newest message.
func (c *Chat) refresh() {
	if !c.ready {
		return
	}
	c.viewport.SetContent(c.renderTranscript())
	c.viewport.GotoBottom()
}

// View implements tea.Model.
func (c *Chat) View() string {
	if !c.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(" malt "))
	b.WriteByte('\n')
	b.WriteString(c.viewport.View())
	b.WriteString("\n\n")
	if !c.quitting {
		b.WriteString(c.input.View())
	}
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(helpLine()))
	return b.String()
}

func (c *Chat) renderTranscript() string {
	bubbleWidth := max(c.width-bubblePad*2, minWidth/2)
	parts := make([]string, 0, len(c.transcript))
	for _, e := range c.transcript {
		parts = append(parts, renderEntry(e, bubbleWidth))
	}
	return strings.Join(parts, "\n")
}

func renderEntry(e entry, width int) string {
	switch e.from {
	case speakerUser:
		return userStyle.Width(width).Render("you: " + e.text)
	case speakerError:
		return errorStyle.Width(width).Render(e.text)
	case speakerNotice:
		return noticeStyle.Width(width).Render(e.text)
	default:
		return maltStyle.Width(width).Render(e.text)
	}
}

func helpLine() string {
	bindings := []key.Binding{keys.send, keys.pageUp, keys.pageDown, keys.quit}
	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	return " " + strings.Join(parts, "  ")
}

// --- Messages ---

// ReloadMsg is sent by the file watcher when the store file changes on disk.
type ReloadMsg struct{}

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("110")).
			PaddingLeft(bubblePad)

	maltStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("62")).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("196")).
			PaddingLeft(1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Italic(true).
			PaddingLeft(bubblePad)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
