package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/malt/internal/activity"
	"github.com/twiced-technology-gmbh/malt/internal/task"
)

// Divider frames console responses.
const Divider = "____________________________________________"

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	kindStyles = map[string]lipgloss.Style{
		"todo":     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		"deadline": lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"event":    lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	}

	colorDisabled bool
)

// DisableColor strips all styling from output and pins the renderer to
// plain ASCII.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	warningStyle = lipgloss.NewStyle()
	errorStyle = lipgloss.NewStyle()
	kindStyles = map[string]lipgloss.Style{}
	lipgloss.SetColorProfile(termenv.Ascii)
	colorDisabled = true
}

// TaskTable renders entries as a table keyed by their list number.
func TaskTable(w io.Writer, entries []task.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	numW, kindW, doneW, descW := 3, 10, 6, 13
	for _, e := range entries {
		numW = max(numW, len(strconv.Itoa(e.Number))+pad)
		descW = max(descW, min(len(e.Task.Description)+pad, 50)) //nolint:mnd // max description column width
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
		numW, "#", kindW, "TYPE", doneW, "DONE", descW, "DESCRIPTION", "WHEN")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, e := range entries {
		t := e.Task
		desc := t.Description
		const maxDesc = 48
		if len(desc) > maxDesc {
			desc = desc[:maxDesc-3] + "..."
		}
		done := dimStyle.Render("--")
		if t.Done {
			done = doneStyle.Render("yes")
		}

		row := fmt.Sprintf("%-*d %s %s %s %s",
			numW, e.Number,
			padRight(styledValue(t.Kind.String(), kindStyles), kindW),
			padRight(done, doneW),
			padRight(desc, descW),
			when(t))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// HistoryTable renders activity entries, oldest first.
func HistoryTable(w io.Writer, entries []activity.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}

	header := fmt.Sprintf("%-16s %-8s %5s  %s", "TIME", "ACTION", "COUNT", "TASK")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		taskText := e.Task
		if taskText == "" {
			taskText = dimStyle.Render("--")
		}
		fmt.Fprintf(w, "%-16s %-8s %5d  %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04"), e.Action, e.Count, taskText)
	}
}

// Block writes text framed by divider lines, the way the console shows
// every response.
func Block(w io.Writer, text string) {
	fmt.Fprintln(w, dimStyle.Render(Divider))
	fmt.Fprintln(w, text)
	fmt.Fprintln(w, dimStyle.Render(Divider))
}

// Warning writes a "Warning: ..." line.
func Warning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render("Warning: "+msg))
}

// ErrorText styles a failed response.
func ErrorText(s string) string {
	return errorStyle.Render(s)
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// when describes the time part of a task, or a dash for todos.
func when(t task.Task) string {
	switch t.Kind {
	case task.KindDeadline:
		return "by " + t.By.Display()
	case task.KindEvent:
		return t.From + " - " + t.To
	default:
		return dimStyle.Render("--")
	}
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
