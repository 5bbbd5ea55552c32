package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

const defaultWrap = 80

// Markdown renders md for the terminal. Width <= 0 wraps at 80 columns.
func Markdown(w io.Writer, md string, width int) error {
	if width <= 0 {
		width = defaultWrap
	}

	style := glamour.WithAutoStyle()
	if colorDisabled {
		style = glamour.WithStandardStyle("notty")
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
