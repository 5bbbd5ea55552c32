// Package console runs the line-oriented malt session: one command per
// input line, one framed response per command.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/twiced-technology-gmbh/malt/internal/command"
	"github.com/twiced-technology-gmbh/malt/internal/output"
)

// Prompt is shown before each line when input comes from a terminal.
const Prompt = "malt> "

// Session wires an interpreter to a pair of streams.
type Session struct {
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	interp      *command.Interpreter
	interactive bool
}

// New returns a Session. Prompts are printed only when interactive is set.
func New(interp *command.Interpreter, in io.Reader, out, errOut io.Writer, interactive bool) *Session {
	return &Session{
		in:          in,
		out:         out,
		errOut:      errOut,
		interp:      interp,
		interactive: interactive,
	}
}

// Run greets the user and processes lines until bye or end of input.
// Command failures are shown and the loop carries on; only a read error
// ends the session with an error.
func (s *Session) Run() error {
	output.Block(s.out, command.Greeting)

	reader := bufio.NewReader(s.in)
	for {
		if s.interactive {
			fmt.Fprint(s.out, Prompt)
		}
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if s.interactive {
				fmt.Fprintln(s.out)
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

		resp := s.interp.Handle(line)
		for _, w := range resp.Warnings {
			output.Warning(s.errOut, w)
		}

		text := resp.Text
		if !resp.OK() {
			text = output.ErrorText(text)
		}
		output.Block(s.out, text)

		if resp.Exit {
			return nil
		}
	}
}
