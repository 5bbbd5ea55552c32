package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/malt/internal/clierr"
	"github.com/twiced-technology-gmbh/malt/internal/command"
	"github.com/twiced-technology-gmbh/malt/internal/filelock"
	"github.com/twiced-technology-gmbh/malt/internal/output"
)

var execCmd = &cobra.Command{
	Use:     "exec COMMAND...",
	Aliases: []string{"do", "x"},
	Short:   "Run a single malt command",
	Long: `Runs one command line exactly as the console would, then exits.
Exits 1 if the command was rejected.

Examples:
  malt exec todo read book
  malt exec deadline return book /by 2023-10-15
  malt exec --json mark 2`,
	Args: cobra.ArbitraryArgs,
	RunE: runExec,
}

func init() {
	// Everything after the command word belongs to the command line.
	execCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(execCmd)
}

func runExec(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	line := strings.Join(args, " ")
	var (
		resp  command.Response
		diags []string
	)
	err = filelock.With(cfg.LockPath(), func() error {
		var interp *command.Interpreter
		interp, diags = openInterpreter(cfg)
		resp = interp.Handle(line)
		return nil
	})
	if err != nil {
		return clierr.Newf(clierr.StorageError, "%v", err)
	}

	if outputFormat() == output.FormatJSON {
		result := output.CommandResult{
			Command:  line,
			OK:       resp.OK(),
			Text:     resp.Text,
			Exit:     resp.Exit,
			Code:     resp.Code,
			Warnings: append(diags, resp.Warnings...),
		}
		if err := output.JSON(os.Stdout, result); err != nil {
			return err
		}
	} else {
		printWarnings(diags)
		printWarnings(resp.Warnings)
		if resp.OK() {
			fmt.Fprintln(os.Stdout, resp.Text)
		} else {
			fmt.Fprintln(os.Stderr, output.ErrorText(resp.Text))
		}
	}

	if !resp.OK() {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}
