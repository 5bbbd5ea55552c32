// Package cmd implements the malt CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/malt/internal/activity"
	"github.com/twiced-technology-gmbh/malt/internal/clierr"
	"github.com/twiced-technology-gmbh/malt/internal/command"
	"github.com/twiced-technology-gmbh/malt/internal/config"
	"github.com/twiced-technology-gmbh/malt/internal/console"
	"github.com/twiced-technology-gmbh/malt/internal/output"
	"github.com/twiced-technology-gmbh/malt/internal/storage"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "malt",
	Short: "A small personal task assistant",
	Long: `malt keeps a list of todos, deadlines and events in a plain text file.
Run malt with no arguments to start a console session, or use malt exec
to run a single command from scripts.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runConsole,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to malt directory (default: $"+config.EnvDir+", nearest .malt, ~/"+config.HomeDir+")")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
}

// normalizeFlagName maps flag spellings borrowed from the console commands
// onto the CLI's own flag names.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "find":
		name = "search"
	case "no-colour":
		name = "no-color"
	}
	return pflag.NormalizedName(name)
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// SilentError: exit with its code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat() == output.FormatJSON {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error: report as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, "Error:", err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// resolveDir returns the absolute path to the malt directory.
func resolveDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return config.ResolveDir(flagDir, cwd)
}

// loadConfig finds and loads the malt config. A resolved directory without
// a config yet is initialized with defaults.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}
	return config.LoadOrInit(dir)
}

// openInterpreter loads the store named by cfg and returns an interpreter
// over it along with any load diagnostics.
func openInterpreter(cfg *config.Config) (*command.Interpreter, []string) {
	opts := []command.Option{command.WithAliases(cfg.Aliases)}
	if cfg.ActivityLog {
		opts = append(opts, command.WithRecorder(activity.New(cfg.Dir())))
	}
	return command.Open(storage.New(cfg.DataPath()), opts...)
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// printWarnings writes diagnostics to stderr.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		output.Warning(os.Stderr, w)
	}
}

// stdinIsTerminal reports whether stdin is attached to a terminal.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
}

func runConsole(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	interp, diags := openInterpreter(cfg)
	printWarnings(diags)

	return console.New(interp, os.Stdin, os.Stdout, os.Stderr, stdinIsTerminal()).Run()
}
