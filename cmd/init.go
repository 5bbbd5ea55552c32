package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/malt/internal/clierr"
	"github.com/twiced-technology-gmbh/malt/internal/config"
	"github.com/twiced-technology-gmbh/malt/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a malt directory",
	Long: `Creates a .malt directory with config.yml in the current directory.
Commands run anywhere below it use its store file.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("data-file", config.DefaultDataFile, "store file name, relative to the malt directory")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	// Check if already initialized.
	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.StoreExists, "malt already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	dataFile, _ := cmd.Flags().GetString("data-file")
	cfg, err := config.Init(absDir, dataFile)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "initialized",
			"dir":    absDir,
			"config": cfg.ConfigPath(),
			"data":   cfg.DataPath(),
		})
	}

	output.Messagef(os.Stdout, "Initialized malt in %s", absDir)
	output.Messagef(os.Stdout, "  Config: %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Store:  %s", cfg.DataPath())
	output.Messagef(os.Stdout, "  Hint:   Run 'malt guide' for the command reference")
	return nil
}
