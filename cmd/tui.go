package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/malt/internal/tui"
	"github.com/twiced-technology-gmbh/malt/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"chat"},
	Short:   "Open the chat window",
	Long: `Opens a full-screen chat with malt. Type commands at the bottom; replies
scroll above. Changes made to the store file by other processes are
picked up automatically.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	interp, diags := openInterpreter(cfg)
	model := tui.NewChat(interp, cfg.DataPath(), diags)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startTUIWatcher(ctx, model, p)

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, model *tui.Chat, p *tea.Program) {
	w, err := watcher.New(model.WatchPaths(), func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: chat works without live reload
	}
	defer w.Close()
	w.Run(ctx, nil)
}
