package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/malt/internal/clierr"
	"github.com/twiced-technology-gmbh/malt/internal/output"
	"github.com/twiced-technology-gmbh/malt/internal/storage"
	"github.com/twiced-technology-gmbh/malt/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists tasks straight from the store file with optional filtering and
output format control. Numbers match the ones mark, unmark and delete use.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "only tasks whose description contains this text (case-sensitive; --find also works)")
	listCmd.Flags().BoolP("ignore-case", "i", false, "make --search case-insensitive")
	listCmd.Flags().StringSlice("type", nil, "filter by type: todo, deadline, event (comma-separated)")
	listCmd.Flags().Bool("done", false, "show only done tasks")
	listCmd.Flags().Bool("pending", false, "show only tasks not yet done")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.MarkFlagsMutuallyExclusive("done", "pending")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	search, _ := cmd.Flags().GetString("search")
	ignoreCase, _ := cmd.Flags().GetBool("ignore-case")
	types, _ := cmd.Flags().GetStringSlice("type")
	done, _ := cmd.Flags().GetBool("done")
	pending, _ := cmd.Flags().GetBool("pending")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := task.FilterOptions{Search: search, IgnoreCase: ignoreCase}
	for _, name := range types {
		k, err := task.ParseKind(name)
		if err != nil {
			return clierr.New(clierr.InvalidInput, err.Error()).
				WithDetails(map[string]any{"type": name})
		}
		filter.Kinds = append(filter.Kinds, k)
	}
	if done {
		v := true
		filter.Done = &v
	} else if pending {
		v := false
		filter.Done = &v
	}

	tasks, warnings, err := storage.New(cfg.DataPath()).Load()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		output.Warning(os.Stderr, "Skipping corrupted line: "+w.Text)
	}

	entries := task.Filter(tasks, filter)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	switch outputFormat() {
	case output.FormatJSON:
		if entries == nil {
			entries = []task.Entry{}
		}
		return output.JSON(os.Stdout, entries)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, entries)
	default:
		output.TaskTable(os.Stdout, entries)
	}
	return nil
}
