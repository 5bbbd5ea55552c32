package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/malt/internal/output"
)

const guide = "# malt\n\n" +
	"Type one command per line. Command words are case-insensitive; descriptions are kept as typed.\n\n" +
	"## Adding tasks\n\n" +
	"| Command | Short | Example |\n" +
	"|---|---|---|\n" +
	"| `todo DESCRIPTION` | `t` | `todo read book` |\n" +
	"| `deadline DESCRIPTION /by YYYY-MM-DD` | `dl` | `deadline return book /by 2023-10-15` |\n" +
	"| `event DESCRIPTION /from START /to END` | `ev` | `event meeting /from Mon /to 4pm` |\n\n" +
	"Flags may appear anywhere after the command word. Each flag takes exactly the one word that follows it; " +
	"other words belong to the description.\n\n" +
	"## Working with the list\n\n" +
	"- `list` shows every task with its number.\n" +
	"- `find KEYWORD` shows tasks whose description contains KEYWORD (case-sensitive).\n" +
	"- `mark N` / `unmark N` flag task N as done or not done.\n" +
	"- `delete N` removes task N; later tasks move up one number.\n" +
	"- `clear` (`c`) removes every task.\n" +
	"- `bye` (`b`) ends the session.\n\n" +
	"## Store file\n\n" +
	"Tasks are saved after every change, one per line:\n\n" +
	"```\n" +
	"T | 0 | read book\n" +
	"D | 1 | return book | 2023-10-15\n" +
	"E | 0 | meeting | Mon | 4pm\n" +
	"```\n\n" +
	"Lines that cannot be read are skipped with a warning. Descriptions must not contain `|`.\n\n" +
	"## Extra aliases\n\n" +
	"`malt config set aliases.td todo` makes `td` run `todo`.\n"

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the command reference",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		width := 0
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil { //nolint:gosec // fd fits in int
			width = w
		}
		return output.Markdown(os.Stdout, guide, width)
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
