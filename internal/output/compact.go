package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/twiced-technology-gmbh/malt/internal/activity"
	"github.com/twiced-technology-gmbh/malt/internal/task"
)

// TaskCompact renders entries one per line in the console's list format.
func TaskCompact(w io.Writer, entries []task.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, e := range entries {
		fmt.Fprintln(w, strconv.Itoa(e.Number)+". "+e.Task.String())
	}
}

// HistoryCompact renders activity entries one per line.
func HistoryCompact(w io.Writer, entries []activity.Entry) {
	for _, e := range entries {
		line := e.Timestamp.UTC().Format("2006-01-02T15:04:05Z") + " " + e.Action + " n=" + strconv.Itoa(e.Count)
		if e.Task != "" {
			line += " " + e.Task
		}
		fmt.Fprintln(w, line)
	}
}
