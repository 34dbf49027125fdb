package output

import (
	"fmt"
	"io"
	"time"

	"github.com/pranshuparmar/pidtree/internal/tree"
)

var (
	summaryColorReset  = "\033[0m"
	summaryColorGreen  = "\033[32m"
	summaryColorYellow = "\033[33m"
)

// PrintSummary writes the footer shown after a populated tree:
// node count, how many processes could not be read, and elapsed time.
func PrintSummary(w io.Writer, nodes int, stats tree.Stats, elapsed time.Duration, colorEnabled bool) {
	fmt.Fprintln(w)
	if colorEnabled {
		fmt.Fprintf(w, "%sFound %d processes%s", summaryColorGreen, nodes, summaryColorReset)
	} else {
		fmt.Fprintf(w, "Found %d processes", nodes)
	}
	if stats.Denied > 0 {
		if colorEnabled {
			fmt.Fprintf(w, " (%s%d access denied%s)", summaryColorYellow, stats.Denied, summaryColorReset)
		} else {
			fmt.Fprintf(w, " (%d access denied)", stats.Denied)
		}
	}
	if stats.Failed > 0 {
		if colorEnabled {
			fmt.Fprintf(w, " (%s%d errors%s)", summaryColorYellow, stats.Failed, summaryColorReset)
		} else {
			fmt.Fprintf(w, " (%d errors)", stats.Failed)
		}
	}
	fmt.Fprintf(w, " (%.1fs)\n", elapsed.Seconds())
}
