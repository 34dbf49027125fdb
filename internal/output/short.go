package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/pranshuparmar/pidtree/pkg/model"
)

var (
	colorResetShort   = "\033[0m"
	colorMagentaShort = "\033[35m"
	colorBoldShort    = "\033[2m"
)

// RenderShort formats an ancestry chain on a single line,
// e.g. "init (pid 1) → bash (pid 100)".
func RenderShort(chain []*model.PidNode, colorEnabled bool) string {
	var b strings.Builder
	for i, p := range chain {
		if i > 0 {
			if colorEnabled {
				b.WriteString(colorMagentaShort + " → " + colorResetShort)
			} else {
				b.WriteString(" → ")
			}
		}
		if colorEnabled {
			fmt.Fprintf(&b, "%s (%spid %d%s)", p.Info.Name, colorBoldShort, p.PID, colorResetShort)
		} else {
			fmt.Fprintf(&b, "%s (pid %d)", p.Info.Name, p.PID)
		}
	}
	return b.String()
}

// PrintShort writes RenderShort's line to w.
func PrintShort(w io.Writer, chain []*model.PidNode, colorEnabled bool) {
	fmt.Fprintln(w, RenderShort(chain, colorEnabled))
}
