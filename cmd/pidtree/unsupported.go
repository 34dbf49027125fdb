//go:build js || wasip1 || plan9

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(
		os.Stderr,
		"pidtree needs access to the host process table and cannot run on this platform.\n\nPlease use Linux, macOS, Windows, or FreeBSD to build and run pidtree.",
	)
	os.Exit(1)
}
