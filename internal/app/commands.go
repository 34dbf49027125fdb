package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/pidtree/internal/completion"
	"github.com/pranshuparmar/pidtree/internal/proc"
)

var treeCmd = &cobra.Command{
	Use:               "tree <pid>",
	Short:             "Show a process and all of its descendants",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completePID,
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := parsePID(args[0])
		if err != nil {
			return err
		}
		return run(cmd, request{view: viewSubtree, pid: pid})
	},
}

var ancestryCmd = &cobra.Command{
	Use:               "ancestry <pid>",
	Short:             "Show the chain of parents leading to a process",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completePID,
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := parsePID(args[0])
		if err != nil {
			return err
		}
		return run(cmd, request{view: viewAncestry, pid: pid})
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Show every process, grouped under its root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, request{view: viewAll})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	// Version output needs no config.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pidtree %s (commit %s, built %s)\n", version, commit, buildDate)
	},
}

func init() {
	ancestryCmd.Flags().BoolVar(&shortOut, "short", false, "print the chain on one line")
}

func parsePID(s string) (uint32, error) {
	pid, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid pid %q", s)
	}
	return uint32(pid), nil
}

// completePID offers running pids, annotated with process names.
func completePID(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	src, err := newSnapshotSource(proc.SourceAuto)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	snap, err := src.Enumerate()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return completion.PIDs(snap, toComplete), cobra.ShellCompDirectiveNoFileComp
}
