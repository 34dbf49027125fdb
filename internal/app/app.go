package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pranshuparmar/pidtree/internal/config"
	"github.com/pranshuparmar/pidtree/internal/logging"
	"github.com/pranshuparmar/pidtree/internal/proc"
)

var log = logging.L("cli")

// Exit codes
const (
	exitOK       = 0
	exitFailure  = 1 // Setup failure or invalid usage
	exitNotFound = 2 // Requested pid is not in the snapshot
)

// Set at build time via -ldflags.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// Seams for tests.
var (
	newSnapshotSource = proc.NewSnapshotSource
	newExtractor      = proc.NewExtractor
)

var (
	cfgFile  string
	noColor  bool
	jsonOut  bool
	watch    bool
	summary  bool
	shortOut bool

	cfg *config.Config
)

// notFoundError reports a pid missing from the snapshot.
type notFoundError struct {
	pid uint32
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("process %d not found", e.pid)
}

var rootCmd = &cobra.Command{
	Use:   "pidtree",
	Short: "Show the process tree with image paths and command lines",
	Long: `pidtree reads the live process table, rebuilds parent/child relationships
and prints them as a tree. With --path and --args every process is opened
to read its image path and command line; processes that cannot be opened
show "` + proc.AccessDeniedText + `".`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/pidtree/pidtree.yaml)")
	pf.Bool("pid", false, "show process ids")
	pf.Bool("path", false, "show image paths instead of names")
	pf.Bool("args", false, "show command lines")
	pf.Bool("sort", false, "sort children by pid")
	pf.String("color", config.ColorAuto, "color output: auto, always, never")
	pf.BoolVar(&noColor, "no-color", false, "disable colors")
	pf.BoolVar(&jsonOut, "json", false, "output as JSON")
	pf.BoolVar(&watch, "watch", false, "interactive view with live refresh")
	pf.BoolVar(&summary, "summary", false, "print a process count summary to stderr")
	pf.String("source", proc.SourceAuto, "process snapshot source: auto, native, exec")
	pf.Int("workers", 8, "concurrent process reads")
	pf.Int("refresh", 2, "refresh interval in seconds for --watch")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")

	rootCmd.AddCommand(treeCmd, ancestryCmd, allCmd, versionCmd)
}

// setup loads configuration and configures logging before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if noColor {
		loaded.Color = config.ColorNever
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = loaded

	logging.Init(cfg.LogFormat, cfg.LogLevel, cmd.ErrOrStderr())
	log.Debug("config loaded", "source", cfg.Source, "workers", cfg.Workers)
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return execute(rootCmd)
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		var nf *notFoundError
		if errors.As(err, &nf) {
			return exitNotFound
		}
		return exitFailure
	}
	return exitOK
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
