package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pranshuparmar/pidtree/internal/proc"
	"github.com/pranshuparmar/pidtree/pkg/model"
)

var testSnapshot = model.Snapshot{
	{PID: 1, PPID: 0, Name: "init"},
	{PID: 2, PPID: 1, Name: "sshd"},
	{PID: 3, PPID: 1, Name: "cron"},
	{PID: 4, PPID: 99, Name: "orphan"},
}

func testExtractor(pid uint32) (model.ProcessInfo, error) {
	switch pid {
	case 1:
		return model.ProcessInfo{Path: "/sbin/init", Arguments: "init splash"}, nil
	case 2:
		return model.ProcessInfo{Path: "/usr/sbin/sshd", Arguments: "sshd -D"}, nil
	case 3:
		return proc.DeniedInfo(), nil
	}
	return model.ProcessInfo{}, nil
}

// resetFlags puts every flag of cmd and its subcommands back to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// runApp executes the root command against a fixed snapshot.
func runApp(t *testing.T, snap model.Snapshot, snapErr error, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	newSnapshotSource = func(kind string) (proc.SnapshotSource, error) {
		if _, err := proc.NewSnapshotSource(kind); err != nil {
			return nil, err
		}
		return proc.SnapshotFunc(func() (model.Snapshot, error) { return snap, snapErr }), nil
	}
	newExtractor = func() (proc.InfoExtractor, error) {
		return proc.ExtractorFunc(testExtractor), nil
	}
	t.Cleanup(func() {
		newSnapshotSource = proc.NewSnapshotSource
		newExtractor = proc.NewExtractor
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	code = execute(rootCmd)
	return out.String(), errOut.String(), code
}

func TestTreeCommand(t *testing.T) {
	out, _, code := runApp(t, testSnapshot, nil, "tree", "1", "--pid")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	want := "(1) init\n ╠═ (2) sshd\n ╚═ (3) cron\n"
	if out != want {
		t.Errorf("output:\n%s\nwant:\n%s", out, want)
	}
}

func TestTreeWithPathAndArgs(t *testing.T) {
	out, _, code := runApp(t, testSnapshot, nil, "tree", "1", "--path", "--args")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	want := "/sbin/init init splash\n" +
		" ╠═ /usr/sbin/sshd sshd -D\n" +
		" ╚═ Access is denied. Access is denied.\n"
	if out != want {
		t.Errorf("output:\n%s\nwant:\n%s", out, want)
	}
}

func TestTreeNotFound(t *testing.T) {
	out, errOut, code := runApp(t, testSnapshot, nil, "tree", "999")
	if code != exitNotFound {
		t.Errorf("exit code = %d, want %d", code, exitNotFound)
	}
	if out != "" {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(errOut, "process 999 not found") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestAncestryCommand(t *testing.T) {
	out, _, code := runApp(t, testSnapshot, nil, "ancestry", "3", "--pid")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if want := "(1) init\n ╚═ (3) cron\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestAncestryShort(t *testing.T) {
	out, _, code := runApp(t, testSnapshot, nil, "ancestry", "3", "--short")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if want := "init (pid 1) → cron (pid 3)\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestAllCommand(t *testing.T) {
	out, _, code := runApp(t, testSnapshot, nil, "all", "--pid")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	want := "PID     Process Name\n" +
		"(0) [System Process]\n" +
		" ╚═ (4) orphan\n" +
		"(1) init\n" +
		" ╠═ (2) sshd\n" +
		" ╚═ (3) cron\n"
	if out != want {
		t.Errorf("output:\n%s\nwant:\n%s", out, want)
	}
}

func TestAllJSON(t *testing.T) {
	out, _, code := runApp(t, testSnapshot, nil, "all", "--json")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	var report struct {
		Roots []model.PidNode `json:"roots"`
		Stats struct {
			Total  int `json:"total"`
			Denied int `json:"denied"`
		} `json:"stats"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(report.Roots) != 2 {
		t.Errorf("got %d roots, want 2", len(report.Roots))
	}
	if report.Stats.Total != 5 || report.Stats.Denied != 1 {
		t.Errorf("stats = %+v", report.Stats)
	}
}

func TestSummary(t *testing.T) {
	_, errOut, code := runApp(t, testSnapshot, nil, "tree", "1", "--args", "--summary")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(errOut, "Found 3 processes (1 access denied)") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestSnapshotFailureIsFatal(t *testing.T) {
	out, errOut, code := runApp(t, nil, errors.New("toolhelp unavailable"), "all")
	if code != exitFailure {
		t.Errorf("exit code = %d, want %d", code, exitFailure)
	}
	if out != "" {
		t.Errorf("partial output written: %q", out)
	}
	if !strings.Contains(errOut, "process snapshot failed") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestInvalidUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad pid", []string{"tree", "abc"}},
		{"missing pid", []string{"ancestry"}},
		{"unknown source", []string{"all", "--source", "wmi"}},
		{"zero workers", []string{"all", "--workers", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, code := runApp(t, testSnapshot, nil, tt.args...)
			if code != exitFailure {
				t.Errorf("exit code = %d, want %d", code, exitFailure)
			}
			if !strings.Contains(errOut, "Error:") {
				t.Errorf("stderr = %q", errOut)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, _, code := runApp(t, nil, nil, "version")
	if code != exitOK || !strings.HasPrefix(out, "pidtree dev") {
		t.Errorf("version = %q, code %d", out, code)
	}
}

func TestHelp(t *testing.T) {
	out, _, code := runApp(t, nil, nil, "--help")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "Usage:") {
		t.Errorf("Help output missing 'Usage:'. Got: %s", out)
	}
}

func TestCompletePID(t *testing.T) {
	newSnapshotSource = func(string) (proc.SnapshotSource, error) {
		return proc.SnapshotFunc(func() (model.Snapshot, error) {
			return model.Snapshot{{PID: 5000001, Name: "init"}, {PID: 6000000, Name: "other"}}, nil
		}), nil
	}
	defer func() { newSnapshotSource = proc.NewSnapshotSource }()

	got, directive := completePID(treeCmd, nil, "5")
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v", directive)
	}
	if len(got) != 1 || got[0] != "5000001\tinit" {
		t.Errorf("candidates = %q", got)
	}

	if got, _ := completePID(treeCmd, []string{"1"}, ""); got != nil {
		t.Errorf("completed a second argument: %q", got)
	}
}

func TestParsePID(t *testing.T) {
	if pid, err := parsePID("4242"); err != nil || pid != 4242 {
		t.Errorf("parsePID(4242) = %d, %v", pid, err)
	}
	for _, s := range []string{"", "-1", "abc", "99999999999"} {
		if _, err := parsePID(s); err == nil {
			t.Errorf("parsePID(%q) succeeded", s)
		}
	}
}
