package proc

import (
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/pranshuparmar/pidtree/internal/proc/mocks"
	"github.com/pranshuparmar/pidtree/pkg/model"
)

func TestParsePS(t *testing.T) {
	out := "    1     0 launchd\n" +
		"  123     1 /usr/libexec/logd\n" +
		"  456   123 Google Chrome Helper\n" +
		"garbage line\n" +
		"  789   abc bad-ppid\n" +
		"\n"

	snap := parsePS(out)
	want := model.Snapshot{
		{PID: 1, PPID: 0, Name: "launchd"},
		{PID: 123, PPID: 1, Name: "/usr/libexec/logd"},
		{PID: 456, PPID: 123, Name: "Google Chrome Helper"},
	}
	if len(snap) != len(want) {
		t.Fatalf("got %d records, want %d: %+v", len(snap), len(want), snap)
	}
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, snap[i], want[i])
		}
	}
}

func TestParseWMIC(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    model.Snapshot
		wantErr bool
	}{
		{
			name: "standard",
			out: "\r\n" +
				"Node,Name,ParentProcessId,ProcessId\r\n" +
				"HOST,System Idle Process,0,0\r\n" +
				"HOST,System,0,4\r\n" +
				"HOST,explorer.exe,3920,5012\r\n",
			want: model.Snapshot{
				{PID: 0, PPID: 0, Name: "System Idle Process"},
				{PID: 4, PPID: 0, Name: "System"},
				{PID: 5012, PPID: 3920, Name: "explorer.exe"},
			},
		},
		{
			name: "reordered columns",
			out:  "Node,ProcessId,Name,ParentProcessId\nHOST,700,services.exe,600\n",
			want: model.Snapshot{{PID: 700, PPID: 600, Name: "services.exe"}},
		},
		{
			name: "malformed row skipped",
			out:  "Node,Name,ParentProcessId,ProcessId\nHOST,a.exe,x,10\nHOST,b.exe,1,11\nHOST\n",
			want: model.Snapshot{{PID: 11, PPID: 1, Name: "b.exe"}},
		},
		{
			name: "header only",
			out:  "Node,Name,ParentProcessId,ProcessId\n",
			want: model.Snapshot{},
		},
		{
			name:    "missing column",
			out:     "Node,Name,ProcessId\nHOST,a.exe,10\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := parseWMIC(tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseWMIC error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(snap) != len(tt.want) {
				t.Fatalf("got %d records, want %d: %+v", len(snap), len(tt.want), snap)
			}
			for i := range tt.want {
				if snap[i] != tt.want[i] {
					t.Errorf("record %d = %+v, want %+v", i, snap[i], tt.want[i])
				}
			}
		})
	}
}

func TestListPSWithGomock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	SetExecutor(mockExec)
	defer ResetExecutor()

	mockExec.EXPECT().Run("ps", "-axo", "pid=,ppid=,comm=").
		Return([]byte("  1   0 init\n 42   1 sshd\n"), nil)

	snap, err := listPS()
	if err != nil {
		t.Fatalf("listPS failed: %v", err)
	}
	if len(snap) != 2 || snap[1].PID != 42 || snap[1].PPID != 1 || snap[1].Name != "sshd" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestListPSError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	SetExecutor(mockExec)
	defer ResetExecutor()

	mockExec.EXPECT().Run("ps", "-axo", "pid=,ppid=,comm=").
		Return(nil, errors.New("exec: \"ps\": executable file not found in $PATH"))

	if _, err := listPS(); err == nil {
		t.Fatal("expected an error when ps fails")
	}
}

func TestListWMICWithGomock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	SetExecutor(mockExec)
	defer ResetExecutor()

	mockExec.EXPECT().Run("wmic", "process", "get", "Name,ParentProcessId,ProcessId", "/format:csv").
		Return([]byte("\r\nNode,Name,ParentProcessId,ProcessId\r\nHOST,System,0,4\r\n"), nil)

	snap, err := listWMIC()
	if err != nil {
		t.Fatalf("listWMIC failed: %v", err)
	}
	if len(snap) != 1 || snap[0].PID != 4 || snap[0].Name != "System" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestFallbackSource(t *testing.T) {
	good := SnapshotFunc(func() (model.Snapshot, error) {
		return model.Snapshot{{PID: 1, Name: "init"}}, nil
	})
	bad := SnapshotFunc(func() (model.Snapshot, error) {
		return nil, errors.New("toolhelp snapshot failed")
	})

	t.Run("primary ok", func(t *testing.T) {
		called := false
		fallback := SnapshotFunc(func() (model.Snapshot, error) {
			called = true
			return nil, nil
		})
		snap, err := fallbackSource{primary: good, fallback: fallback}.Enumerate()
		if err != nil || len(snap) != 1 {
			t.Fatalf("Enumerate = %+v, %v", snap, err)
		}
		if called {
			t.Error("fallback used although primary succeeded")
		}
	})

	t.Run("primary fails", func(t *testing.T) {
		snap, err := fallbackSource{primary: bad, fallback: good}.Enumerate()
		if err != nil || len(snap) != 1 {
			t.Fatalf("Enumerate = %+v, %v", snap, err)
		}
	})

	t.Run("both fail", func(t *testing.T) {
		if _, err := (fallbackSource{primary: bad, fallback: bad}).Enumerate(); err == nil {
			t.Fatal("expected an error when both sources fail")
		}
	})
}

func TestTakeSnapshotWrapsErrSnapshot(t *testing.T) {
	cause := errors.New("boom")
	_, err := TakeSnapshot(SnapshotFunc(func() (model.Snapshot, error) { return nil, cause }))
	if !errors.Is(err, ErrSnapshot) {
		t.Errorf("error %v does not match ErrSnapshot", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error %v lost its cause", err)
	}

	snap, err := TakeSnapshot(SnapshotFunc(func() (model.Snapshot, error) {
		return model.Snapshot{{PID: 4}}, nil
	}))
	if err != nil || len(snap) != 1 {
		t.Errorf("TakeSnapshot = %+v, %v", snap, err)
	}
}

func TestNewSnapshotSource(t *testing.T) {
	for _, kind := range []string{SourceAuto, SourceNative, SourceExec, ""} {
		if src, err := NewSnapshotSource(kind); err != nil || src == nil {
			t.Errorf("NewSnapshotSource(%q) = %v, %v", kind, src, err)
		}
	}
	if _, err := NewSnapshotSource("wmi"); err == nil {
		t.Error("expected an error for an unknown source kind")
	}
}
