package pip

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

// fakeRunner answers by the joined argument list.
type fakeRunner struct {
	results map[string]*Result
	calls   [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if r, ok := f.results[strings.Join(args, " ")]; ok {
		return r, nil
	}
	return nil, errors.New("unexpected command: " + strings.Join(args, " "))
}

func TestClient_Show(t *testing.T) {
	r := &fakeRunner{results: map[string]*Result{
		"-m pip show openbb":      {Stdout: "Name: openbb\nVersion: 4.4.0\nSummary: Investment research for everyone\n"},
		"-m pip show openbb-core": {Stderr: "WARNING: Package(s) not found: openbb-core\n", ExitCode: 1},
		"-m pip show weird":       {Stdout: "Name: weird\n"},
	}}
	c := NewClient("", r)

	v, ok, err := c.Show(context.Background(), "openbb")
	if err != nil || !ok || v != "4.4.0" {
		t.Errorf("openbb: got %q %v %v", v, ok, err)
	}
	v, ok, err = c.Show(context.Background(), "openbb-core")
	if err != nil || ok || v != "" {
		t.Errorf("missing package: got %q %v %v", v, ok, err)
	}
	if _, _, err = c.Show(context.Background(), "weird"); err == nil {
		t.Error("expected error for output without Version line")
	}
	if r.calls[0][0] != "python3" {
		t.Errorf("expected default interpreter python3, got %s", r.calls[0][0])
	}
}

func TestClient_Uninstall(t *testing.T) {
	r := &fakeRunner{results: map[string]*Result{
		"-m pip uninstall -y openbb":        {Stdout: "Found existing installation: openbb 4.1.0\nUninstalling openbb-4.1.0:\n  Successfully uninstalled openbb-4.1.0\n"},
		"-m pip uninstall -y openbb-crypto": {Stderr: "WARNING: Skipping openbb-crypto as it is not installed.\n"},
		"-m pip uninstall -y locked":        {Stderr: "ERROR: Cannot uninstall locked\nPermission denied\n", ExitCode: 1},
	}}
	c := NewClient("python3.11", r)

	if removed, err := c.Uninstall(context.Background(), "openbb"); err != nil || !removed {
		t.Errorf("openbb: removed=%v err=%v", removed, err)
	}
	if removed, err := c.Uninstall(context.Background(), "openbb-crypto"); err != nil || removed {
		t.Errorf("absent package: removed=%v err=%v", removed, err)
	}
	_, err := c.Uninstall(context.Background(), "locked")
	var cerr *CommandError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if cerr.ExitCode != 1 || !strings.HasSuffix(err.Error(), "Permission denied") {
		t.Errorf("unexpected error text %q", err.Error())
	}
}

func TestClient_InstallNoCache(t *testing.T) {
	r := &fakeRunner{results: map[string]*Result{
		"-m pip install --no-cache-dir openbb[all]==4.4.0": {},
		"-m pip install openbb[all]==4.4.0":                {ExitCode: 1, Stderr: "ERROR: No matching distribution found"},
	}}
	c := NewClient("", r)

	if err := c.Install(context.Background(), "openbb[all]==4.4.0", true); err != nil {
		t.Errorf("no-cache install: %v", err)
	}
	if err := c.Install(context.Background(), "openbb[all]==4.4.0", false); err == nil {
		t.Error("expected failure for cached install")
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"Python 3.11.4", Version{3, 11, 4}, false},
		{"Python 3.8.10\n", Version{3, 8, 10}, false},
		{"3.12.0rc1", Version{3, 12, 0}, false},
		{"Python 3.9", Version{3, 9, 0}, false},
		{"Python 2.7.18", Version{2, 7, 18}, false},
		{"Python", Version{}, true},
		{"banana", Version{}, true},
	}
	for _, tt := range tests {
		got, err := ParseVersion(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVersion(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVersion(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVersion_AtLeast(t *testing.T) {
	v := Version{3, 9, 1}
	if !v.AtLeast(3, 8) || !v.AtLeast(3, 9) || v.AtLeast(3, 10) || !v.AtLeast(2, 99) {
		t.Error("AtLeast comparisons wrong")
	}
}

func TestExecRunner_NonZeroExitIsNotAnError(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	res, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo out; echo err >&2; exit 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 3 || strings.TrimSpace(res.Stdout) != "out" || strings.TrimSpace(res.Stderr) != "err" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	if _, err := (ExecRunner{}).Run(context.Background(), "definitely-not-a-real-binary-xyz"); err == nil {
		t.Error("expected error for missing binary")
	}
}
