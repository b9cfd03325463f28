package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/san-kum/mcpi/internal/montecarlo"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func parsePi(t *testing.T, out string) float64 {
	t.Helper()
	line := strings.SplitN(out, "\n", 2)[0]
	v, err := strconv.ParseFloat(strings.TrimPrefix(line, "Value of pi: "), 64)
	if err != nil {
		t.Fatalf("unexpected output %q: %v", out, err)
	}
	return v
}

func TestRootCommand(t *testing.T) {
	out, err := execute(t, "-j", "2", "-r", "4", "-s", "1e4", "--seed", "7")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected a single line, got %q", out)
	}
	if pi := parsePi(t, out); pi < 3.0 || pi > 3.3 {
		t.Errorf("estimate %f implausible", pi)
	}
}

func TestRootCommand_SeedReproducible(t *testing.T) {
	args := []string{"--threads", "3", "--repeat", "6", "--sample", "5000", "--seed", "11"}
	a, err := execute(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	b, err := execute(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("seeded runs differ: %q vs %q", a, b)
	}
}

func TestRootCommand_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero threads", []string{"-j", "0"}},
		{"zero repeat", []string{"-r", "0"}},
		{"zero sample", []string{"-s", "0"}},
		{"fractional sample", []string{"-s", "0.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, montecarlo.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestRootCommand_UnparseableFlags(t *testing.T) {
	for _, args := range [][]string{
		{"-s", "lots"},
		{"-j", "x"},
		{"--no-such-flag"},
		{"converge", "--from", "ten"},
	} {
		if _, err := execute(t, args...); !errors.Is(err, montecarlo.ErrInvalidArgument) {
			t.Errorf("%v: expected ErrInvalidArgument, got %v", args, err)
		}
	}
}

func TestRootCommand_BadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--generator", "dice"},
		{"--preset", "nonexistent"},
		{"stray"},
	} {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, flag := range []string{"--threads", "--repeat", "--sample"} {
		if !strings.Contains(out, flag) {
			t.Errorf("help missing %s", flag)
		}
	}
}

func TestRootCommand_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pi.yaml")
	data := "threads: 2\nrepeat: 1\nsample: 1\nseed: 3\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	if pi := parsePi(t, out); pi != 0 && pi != 4 {
		t.Errorf("single sample should give 0 or 4, got %f", pi)
	}
}

func TestSaveListShow(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "-j", "2", "-r", "3", "-s", "1000", "--save", "--data", dir)
	if err != nil {
		t.Fatal(err)
	}
	idx := strings.Index(out, "run id: ")
	if idx < 0 {
		t.Fatalf("expected run id in output %q", out)
	}
	runID := strings.TrimSpace(out[idx+len("run id: "):])

	out, err = execute(t, "list", "--data", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, runID) {
		t.Errorf("list missing %s:\n%s", runID, out)
	}

	out, err = execute(t, "show", runID, "--data", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "estimate per repetition") {
		t.Errorf("show missing plot:\n%s", out)
	}
}

func TestConvergeCommand(t *testing.T) {
	out, err := execute(t, "converge", "--from", "10", "--to", "1000", "-j", "2", "--seed", "5")
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []string{"10 ", "100 ", "1000 "} {
		if !strings.Contains(out, n) {
			t.Errorf("converge output missing %q:\n%s", n, out)
		}
	}

	tests := []struct {
		name     string
		from, to string
	}{
		{"inverted", "100", "10"},
		{"nan from", "NaN", "100"},
		{"nan to", "10", "NaN"},
		{"infinite to", "10", "Inf"},
		{"below one", "0.5", "100"},
		{"too large", "10", "1e20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "converge", "--from", tt.from, "--to", tt.to, "-j", "1")
			if !errors.Is(err, montecarlo.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestConvergeCommand_SinglePointSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.svg")
	out, err := execute(t, "converge", "--from", "100", "--to", "100", "-r", "2", "--seed", "3", "--svg", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "wrote "+path) {
		t.Errorf("expected write notice in %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<circle") {
		t.Errorf("expected a dot for the single sweep point, got %q", data)
	}
}

func TestLiveCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"live", "-j", "2", "-r", "4", "-s", "1000", "--seed", "9"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("live failed: %v", err)
	}

	got := out.String()
	idx := strings.LastIndex(got, "Value of pi: ")
	if idx < 0 {
		t.Fatalf("expected result line in output %q", got)
	}
	if pi := parsePi(t, got[idx:]); pi < 2.8 || pi > 3.5 {
		t.Errorf("estimate %f implausible", pi)
	}
}

func TestListCommands(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "precise") {
		t.Errorf("presets missing precise:\n%s", out)
	}

	out, err = execute(t, "generators")
	if err != nil {
		t.Fatal(err)
	}
	if out != "chacha8\nlcg\npcg\n" {
		t.Errorf("unexpected generators %q", out)
	}
}

func TestSketchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pi.svg")
	out, err := execute(t, "sketch", "--points", "50", "-o", path, "--seed", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "50 points") {
		t.Errorf("unexpected output %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "<circle"); n != 50 {
		t.Errorf("expected 50 circles, got %d", n)
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "-r", "2", "-s", "100", "--save", "--data", dir)
	if err != nil {
		t.Fatal(err)
	}
	runID := strings.TrimSpace(out[strings.Index(out, "run id: ")+len("run id: "):])

	out, err = execute(t, "export", runID, "--data", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"estimates"`) || !strings.Contains(out, runID) {
		t.Errorf("unexpected export:\n%s", out)
	}
}
