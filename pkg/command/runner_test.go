package command

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on POSIX shell utilities")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	skipWithoutShell(t)

	r := NewStandardRunner()
	result := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo out; echo err >&2"},
	})

	if !result.Succeeded() {
		t.Fatalf("ExitCode = %d, want 0", result.ExitCode)
	}
	if result.Stdout != "out\n" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "out\n")
	}
	if result.Stderr != "err\n" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "err\n")
	}
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	skipWithoutShell(t)

	r := NewStandardRunner()
	result := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "exit 3"},
	})

	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
	if result.StartFailed() {
		t.Error("a process that ran must not report a start failure")
	}
}

func TestRunStartFailure(t *testing.T) {
	r := NewStandardRunner()
	result := r.Run(context.Background(), Command{
		Name: "pyq-test-definitely-not-an-executable",
	})

	if !result.StartFailed() {
		t.Fatalf("ExitCode = %d, want %d", result.ExitCode, StartFailureExitCode)
	}
	if result.Stderr == "" {
		t.Error("start failure must carry the failure message in Stderr")
	}
}

func TestRunHonorsDir(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	r := NewStandardRunner()
	result := r.Run(context.Background(), Command{
		Name: "pwd",
		Dir:  dir,
	})

	if !result.Succeeded() {
		t.Fatalf("ExitCode = %d, want 0", result.ExitCode)
	}
	// pwd may report a resolved symlink path, so compare suffixes.
	got := strings.TrimSpace(result.Stdout)
	if !strings.HasSuffix(got, strings.TrimPrefix(dir, "/private")) && got != dir {
		t.Errorf("pwd = %q, want %q", got, dir)
	}
}

func TestRunEnvOverrides(t *testing.T) {
	skipWithoutShell(t)

	t.Setenv("PYQ_TEST_INHERITED", "inherited")
	t.Setenv("PYQ_TEST_REMOVED", "doomed")

	set := "fresh"
	r := NewStandardRunner()
	result := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", `echo "${PYQ_TEST_INHERITED:-gone} ${PYQ_TEST_REMOVED:-gone} ${PYQ_TEST_SET:-gone}"`},
		Env: map[string]*string{
			"PYQ_TEST_REMOVED": nil,
			"PYQ_TEST_SET":     &set,
		},
	})

	if !result.Succeeded() {
		t.Fatalf("ExitCode = %d, stderr = %q", result.ExitCode, result.Stderr)
	}
	if got, want := strings.TrimSpace(result.Stdout), "inherited gone fresh"; got != want {
		t.Errorf("child saw %q, want %q", got, want)
	}
}

func TestRunEchoesToLog(t *testing.T) {
	skipWithoutShell(t)

	var lines []string
	r := NewStandardRunnerWithLog(func(line string) { lines = append(lines, line) })
	r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo one; echo two"},
	})

	if len(lines) != 2 {
		t.Fatalf("log lines = %v, want 2 entries", lines)
	}
	if lines[0] != "sh: one" || lines[1] != "sh: two" {
		t.Errorf("log lines = %v", lines)
	}
}

func TestMergeEnv(t *testing.T) {
	t.Run("no overrides inherits everything", func(t *testing.T) {
		if env := mergeEnv(nil); env != nil {
			t.Errorf("mergeEnv(nil) = %v, want nil", env)
		}
	})

	t.Run("set, unset, and inherit", func(t *testing.T) {
		t.Setenv("PYQ_MERGE_KEEP", "kept")
		t.Setenv("PYQ_MERGE_DROP", "dropped")

		value := "new"
		env := mergeEnv(map[string]*string{
			"PYQ_MERGE_DROP": nil,
			"PYQ_MERGE_ADD":  &value,
		})

		byKey := map[string]string{}
		for _, kv := range env {
			key, val, _ := strings.Cut(kv, "=")
			byKey[key] = val
		}

		if byKey["PYQ_MERGE_KEEP"] != "kept" {
			t.Error("untouched variables must be inherited")
		}
		if _, ok := byKey["PYQ_MERGE_DROP"]; ok {
			t.Error("nil overrides must remove the variable")
		}
		if byKey["PYQ_MERGE_ADD"] != "new" {
			t.Error("non-nil overrides must set the variable")
		}
	})
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "newline only", input: "\n", want: nil},
		{name: "single line", input: "one\n", want: []string{"one"}},
		{name: "no trailing newline", input: "one", want: []string{"one"}},
		{name: "multiple lines", input: "one\ntwo\n", want: []string{"one", "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitLines(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("splitLines(%q) = %v, want %v", tt.input, got, tt.want)
				}
			}
		})
	}
}
