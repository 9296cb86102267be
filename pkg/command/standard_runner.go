package command

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// LogFunc receives informational lines about captured process output.
type LogFunc func(line string)

// StandardRunner implements Runner using os/exec.
type StandardRunner struct {
	log LogFunc
}

// NewStandardRunner creates a new StandardRunner.
func NewStandardRunner() *StandardRunner {
	return &StandardRunner{}
}

// NewStandardRunnerWithLog creates a StandardRunner that echoes captured
// stdout and stderr lines to the given log function.
func NewStandardRunnerWithLog(log LogFunc) *StandardRunner {
	return &StandardRunner{log: log}
}

// Run executes the command and captures its exit code and output.
//
// A non-zero exit is reported through Result.ExitCode, not as an error.
// When the process cannot be started at all, the result carries
// StartFailureExitCode and the failure message in Stderr.
func (r *StandardRunner) Run(ctx context.Context, c Command) Result {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	if env := mergeEnv(c.Env); env != nil {
		cmd.Env = env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = StartFailureExitCode
			if result.Stderr == "" {
				result.Stderr = err.Error()
			}
		}
	}

	r.echo(c.Name, result)
	return result
}

func (r *StandardRunner) echo(name string, result Result) {
	if r.log == nil {
		return
	}
	for _, line := range splitLines(result.Stdout) {
		r.log(name + ": " + line)
	}
	for _, line := range splitLines(result.Stderr) {
		r.log(name + ": " + line)
	}
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
