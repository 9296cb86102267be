// Package command provides external process execution for the pyq application.
package command

import (
	"context"
	"os"
	"strings"
)

// Command describes a single external process invocation.
type Command struct {
	// Name is the executable to run, resolved via PATH when not absolute.
	Name string
	// Args are passed to the process verbatim.
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env overrides the inherited environment per key: a nil value removes
	// the variable from the child's environment, a non-nil value sets it.
	// Keys not present are inherited unchanged.
	Env map[string]*string
}

// Result holds the outcome of a finished (or failed-to-start) process.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// StartFailureExitCode is the sentinel exit code reported when the process
// could not be started at all (executable missing, permission denied).
const StartFailureExitCode = -1

// StartFailed reports whether the process never ran.
func (r Result) StartFailed() bool {
	return r.ExitCode == StartFailureExitCode
}

// Succeeded reports whether the process ran and exited zero.
func (r Result) Succeeded() bool {
	return r.ExitCode == 0
}

// Runner executes external commands. A non-zero exit code is a normal
// result for the caller to interpret, never an error.
type Runner interface {
	Run(ctx context.Context, cmd Command) Result
}

// mergeEnv applies per-key overrides to the inherited environment.
func mergeEnv(overrides map[string]*string) []string {
	if len(overrides) == 0 {
		return nil
	}

	var env []string
	for _, kv := range os.Environ() {
		key := kv
		if idx := strings.IndexByte(kv, '='); idx >= 0 {
			key = kv[:idx]
		}
		if _, overridden := overrides[key]; overridden {
			continue
		}
		env = append(env, kv)
	}

	for key, value := range overrides {
		if value != nil {
			env = append(env, key+"="+*value)
		}
	}

	return env
}
