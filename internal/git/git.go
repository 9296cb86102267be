// Package git provides Git operations for the pyq application.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pyq-dev/pyq/pkg/command"
)

// Git runs git commands through a command runner.
type Git struct {
	runner command.Runner
}

// New creates a new Git instance.
func New(runner command.Runner) *Git {
	return &Git{runner: runner}
}

// IsRepository reports whether a directory contains a git repository marker.
func IsRepository(root string) bool {
	info, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil && info.IsDir()
}

// Clone clones a repository into dest, optionally constrained to a branch.
//
// The child environment is sanitized so the clone cannot silently pick up
// stored credentials or hang on an interactive prompt: HOME points at a
// throwaway session directory, askpass is blanked, terminal prompting is
// disabled, and ambient token and SSH overrides are stripped.
func (g *Git) Clone(ctx context.Context, url, dest, branch string) error {
	args := []string{"clone"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, url, dest)

	sessionHome, err := os.MkdirTemp("", "pyq-clone-home-")
	if err != nil {
		return fmt.Errorf("failed to create session home for clone: %w", err)
	}
	defer os.RemoveAll(sessionHome)

	result := g.runner.Run(ctx, command.Command{
		Name: "git",
		Args: args,
		Env:  cloneEnv(sessionHome),
	})
	if !result.Succeeded() {
		return fmt.Errorf("git clone failed: %s", commandFailure(result))
	}
	return nil
}

// HasLocalChanges reports whether a repository has tracked-modified, staged,
// or untracked-but-not-ignored files.
func (g *Git) HasLocalChanges(ctx context.Context, root string) (bool, error) {
	result := g.runner.Run(ctx, command.Command{
		Name: "git",
		Args: []string{"status", "--porcelain"},
		Dir:  root,
	})
	if !result.Succeeded() {
		return false, fmt.Errorf("git status failed: %s", commandFailure(result))
	}
	return strings.TrimSpace(result.Stdout) != "", nil
}

// StashPush stashes all local changes, including untracked files.
func (g *Git) StashPush(ctx context.Context, root, message string) error {
	result := g.runner.Run(ctx, command.Command{
		Name: "git",
		Args: []string{"stash", "push", "--include-untracked", "-m", message},
		Dir:  root,
	})
	if !result.Succeeded() {
		return fmt.Errorf("git stash push failed: %s", commandFailure(result))
	}
	return nil
}

// StashPop restores the most recent stash.
func (g *Git) StashPop(ctx context.Context, root string) error {
	result := g.runner.Run(ctx, command.Command{
		Name: "git",
		Args: []string{"stash", "pop"},
		Dir:  root,
	})
	if !result.Succeeded() {
		return fmt.Errorf("git stash pop failed: %s", commandFailure(result))
	}
	return nil
}

// Pull fetches and integrates changes from the tracked remote.
func (g *Git) Pull(ctx context.Context, root string) error {
	result := g.runner.Run(ctx, command.Command{
		Name: "git",
		Args: []string{"pull"},
		Dir:  root,
	})
	if !result.Succeeded() {
		return fmt.Errorf("git pull failed: %s", commandFailure(result))
	}
	return nil
}

// StashMessage generates the message used for automatic stashes.
func StashMessage(now time.Time) string {
	return "pyq auto-stash " + now.Format(time.RFC3339)
}

// cloneEnv builds the sanitized environment overrides for clone. A nil
// value unsets the variable in the child process.
func cloneEnv(sessionHome string) map[string]*string {
	blank := ""
	off := "0"
	return map[string]*string{
		"HOME":                &sessionHome,
		"GIT_ASKPASS":         &blank,
		"GIT_TERMINAL_PROMPT": &off,
		"GIT_SSH_COMMAND":     nil,
		"GITHUB_TOKEN":        nil,
		"GH_TOKEN":            nil,
	}
}

func commandFailure(result command.Result) string {
	msg := strings.TrimSpace(result.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(result.Stdout)
	}
	if msg == "" {
		msg = fmt.Sprintf("exit code %d", result.ExitCode)
	}
	if result.StartFailed() {
		return "git executable not available: " + msg
	}
	return msg
}
