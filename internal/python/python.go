// Package python provides virtual-environment and pip operations for the
// pyq application.
package python

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pyq-dev/pyq/internal/platform"
	"github.com/pyq-dev/pyq/pkg/command"
)

const (
	// VenvDirName is the virtual-environment directory inside a project root.
	VenvDirName = ".venv"
	// RequirementsFileName is the dependency manifest handed to pip.
	RequirementsFileName = "requirements.txt"
	// EntryPointFileName is the conventional project entry point.
	EntryPointFileName = "main.py"
)

// Tool drives the platform's Python interpreter and a venv's isolated pip.
type Tool struct {
	runner     command.Runner
	executable string
	plat       platform.Platform
}

// New creates a new Tool. executable is the interpreter used to create
// virtual environments (typically "python3").
func New(runner command.Runner, executable string, plat platform.Platform) *Tool {
	return &Tool{
		runner:     runner,
		executable: executable,
		plat:       plat,
	}
}

// VenvDir returns the virtual-environment directory for a project root.
func VenvDir(root string) string {
	return filepath.Join(root, VenvDirName)
}

// RequirementsFile returns the dependency manifest path for a project root
// and whether it exists.
func RequirementsFile(root string) (string, bool) {
	path := filepath.Join(root, RequirementsFileName)
	info, err := os.Stat(path)
	return path, err == nil && !info.IsDir()
}

// ScriptsDir returns the executable-scripts directory of a venv.
func (t *Tool) ScriptsDir(venvDir string) string {
	return filepath.Join(venvDir, t.plat.ScriptsDirName())
}

// Pip returns the venv's isolated pip binary.
func (t *Tool) Pip(venvDir string) string {
	name := "pip"
	if !t.plat.IsPOSIX() {
		name = "pip.exe"
	}
	return filepath.Join(t.ScriptsDir(venvDir), name)
}

// CreateVenv creates a virtual environment at venvDir.
func (t *Tool) CreateVenv(ctx context.Context, venvDir string) error {
	result := t.runner.Run(ctx, command.Command{
		Name: t.executable,
		Args: []string{"-m", "venv", venvDir},
	})
	if !result.Succeeded() {
		if result.StartFailed() {
			return fmt.Errorf("python interpreter %q not available: %s", t.executable, toolFailure(result))
		}
		return fmt.Errorf("failed to create virtual environment (is venv support installed?): %s", toolFailure(result))
	}
	return nil
}

// InstallRequirements installs a dependency manifest into the venv using its
// isolated pip, with interactive prompts disabled.
func (t *Tool) InstallRequirements(ctx context.Context, venvDir, requirementsFile string) error {
	noInput := "1"
	result := t.runner.Run(ctx, command.Command{
		Name: t.Pip(venvDir),
		Args: []string{"install", "-r", requirementsFile},
		Env:  map[string]*string{"PIP_NO_INPUT": &noInput},
	})
	if !result.Succeeded() {
		return fmt.Errorf("pip install failed: %s", toolFailure(result))
	}
	return nil
}

func toolFailure(result command.Result) string {
	msg := strings.TrimSpace(result.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(result.Stdout)
	}
	if msg == "" {
		msg = fmt.Sprintf("exit code %d", result.ExitCode)
	}
	return msg
}
