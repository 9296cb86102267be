// Package launcher generates the wrapper scripts that activate a project's
// virtual environment and invoke its entry point.
package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pyq-dev/pyq/internal/platform"
	"github.com/pyq-dev/pyq/internal/python"
)

// rootMarker is the assignment embedded in every generated wrapper. List
// recovers a project's root directory by scanning for it.
const rootMarker = "PYQ_PROJECT_ROOT="

// customRunScripts are the repository-shipped launchers that take
// precedence over a generated wrapper on POSIX platforms.
var customRunScripts = []string{"run", "run.sh"}

// Generator produces platform-appropriate wrapper scripts.
type Generator struct {
	plat platform.Platform
}

// New creates a new Generator.
func New(plat platform.Platform) *Generator {
	return &Generator{plat: plat}
}

// FileName returns the wrapper artifact name for a project.
func (g *Generator) FileName(project string) string {
	return g.plat.WrapperFileName(project)
}

// Generate returns the wrapper script text for a project root. The script
// verifies the project directory, entry point, and venv activation script
// exist, activates the environment, forwards all arguments to the entry
// point, and exits with the entry point's status.
func (g *Generator) Generate(root string) string {
	if g.plat.IsPOSIX() {
		return g.posixScript(root)
	}
	return g.windowsScript(root)
}

// CustomRunScript returns a repository-shipped run script inside root, if
// one exists. Only meaningful on POSIX platforms, where the registered
// artifact becomes a symlink to it instead of a generated wrapper.
func CustomRunScript(root string) (string, bool) {
	for _, name := range customRunScripts {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// ParseProjectRoot recovers the project root embedded in a generated
// wrapper's text. It understands both the POSIX assignment and the batch
// set form.
func ParseProjectRoot(content string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "set \"")

		if !strings.HasPrefix(line, rootMarker) {
			continue
		}
		value := strings.TrimPrefix(line, rootMarker)
		value = strings.TrimSuffix(value, "\"")
		value = strings.Trim(value, "\"")
		if value == "" {
			continue
		}
		return value, true
	}
	return "", false
}

func (g *Generator) posixScript(root string) string {
	activate := filepath.ToSlash(g.plat.ActivateRelPath())
	return fmt.Sprintf(`#!/bin/sh
# Generated by pyq; do not edit.
PYQ_PROJECT_ROOT="%s"
PYQ_VENV="$PYQ_PROJECT_ROOT/%s"
PYQ_ACTIVATE="$PYQ_VENV/%s"
PYQ_ENTRY="$PYQ_PROJECT_ROOT/%s"

if [ ! -d "$PYQ_PROJECT_ROOT" ]; then
    echo "pyq: project directory not found: $PYQ_PROJECT_ROOT" >&2
    exit 1
fi
if [ ! -f "$PYQ_ENTRY" ]; then
    echo "pyq: entry point not found: $PYQ_ENTRY" >&2
    exit 1
fi
if [ ! -f "$PYQ_ACTIVATE" ]; then
    echo "pyq: virtual environment not found: $PYQ_ACTIVATE (re-run pyq setup)" >&2
    exit 1
fi

. "$PYQ_ACTIVATE" || {
    echo "pyq: failed to activate virtual environment" >&2
    exit 1
}

python "$PYQ_ENTRY" "$@"
status=$?

command -v deactivate >/dev/null 2>&1 && deactivate

exit $status
`, root, python.VenvDirName, activate, python.EntryPointFileName)
}

// windowsScript always targets the entry point directly rather than any
// repository-shipped run script, which would require a POSIX shell.
func (g *Generator) windowsScript(root string) string {
	activate := strings.ReplaceAll(filepath.ToSlash(g.plat.ActivateRelPath()), "/", `\`)
	scripts := g.plat.ScriptsDirName()
	return fmt.Sprintf(`@echo off
rem Generated by pyq; do not edit.
set "PYQ_PROJECT_ROOT=%s"
set "PYQ_VENV=%%PYQ_PROJECT_ROOT%%\%s"
set "PYQ_ACTIVATE=%%PYQ_VENV%%\%s"
set "PYQ_ENTRY=%%PYQ_PROJECT_ROOT%%\%s"

if not exist "%%PYQ_PROJECT_ROOT%%\" (
    echo pyq: project directory not found: %%PYQ_PROJECT_ROOT%% 1>&2
    exit /b 1
)
if not exist "%%PYQ_ENTRY%%" (
    echo pyq: entry point not found: %%PYQ_ENTRY%% 1>&2
    exit /b 1
)
if not exist "%%PYQ_ACTIVATE%%" (
    echo pyq: virtual environment not found: %%PYQ_ACTIVATE%% 1>&2
    exit /b 1
)

call "%%PYQ_ACTIVATE%%"
if errorlevel 1 (
    echo pyq: failed to activate virtual environment 1>&2
    exit /b 1
)

python "%%PYQ_ENTRY%%" %%*
set "PYQ_STATUS=%%ERRORLEVEL%%"

if exist "%%PYQ_VENV%%\%[5]s\deactivate.bat" call "%%PYQ_VENV%%\%[5]s\deactivate.bat"

exit /b %%PYQ_STATUS%%
`, root, python.VenvDirName, activate, python.EntryPointFileName, scripts)
}
