// Package platform isolates operating-system conventions behind a small
// capability set selected once at startup.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// Platform describes the OS-specific conventions the rest of the
// application depends on: default directories, virtual-environment layout,
// wrapper artifact naming, and which file-system capabilities exist.
type Platform interface {
	// Name identifies the capability set ("posix" or "windows").
	Name() string
	// IsPOSIX reports whether shebang execution, symlinks without elevated
	// privilege, and permission-bit executability are available.
	IsPOSIX() bool
	// DefaultBaseDir is the base directory used when no override is set.
	DefaultBaseDir() string
	// DefaultBinDir is the wrapper directory used when no override is set.
	DefaultBinDir() string
	// ScriptsDirName is the executable-scripts directory inside a venv.
	ScriptsDirName() string
	// ActivateRelPath is the venv activation script, relative to the venv root.
	ActivateRelPath() string
	// WrapperFileName is the registered artifact name for a project.
	WrapperFileName(project string) string
	// WrapperVariants lists every artifact name any platform convention may
	// have registered for a project, so stale ones can be cleaned up.
	WrapperVariants(project string) []string
	// ProfilePath returns the shell profile file to append PATH exports to.
	// ok is false where automatic PATH mutation is not supported.
	ProfilePath() (path string, ok bool)
}

// Detect returns the capability set for the current operating system.
func Detect() Platform {
	if runtime.GOOS == "windows" {
		return Windows{}
	}
	return POSIX{}
}

// POSIX implements Platform for Linux, macOS, and other Unix-like systems.
type POSIX struct{}

func (POSIX) Name() string  { return "posix" }
func (POSIX) IsPOSIX() bool { return true }

func (POSIX) DefaultBaseDir() string { return "/opt/pyq" }
func (POSIX) DefaultBinDir() string  { return "/usr/local/bin" }

func (POSIX) ScriptsDirName() string  { return "bin" }
func (POSIX) ActivateRelPath() string { return filepath.Join("bin", "activate") }

func (POSIX) WrapperFileName(project string) string { return project }

func (POSIX) WrapperVariants(project string) []string {
	return []string{project, project + ".cmd", project + ".bat"}
}

func (POSIX) ProfilePath() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".profile"), true
}

// Windows implements Platform for systems without shebang execution.
type Windows struct{}

func (Windows) Name() string  { return "windows" }
func (Windows) IsPOSIX() bool { return false }

func (Windows) DefaultBaseDir() string {
	return filepath.Join(userHome(), "pyq", "apps")
}

func (Windows) DefaultBinDir() string {
	return filepath.Join(userHome(), "pyq", "bin")
}

func (Windows) ScriptsDirName() string  { return "Scripts" }
func (Windows) ActivateRelPath() string { return filepath.Join("Scripts", "activate.bat") }

func (Windows) WrapperFileName(project string) string { return project + ".cmd" }

func (Windows) WrapperVariants(project string) []string {
	return []string{project, project + ".cmd", project + ".bat"}
}

// ProfilePath reports no profile: PATH changes require the user to update
// their environment manually (or via setx), which pyq only instructs.
func (Windows) ProfilePath() (string, bool) { return "", false }

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
