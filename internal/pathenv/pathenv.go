// Package pathenv ensures the wrapper bin directory is discoverable on the
// user's executable search path.
package pathenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pyq-dev/pyq/internal/platform"
)

// Status describes the outcome of a PATH registration attempt.
type Status int

const (
	// StatusAlreadyOnPath means the bin directory was already discoverable.
	StatusAlreadyOnPath Status = iota
	// StatusAlreadyExported means the profile already carried the export line.
	StatusAlreadyExported
	// StatusAppended means an export line was appended to the user's profile.
	StatusAppended
	// StatusManual means automatic mutation is unsupported and the user must
	// update PATH themselves.
	StatusManual
)

// Result reports how registration concluded and any follow-up the user
// should perform.
type Result struct {
	Status      Status
	ProfilePath string
	Instruction string
}

// Registry manages PATH registration for the bin directory.
type Registry struct {
	plat    platform.Platform
	pathEnv func() string
}

// New creates a new Registry.
func New(plat platform.Platform) *Registry {
	return &Registry{
		plat:    plat,
		pathEnv: func() string { return os.Getenv("PATH") },
	}
}

// Ensure makes the bin directory discoverable: a no-op when it is already
// on PATH, a persisted profile append on POSIX platforms, and a printed
// instruction elsewhere.
func (r *Registry) Ensure(binDir string) (Result, error) {
	if OnPath(binDir, r.pathEnv()) {
		return Result{Status: StatusAlreadyOnPath}, nil
	}

	profile, ok := r.plat.ProfilePath()
	if !ok {
		return Result{
			Status:      StatusManual,
			Instruction: fmt.Sprintf("add %s to your PATH environment variable manually", binDir),
		}, nil
	}

	added, err := appendExport(profile, binDir)
	if err != nil {
		return Result{}, err
	}
	if !added {
		return Result{Status: StatusAlreadyExported, ProfilePath: profile}, nil
	}
	return Result{
		Status:      StatusAppended,
		ProfilePath: profile,
		Instruction: "log out and back in (or source the profile) for PATH changes to take effect",
	}, nil
}

// OnPath reports whether dir appears in a PATH-style list after cleaning.
func OnPath(dir, pathEnv string) bool {
	dir = filepath.Clean(dir)
	for _, entry := range filepath.SplitList(pathEnv) {
		if entry == "" {
			continue
		}
		if filepath.Clean(entry) == dir {
			return true
		}
	}
	return false
}

// appendExport appends an export line for binDir to the profile file unless
// an equivalent line is already present. Returns whether a line was added.
func appendExport(profile, binDir string) (bool, error) {
	exportLine := fmt.Sprintf(`export PATH="%s:$PATH"`, binDir)

	existing, err := os.ReadFile(profile)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read profile %s: %w", profile, err)
	}
	if containsExport(string(existing), exportLine) {
		return false, nil
	}

	f, err := os.OpenFile(profile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to open profile %s: %w", profile, err)
	}
	defer f.Close()

	block := "\n# Added by pyq\n" + exportLine + "\n"
	if _, err := f.WriteString(block); err != nil {
		return false, fmt.Errorf("failed to update profile %s: %w", profile, err)
	}
	return true, nil
}

func containsExport(content, exportLine string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == exportLine {
			return true
		}
	}
	return false
}
