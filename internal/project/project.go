// Package project implements the lifecycle orchestrator for managed Python
// projects: setup, update, removal, and listing.
package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pyq-dev/pyq/internal/fsutil"
	"github.com/pyq-dev/pyq/internal/git"
	"github.com/pyq-dev/pyq/internal/launcher"
	"github.com/pyq-dev/pyq/internal/pathenv"
	"github.com/pyq-dev/pyq/internal/platform"
	"github.com/pyq-dev/pyq/internal/python"
	"github.com/pyq-dev/pyq/pkg/models"
	"github.com/pyq-dev/pyq/pkg/utils"
)

// bytecodeCacheDirName is deleted recursively before every update.
const bytecodeCacheDirName = "__pycache__"

// GitClient defines the git operations used by Manager.
type GitClient interface {
	Clone(ctx context.Context, url, dest, branch string) error
	HasLocalChanges(ctx context.Context, root string) (bool, error)
	StashPush(ctx context.Context, root, message string) error
	StashPop(ctx context.Context, root string) error
	Pull(ctx context.Context, root string) error
}

// PythonTool defines the virtual-environment operations used by Manager.
type PythonTool interface {
	CreateVenv(ctx context.Context, venvDir string) error
	InstallRequirements(ctx context.Context, venvDir, requirementsFile string) error
	ScriptsDir(venvDir string) string
}

// FileOps defines the file-system primitives used by Manager.
type FileOps interface {
	SetExecutable(path string) error
	CreateSymlink(target, link string) error
	RemoveAllRobust(path string) error
}

// PathRegistrar ensures the bin directory is on the executable search path.
type PathRegistrar interface {
	Ensure(binDir string) (pathenv.Result, error)
}

// Logger receives progress and diagnostic messages.
type Logger interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Path(path string) string
}

// ConfirmFunc asks the user to confirm a destructive action. It returns
// true only when the user typed an affirmative token.
type ConfirmFunc func(prompt string) (bool, error)

// Deps bundles the collaborators a Manager drives.
type Deps struct {
	Git      GitClient
	Python   PythonTool
	FS       FileOps
	Paths    PathRegistrar
	Launcher *launcher.Generator
	Log      Logger
	Confirm  ConfirmFunc
}

// Manager orchestrates the lifecycle of managed projects. Every operation
// derives project state by probing the file system; no metadata is
// persisted anywhere else.
type Manager struct {
	cfg    *models.Config
	plat   platform.Platform
	deps   Deps
	isRepo func(root string) bool
	now    func() time.Time
}

// New creates a new Manager.
func New(cfg *models.Config, plat platform.Platform, deps Deps) *Manager {
	return &Manager{
		cfg:    cfg,
		plat:   plat,
		deps:   deps,
		isRepo: git.IsRepository,
		now:    time.Now,
	}
}

// ValidateName rejects project names that cannot safely serve as a
// directory and wrapper file name.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("project name must not be empty")
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("project name must not contain path separators: %s", name)
	case name == "." || name == ".." || strings.Contains(name, ".."):
		return fmt.Errorf("project name must not contain path traversal: %s", name)
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("project name must not start with a dash: %s", name)
	}
	return nil
}

// Root returns the project directory for a name.
func (m *Manager) Root(name string) string {
	return filepath.Join(m.cfg.Projects.BaseDir, name)
}

// Setup drives a project forward through clone, venv creation, dependency
// installation, wrapper registration, and PATH registration. Steps whose
// outcome already exists are skipped with a warning, so Setup is safely
// re-runnable after a partial failure.
func (m *Manager) Setup(ctx context.Context, name, url, branch string, forceRun bool) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if url == "" {
		return fmt.Errorf("source URL is required")
	}

	if err := fsutil.EnsureDir(m.cfg.Projects.BaseDir); err != nil {
		return err
	}
	if err := fsutil.EnsureDir(m.cfg.Projects.BinDir); err != nil {
		return err
	}

	root := m.Root(name)
	if fsutil.IsDir(root) {
		m.deps.Log.Warn("project directory already exists, skipping clone: %s", m.deps.Log.Path(root))
	} else {
		m.deps.Log.Info("cloning %s into %s", url, m.deps.Log.Path(root))
		if err := m.deps.Git.Clone(ctx, url, root, branch); err != nil {
			return err
		}
	}

	venvDir := python.VenvDir(root)
	if fsutil.IsDir(venvDir) {
		m.deps.Log.Warn("virtual environment already exists, skipping: %s", m.deps.Log.Path(venvDir))
	} else {
		m.deps.Log.Info("creating virtual environment")
		if err := m.deps.Python.CreateVenv(ctx, venvDir); err != nil {
			return err
		}
	}

	m.markScriptsExecutable(venvDir)

	if reqFile, ok := python.RequirementsFile(root); ok {
		m.deps.Log.Info("installing dependencies from %s", python.RequirementsFileName)
		if err := m.deps.Python.InstallRequirements(ctx, venvDir, reqFile); err != nil {
			m.deps.Log.Warn("dependency installation failed, project may still be runnable: %v", err)
		}
	} else {
		m.deps.Log.Warn("no %s found, skipping dependency installation", python.RequirementsFileName)
	}

	if err := m.registerWrapper(name, root, forceRun); err != nil {
		return err
	}

	if err := m.registerPath(); err != nil {
		return err
	}

	m.deps.Log.Success("project %s is ready", name)
	return nil
}

// Update pulls the latest changes into an existing project, stashing and
// restoring local modifications around the pull.
func (m *Manager) Update(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	root := m.Root(name)
	if !fsutil.IsDir(root) {
		return fmt.Errorf("project directory does not exist: %s", root)
	}
	if !m.isRepo(root) {
		return fmt.Errorf("project directory is not a git repository: %s", root)
	}

	m.clearBytecodeCaches(root)

	dirty, err := m.deps.Git.HasLocalChanges(ctx, root)
	if err != nil {
		return err
	}

	stashed := false
	if dirty {
		message := git.StashMessage(m.now())
		m.deps.Log.Info("stashing local changes before pull")
		if err := m.deps.Git.StashPush(ctx, root, message); err != nil {
			return err
		}
		stashed = true
	}

	m.deps.Log.Info("pulling latest changes")
	if err := m.deps.Git.Pull(ctx, root); err != nil {
		m.deps.Log.Warn("pull failed, resolve conflicts manually: %v", err)
	}

	if stashed {
		if err := m.deps.Git.StashPop(ctx, root); err != nil {
			m.deps.Log.Warn("failed to restore stashed changes, stash left in place: %v", err)
		}
	}

	m.deps.Log.Success("project %s updated", name)
	return nil
}

// Remove deletes a project's wrapper artifacts and directory tree after
// interactive confirmation. The directory delete is refused unless the
// computed root stays inside the configured base directory.
func (m *Manager) Remove(ctx context.Context, name string, skipConfirm bool) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	root := m.Root(name)
	if !fsutil.IsWithin(m.cfg.Projects.BaseDir, root) {
		return fmt.Errorf("refusing to delete %s: outside base directory %s", root, m.cfg.Projects.BaseDir)
	}

	if !skipConfirm {
		ok, err := m.deps.Confirm(fmt.Sprintf("Remove project %s and all its files? [y/N] ", name))
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			m.deps.Log.Info("removal cancelled")
			return nil
		}
	}

	m.removeWrapperArtifacts(name)

	if !fsutil.Exists(root) {
		m.deps.Log.Warn("project directory does not exist: %s", m.deps.Log.Path(root))
	} else if err := m.deps.FS.RemoveAllRobust(root); err != nil {
		return err
	}

	m.deps.Log.Success("project %s removed", name)
	return nil
}

// List enumerates the bin directory and recovers the managed project behind
// each wrapper artifact. Artifacts whose project root cannot be recovered
// or is no longer a valid repository are skipped with a warning.
func (m *Manager) List() ([]models.Project, error) {
	entries, err := os.ReadDir(m.cfg.Projects.BinDir)
	if err != nil {
		if os.IsNotExist(err) {
			m.deps.Log.Warn("bin directory does not exist: %s", m.deps.Log.Path(m.cfg.Projects.BinDir))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read bin directory: %w", err)
	}

	var projects []models.Project
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		artifact := filepath.Join(m.cfg.Projects.BinDir, entry.Name())
		root, ok := m.recoverRoot(artifact)
		if !ok {
			m.deps.Log.Warn("not a pyq wrapper, skipping: %s", entry.Name())
			continue
		}
		if !fsutil.IsDir(root) || !m.isRepo(root) {
			m.deps.Log.Warn("wrapper %s points at an invalid project: %s", entry.Name(), root)
			continue
		}

		info, err := os.Stat(root)
		if err != nil {
			m.deps.Log.Warn("failed to stat project root %s: %v", root, err)
			continue
		}

		projects = append(projects, models.Project{
			Name:       wrapperProjectName(entry.Name()),
			Root:       root,
			VenvDir:    python.VenvDir(root),
			HasRepo:    true,
			HasVenv:    fsutil.IsDir(python.VenvDir(root)),
			HasWrapper: true,
			CreatedAt:  info.ModTime(),
		})
	}

	return projects, nil
}

// registerWrapper removes every stale wrapper variant for the project and
// registers a fresh artifact: a symlink to a repository-shipped run script
// on POSIX platforms (unless force regeneration was requested), or a
// generated wrapper script otherwise.
func (m *Manager) registerWrapper(name, root string, forceRun bool) error {
	m.removeWrapperArtifacts(name)

	linkPath := filepath.Join(m.cfg.Projects.BinDir, m.deps.Launcher.FileName(name))

	if m.plat.IsPOSIX() && !forceRun {
		if runScript, ok := launcher.CustomRunScript(root); ok {
			m.deps.Log.Info("linking repository run script %s", m.deps.Log.Path(runScript))
			if err := m.deps.FS.SetExecutable(runScript); err != nil {
				m.deps.Log.Warn("failed to mark run script executable: %v", err)
			}
			return m.deps.FS.CreateSymlink(runScript, linkPath)
		}
	}

	m.deps.Log.Info("generating wrapper script %s", m.deps.Log.Path(linkPath))
	content := m.deps.Launcher.Generate(root)
	if err := os.WriteFile(linkPath, []byte(content), 0755); err != nil {
		return fmt.Errorf("failed to write wrapper script: %w", err)
	}
	if err := m.deps.FS.SetExecutable(linkPath); err != nil {
		return err
	}
	return nil
}

// removeWrapperArtifacts deletes every platform variant of a project's
// wrapper, best-effort, so stale duplicates never accumulate.
func (m *Manager) removeWrapperArtifacts(name string) {
	paths := utils.Map(m.plat.WrapperVariants(name), func(variant string) string {
		return filepath.Join(m.cfg.Projects.BinDir, variant)
	})
	for _, path := range paths {
		if !fsutil.Exists(path) {
			continue
		}
		if err := os.Remove(path); err != nil {
			m.deps.Log.Warn("failed to remove wrapper %s: %v", path, err)
		}
	}
}

// registerPath delegates to the path registry and logs the outcome.
func (m *Manager) registerPath() error {
	result, err := m.deps.Paths.Ensure(m.cfg.Projects.BinDir)
	if err != nil {
		return err
	}
	switch result.Status {
	case pathenv.StatusAlreadyOnPath:
		m.deps.Log.Info("bin directory already on PATH")
	case pathenv.StatusAlreadyExported:
		m.deps.Log.Info("PATH export already present in %s", m.deps.Log.Path(result.ProfilePath))
	case pathenv.StatusAppended:
		m.deps.Log.Info("added %s to PATH via %s", m.deps.Log.Path(m.cfg.Projects.BinDir), m.deps.Log.Path(result.ProfilePath))
		m.deps.Log.Info("%s", result.Instruction)
	case pathenv.StatusManual:
		m.deps.Log.Info("%s", result.Instruction)
	}
	return nil
}

// markScriptsExecutable marks every file in the venv scripts directory
// executable, best-effort. Only meaningful where execute bits exist.
func (m *Manager) markScriptsExecutable(venvDir string) {
	if !m.plat.IsPOSIX() {
		return
	}
	scriptsDir := m.deps.Python.ScriptsDir(venvDir)
	entries, err := os.ReadDir(scriptsDir)
	if err != nil {
		m.deps.Log.Warn("failed to read venv scripts directory %s: %v", scriptsDir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := m.deps.FS.SetExecutable(filepath.Join(scriptsDir, entry.Name())); err != nil {
			m.deps.Log.Warn("%v", err)
		}
	}
}

// clearBytecodeCaches deletes every bytecode cache directory under root.
func (m *Manager) clearBytecodeCaches(root string) {
	var caches []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && d.Name() == bytecodeCacheDirName {
			caches = append(caches, path)
			return filepath.SkipDir
		}
		return nil
	})

	for _, cache := range caches {
		if !fsutil.IsWithin(m.cfg.Projects.BaseDir, cache) {
			m.deps.Log.Warn("refusing to delete cache outside base directory: %s", cache)
			continue
		}
		if err := m.deps.FS.RemoveAllRobust(cache); err != nil {
			m.deps.Log.Warn("failed to delete bytecode cache %s: %v", cache, err)
		}
	}
}

// wrapperProjectName strips a wrapper artifact's variant extension. Only the
// known variant extensions are removed so dotted project names pass through
// untouched.
func wrapperProjectName(artifact string) string {
	for _, ext := range []string{".cmd", ".bat"} {
		if strings.HasSuffix(artifact, ext) {
			return strings.TrimSuffix(artifact, ext)
		}
	}
	return artifact
}

// recoverRoot determines the project root behind a wrapper artifact: the
// parent directory of a symlink's target, or the marker assignment embedded
// in a generated script.
func (m *Manager) recoverRoot(artifact string) (string, bool) {
	info, err := os.Lstat(artifact)
	if err != nil {
		return "", false
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(artifact)
		if err != nil {
			return "", false
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(artifact), target)
		}
		return filepath.Dir(filepath.Clean(target)), true
	}

	content, err := os.ReadFile(artifact)
	if err != nil {
		return "", false
	}
	return launcher.ParseProjectRoot(string(content))
}
