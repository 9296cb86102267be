// Package discovery provides filesystem-based probing of the projects base
// directory.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pyq-dev/pyq/internal/fsutil"
	"github.com/pyq-dev/pyq/internal/git"
	"github.com/pyq-dev/pyq/internal/python"
	"github.com/pyq-dev/pyq/pkg/models"
	"github.com/pyq-dev/pyq/pkg/utils"
)

// DiscoverProjects lists every git repository directly under the base
// directory. This finds clones regardless of whether a wrapper is registered
// for them, so callers can surface projects left behind by a partial setup
// or a manually deleted wrapper.
func DiscoverProjects(baseDir string) ([]models.Project, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory not configured")
	}
	baseDir = utils.ExpandPath(baseDir)

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read base directory: %w", err)
	}

	var projects []models.Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		root := filepath.Join(baseDir, entry.Name())
		if !git.IsRepository(root) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		projects = append(projects, models.Project{
			Name:      entry.Name(),
			Root:      root,
			VenvDir:   python.VenvDir(root),
			HasRepo:   true,
			HasVenv:   fsutil.IsDir(python.VenvDir(root)),
			CreatedAt: info.ModTime(),
		})
	}

	return projects, nil
}
