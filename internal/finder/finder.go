// Package finder provides fuzzy finder integration for the pyq application.
package finder

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/pyq-dev/pyq/pkg/models"
	"github.com/pyq-dev/pyq/pkg/utils"
)

// Finder provides fuzzy finder functionality.
type Finder struct {
	useTildeHome bool
}

// New creates a new Finder instance.
func New(uiConfig *models.UIConfig) *Finder {
	return &Finder{
		useTildeHome: uiConfig.TildeHome,
	}
}

// SelectProject displays a fuzzy finder for managed project selection.
func (f *Finder) SelectProject(projects []models.Project) (*models.Project, error) {
	if len(projects) == 0 {
		return nil, fmt.Errorf("no managed projects available")
	}

	idx, err := fuzzyfinder.Find(
		projects,
		func(i int) string {
			p := projects[i]
			path := p.Root
			if f.useTildeHome {
				path = utils.TildePath(path)
			}
			return fmt.Sprintf("%s (%s)", p.Name, path)
		},
		fuzzyfinder.WithPromptString("Select project> "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return f.projectPreview(projects[i])
		}),
	)
	if err != nil {
		return nil, err
	}

	return &projects[idx], nil
}

func (f *Finder) projectPreview(p models.Project) string {
	path := p.Root
	if f.useTildeHome {
		path = utils.TildePath(path)
	}
	venv := "missing"
	if p.HasVenv {
		venv = "present"
	}
	return fmt.Sprintf("Project: %s\nPath: %s\nVirtualenv: %s\nCreated: %s\n",
		p.Name, path, venv, p.CreatedAt.Format("2006-01-02 15:04"))
}
