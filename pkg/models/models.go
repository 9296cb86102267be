// Package models defines the core data structures used throughout the pyq application.
package models

import "time"

// Project represents a managed Python project with its probed state.
//
// No metadata is persisted for a project: every field is re-derived on each
// invocation by probing the file system under the base directory.
type Project struct {
	Name       string    `json:"name"`        // Unique project name, used as directory and wrapper name
	SourceURL  string    `json:"source_url"`  // Git URL the project was cloned from (known only at setup time)
	Root       string    `json:"root"`        // Absolute path to the project directory
	VenvDir    string    `json:"venv_dir"`    // Absolute path to the virtual environment directory
	HasRepo    bool      `json:"has_repo"`    // Whether Root contains a .git directory
	HasVenv    bool      `json:"has_venv"`    // Whether the virtual environment directory exists
	HasWrapper bool      `json:"has_wrapper"` // Whether a wrapper artifact is registered in the bin directory
	CreatedAt  time.Time `json:"created_at"`  // Root directory modification time
}

// Config represents the application configuration.
type Config struct {
	Projects ProjectsConfig `mapstructure:"projects"` // Project storage configuration
	Python   PythonConfig   `mapstructure:"python"`   // Python tooling configuration
	UI       UIConfig       `mapstructure:"ui"`       // UI-related configuration
}

// ProjectsConfig contains project storage configuration options.
type ProjectsConfig struct {
	BaseDir string `mapstructure:"basedir"` // Base directory holding one subdirectory per project
	BinDir  string `mapstructure:"bindir"`  // Directory holding one wrapper per project, expected on PATH
}

// PythonConfig contains Python tooling configuration options.
type PythonConfig struct {
	Executable string `mapstructure:"executable"` // Interpreter used to create virtual environments
}

// UIConfig contains UI-related configuration options.
type UIConfig struct {
	Color     bool `mapstructure:"color"`      // Enable colored output
	TildeHome bool `mapstructure:"tilde_home"` // Display home directory as ~ in paths
}
