// Package config provides configuration management for the pyq application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pyq-dev/pyq/internal/platform"
	"github.com/pyq-dev/pyq/pkg/models"
	"github.com/pyq-dev/pyq/pkg/utils"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
)

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return filepath.Join(".", ".config", "pyq")
	}
	return filepath.Join(home, ".config", "pyq")
}

// Init initializes the configuration system, creating default config if needed.
func Init() error {
	configDir := getConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigName(configName)
	viper.SetConfigType(configType)
	viper.AddConfigPath(configDir)

	plat := platform.Detect()
	viper.SetDefault("projects.basedir", plat.DefaultBaseDir())
	viper.SetDefault("projects.bindir", plat.DefaultBinDir())
	viper.SetDefault("python.executable", "python3")
	viper.SetDefault("ui.color", true)
	viper.SetDefault("ui.tilde_home", true)

	// Environment overrides take precedence over the config file.
	_ = viper.BindEnv("projects.basedir", "PYQ_BASE_DIR")
	_ = viper.BindEnv("projects.bindir", "PYQ_BIN_DIR")
	_ = viper.BindEnv("python.executable", "PYQ_PYTHON")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			configPath := filepath.Join(configDir, configName+"."+configType)
			if err := viper.SafeWriteConfig(); err != nil {
				if err := viper.WriteConfigAs(configPath); err != nil {
					return fmt.Errorf("failed to create config file: %w", err)
				}
			}
		} else {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// Load loads and returns the current configuration.
func Load() (*models.Config, error) {
	var cfg models.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Projects.BaseDir = utils.ExpandPath(cfg.Projects.BaseDir)
	cfg.Projects.BinDir = utils.ExpandPath(cfg.Projects.BinDir)

	return &cfg, nil
}

// Set sets a configuration value by key.
func Set(key string, value any) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// GetValue retrieves a configuration value by key.
func GetValue(key string) any {
	return viper.Get(key)
}

// AllSettings returns all configuration settings.
func AllSettings() map[string]any {
	return viper.AllSettings()
}
