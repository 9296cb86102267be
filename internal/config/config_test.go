package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestGetConfigDir(t *testing.T) {
	dir := getConfigDir()
	if filepath.Base(dir) != "pyq" {
		t.Errorf("getConfigDir() should end with 'pyq', got %s", dir)
	}
}

func TestInitDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	viper.Reset()

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if viper.GetString("projects.basedir") == "" {
		t.Error("Default projects.basedir not set")
	}
	if viper.GetString("projects.bindir") == "" {
		t.Error("Default projects.bindir not set")
	}
	if viper.GetString("python.executable") != "python3" {
		t.Errorf("Default python.executable = %s, want python3", viper.GetString("python.executable"))
	}
	if !viper.GetBool("ui.color") {
		t.Error("Default ui.color should be true")
	}
	if !viper.GetBool("ui.tilde_home") {
		t.Error("Default ui.tilde_home should be true")
	}
}

func TestInitWritesConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	configPath := filepath.Join(home, ".config", "pyq", "config.toml")
	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("Init() did not create %s: %v", configPath, err)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PYQ_BASE_DIR", "/custom/apps")
	t.Setenv("PYQ_PYTHON", "python3.12")
	viper.Reset()

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Projects.BaseDir != "/custom/apps" {
		t.Errorf("BaseDir = %s, want /custom/apps", cfg.Projects.BaseDir)
	}
	if cfg.Python.Executable != "python3.12" {
		t.Errorf("Executable = %s, want python3.12", cfg.Python.Executable)
	}
}

func TestLoad(t *testing.T) {
	viper.Reset()
	viper.Set("projects.basedir", "/data/apps")
	viper.Set("projects.bindir", "/data/bin")
	viper.Set("python.executable", "python3.11")
	viper.Set("ui.color", false)
	viper.Set("ui.tilde_home", false)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Projects.BaseDir != "/data/apps" {
		t.Errorf("Projects.BaseDir = %s, want /data/apps", cfg.Projects.BaseDir)
	}
	if cfg.Projects.BinDir != "/data/bin" {
		t.Errorf("Projects.BinDir = %s, want /data/bin", cfg.Projects.BinDir)
	}
	if cfg.Python.Executable != "python3.11" {
		t.Errorf("Python.Executable = %s, want python3.11", cfg.Python.Executable)
	}
	if cfg.UI.Color {
		t.Errorf("UI.Color = %v, want false", cfg.UI.Color)
	}
	if cfg.UI.TildeHome {
		t.Errorf("UI.TildeHome = %v, want false", cfg.UI.TildeHome)
	}
}

func TestPathExpansion(t *testing.T) {
	t.Run("HomeDirectoryExpansion", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		viper.Reset()
		viper.Set("projects.basedir", "~/apps")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if want := filepath.Join(home, "apps"); cfg.Projects.BaseDir != want {
			t.Errorf("BaseDir = %s, want %s", cfg.Projects.BaseDir, want)
		}
	})

	t.Run("EnvironmentVariableExpansion", func(t *testing.T) {
		t.Setenv("PYQ_TEST_ROOT", "/test/path")
		viper.Reset()
		viper.Set("projects.bindir", "$PYQ_TEST_ROOT/bin")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Projects.BinDir != "/test/path/bin" {
			t.Errorf("BinDir = %s, want /test/path/bin", cfg.Projects.BinDir)
		}
	})
}

func TestGetValue(t *testing.T) {
	viper.Reset()
	viper.Set("python.executable", "python3.13")

	if got := GetValue("python.executable"); got != "python3.13" {
		t.Errorf("GetValue() = %v, want python3.13", got)
	}
	if got := GetValue("no.such.key"); got != nil {
		t.Errorf("GetValue() = %v, want nil", got)
	}
}

func TestAllSettings(t *testing.T) {
	viper.Reset()
	viper.Set("projects.basedir", "/data/apps")
	viper.Set("ui.color", true)

	settings := AllSettings()
	projects, ok := settings["projects"].(map[string]interface{})
	if !ok {
		t.Fatal("AllSettings() missing 'projects' section")
	}
	if projects["basedir"] != "/data/apps" {
		t.Errorf("AllSettings() missing or incorrect projects.basedir")
	}
}
