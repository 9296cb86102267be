package launcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pyq-dev/pyq/internal/platform"
)

func TestGeneratePOSIX(t *testing.T) {
	g := New(platform.POSIX{})
	content := g.Generate("/opt/pyq/demo")

	for _, want := range []string{
		"#!/bin/sh",
		`PYQ_PROJECT_ROOT="/opt/pyq/demo"`,
		".venv",
		`PYQ_ACTIVATE="$PYQ_VENV/bin/activate"`,
		"main.py",
		`"$@"`,
		"deactivate",
		"exit $status",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("generated script missing %q", want)
		}
	}

	if !strings.HasPrefix(content, "#!/bin/sh") {
		t.Error("script must start with a shebang")
	}
}

func TestGenerateWindows(t *testing.T) {
	g := New(platform.Windows{})
	content := g.Generate(`C:\pyq\apps\demo`)

	for _, want := range []string{
		"@echo off",
		`set "PYQ_PROJECT_ROOT=C:\pyq\apps\demo"`,
		`set "PYQ_ACTIVATE=%PYQ_VENV%\Scripts\activate.bat"`,
		`\Scripts\deactivate.bat`,
		"main.py",
		"%*",
		"exit /b %PYQ_STATUS%",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("generated batch file missing %q", want)
		}
	}
}

func TestParseProjectRoot(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantRoot string
		wantOK   bool
	}{
		{
			name:     "posix wrapper",
			content:  New(platform.POSIX{}).Generate("/opt/pyq/demo"),
			wantRoot: "/opt/pyq/demo",
			wantOK:   true,
		},
		{
			name:     "windows wrapper",
			content:  New(platform.Windows{}).Generate(`C:\pyq\apps\demo`),
			wantRoot: `C:\pyq\apps\demo`,
			wantOK:   true,
		},
		{
			name:    "unrelated script",
			content: "#!/bin/sh\necho hello\n",
			wantOK:  false,
		},
		{
			name:    "empty marker",
			content: "PYQ_PROJECT_ROOT=\"\"\n",
			wantOK:  false,
		},
		{
			name:    "empty content",
			content: "",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, ok := ParseProjectRoot(tt.content)
			if ok != tt.wantOK {
				t.Fatalf("ParseProjectRoot() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && root != tt.wantRoot {
				t.Errorf("ParseProjectRoot() root = %q, want %q", root, tt.wantRoot)
			}
		})
	}
}

func TestGenerateParseRoundTrip(t *testing.T) {
	g := New(platform.POSIX{})
	want := "/opt/pyq/round-trip"

	got, ok := ParseProjectRoot(g.Generate(want))
	if !ok {
		t.Fatal("marker not found in generated script")
	}
	if got != want {
		t.Errorf("recovered root = %q, want %q", got, want)
	}
}

func TestCustomRunScript(t *testing.T) {
	t.Run("finds run script", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "run")
		if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
			t.Fatal(err)
		}

		got, ok := CustomRunScript(root)
		if !ok {
			t.Fatal("expected run script to be found")
		}
		if got != path {
			t.Errorf("CustomRunScript() = %q, want %q", got, path)
		}
	})

	t.Run("finds run.sh fallback", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "run.sh")
		if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
			t.Fatal(err)
		}

		got, ok := CustomRunScript(root)
		if !ok || got != path {
			t.Errorf("CustomRunScript() = %q, %v; want %q, true", got, ok, path)
		}
	})

	t.Run("ignores run directory", func(t *testing.T) {
		root := t.TempDir()
		if err := os.Mkdir(filepath.Join(root, "run"), 0755); err != nil {
			t.Fatal(err)
		}

		if _, ok := CustomRunScript(root); ok {
			t.Error("a directory named run must not count as a run script")
		}
	})

	t.Run("no run script", func(t *testing.T) {
		if _, ok := CustomRunScript(t.TempDir()); ok {
			t.Error("expected no run script in empty directory")
		}
	})
}

func TestFileName(t *testing.T) {
	if got := New(platform.POSIX{}).FileName("demo"); got != "demo" {
		t.Errorf("posix FileName = %q, want demo", got)
	}
	if got := New(platform.Windows{}).FileName("demo"); got != "demo.cmd" {
		t.Errorf("windows FileName = %q, want demo.cmd", got)
	}
}
