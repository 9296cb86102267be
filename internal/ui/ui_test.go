package ui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/pyq-dev/pyq/pkg/models"
)

func newTestPrinter(verbose bool) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cfg := &models.UIConfig{Color: false, TildeHome: false}
	p := NewWithWriters(cfg, verbose, &out, &errOut)
	p.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	}
	return p, &out, &errOut
}

func TestInfo(t *testing.T) {
	p, out, errOut := newTestPrinter(false)
	p.Info("cloning %s", "demo")

	if got, want := out.String(), "09:26:53 INFO  cloning demo\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if errOut.Len() != 0 {
		t.Errorf("stderr = %q, want empty", errOut.String())
	}
}

func TestSuccess(t *testing.T) {
	p, out, _ := newTestPrinter(false)
	p.Success("project %s is ready", "demo")

	if got, want := out.String(), "09:26:53 DONE  project demo is ready\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestWarnHiddenByDefault(t *testing.T) {
	p, out, errOut := newTestPrinter(false)
	p.Warn("skipping clone")

	if out.Len() != 0 || errOut.Len() != 0 {
		t.Errorf("warning leaked without verbose: stdout=%q stderr=%q", out.String(), errOut.String())
	}
}

func TestWarnVerbose(t *testing.T) {
	p, out, errOut := newTestPrinter(true)
	p.Warn("skipping clone")

	if got, want := errOut.String(), "09:26:53 WARN  skipping clone\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
}

func TestErrorAlwaysVisible(t *testing.T) {
	p, _, errOut := newTestPrinter(false)
	p.Error(errors.New("clone failed"))

	if got, want := errOut.String(), "09:26:53 ERROR clone failed\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestPlain(t *testing.T) {
	p, out, _ := newTestPrinter(false)
	p.Plain("%d managed project(s)", 3)

	if got, want := out.String(), "3 managed project(s)\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestPath(t *testing.T) {
	cfg := &models.UIConfig{Color: false, TildeHome: false}
	p := NewWithWriters(cfg, false, &bytes.Buffer{}, &bytes.Buffer{})
	if got := p.Path("/opt/pyq/demo"); got != "/opt/pyq/demo" {
		t.Errorf("Path() = %q, want unchanged", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{name: "fits", input: "short", maxWidth: 10, want: "short"},
		{name: "exact", input: "exactly10!", maxWidth: 10, want: "exactly10!"},
		{name: "truncated", input: "a-very-long-project-name", maxWidth: 10, want: "a-very-..."},
		{name: "wide runes", input: "日本語テキスト", maxWidth: 8, want: "日本..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}
