// Package ui provides user-facing output for the pyq application.
package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/pyq-dev/pyq/pkg/models"
	"github.com/pyq-dev/pyq/pkg/utils"
)

var (
	infoColor    = lipgloss.Color("#0EA5E9") // Blue
	successColor = lipgloss.Color("#22C55E") // Green
	errorColor   = lipgloss.Color("#EF4444") // Red
	warningColor = lipgloss.Color("#F59E0B") // Orange
	mutedColor   = lipgloss.Color("#64748B") // Gray
)

var (
	infoLabelStyle    = lipgloss.NewStyle().Foreground(infoColor).Bold(true)
	successLabelStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	warnLabelStyle    = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	errorLabelStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	timestampStyle    = lipgloss.NewStyle().Foreground(mutedColor)
)

// Printer handles output formatting. Messages are single timestamped lines
// with three severities: info and success go to stdout and are always
// visible, warnings go to stderr and appear only in verbose mode, and
// errors go to stderr and are always visible.
type Printer struct {
	useColor     bool
	useTildeHome bool
	verbose      bool
	out          io.Writer
	errOut       io.Writer
	now          func() time.Time
}

// New creates a new Printer instance.
func New(config *models.UIConfig, verbose bool) *Printer {
	return &Printer{
		useColor:     config.Color,
		useTildeHome: config.TildeHome,
		verbose:      verbose,
		out:          os.Stdout,
		errOut:       os.Stderr,
		now:          time.Now,
	}
}

// NewWithWriters creates a Printer with explicit output streams, for tests.
func NewWithWriters(config *models.UIConfig, verbose bool, out, errOut io.Writer) *Printer {
	p := New(config, verbose)
	p.out = out
	p.errOut = errOut
	return p
}

// Info displays an informational progress message.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, p.line(infoLabelStyle, "INFO", fmt.Sprintf(format, args...)))
}

// Success displays a completion message.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.line(successLabelStyle, "DONE", fmt.Sprintf(format, args...)))
}

// Warn displays a recoverable problem. Hidden unless verbose mode is on.
func (p *Printer) Warn(format string, args ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintln(p.errOut, p.line(warnLabelStyle, "WARN", fmt.Sprintf(format, args...)))
}

// Error displays a fatal problem. Always visible regardless of verbosity.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.errOut, p.line(errorLabelStyle, "ERROR", err.Error()))
}

// Plain writes a message without severity label or timestamp.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Path formats a path for display, collapsing the home directory to ~.
func (p *Printer) Path(path string) string {
	if p.useTildeHome {
		return utils.TildePath(path)
	}
	return path
}

func (p *Printer) line(style lipgloss.Style, label, msg string) string {
	ts := p.now().Format("15:04:05")
	if !p.useColor {
		return fmt.Sprintf("%s %-5s %s", ts, label, msg)
	}
	return fmt.Sprintf("%s %s %s",
		timestampStyle.Render(ts),
		style.Render(fmt.Sprintf("%-5s", label)),
		msg,
	)
}

// Truncate shortens a string to the given display width, terminal-aware.
func Truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
