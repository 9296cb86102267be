// Package table renders styled tables for list output using lipgloss.
package table

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Style defines the visual styling options for tables.
type Style struct {
	Border       lipgloss.Border
	HeaderStyle  lipgloss.Style
	PaddingLeft  int
	PaddingRight int
	MarginLeft   int
}

// DefaultStyle returns a clean default style for tables.
func DefaultStyle() Style {
	return Style{
		Border:       lipgloss.RoundedBorder(),
		HeaderStyle:  lipgloss.NewStyle().Bold(true),
		PaddingLeft:  1,
		PaddingRight: 1,
		MarginLeft:   1,
	}
}

// PlainStyle returns a borderless style for non-colored output.
func PlainStyle() Style {
	return Style{
		Border:       lipgloss.Border{},
		HeaderStyle:  lipgloss.NewStyle().Bold(true).Underline(true),
		PaddingLeft:  0,
		PaddingRight: 2,
	}
}

// Builder provides a convenient interface for creating styled tables.
type Builder struct {
	headers []string
	rows    [][]string
	style   Style
	output  io.Writer
}

// New creates a new table builder with default styling.
func New() *Builder {
	return NewWithStyle(DefaultStyle())
}

// NewWithStyle creates a new table builder with custom styling.
func NewWithStyle(style Style) *Builder {
	return &Builder{
		style:  style,
		output: os.Stdout,
	}
}

// SetOutput sets the output writer for the table.
func (b *Builder) SetOutput(w io.Writer) *Builder {
	b.output = w
	return b
}

// Headers sets the table headers.
func (b *Builder) Headers(headers ...string) *Builder {
	b.headers = append([]string(nil), headers...)
	return b
}

// Row adds a data row to the table.
func (b *Builder) Row(columns ...string) *Builder {
	b.rows = append(b.rows, append([]string(nil), columns...))
	return b
}

// RowCount returns the number of data rows in the table.
func (b *Builder) RowCount() int {
	return len(b.rows)
}

// Build creates and returns the formatted table as a string.
func (b *Builder) Build() string {
	t := table.New().
		Border(b.style.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().
				PaddingLeft(b.style.PaddingLeft).
				PaddingRight(b.style.PaddingRight)
			if row == table.HeaderRow {
				style = style.Inherit(b.style.HeaderStyle)
			}
			return style
		})

	if len(b.headers) > 0 {
		t.Headers(b.headers...)
	}
	for _, row := range b.rows {
		t.Row(row...)
	}

	return lipgloss.NewStyle().
		MarginLeft(b.style.MarginLeft).
		Render(t.Render())
}

// Println writes the table followed by a newline to the configured output writer.
func (b *Builder) Println() error {
	_, err := fmt.Fprintln(b.output, b.Build())
	return err
}
