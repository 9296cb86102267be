// Package tui provides interactive terminal prompts for the pyq application.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0EA5E9"))
)

// IsAffirmative reports whether the user's input is an affirmative token.
// Anything else cancels the pending action.
func IsAffirmative(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}
	return false
}

// Confirm displays a typed confirmation prompt and reports whether the
// user entered an affirmative token.
func Confirm(prompt string) (bool, error) {
	model := confirmModel{prompt: prompt}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.cancelled {
		return false, nil
	}
	return IsAffirmative(m.input), nil
}

// confirmModel accumulates typed characters until Enter submits them.
type confirmModel struct {
	prompt    string
	input     string
	cancelled bool
	done      bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit

	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}

	case tea.KeyRunes:
		m.input += string(keyMsg.Runes)

	case tea.KeySpace:
		m.input += " "
	}

	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return promptStyle.Render(m.prompt) + inputStyle.Render(m.input)
}
