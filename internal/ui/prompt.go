package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// promptModal is a one-message dialog dismissed with Enter, Esc or a click.
type promptModal struct {
	title   string
	message string
}

func newPromptModal(title, message string) promptModal {
	return promptModal{title: title, message: message}
}

func (p promptModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Escape, keys.Activate) {
			return p, nil, true
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return p, nil, true
		}
	}
	return p, nil, false
}

func (p promptModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.WarningText.Bold(true).Render(p.title) + "\n\n" +
		styles.Text.Render(p.message) + "\n\n" +
		styles.FaintText.Render("Enter: OK")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Warning)).
		Padding(1, 2).
		Width(minInt(48, maxInt(width-4, 20))).
		Render(body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)))
}
