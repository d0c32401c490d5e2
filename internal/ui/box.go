package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderBox draws content inside a rounded border with title set into the
// top edge. width and height are the outer size.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	borderColor := m.theme.Border
	titleStyle := m.theme.Styles().MutedText
	if focused {
		borderColor = m.theme.BorderFocus
		titleStyle = m.theme.Styles().AccentText.Bold(true)
	}
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))

	label := " " + title + " "
	fill := width - 3 - lipgloss.Width(label)
	if fill < 0 {
		label = ""
		fill = maxInt(width-3, 0)
	}
	top := edge.Render(border.TopLeft+border.Top) +
		titleStyle.Render(label) +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	body := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(maxInt(width-2, 0)).
		Height(maxInt(height-2, 0)).
		MaxHeight(maxInt(height-1, 0)).
		Render(content)

	return top + "\n" + body
}
