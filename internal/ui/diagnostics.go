package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/apodview/internal/logtail"
)

// diagnosticsMsg carries a fresh tail of the log file.
type diagnosticsMsg struct {
	lines []string
	err   error
}

func loadDiagnosticsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, DiagnosticsLines)
		return diagnosticsMsg{lines: lines, err: err}
	}
}

// diagnosticsModal shows the tail of apodview's own log.
type diagnosticsModal struct {
	path   string
	theme  Theme
	lines  []string
	err    error
	loaded bool
	vp     viewport.Model
}

func newDiagnosticsModal(path string, theme Theme, width, height int) diagnosticsModal {
	d := diagnosticsModal{path: path, theme: theme}
	d.vp = viewport.New(1, 1)
	d.resize(width, height)
	return d
}

func (d *diagnosticsModal) resize(width, height int) {
	// border (2) + padding (4) horizontally; border, padding, title and
	// status rows vertically.
	d.vp.Width = maxInt(width-10, 10)
	d.vp.Height = maxInt(height-10, 3)
}

func (d diagnosticsModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case diagnosticsMsg:
		d.loaded = true
		d.lines = msg.lines
		d.err = msg.err
		d.vp.SetContent(d.renderLines())
		d.vp.GotoBottom()
		return d, nil, false

	case tea.WindowSizeMsg:
		d.resize(msg.Width, msg.Height)
		d.vp.SetContent(d.renderLines())
		return d, nil, false

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Escape, keys.Diagnostics):
			return d, nil, true
		case key.Matches(msg, keys.Refresh):
			return d, loadDiagnosticsCmd(d.path), false
		case key.Matches(msg, keys.Top):
			d.vp.GotoTop()
			return d, nil, false
		case key.Matches(msg, keys.Bottom):
			d.vp.GotoBottom()
			return d, nil, false
		}
	}

	var cmd tea.Cmd
	d.vp, cmd = d.vp.Update(msg)
	return d, cmd, false
}

func (d diagnosticsModal) renderLines() string {
	styles := d.theme.Styles()
	if len(d.lines) == 0 {
		return styles.MutedText.Render("No log entries")
	}
	var b strings.Builder
	for i, line := range d.lines {
		style := styles.Text
		switch logtail.LevelOf(line) {
		case logtail.LevelError:
			style = styles.DangerText
		case logtail.LevelWarn:
			style = styles.WarningText
		case logtail.LevelDebug:
			style = styles.MutedText
		}
		b.WriteString(style.Render(truncate(line, d.vp.Width)))
		if i < len(d.lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (d diagnosticsModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var status string
	switch {
	case !d.loaded:
		status = styles.MutedText.Render("Loading…")
	case d.err != nil:
		status = styles.DangerText.Render(truncate(d.err.Error(), d.vp.Width))
	default:
		status = styles.FaintText.Render(fmt.Sprintf("%d lines  •  r reload  •  esc close", len(d.lines)))
	}

	body := styles.Text.Bold(true).Render("Diagnostics") + "  " +
		styles.MutedText.Render(truncateMiddle(d.path, maxInt(d.vp.Width-14, 10))) + "\n\n" +
		d.vp.View() + "\n\n" + status

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Render(body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)))
}
