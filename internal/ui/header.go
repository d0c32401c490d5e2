package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/apodview/internal/gallery"
)

// renderHeader renders the status line: logo, key mode, gallery state and
// the time of the last gallery change.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("apodview", styles.Logo)}

	if m.demoKey {
		parts = append(parts, bg.Render("DEMO_KEY", styles.WarningText.Bold(true)))
	} else {
		parts = append(parts, bg.Render("● API key", styles.SuccessText))
	}

	switch m.snapshot.Placeholder.Kind {
	case gallery.PlaceholderLoading:
		parts = append(parts, bg.Render("Loading…", styles.InfoText))
	case gallery.PlaceholderFailed:
		parts = append(parts, bg.Render("● Request failed", styles.DangerText))
	default:
		parts = append(parts,
			bg.Render("Entries:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(m.snapshot.Entries)), styles.Text))
	}

	if m.width >= LayoutCompactWidth {
		parts = append(parts,
			bg.Render("Range:", styles.MutedText)+bg.Space()+
				bg.Render(m.fields.Min+" → "+m.fields.Max, styles.FaintText))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts,
			bg.Render("Updated", styles.FaintText)+bg.Space()+
				bg.Render(m.snapshot.LastUpdated.Format("15:04:05"), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderCommandBar renders context-dependent key hints, or the current
// notice when one is showing.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.notice != "" {
		style := styles.SuccessText
		if m.noticeErr {
			style = styles.DangerText
		}
		return styles.Header.Width(m.width).Render(bg.Render(truncate(m.notice, m.width-2), style))
	}

	type cmd struct{ key, desc string }
	var commands []cmd
	switch m.focus {
	case focusGallery:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"Enter", "Open"},
			{"Tab", "Focus"},
		}
	case focusFetch:
		commands = []cmd{
			{"Enter", "Fetch"},
			{"Tab", "Focus"},
		}
	default:
		commands = []cmd{
			{"0-9 -", "Edit date"},
			{"Enter", "Next"},
			{"Tab", "Focus"},
		}
	}
	commands = append(commands,
		cmd{"L", "Log"},
		cmd{"?", "Help"},
		cmd{"q", "Quit"},
	)

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderFact renders the trivia line above the gallery.
func (m Model) renderFact() string {
	fact := strings.TrimSpace(m.snapshot.Fact)
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Info)).
		Italic(true).
		Padding(0, 1).
		Width(m.width)
	return style.Render(truncate(fact, m.width-2))
}
