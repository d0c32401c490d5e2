package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/apodview/internal/gallery"
	"github.com/five82/apodview/internal/media"
)

// galleryRows is the number of entry rows visible inside the gallery box.
func (m Model) galleryRows() int {
	// Box starts one row above galleryTop and has a bottom border.
	return maxInt(m.height-galleryTop-1, 1)
}

// galleryWindow returns the index of the first visible entry so that
// selected stays on screen.
func galleryWindow(selected, total, rows int) int {
	if rows <= 0 || total <= rows {
		return 0
	}
	start := selected - rows + 1
	return clampInt(start, 0, total-rows)
}

// galleryIndexAt maps a screen row to an entry index, or -1.
func (m Model) galleryIndexAt(y int) int {
	if m.snapshot.Placeholder.Active() {
		return -1
	}
	rows := m.galleryRows()
	row := y - galleryTop
	if row < 0 || row >= rows {
		return -1
	}
	idx := galleryWindow(m.selected, len(m.snapshot.Entries), rows) + row
	if idx >= len(m.snapshot.Entries) {
		return -1
	}
	return idx
}

func kindLabel(kind media.Kind) string {
	switch kind {
	case media.KindImage:
		return "IMAGE"
	case media.KindYouTube:
		return "YOUTUBE"
	case media.KindGenericVideo:
		return "VIDEO"
	default:
		return "?"
	}
}

// renderGallery renders either the active placeholder or the entry list.
func (m Model) renderGallery(height int) string {
	focused := m.focus == focusGallery
	bgColor := m.theme.SurfaceAlt
	if focused {
		bgColor = m.theme.FocusBg
	}
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	width := maxInt(m.width-2, 0)

	title := "Gallery"
	if n := len(m.snapshot.Entries); n > 0 {
		title = fmt.Sprintf("Gallery (%d)", n)
	}

	if ph := m.snapshot.Placeholder; ph.Active() {
		return m.renderBox(title, m.renderPlaceholder(ph, bg, styles, width, height-2), m.width, height, focused)
	}
	if len(m.snapshot.Entries) == 0 {
		hint := bg.Render("Pick a date range and press "+fetchLabel+".", styles.MutedText)
		return m.renderBox(title, bg.FillLine(hint, width), m.width, height, focused)
	}

	rows := m.galleryRows()
	start := galleryWindow(m.selected, len(m.snapshot.Entries), rows)
	end := minInt(start+rows, len(m.snapshot.Entries))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderEntry(m.snapshot.Entries[i], i == m.selected, bg, styles, width))
	}
	return m.renderBox(title, strings.Join(lines, "\n"), m.width, height, focused)
}

func (m Model) renderEntry(entry gallery.Entry, selected bool, bg BgStyle, styles Styles, width int) string {
	badge := styles.KindStyle(entry.Kind).Render(padRight(kindLabel(entry.Kind), 7))
	marker := "  "
	if selected {
		marker = "› "
	}

	// marker + date + gaps + badge
	fixed := 2 + 10 + 2 + lipgloss.Width(badge) + 2
	titleWidth := width - fixed
	thumb := ""
	if m.width >= LayoutCompactWidth {
		thumbWidth := minInt(48, width/3)
		titleWidth -= thumbWidth + 2
		thumb = truncateMiddle(entry.Thumbnail, thumbWidth)
	}
	title := padRight(truncate(entry.Title, titleWidth), maxInt(titleWidth, 0))

	if selected && m.focus == focusGallery {
		plain := marker + padRight(entry.Date, 10) + "  " +
			" " + padRight(kindLabel(entry.Kind), 7) + " " + "  " + title
		if thumb != "" {
			plain += "  " + thumb
		}
		return styles.Selected.Width(width).Render(plain)
	}

	markerStyle := styles.FaintText
	if selected {
		markerStyle = styles.AccentText
	}
	line := bg.Render(marker, markerStyle) +
		bg.Render(padRight(entry.Date, 10), styles.MutedText) + bg.Spaces(2) +
		badge + bg.Spaces(2) +
		bg.Render(title, styles.Text)
	if thumb != "" {
		line += bg.Spaces(2) + bg.Render(thumb, styles.FaintText)
	}
	return bg.FillLine(line, width)
}

func (m Model) renderPlaceholder(ph gallery.Placeholder, bg BgStyle, styles Styles, width, height int) string {
	var text string
	switch ph.Kind {
	case gallery.PlaceholderLoading:
		text = m.spinner.View() + bg.Space() + bg.Render(ph.Text, styles.InfoText)
	case gallery.PlaceholderFailed:
		text = bg.Render(ph.Text, styles.DangerText)
	default:
		text = bg.Render(ph.Text, styles.MutedText)
	}
	return lipgloss.Place(width, maxInt(height, 1), lipgloss.Center, lipgloss.Center, text,
		lipgloss.WithWhitespaceBackground(bg.bg))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
