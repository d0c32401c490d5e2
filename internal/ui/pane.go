package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/apodview/internal/viewer"
)

// modalPane is the terminal rendition of the viewer's modal. It only
// records what the viewer asks for; Model draws it.
type modalPane struct {
	visible      bool
	title        string
	date         string
	explanation  string
	imageSrc     string
	imageAlt     string
	imageVisible bool
	playback     []viewer.Playback
	enlarged     bool

	focus        viewer.FocusTarget
	focusPending bool
}

var _ viewer.Surface = (*modalPane)(nil)

func newModalPane() *modalPane {
	return &modalPane{imageVisible: true, focus: viewer.FocusTrigger}
}

func (p *modalPane) SetVisible(visible bool) { p.visible = visible }

func (p *modalPane) SetText(title, date, explanation string) {
	p.title = title
	p.date = date
	p.explanation = explanation
}

func (p *modalPane) SetImage(src, alt string) {
	p.imageSrc = src
	p.imageAlt = alt
}

func (p *modalPane) SetImageVisible(visible bool) { p.imageVisible = visible }

func (p *modalPane) InsertPlayback(pb viewer.Playback) {
	p.playback = append(p.playback, pb)
}

func (p *modalPane) RemovePlayback(kind viewer.PlaybackKind) {
	kept := p.playback[:0]
	for _, pb := range p.playback {
		if pb.Kind != kind {
			kept = append(kept, pb)
		}
	}
	p.playback = kept
}

func (p *modalPane) SetEnlarged(enlarged bool) { p.enlarged = enlarged }

func (p *modalPane) Focus(target viewer.FocusTarget) {
	p.focus = target
	p.focusPending = true
}

// takeFocus returns a focus request made since the last call.
func (p *modalPane) takeFocus() (viewer.FocusTarget, bool) {
	if !p.focusPending {
		return 0, false
	}
	p.focusPending = false
	return p.focus, true
}

const closeLabel = "[ Close × ]"

// viewerLayout is the rendered modal box and the screen areas that react
// to clicks.
type viewerLayout struct {
	box   string
	modal rect
	close rect
	image rect
}

// viewerWidths returns the outer and inner (text) width of the modal.
func (m Model) viewerWidths() (outer, inner int) {
	outer = m.width - 4
	if !m.pane.enlarged && outer > ViewerMaxWidth {
		outer = ViewerMaxWidth
	}
	if m.pane.enlarged {
		outer = m.width
	}
	if outer < 30 {
		outer = 30
	}
	// border (2) + horizontal padding (2 each side)
	return outer, outer - 6
}

// viewerExplanationHeight is the number of explanation rows that fit once
// the fixed rows of the modal are accounted for.
func (m Model) viewerExplanationHeight(fixedRows int) int {
	maxOuter := m.height - 2
	if m.pane.enlarged {
		maxOuter = m.height
	}
	// border (2) + vertical padding (2)
	h := maxOuter - 4 - fixedRows
	if h < 3 {
		h = 3
	}
	return h
}

// viewerBodyLines returns the modal rows above the explanation and the row
// span of the image block within them.
func (m Model) viewerBodyLines(inner int) (lines []string, imageStart, imageEnd int) {
	styles := m.theme.Styles()
	p := m.pane

	titleWidth := inner - lipgloss.Width(closeLabel) - 1
	closeStyle := styles.MutedText
	if m.focus == focusClose {
		closeStyle = styles.ButtonFocus.Padding(0)
	}
	lines = append(lines,
		styles.Text.Bold(true).Render(padRight(truncate(p.title, titleWidth), titleWidth))+" "+closeStyle.Render(closeLabel))

	meta := p.date
	if c := strings.TrimSpace(m.viewer.Item().Copyright); c != "" {
		meta += "  © " + c
	}
	lines = append(lines, styles.MutedText.Render(truncate(meta, inner)), "")

	imageStart, imageEnd = -1, -1
	if p.imageVisible && p.imageSrc != "" {
		imageStart = len(lines)
		alt := lipgloss.NewStyle().Width(inner - 2).Render(p.imageAlt)
		for _, l := range strings.Split(alt, "\n") {
			lines = append(lines, styles.AccentText.Render("▣ ")+styles.Text.Render(l))
		}
		src := truncateMiddle(p.imageSrc, inner-2)
		if p.enlarged {
			src = lipgloss.NewStyle().Width(inner - 2).Render(p.imageSrc)
		}
		for _, l := range strings.Split(src, "\n") {
			lines = append(lines, "  "+styles.InfoText.Render(l))
		}
		hint := "click or z to enlarge"
		if p.enlarged {
			hint = "click or z to restore"
		}
		lines = append(lines, "  "+styles.FaintText.Render(hint))
		imageEnd = len(lines)
		lines = append(lines, "")
	}

	for _, pb := range p.playback {
		switch pb.Kind {
		case viewer.PlaybackEmbed:
			lines = append(lines,
				styles.KindStyle(m.viewer.Item().Media.Kind).Render("▶ YouTube")+" "+styles.InfoText.Render(truncateMiddle(pb.Src, inner-12)))
		case viewer.PlaybackLink:
			lines = append(lines,
				styles.ButtonFocus.Render(pb.Label)+" "+styles.InfoText.Render(truncateMiddle(pb.Src, inner-len(pb.Label)-4)),
				styles.MutedText.Render(truncate(pb.Description, inner)))
		}
		lines = append(lines, "")
	}
	return lines, imageStart, imageEnd
}

func (m Model) viewerFooter(inner int) string {
	styles := m.theme.Styles()
	if m.notice != "" {
		if m.noticeErr {
			return styles.DangerText.Render(truncate(m.notice, inner))
		}
		return styles.SuccessText.Render(truncate(m.notice, inner))
	}
	hints := []string{"esc close", "o open", "y copy", "pgup/pgdn scroll"}
	if m.pane.imageVisible {
		hints = append(hints, "z enlarge")
	}
	return styles.FaintText.Render(truncate(strings.Join(hints, " · "), inner))
}

// layoutViewer renders the modal box and works out where it sits on screen.
func (m Model) layoutViewer() viewerLayout {
	outer, inner := m.viewerWidths()
	body, imageStart, imageEnd := m.viewerBodyLines(inner)

	content := strings.Join(body, "\n") + "\n" + m.explain.View() + "\n\n" + m.viewerFooter(inner)

	borderColor := m.theme.BorderFocus
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(1, 2).
		Width(outer - 2).
		Render(content)

	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x := maxInt((m.width-w)/2, 0)
	y := maxInt((m.height-h)/2, 0)

	// Text starts one border column plus two padding columns in, and one
	// border row plus one padding row down.
	textX, textY := x+3, y+2
	layout := viewerLayout{
		box:   box,
		modal: rect{x: x, y: y, w: w, h: h},
		close: rect{x: textX + inner - lipgloss.Width(closeLabel), y: textY, w: lipgloss.Width(closeLabel), h: 1},
	}
	if imageStart >= 0 {
		layout.image = rect{x: textX, y: textY + imageStart, w: inner, h: imageEnd - imageStart}
	}
	return layout
}

// viewerTarget maps a screen cell to the element a click there lands on.
func (m Model) viewerTarget(x, y int) viewer.Target {
	layout := m.layoutViewer()
	switch {
	case layout.close.contains(x, y):
		return viewer.TargetCloseControl
	case layout.image.w > 0 && layout.image.contains(x, y):
		return viewer.TargetImage
	case layout.modal.contains(x, y):
		return viewer.TargetContent
	default:
		return viewer.TargetBackdrop
	}
}

// renderViewer draws the modal over a plain backdrop.
func (m Model) renderViewer() string {
	layout := m.layoutViewer()
	return placeAt(m.width, m.height, layout.modal.x, layout.modal.y, layout.box, m.theme.Background)
}

// syncExplanation sizes the explanation viewport for the current pane.
func (m *Model) syncExplanation() {
	_, inner := m.viewerWidths()
	body, _, _ := m.viewerBodyLines(inner)
	// body rows + blank + footer
	m.explain.Width = inner
	m.explain.Height = m.viewerExplanationHeight(len(body) + 2)
	m.explain.SetContent(lipgloss.NewStyle().Width(inner).Render(m.pane.explanation))
}

// placeAt draws box with its top-left corner at (x, y) on a width×height
// backdrop.
func placeAt(width, height, x, y int, box, bgColor string) string {
	bg := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))
	blank := bg.Render(strings.Repeat(" ", maxInt(width, 0)))
	boxLines := strings.Split(box, "\n")

	out := make([]string, 0, maxInt(height, len(boxLines)+y))
	for i := 0; i < y; i++ {
		out = append(out, blank)
	}
	for _, line := range boxLines {
		right := width - x - lipgloss.Width(line)
		out = append(out, bg.Render(strings.Repeat(" ", x))+line+bg.Render(strings.Repeat(" ", maxInt(right, 0))))
	}
	for len(out) < height {
		out = append(out, blank)
	}
	return strings.Join(out, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
