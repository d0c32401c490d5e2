package ui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/five82/apodview/internal/apod"
	"github.com/five82/apodview/internal/daterange"
)

const fetchLabel = "Get Space Images"

// focusArea is the control that receives keyboard input.
type focusArea int

const (
	focusStart focusArea = iota
	focusEnd
	focusFetch
	focusGallery
	// focusClose is the viewer's close control; only reachable while the
	// viewer is open.
	focusClose
)

func newDateInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = len(apod.DateLayout)
	ti.Width = len(apod.DateLayout)
	ti.Validate = daterange.ValidateInput
	ti.SetValue(value)
	return ti
}

// setFocus moves keyboard focus, clamping a date field to the archive
// bounds when it loses focus.
func (m *Model) setFocus(next focusArea) {
	if m.focus == next {
		return
	}
	switch m.focus {
	case focusStart:
		m.startInput.Blur()
		m.startInput.SetValue(m.fields.Clamp(m.startInput.Value()))
	case focusEnd:
		m.endInput.Blur()
		m.endInput.SetValue(m.fields.Clamp(m.endInput.Value()))
	}
	switch next {
	case focusStart:
		m.startInput.Focus()
		m.startInput.CursorEnd()
	case focusEnd:
		m.endInput.Focus()
		m.endInput.CursorEnd()
	}
	m.focus = next
}

// focusOrder lists the controls tab cycles through on the main screen. The
// gallery is skipped while it has nothing to select.
func (m Model) focusOrder() []focusArea {
	order := []focusArea{focusStart, focusEnd, focusFetch}
	if len(m.snapshot.Entries) > 0 {
		order = append(order, focusGallery)
	}
	return order
}

func (m *Model) cycleFocus(step int) {
	order := m.focusOrder()
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + step + len(order)) % len(order)
	m.setFocus(order[idx])
}

// renderForm renders the bordered date form with the fetch control.
func (m Model) renderForm() string {
	focused := m.focus == focusStart || m.focus == focusEnd || m.focus == focusFetch
	bgColor := m.theme.SurfaceAlt
	if focused {
		bgColor = m.theme.FocusBg
	}
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	label := func(text string, active bool) string {
		if active {
			return bg.Render(text, styles.AccentText)
		}
		return bg.Render(text, styles.MutedText)
	}

	button := styles.Button.Render(fetchLabel)
	if m.focus == focusFetch {
		button = styles.ButtonFocus.Render(fetchLabel)
	}

	line := label("Start date", m.focus == focusStart) + bg.Space() + m.startInput.View() +
		bg.Spaces(3) +
		label("End date", m.focus == focusEnd) + bg.Space() + m.endInput.View() +
		bg.Spaces(3) + button

	inner := bg.FillLine(line, maxInt(m.width-2, 0))
	return m.renderBox("Date range", inner, m.width, formRows, focused)
}
