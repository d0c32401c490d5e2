package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/apodview/internal/daterange"
	"github.com/five82/apodview/internal/fetch"
	"github.com/five82/apodview/internal/gallery"
	"github.com/five82/apodview/internal/metrics"
	"github.com/five82/apodview/internal/prefs"
	"github.com/five82/apodview/internal/state"
	"github.com/five82/apodview/internal/viewer"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *fetch.Controller
	Store      *state.Store
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
	ThemeName  string
	PrefsPath  string
	LogPath    string
	// DemoKey marks that requests use NASA's shared demo key.
	DemoKey bool

	// Today anchors the default date range; zero means time.Now.
	Today time.Time
	// Start and End override the default field values.
	Start string
	End   string

	// OpenURL and CopyText default to the system browser and clipboard.
	OpenURL  func(string) error
	CopyText func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	controller *fetch.Controller
	store      *state.Store
	metrics    *metrics.Metrics
	log        *slog.Logger
	prefsPath  string
	logPath    string
	demoKey    bool
	openURL    func(string) error
	copyText   func(string) error

	keys   keyMap
	theme  Theme
	width  int
	height int
	ready  bool

	fields     daterange.Fields
	startInput textinput.Model
	endInput   textinput.Model
	focus      focusArea

	snapshot state.Snapshot
	selected int

	spinner spinner.Model

	// The viewer and its pane are shared by every copy of the model.
	pane    *modalPane
	viewer  *viewer.Viewer
	explain viewport.Model

	modal     Modal
	showHelp  bool
	notice    string
	noticeErr bool
	noticeSeq int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme()
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = openBrowser
	}
	copyText := opts.CopyText
	if copyText == nil {
		copyText = copyToClipboard
	}
	today := opts.Today
	if today.IsZero() {
		today = time.Now()
	}

	fields := daterange.Setup(today)
	start, end := fields.Start, fields.End
	if strings.TrimSpace(opts.Start) != "" {
		start = fields.Clamp(opts.Start)
	}
	if strings.TrimSpace(opts.End) != "" {
		end = fields.Clamp(opts.End)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	pane := newModalPane()
	m := Model{
		ctx:        ctx,
		controller: opts.Controller,
		store:      store,
		metrics:    opts.Metrics,
		log:        log,
		prefsPath:  opts.PrefsPath,
		logPath:    opts.LogPath,
		demoKey:    opts.DemoKey,
		openURL:    openURL,
		copyText:   copyText,
		keys:       DefaultKeyMap(),
		theme:      GetTheme(themeName),
		fields:     fields,
		startInput: newDateInput(start),
		endInput:   newDateInput(end),
		focus:      focusFetch,
		snapshot:   store.Snapshot(),
		spinner:    sp,
		pane:       pane,
		viewer:     viewer.New(pane),
		explain:    viewport.New(0, 0),
	}
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Info))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		showFactCmd(m.controller, m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.selected = clampInt(m.selected, 0, len(m.snapshot.Entries)-1)
		if m.viewer.IsOpen() {
			m.syncExplanation()
		}
		if m.modal != nil {
			var cmd tea.Cmd
			m.modal, cmd, _ = m.modal.Update(msg, m.keys)
			return m, cmd
		}
		return m, nil

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case fetchResultMsg:
		m.controller.Deliver(fetch.Result(msg))
		m.applySnapshot(m.store.Snapshot())
		return m, nil

	case spinner.TickMsg:
		if m.snapshot.Placeholder.Kind != gallery.PlaceholderLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case noticeMsg:
		m.noticeSeq++
		m.notice = msg.text
		m.noticeErr = msg.err
		if msg.err {
			m.log.Warn("viewer action failed", "error", msg.text)
		}
		seq := m.noticeSeq
		return m, tea.Tick(NoticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.noticeErr = false
		}
		return m, nil

	case diagnosticsMsg:
		if m.modal != nil {
			var cmd tea.Cmd
			m.modal, cmd, _ = m.modal.Update(msg, m.keys)
			return m, cmd
		}
		return m, nil
	}

	// Cursor blink and other input internals.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.startInput, cmd = m.startInput.Update(msg)
	cmds = append(cmds, cmd)
	m.endInput, cmd = m.endInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.viewer.IsOpen() {
		return m.renderViewer()
	}
	return m.renderMain()
}

// handleKey routes keyboard input: help, then any overlay, then the viewer,
// then the main screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.viewer.IsOpen() {
		return m.handleViewerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Diagnostics):
		d := newDiagnosticsModal(m.logPath, m.theme, m.width, m.height)
		m.modal = d
		return m, loadDiagnosticsCmd(m.logPath)

	case key.Matches(msg, m.keys.Tab):
		m.cycleFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.cycleFocus(-1)
		return m, nil
	}

	switch m.focus {
	case focusStart, focusEnd:
		return m.handleDateKey(msg)
	case focusFetch:
		if key.Matches(msg, m.keys.Activate) {
			return m.submit()
		}
	case focusGallery:
		return m.handleGalleryKey(msg)
	}
	return m, nil
}

func (m Model) handleDateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.cycleFocus(1)
		return m, nil
	}
	input := &m.endInput
	if m.focus == focusStart {
		input = &m.startInput
	}
	prev := input.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	// textinput reports a failed Validate through Err but keeps the edit.
	if daterange.ValidateInput(input.Value()) != nil {
		input.SetValue(prev)
	}
	return m, cmd
}

func (m Model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Entries)
	if count == 0 {
		return m, nil
	}
	page := m.galleryRows()

	switch {
	case key.Matches(msg, m.keys.Down):
		m.selected = minInt(m.selected+1, count-1)
	case key.Matches(msg, m.keys.Up):
		m.selected = maxInt(m.selected-1, 0)
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	case key.Matches(msg, m.keys.PageDown):
		m.selected = minInt(m.selected+page, count-1)
	case key.Matches(msg, m.keys.PageUp):
		m.selected = maxInt(m.selected-page, 0)
	case key.Matches(msg, m.keys.Activate):
		m.openEntry(m.selected)
	}
	return m, nil
}

func (m Model) handleViewerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.viewer.HandleKey(msg.String()) {
		m.syncFocus()
		return m, nil
	}

	item := m.viewer.Item()
	switch {
	case key.Matches(msg, m.keys.Activate):
		if m.focus == focusClose {
			m.viewer.HandleCloseControl()
			m.syncFocus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Enlarge):
		m.viewer.ToggleEnlarged()
		m.syncExplanation()
		return m, nil

	case key.Matches(msg, m.keys.OpenBrowser):
		return m, openLinkCmd(m.openURL, item.Media.PlayableRef)

	case key.Matches(msg, m.keys.CopyLink):
		return m, copyLinkCmd(m.copyText, item.Media.PlayableRef)

	case key.Matches(msg, m.keys.Tab, m.keys.ShiftTab):
		// The close control is the only focusable element in the modal.
		m.focus = focusClose
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.explain, cmd = m.explain.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.viewer.IsOpen() {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.viewer.HandleClick(m.viewerTarget(msg.X, msg.Y))
			m.syncExplanation()
			m.syncFocus()
			return m, nil
		}
		var cmd tea.Cmd
		m.explain, cmd = m.explain.Update(msg)
		return m, cmd
	}

	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		if idx := m.galleryIndexAt(msg.Y); idx >= 0 {
			m.setFocus(focusGallery)
			m.selected = idx
			m.openEntry(idx)
		}
	case tea.MouseButtonWheelDown:
		m.selected = minInt(m.selected+1, maxInt(len(m.snapshot.Entries)-1, 0))
	case tea.MouseButtonWheelUp:
		m.selected = maxInt(m.selected-1, 0)
	}
	return m, nil
}

// submit activates the fetch control.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.controller == nil {
		return m, nil
	}
	m.setFocus(focusFetch)
	pending, err := m.controller.Submit(m.startInput.Value(), m.endInput.Value())
	m.applySnapshot(m.store.Snapshot())
	if err != nil {
		if errors.Is(err, fetch.ErrMissingDate) {
			m.modal = newPromptModal("Missing date", fetch.MissingDatePrompt)
		}
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, runFetchCmd(m.ctx, pending))
}

// openEntry activates the gallery entry at idx in the viewer.
func (m *Model) openEntry(idx int) {
	if idx < 0 || idx >= len(m.snapshot.Entries) {
		return
	}
	item, ok := m.snapshot.Entries[idx].Activate()
	if !ok {
		return
	}
	m.viewer.Show(item)
	if !m.viewer.IsOpen() {
		return
	}
	m.metrics.IncViewerOpens(item.Media.Kind.String())
	m.syncExplanation()
	m.explain.GotoTop()
	m.syncFocus()
}

// syncFocus applies a focus request made by the viewer.
func (m *Model) syncFocus() {
	target, ok := m.pane.takeFocus()
	if !ok {
		return
	}
	switch target {
	case viewer.FocusClose:
		m.setFocus(focusClose)
	case viewer.FocusTrigger:
		m.setFocus(focusFetch)
	}
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	if snap.Generation != m.snapshot.Generation {
		m.selected = 0
	}
	m.snapshot = snap
	m.selected = clampInt(m.selected, 0, len(snap.Entries)-1)
	if m.focus == focusGallery && len(snap.Entries) == 0 {
		m.setFocus(focusFetch)
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Info))
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.log.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

// renderMain renders the date form, trivia line and gallery.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(firstLine(m.renderHeader()))
	b.WriteString("\n")
	b.WriteString(firstLine(m.renderCommandBar()))
	b.WriteString("\n")
	b.WriteString(m.renderForm())
	b.WriteString("\n")
	b.WriteString(firstLine(m.renderFact()))
	b.WriteString("\n")
	b.WriteString(m.renderGallery(m.height - headerRows - formRows - factRows))
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Messages

type snapshotMsg state.Snapshot

type fetchResultMsg fetch.Result

// Commands

func showFactCmd(c *fetch.Controller, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		if c != nil {
			c.ShowFact()
		}
		return snapshotMsg(store.Snapshot())
	}
}

func runFetchCmd(ctx context.Context, p *fetch.Pending) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
		defer cancel()
		return fetchResultMsg(p.Do(ctx))
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(opts Options) error {
	m := New(opts)
	teaOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if opts.Context != nil {
		teaOpts = append(teaOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, teaOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
