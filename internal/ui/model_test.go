package ui

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/apodview/internal/apod"
	"github.com/five82/apodview/internal/fetch"
	"github.com/five82/apodview/internal/gallery"
	"github.com/five82/apodview/internal/media"
	"github.com/five82/apodview/internal/prefs"
	"github.com/five82/apodview/internal/state"
	"github.com/five82/apodview/internal/trivia"
	"github.com/five82/apodview/internal/viewer"
)

type stubFetcher struct {
	mu      sync.Mutex
	calls   int
	start   string
	end     string
	records []apod.Record
	err     error
}

func (s *stubFetcher) FetchRange(_ context.Context, start, end string) ([]apod.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.start, s.end = start, end
	return s.records, s.err
}

var testRecords = []apod.Record{
	{
		Date:        "2024-01-01",
		Title:       "Orion Nebula",
		Explanation: "A stellar nursery.",
		MediaType:   apod.MediaImage,
		URL:         "https://apod.nasa.gov/apod/image/orion_small.jpg",
		HDURL:       "https://apod.nasa.gov/apod/image/orion_big.jpg",
	},
	{
		Date:        "2024-01-02",
		Title:       "Launch",
		Explanation: "Liftoff.",
		MediaType:   apod.MediaVideo,
		URL:         "https://youtu.be/dQw4w9WgXcQ",
	},
	{
		Date:        "2024-01-03",
		Title:       "Clip",
		Explanation: "A short clip.",
		MediaType:   apod.MediaVideo,
		URL:         "https://example.com/clip.mp4",
	},
}

type testEnv struct {
	model   Model
	fetcher *stubFetcher
	store   *state.Store
	copied  []string
	opened  []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		fetcher: &stubFetcher{records: testRecords},
		store:   &state.Store{},
	}
	ctrl := fetch.NewController(fetch.Options{
		Client:    env.fetcher,
		Container: env.store,
		Facts:     trivia.NewDeckWith([]string{"Did you know? test fact"}, func(int) int { return 0 }),
	})
	env.model = New(Options{
		Controller: ctrl,
		Store:      env.store,
		Today:      time.Date(2024, time.January, 10, 15, 0, 0, 0, time.UTC),
		OpenURL: func(u string) error {
			env.opened = append(env.opened, u)
			return nil
		},
		CopyText: func(u string) error {
			env.copied = append(env.copied, u)
			return nil
		},
	})
	env.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})
	return env
}

func (e *testEnv) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := e.model.Update(msg)
	m, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	e.model = m
	return cmd
}

func (e *testEnv) key(t *testing.T, k string) tea.Cmd {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	return e.send(t, msg)
}

// drain runs cmd and any batched commands, returning the messages that are
// not spinner ticks.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// fetchGallery activates the fetch control and delivers the result.
func (e *testEnv) fetchGallery(t *testing.T) {
	t.Helper()
	e.model.setFocus(focusFetch)
	cmd := e.key(t, "enter")
	if e.model.snapshot.Placeholder != gallery.Loading {
		t.Fatalf("placeholder after submit = %#v, want loading", e.model.snapshot.Placeholder)
	}
	delivered := false
	for _, msg := range drain(cmd) {
		if res, ok := msg.(fetchResultMsg); ok {
			e.send(t, res)
			delivered = true
		}
	}
	if !delivered {
		t.Fatalf("submit did not produce a fetch result")
	}
}

func TestNew_DefaultsDateRangeAndFocus(t *testing.T) {
	env := newTestEnv(t)
	m := env.model

	if got := m.startInput.Value(); got != "2024-01-01" {
		t.Fatalf("start = %q, want 2024-01-01", got)
	}
	if got := m.endInput.Value(); got != "2024-01-10" {
		t.Fatalf("end = %q, want 2024-01-10", got)
	}
	if m.focus != focusFetch {
		t.Fatalf("focus = %v, want fetch control", m.focus)
	}
	if m.viewer.IsOpen() {
		t.Fatalf("viewer open at start-up")
	}
}

func TestNew_StartEndOverridesAreClamped(t *testing.T) {
	m := New(Options{
		Today: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		Start: "1990-01-01",
		End:   "2030-01-01",
	})
	if got := m.startInput.Value(); got != "1995-06-16" {
		t.Fatalf("start = %q, want archive start", got)
	}
	if got := m.endInput.Value(); got != "2024-01-10" {
		t.Fatalf("end = %q, want today", got)
	}
}

func TestInit_ShowsFact(t *testing.T) {
	env := newTestEnv(t)
	for _, msg := range drain(env.model.Init()) {
		if snap, ok := msg.(snapshotMsg); ok {
			env.send(t, snap)
		}
	}
	if got := env.model.snapshot.Fact; got != "Did you know? test fact" {
		t.Fatalf("fact = %q, want test fact", got)
	}
}

func TestSubmit_MissingDateShowsPromptWithoutRequest(t *testing.T) {
	env := newTestEnv(t)
	env.model.startInput.SetValue("")

	cmd := env.key(t, "enter")
	if cmd != nil {
		for _, msg := range drain(cmd) {
			if _, ok := msg.(fetchResultMsg); ok {
				t.Fatalf("missing date produced a fetch")
			}
		}
	}
	if env.fetcher.calls != 0 {
		t.Fatalf("fetch calls = %d, want 0", env.fetcher.calls)
	}
	prompt, ok := env.model.modal.(promptModal)
	if !ok {
		t.Fatalf("modal = %T, want promptModal", env.model.modal)
	}
	if prompt.message != fetch.MissingDatePrompt {
		t.Fatalf("prompt = %q, want %q", prompt.message, fetch.MissingDatePrompt)
	}
	if env.model.snapshot.Fact == "" {
		t.Fatalf("fact not rotated on invalid submit")
	}

	env.key(t, "enter")
	if env.model.modal != nil {
		t.Fatalf("prompt still open after Enter")
	}
}

func TestSubmit_RendersGalleryWithVerbatimDates(t *testing.T) {
	env := newTestEnv(t)
	env.fetchGallery(t)

	if env.fetcher.calls != 1 {
		t.Fatalf("fetch calls = %d, want 1", env.fetcher.calls)
	}
	if env.fetcher.start != "2024-01-01" || env.fetcher.end != "2024-01-10" {
		t.Fatalf("range = %s..%s, want 2024-01-01..2024-01-10", env.fetcher.start, env.fetcher.end)
	}
	if got := len(env.model.snapshot.Entries); got != 3 {
		t.Fatalf("entries = %d, want 3", got)
	}
	if env.model.snapshot.Placeholder.Active() {
		t.Fatalf("placeholder still active: %#v", env.model.snapshot.Placeholder)
	}
}

func TestSubmit_FailureShowsGenericMessage(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.err = errors.New("api returned unexpected status 403: API_KEY_INVALID")
	env.fetchGallery(t)

	if env.model.snapshot.Placeholder != gallery.Failed {
		t.Fatalf("placeholder = %#v, want failed", env.model.snapshot.Placeholder)
	}
}

func TestFocus_TabSkipsEmptyGallery(t *testing.T) {
	env := newTestEnv(t)

	want := []focusArea{focusStart, focusEnd, focusFetch, focusStart}
	for i, w := range want {
		env.key(t, "tab")
		if env.model.focus != w {
			t.Fatalf("step %d: focus = %v, want %v", i, env.model.focus, w)
		}
	}

	env.fetchGallery(t)
	env.key(t, "tab")
	if env.model.focus != focusGallery {
		t.Fatalf("focus = %v, want gallery once it has entries", env.model.focus)
	}
	env.key(t, "shift+tab")
	if env.model.focus != focusFetch {
		t.Fatalf("focus = %v, want fetch after shift+tab", env.model.focus)
	}
}

func TestFocus_DateFieldClampedOnBlur(t *testing.T) {
	env := newTestEnv(t)
	env.model.setFocus(focusStart)
	env.model.startInput.SetValue("1990-01-01")

	env.key(t, "tab")
	if got := env.model.startInput.Value(); got != "1995-06-16" {
		t.Fatalf("start = %q, want clamped to 1995-06-16", got)
	}
}

func TestDateInput_RejectsLetters(t *testing.T) {
	env := newTestEnv(t)
	env.model.setFocus(focusEnd)
	before := env.model.endInput.Value()

	env.key(t, "x")
	if got := env.model.endInput.Value(); got != before {
		t.Fatalf("end = %q, want %q unchanged", got, before)
	}
}

func openSelected(t *testing.T, env *testEnv, idx int) {
	t.Helper()
	env.model.setFocus(focusGallery)
	env.model.selected = idx
	env.key(t, "enter")
	if !env.model.viewer.IsOpen() {
		t.Fatalf("viewer not open after activating entry %d", idx)
	}
}

func TestViewer_OpenAndEscapeRestoresFocus(t *testing.T) {
	env := newTestEnv(t)
	env.fetchGallery(t)
	openSelected(t, env, 0)

	if env.model.focus != focusClose {
		t.Fatalf("focus = %v, want close control", env.model.focus)
	}
	if env.model.pane.imageSrc != "https://apod.nasa.gov/apod/image/orion_big.jpg" {
		t.Fatalf("image = %q, want HD URL", env.model.pane.imageSrc)
	}
	if env.model.pane.imageAlt != "Orion Nebula - NASA Astronomy Picture of the Day" {
		t.Fatalf("alt = %q", env.model.pane.imageAlt)
	}

	env.key(t, "esc")
	if env.model.viewer.IsOpen() {
		t.Fatalf("viewer open after Esc")
	}
	if env.model.focus != focusFetch {
		t.Fatalf("focus = %v, want fetch control", env.model.focus)
	}

	// A second Esc with nothing open is ignored.
	env.key(t, "esc")
	if env.model.focus != focusFetch {
		t.Fatalf("focus moved on Esc with viewer closed: %v", env.model.focus)
	}
}

func TestViewer_EnterActivatesCloseControl(t *testing.T) {
	env := newTestEnv(t)
	env.fetchGallery(t)
	openSelected(t, env, 1)

	env.key(t, "enter")
	if env.model.viewer.IsOpen() {
		t.Fatalf("viewer open after activating close control")
	}
	if len(env.model.pane.playback) != 0 {
		t.Fatalf("playback left behind: %#v", env.model.pane.playback)
	}
}

func TestViewer_SwitchingItemsLeavesOnePlayback(t *testing.T) {
	env := newTestEnv(t)
	env.fetchGallery(t)

	openSelected(t, env, 1)
	if n := len(env.model.pane.playback); n != 1 || env.model.pane.playback[0].Kind != viewer.PlaybackEmbed {
		t.Fatalf("playback = %#v, want one embed", env.model.pane.playback)
	}
	if env.model.pane.playback[0].Src != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Fatalf("embed src = %q", env.model.pane.playback[0].Src)
	}
	if env.model.pane.imageVisible {
		t.Fatalf("image pane visible for video")
	}

	// Open another entry while the viewer is already showing one.
	env.model.viewer.Show(mustActivate(t, env.model.snapshot.Entries[2]))
	if n := len(env.model.pane.playback); n != 1 || env.model.pane.playback[0].Kind != viewer.PlaybackLink {
		t.Fatalf("playback = %#v, want one link", env.model.pane.playback)
	}
	if got := env.model.pane.playback[0].Src; got != "https://example.com/clip.mp4" {
		t.Fatalf("link src = %q", got)
	}

	env.key(t, "esc")
	if len(env.model.pane.playback) != 0 || !env.model.pane.imageVisible {
		t.Fatalf("pane not reset after close: %#v", env.model.pane)
	}
}

func mustActivate(t *testing.T, e gallery.Entry) media.Item {
	t.Helper()
	item, ok := e.Activate()
	if !ok {
		t.Fatalf("entry %q has no activation", e.Title)
	}
	return item
}

func TestViewer_MouseTargets(t *testing.T) {
	env := newTestEnv(t)
	env.fetchGallery(t)
	openSelected(t, env, 0)

	layout := env.model.layoutViewer()
	if layout.image.w == 0 {
		t.Fatalf("image area not laid out")
	}

	click := func(x, y int) {
		env.send(t, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	}

	click(layout.image.x, layout.image.y)
	if !env.model.viewer.Enlarged() || !env.model.pane.enlarged {
		t.Fatalf("image click did not enlarge")
	}

	layout = env.model.layoutViewer()
	click(layout.image.x, layout.image.y)
	if env.model.viewer.Enlarged() {
		t.Fatalf("second image click did not restore")
	}

	layout = env.model.layoutViewer()
	click(layout.modal.x+1, layout.modal.y+layout.modal.h-2)
	if !env.model.viewer.IsOpen() {
		t.Fatalf("click inside the content closed the viewer")
	}

	click(0, 0)
	if env.model.viewer.IsOpen() {
		t.Fatalf("backdrop click did not close the viewer")
	}
}

func TestViewer_CloseControlClick(t *testing.T) {
	env := newTestEnv(t)
	env.fetchGallery(t)
	openSelected(t, env, 2)

	layout := env.model.layoutViewer()
	env.send(t, tea.MouseMsg{X: layout.close.x, Y: layout.close.y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if env.model.viewer.IsOpen() {
		t.Fatalf("close control click did not close the viewer")
	}
}

func TestViewer_EnlargedResetOnNextOpen(t *testing.T) {
	env := newTestEnv(t)
	env.fetchGallery(t)
	openSelected(t, env, 0)

	env.key(t, "z")
	if !env.model.pane.enlarged {
		t.Fatalf("z did not enlarge")
	}
	env.key(t, "esc")
	openSelected(t, env, 0)
	if env.model.pane.enlarged || env.model.viewer.Enlarged() {
		t.Fatalf("enlarged state survived reopening")
	}
}

func TestViewer_CopyAndOpenLink(t *testing.T) {
	env := newTestEnv(t)
	env.fetchGallery(t)
	openSelected(t, env, 1)

	for _, msg := range drain(env.key(t, "y")) {
		env.send(t, msg)
	}
	want := "https://www.youtube.com/embed/dQw4w9WgXcQ"
	if len(env.copied) != 1 || env.copied[0] != want {
		t.Fatalf("copied = %v, want [%s]", env.copied, want)
	}
	if env.model.notice == "" || env.model.noticeErr {
		t.Fatalf("notice = %q (err=%v), want success notice", env.model.notice, env.model.noticeErr)
	}

	drain(env.key(t, "o"))
	if len(env.opened) != 1 || env.opened[0] != want {
		t.Fatalf("opened = %v, want [%s]", env.opened, want)
	}
}

func TestGalleryClickOpensEntry(t *testing.T) {
	env := newTestEnv(t)
	env.fetchGallery(t)

	env.send(t, tea.MouseMsg{X: 10, Y: galleryTop + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !env.model.viewer.IsOpen() {
		t.Fatalf("click on gallery row did not open the viewer")
	}
	if got := env.model.viewer.Item().Title; got != "Clip" {
		t.Fatalf("opened %q, want Clip", got)
	}
}

func TestGalleryNavigation(t *testing.T) {
	env := newTestEnv(t)
	env.fetchGallery(t)
	env.model.setFocus(focusGallery)

	env.key(t, "j")
	env.key(t, "j")
	env.key(t, "j")
	if env.model.selected != 2 {
		t.Fatalf("selected = %d, want 2 (clamped)", env.model.selected)
	}
	env.key(t, "g")
	if env.model.selected != 0 {
		t.Fatalf("selected = %d, want 0", env.model.selected)
	}
	env.key(t, "G")
	if env.model.selected != 2 {
		t.Fatalf("selected = %d, want 2", env.model.selected)
	}
}

func TestCycleThemeSavesPrefs(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "prefs.toml")
	env.model.prefsPath = path

	env.key(t, "T")
	if env.model.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", env.model.theme.Name)
	}
	p, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("saved theme = %q, want Slate", p.Theme)
	}
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	env := newTestEnv(t)
	env.key(t, "?")
	if !env.model.showHelp {
		t.Fatalf("help not shown")
	}
	env.key(t, "x")
	if env.model.showHelp {
		t.Fatalf("help still shown")
	}
}

func TestDiagnosticsOverlay(t *testing.T) {
	env := newTestEnv(t)
	env.model.logPath = filepath.Join(t.TempDir(), "missing.log")

	cmd := env.key(t, "L")
	if _, ok := env.model.modal.(diagnosticsModal); !ok {
		t.Fatalf("modal = %T, want diagnosticsModal", env.model.modal)
	}
	for _, msg := range drain(cmd) {
		env.send(t, msg)
	}
	d := env.model.modal.(diagnosticsModal)
	if !d.loaded || d.err != nil {
		t.Fatalf("diagnostics loaded=%v err=%v, want loaded without error", d.loaded, d.err)
	}

	env.key(t, "esc")
	if env.model.modal != nil {
		t.Fatalf("diagnostics still open after Esc")
	}
}

func TestViewRendersEachScreen(t *testing.T) {
	env := newTestEnv(t)
	if env.model.View() == "" {
		t.Fatalf("empty main view")
	}
	env.fetchGallery(t)
	if env.model.View() == "" {
		t.Fatalf("empty gallery view")
	}
	openSelected(t, env, 0)
	if env.model.View() == "" {
		t.Fatalf("empty viewer view")
	}
}
