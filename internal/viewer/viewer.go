package viewer

import (
	"strings"

	"github.com/five82/apodview/internal/media"
)

// State is the modal lifecycle state.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// FocusTarget names the controls focus can be moved to.
type FocusTarget int

const (
	// FocusClose is the close control inside the modal.
	FocusClose FocusTarget = iota
	// FocusTrigger is the control that starts a fetch.
	FocusTrigger
)

// PlaybackKind identifies the element injected for video content.
type PlaybackKind int

const (
	PlaybackEmbed PlaybackKind = iota
	PlaybackLink
)

// Playback describes the embed or link inserted before the explanation.
type Playback struct {
	Kind  PlaybackKind
	Src   string
	Title string
	// Label is the visible text of a link; empty for embeds.
	Label string
	// Description is read by assistive tooling.
	Description string
}

// Target is the element a pointer event landed on.
type Target int

const (
	TargetBackdrop Target = iota
	TargetContent
	TargetImage
	TargetCloseControl
)

// Surface is the modal the viewer drives. Implementations only render; all
// lifecycle decisions stay in Viewer.
type Surface interface {
	SetVisible(visible bool)
	SetText(title, date, explanation string)
	SetImage(src, alt string)
	SetImageVisible(visible bool)
	// InsertPlayback places p immediately before the explanation text.
	InsertPlayback(p Playback)
	// RemovePlayback removes the element of the given kind. Absent elements
	// are ignored.
	RemovePlayback(kind PlaybackKind)
	SetEnlarged(enlarged bool)
	Focus(target FocusTarget)
}

const watchVideoLabel = "Watch Video"

// Viewer is the single modal used to present one item at a time.
type Viewer struct {
	surface  Surface
	state    State
	item     media.Item
	enlarged bool
}

// New returns a closed viewer driving surface.
func New(surface Surface) *Viewer {
	return &Viewer{surface: surface}
}

// State returns the current lifecycle state.
func (v *Viewer) State() State { return v.state }

// IsOpen reports whether the modal is showing an item.
func (v *Viewer) IsOpen() bool { return v.state == Open }

// Item returns the item being shown. It is the zero value while closed.
func (v *Viewer) Item() media.Item { return v.item }

// Enlarged reports whether the image is in its enlarged presentation.
func (v *Viewer) Enlarged() bool { return v.enlarged }

// Show opens the modal with item, replacing whatever it showed before.
// Unsupported items are ignored.
func (v *Viewer) Show(item media.Item) {
	kind := item.Media.Kind
	if kind != media.KindImage && !kind.IsVideo() {
		return
	}

	v.surface.SetText(item.Title, item.Date, item.Explanation)
	v.removePlayback()

	switch kind {
	case media.KindImage:
		v.surface.SetImage(item.Media.PlayableRef, item.AltText())
		v.surface.SetImageVisible(true)
	case media.KindYouTube:
		v.surface.SetImageVisible(false)
		v.surface.InsertPlayback(Playback{
			Kind:  PlaybackEmbed,
			Src:   item.Media.PlayableRef,
			Title: item.Title,
		})
	case media.KindGenericVideo:
		v.surface.SetImageVisible(false)
		v.surface.InsertPlayback(Playback{
			Kind:        PlaybackLink,
			Src:         item.Media.PlayableRef,
			Title:       item.Title,
			Label:       watchVideoLabel,
			Description: "Watch video: " + item.Title,
		})
	}

	// A fresh item never inherits the previous presentation.
	if v.enlarged {
		v.enlarged = false
		v.surface.SetEnlarged(false)
	}

	v.item = item
	v.state = Open
	v.surface.SetVisible(true)
	v.surface.Focus(FocusClose)
}

// Close hides the modal and tears down any playback element. Closing a
// closed viewer does nothing.
func (v *Viewer) Close() {
	if v.state == Closed {
		return
	}
	v.surface.SetVisible(false)
	v.removePlayback()
	v.surface.SetImageVisible(true)
	v.enlarged = false
	v.surface.SetEnlarged(false)
	v.item = media.Item{}
	v.state = Closed
	v.surface.Focus(FocusTrigger)
}

// HandleCloseControl handles activation of the close control.
func (v *Viewer) HandleCloseControl() {
	v.Close()
}

// HandleClick routes a pointer event. Only a click on the backdrop itself
// closes; a click on the image toggles the enlarged presentation.
func (v *Viewer) HandleClick(target Target) {
	if v.state != Open {
		return
	}
	switch target {
	case TargetBackdrop:
		v.Close()
	case TargetCloseControl:
		v.HandleCloseControl()
	case TargetImage:
		v.ToggleEnlarged()
	}
}

// HandleKey closes the modal on the cancellation key. It reports whether the
// key was consumed.
func (v *Viewer) HandleKey(key string) bool {
	if v.state != Open {
		return false
	}
	switch strings.ToLower(key) {
	case "esc", "escape":
		v.Close()
		return true
	}
	return false
}

// ToggleEnlarged flips the enlarged presentation of an open image and
// returns the new value.
func (v *Viewer) ToggleEnlarged() bool {
	if v.state != Open || v.item.Media.Kind != media.KindImage {
		return v.enlarged
	}
	v.enlarged = !v.enlarged
	v.surface.SetEnlarged(v.enlarged)
	return v.enlarged
}

func (v *Viewer) removePlayback() {
	v.surface.RemovePlayback(PlaybackEmbed)
	v.surface.RemovePlayback(PlaybackLink)
}
