// Package gallery converts APOD records into selectable gallery entries.
package gallery

import (
	"github.com/five82/apodview/internal/apod"
	"github.com/five82/apodview/internal/media"
)

// PlaceholderKind distinguishes the non-entry states of the gallery.
type PlaceholderKind int

const (
	PlaceholderNone PlaceholderKind = iota
	PlaceholderLoading
	PlaceholderEmpty
	PlaceholderFailed
)

// Placeholder is a single message shown instead of entries.
type Placeholder struct {
	Kind PlaceholderKind
	Text string
}

// Active reports whether the placeholder replaces the entry list.
func (p Placeholder) Active() bool {
	return p.Kind != PlaceholderNone
}

var (
	Loading = Placeholder{Kind: PlaceholderLoading, Text: "Loading space photos..."}
	Empty   = Placeholder{Kind: PlaceholderEmpty, Text: "No images found for this date range."}
	Failed  = Placeholder{Kind: PlaceholderFailed, Text: "Sorry, there was a problem loading images."}
)

// Container is the gallery surface entries are written into.
type Container interface {
	// Clear removes every entry and any placeholder.
	Clear()
	// Append adds an entry after the existing ones.
	Append(Entry)
	// ShowPlaceholder replaces the whole content with p.
	ShowPlaceholder(p Placeholder)
}

// Entry is one rendered gallery cell. The activation handler is bound at
// render time to the item resolved for that record.
type Entry struct {
	Title     string
	Date      string
	Kind      media.Kind
	Thumbnail string
	activate  func() media.Item
}

// NewEntry binds item to a fresh entry.
func NewEntry(item media.Item) Entry {
	return Entry{
		Title:     item.Title,
		Date:      item.Date,
		Kind:      item.Media.Kind,
		Thumbnail: item.Media.PreviewURL,
		activate:  func() media.Item { return item },
	}
}

// Activate returns the item the entry was bound to. It has no side effects
// and returns the same value on every call.
func (e Entry) Activate() (media.Item, bool) {
	if e.activate == nil {
		return media.Item{}, false
	}
	return e.activate(), true
}

// Renderer writes entries for a batch of records into a container.
type Renderer struct {
	container Container
}

// NewRenderer builds a Renderer bound to container.
func NewRenderer(container Container) *Renderer {
	return &Renderer{container: container}
}

// Entries resolves records into entries without touching any container.
// Records with an unsupported media type are skipped.
func Entries(records []apod.Record) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		item := media.ItemFor(rec)
		if item.Media.Kind == media.KindUnsupported {
			continue
		}
		entries = append(entries, NewEntry(item))
	}
	return entries
}

// Render clears the container, appends one entry per renderable record and
// shows the empty placeholder when nothing was appended.
func (r *Renderer) Render(records []apod.Record) []Entry {
	entries := Entries(records)
	if r == nil || r.container == nil {
		return entries
	}
	r.container.Clear()
	for _, entry := range entries {
		r.container.Append(entry)
	}
	if len(entries) == 0 {
		r.container.ShowPlaceholder(Empty)
	}
	return entries
}
