package gallery

import (
	"testing"

	"github.com/five82/apodview/internal/apod"
	"github.com/five82/apodview/internal/media"
)

// recorder is a Container that logs the operations applied to it.
type recorder struct {
	ops         []string
	entries     []Entry
	placeholder Placeholder
}

func (r *recorder) Clear() {
	r.ops = append(r.ops, "clear")
	r.entries = nil
	r.placeholder = Placeholder{}
}

func (r *recorder) Append(e Entry) {
	r.ops = append(r.ops, "append")
	r.entries = append(r.entries, e)
}

func (r *recorder) ShowPlaceholder(p Placeholder) {
	r.ops = append(r.ops, "placeholder")
	r.entries = nil
	r.placeholder = p
}

func sampleRecords() []apod.Record {
	return []apod.Record{
		{Date: "2024-01-01", Title: "Nebula", MediaType: apod.MediaImage, URL: "https://x/n.jpg", HDURL: "https://x/n_hd.jpg", Explanation: "Gas."},
		{Date: "2024-01-02", Title: "Launch", MediaType: apod.MediaVideo, URL: "https://youtu.be/dQw4w9WgXcQ"},
		{Date: "2024-01-03", Title: "Mystery", MediaType: "other", URL: "https://x/m"},
		{Date: "2024-01-04", Title: "Clip", MediaType: apod.MediaVideo, URL: "https://example.com/clip.mp4"},
	}
}

func TestRender_ClearsThenAppendsInOrder(t *testing.T) {
	rec := &recorder{}
	rec.ShowPlaceholder(Loading)
	rec.ops = nil

	entries := NewRenderer(rec).Render(sampleRecords())

	want := []string{"clear", "append", "append", "append"}
	if len(rec.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", rec.ops, want)
	}
	for i := range want {
		if rec.ops[i] != want[i] {
			t.Fatalf("ops = %v, want %v", rec.ops, want)
		}
	}
	if rec.placeholder.Active() {
		t.Fatalf("loading placeholder should be cleared, got %#v", rec.placeholder)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3 (unsupported skipped)", len(entries))
	}
	titles := []string{entries[0].Title, entries[1].Title, entries[2].Title}
	if titles[0] != "Nebula" || titles[1] != "Launch" || titles[2] != "Clip" {
		t.Fatalf("titles = %v, want [Nebula Launch Clip]", titles)
	}
}

func TestRender_EmptyShowsPlaceholder(t *testing.T) {
	rec := &recorder{}
	entries := NewRenderer(rec).Render([]apod.Record{})
	if len(entries) != 0 {
		t.Fatalf("entries = %#v, want none", entries)
	}
	if rec.placeholder != Empty {
		t.Fatalf("placeholder = %#v, want Empty", rec.placeholder)
	}
	if rec.placeholder.Text != "No images found for this date range." {
		t.Fatalf("placeholder text = %q", rec.placeholder.Text)
	}
}

func TestRender_OnlyUnsupportedShowsPlaceholder(t *testing.T) {
	rec := &recorder{}
	NewRenderer(rec).Render([]apod.Record{{MediaType: "other"}})
	if rec.placeholder != Empty || len(rec.entries) != 0 {
		t.Fatalf("container = %#v, want empty placeholder only", rec)
	}
}

func TestEntryActivate_BoundAtRenderTime(t *testing.T) {
	records := sampleRecords()
	entries := Entries(records)

	// Mutating the input after rendering must not leak into the bindings.
	records[0].Title = "changed"
	records[1].URL = "https://example.com/other.mp4"

	first, ok := entries[0].Activate()
	if !ok {
		t.Fatalf("Activate returned ok=false")
	}
	if first.Title != "Nebula" || first.Media.PlayableRef != "https://x/n_hd.jpg" {
		t.Fatalf("first item = %#v, want Nebula hd image", first)
	}

	second, _ := entries[1].Activate()
	if second.Media.Kind != media.KindYouTube || second.Media.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("second item = %#v, want youtube dQw4w9WgXcQ", second)
	}

	again, _ := entries[1].Activate()
	if again != second {
		t.Fatalf("Activate not idempotent: %#v vs %#v", again, second)
	}

	third, _ := entries[2].Activate()
	if third.Media.Kind != media.KindGenericVideo || third.Media.PlayableRef != "https://example.com/clip.mp4" {
		t.Fatalf("third item = %#v, want generic video link", third)
	}
}

func TestEntry_ZeroValueActivate(t *testing.T) {
	if _, ok := (Entry{}).Activate(); ok {
		t.Fatalf("zero Entry should not activate")
	}
}

func TestEntry_Thumbnail(t *testing.T) {
	entries := Entries(sampleRecords())
	if entries[0].Thumbnail != "https://x/n.jpg" {
		t.Fatalf("image thumbnail = %q, want url", entries[0].Thumbnail)
	}
	if entries[2].Thumbnail != media.GenericVideoIcon {
		t.Fatalf("generic video thumbnail = %q, want icon", entries[2].Thumbnail)
	}
}
