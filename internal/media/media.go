// Package media turns APOD records into display-ready values.
//
// Resolve is a pure function: it never performs I/O, never fails and always
// yields the same Resolved value for the same record. Video URLs that do not
// look like YouTube links are downgraded to a plain external link.
package media

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/five82/apodview/internal/apod"
)

// Kind identifies the rendering path for a record.
type Kind int

const (
	KindUnsupported Kind = iota
	KindImage
	KindYouTube
	KindGenericVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindYouTube:
		return "youtube"
	case KindGenericVideo:
		return "video"
	default:
		return "unsupported"
	}
}

// IsVideo reports whether the kind renders through the playback slot.
func (k Kind) IsVideo() bool {
	return k == KindYouTube || k == KindGenericVideo
}

const (
	// GenericVideoIcon is the placeholder preview for non-YouTube videos.
	GenericVideoIcon = "https://upload.wikimedia.org/wikipedia/commons/7/75/Video-Icon.png"

	youTubeThumbFormat = "https://img.youtube.com/vi/%s/hqdefault.jpg"
	youTubeEmbedPrefix = "https://www.youtube.com/embed/"
)

// Resolved is the display-ready derivation of a record.
type Resolved struct {
	Kind        Kind
	PreviewURL  string // thumbnail or cover image
	PlayableRef string // full image, embed URL, or external link target
	VideoID     string // YouTube id, empty otherwise
}

// Item is what the viewer shows for one gallery entry.
type Item struct {
	Media       Resolved
	Title       string
	Date        string
	Explanation string
	Copyright   string
}

// AltText describes the image for the viewer's image pane.
func (i Item) AltText() string {
	return i.Title + " - NASA Astronomy Picture of the Day"
}

var youTubeIDRe = regexp.MustCompile(`(?i)(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?|shorts)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// YouTubeID extracts the 11 character video id from common YouTube URL shapes.
func YouTubeID(rawURL string) (string, bool) {
	m := youTubeIDRe.FindStringSubmatch(rawURL)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// Resolve derives the rendering kind and assets for rec.
func Resolve(rec apod.Record) Resolved {
	switch apod.MediaType(strings.ToLower(strings.TrimSpace(string(rec.MediaType)))) {
	case apod.MediaImage:
		ref := rec.URL
		if strings.TrimSpace(rec.HDURL) != "" {
			ref = rec.HDURL
		}
		return Resolved{Kind: KindImage, PreviewURL: rec.URL, PlayableRef: ref}
	case apod.MediaVideo:
		if id, ok := YouTubeID(rec.URL); ok {
			return Resolved{
				Kind:        KindYouTube,
				PreviewURL:  fmt.Sprintf(youTubeThumbFormat, id),
				PlayableRef: youTubeEmbedPrefix + id,
				VideoID:     id,
			}
		}
		return Resolved{Kind: KindGenericVideo, PreviewURL: GenericVideoIcon, PlayableRef: rec.URL}
	default:
		return Resolved{Kind: KindUnsupported}
	}
}

// ItemFor resolves rec and attaches its display metadata.
func ItemFor(rec apod.Record) Item {
	return Item{
		Media:       Resolve(rec),
		Title:       strings.TrimSpace(rec.Title),
		Date:        strings.TrimSpace(rec.Date),
		Explanation: strings.TrimSpace(rec.Explanation),
		Copyright:   strings.TrimSpace(rec.Copyright),
	}
}
