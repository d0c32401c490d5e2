package ui

import "time"

// Screen rows above the gallery list: header, command bar, the bordered date
// form and the trivia line.
const (
	headerRows = 2
	formRows   = 3
	factRows   = 1

	// galleryTop is the first screen row holding a gallery entry (inside
	// the gallery border).
	galleryTop = headerRows + formRows + factRows + 1
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// ViewerMaxWidth caps the modal width when not enlarged.
	ViewerMaxWidth = 96
)

// Diagnostics overlay limits.
const (
	// DiagnosticsLines is how many log lines the overlay loads.
	DiagnosticsLines = 400
)

// Timing constants.
const (
	// NoticeTTL is how long transient notices stay in the command bar.
	NoticeTTL = 4 * time.Second

	// FetchTimeout bounds one gallery request.
	FetchTimeout = 30 * time.Second
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}
