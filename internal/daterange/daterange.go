// Package daterange initializes and bounds the start/end date fields.
package daterange

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/apodview/internal/apod"
)

// DefaultSpanDays is how far the default start date lies before today.
const DefaultSpanDays = 9

// ArchiveStart is the first day the APOD archive has an entry for.
var ArchiveStart = time.Date(1995, time.June, 16, 0, 0, 0, 0, time.UTC)

// Fields holds the two date field values and the bounds both must respect.
type Fields struct {
	Start string
	End   string
	Min   string
	Max   string
}

// Setup returns fields defaulted to the last DefaultSpanDays days ending
// today and bounded by [ArchiveStart, today].
func Setup(today time.Time) Fields {
	day := truncateDay(today)
	start := day.AddDate(0, 0, -DefaultSpanDays)
	if start.Before(ArchiveStart) {
		start = ArchiveStart
	}
	return Fields{
		Start: start.Format(apod.DateLayout),
		End:   day.Format(apod.DateLayout),
		Min:   ArchiveStart.Format(apod.DateLayout),
		Max:   day.Format(apod.DateLayout),
	}
}

// Clamp pulls a parseable date into the field bounds. Blank or unparseable
// values are returned trimmed but otherwise untouched.
func (f Fields) Clamp(value string) string {
	value = strings.TrimSpace(value)
	t, err := Parse(value)
	if err != nil {
		return value
	}
	if lo, err := Parse(f.Min); err == nil && t.Before(lo) {
		return f.Min
	}
	if hi, err := Parse(f.Max); err == nil && t.After(hi) {
		return f.Max
	}
	return t.Format(apod.DateLayout)
}

// Parse reads a YYYY-MM-DD date.
func Parse(value string) (time.Time, error) {
	t, err := time.Parse(apod.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// ValidateInput accepts partial input while a date is being typed.
func ValidateInput(value string) error {
	if len(value) > len(apod.DateLayout) {
		return fmt.Errorf("date too long")
	}
	for _, r := range value {
		if (r < '0' || r > '9') && r != '-' {
			return fmt.Errorf("unexpected character %q", r)
		}
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
