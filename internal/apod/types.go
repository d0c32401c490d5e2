package apod

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by the APOD API.
const DateLayout = "2006-01-02"

// MediaType is the kind of asset a record points at.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Record mirrors one day's entry returned by the APOD endpoint.
type Record struct {
	Date           string    `json:"date"`
	Title          string    `json:"title"`
	Explanation    string    `json:"explanation"`
	MediaType      MediaType `json:"media_type"`
	URL            string    `json:"url"`
	HDURL          string    `json:"hdurl,omitempty"`
	Copyright      string    `json:"copyright,omitempty"`
	ThumbnailURL   string    `json:"thumbnail_url,omitempty"`
	ServiceVersion string    `json:"service_version,omitempty"`
}

// ParsedDate returns the record date as time.Time when possible.
func (r Record) ParsedDate() time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(r.Date))
	if err != nil {
		return time.Time{}
	}
	return t
}

// errorBody covers both error shapes the API gateway emits.
type errorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e errorBody) message() string {
	if e.Error != nil {
		return strings.TrimSpace(strings.TrimSpace(e.Error.Code) + " " + strings.TrimSpace(e.Error.Message))
	}
	return strings.TrimSpace(e.Msg)
}

// DecodeRecords accepts either a single JSON object or an array of objects
// and always returns a slice. A single object becomes a one-element slice.
func DecodeRecords(body []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode response: empty body")
	}
	switch trimmed[0] {
	case '[':
		var records []Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		if records == nil {
			records = []Record{}
		}
		return records, nil
	case '{':
		var record Record
		if err := json.Unmarshal(trimmed, &record); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return []Record{record}, nil
	default:
		return nil, fmt.Errorf("decode response: unexpected token %q", trimmed[0])
	}
}
