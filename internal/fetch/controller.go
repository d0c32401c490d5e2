// Package fetch orchestrates one gallery query: validate, request, render.
package fetch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/apodview/internal/apod"
	"github.com/five82/apodview/internal/gallery"
	"github.com/five82/apodview/internal/metrics"
	"github.com/five82/apodview/internal/trivia"
)

// ErrMissingDate is returned by Submit when either date is blank.
var ErrMissingDate = errors.New("start and end date are required")

// MissingDatePrompt is the message shown to the user for ErrMissingDate.
const MissingDatePrompt = "Please select both a start and end date."

// Container is the gallery surface plus the trivia line above it.
type Container interface {
	gallery.Container
	SetFact(fact string)
}

// Options configure a Controller.
type Options struct {
	Client    apod.RangeFetcher
	Container Container
	Facts     *trivia.Deck
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

// Controller validates date ranges, issues requests and routes results onto
// the gallery container.
type Controller struct {
	client    apod.RangeFetcher
	container Container
	renderer  *gallery.Renderer
	facts     *trivia.Deck
	log       *slog.Logger
	metrics   *metrics.Metrics

	mu     sync.Mutex
	latest string
}

// NewController builds a Controller from opts.
func NewController(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	facts := opts.Facts
	if facts == nil {
		facts = trivia.NewDeck()
	}
	return &Controller{
		client:    opts.Client,
		container: opts.Container,
		renderer:  gallery.NewRenderer(opts.Container),
		facts:     facts,
		log:       log,
		metrics:   opts.Metrics,
	}
}

// Pending is a validated request that has not been sent yet.
type Pending struct {
	ID    string
	Start string
	End   string

	client  apod.RangeFetcher
	metrics *metrics.Metrics
}

// Result is the outcome of Pending.Do.
type Result struct {
	ID       string
	Start    string
	End      string
	Records  []apod.Record
	Err      error
	Duration time.Duration
}

// ShowFact rotates the trivia line.
func (c *Controller) ShowFact() {
	c.container.SetFact(c.facts.Next())
}

// Submit rotates the trivia line, validates the range and, when valid,
// replaces the gallery with the loading placeholder. The returned Pending
// must be run with Do and its Result handed back to Deliver.
func (c *Controller) Submit(start, end string) (*Pending, error) {
	c.ShowFact()

	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return nil, ErrMissingDate
	}

	id := uuid.NewString()
	c.mu.Lock()
	c.latest = id
	c.mu.Unlock()

	c.container.ShowPlaceholder(gallery.Loading)
	c.log.Debug("fetch submitted", "request_id", id, "start_date", start, "end_date", end)

	return &Pending{
		ID:      id,
		Start:   start,
		End:     end,
		client:  c.client,
		metrics: c.metrics,
	}, nil
}

// Do performs exactly one API request. It is safe to call off the UI loop.
func (p *Pending) Do(ctx context.Context) Result {
	res := Result{ID: p.ID, Start: p.Start, End: p.End}
	if p.client == nil {
		res.Err = errors.New("apod client is nil")
		return res
	}
	p.metrics.IncRequests()
	began := time.Now()
	res.Records, res.Err = p.client.FetchRange(ctx, p.Start, p.End)
	res.Duration = time.Since(began)
	p.metrics.ObserveRequest(res.Duration.Seconds())
	return res
}

// Deliver applies a result to the gallery. Results from anything but the
// most recent submission are dropped. It reports whether the result was
// applied.
func (c *Controller) Deliver(res Result) bool {
	c.mu.Lock()
	current := res.ID == c.latest
	c.mu.Unlock()
	if !current {
		c.metrics.IncStale()
		c.log.Debug("dropping stale response", "request_id", res.ID, "start_date", res.Start, "end_date", res.End)
		return false
	}

	if res.Err != nil {
		c.metrics.IncFailures()
		c.container.ShowPlaceholder(gallery.Failed)
		c.log.Error("error fetching images",
			"request_id", res.ID,
			"start_date", res.Start,
			"end_date", res.End,
			"duration_ms", res.Duration.Milliseconds(),
			"error", res.Err,
		)
		return true
	}

	entries := c.renderer.Render(res.Records)
	c.metrics.AddEntries(len(entries))
	c.log.Info("gallery rendered",
		"request_id", res.ID,
		"start_date", res.Start,
		"end_date", res.End,
		"records", len(res.Records),
		"entries", len(entries),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return true
}
