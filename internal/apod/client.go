package apod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RangeFetcher defines the interface for fetching APOD records by date range.
// This interface is implemented by *Client and can be used for testing.
type RangeFetcher interface {
	FetchRange(ctx context.Context, start, end string) ([]Record, error)
}

// Ensure Client implements RangeFetcher at compile time.
var _ RangeFetcher = (*Client)(nil)

// ErrStatus is wrapped by errors for non-success HTTP responses.
var ErrStatus = errors.New("unexpected status")

// Client talks to the APOD HTTP API.
type Client struct {
	endpoint  *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
}

const (
	DefaultEndpoint  = "https://api.nasa.gov/planetary/apod"
	DemoKey          = "DEMO_KEY"
	defaultUserAgent = "apodview/0.1"
	requestTimeout   = 15 * time.Second
	maxBodyBytes     = 8 << 20
)

// NewClient builds a Client for the given endpoint and key. A zero timeout
// uses the package default.
func NewClient(endpoint, apiKey string, timeout time.Duration) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(apiKey)
	if key == "" {
		key = DemoKey
	}
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		endpoint:  u,
		apiKey:    key,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchRange retrieves every record between start and end inclusive. The
// dates are passed to the API verbatim.
func (c *Client) FetchRange(ctx context.Context, start, end string) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("api_key", c.apiKey)
	values.Set("start_date", start)
	values.Set("end_date", end)

	reqURL := *c.endpoint
	reqURL.RawQuery = values.Encode()

	body, err := c.get(ctx, &reqURL)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(body)
}

func (c *Client) get(ctx context.Context, reqURL *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", redactKey(err, c.apiKey))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorBody
		if json.Unmarshal(body, &apiErr) == nil {
			if msg := apiErr.message(); msg != "" {
				return nil, fmt.Errorf("api returned %w %d: %s", ErrStatus, resp.StatusCode, msg)
			}
		}
		return nil, fmt.Errorf("api returned %w %d", ErrStatus, resp.StatusCode)
	}
	return body, nil
}

// redactKey keeps the API key out of transport errors, which embed the
// request URL.
func redactKey(err error, key string) error {
	if key == "" || key == DemoKey || !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", endpoint, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
