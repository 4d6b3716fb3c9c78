// Package timeapi fetches the current time from a timeapi.io style JSON
// endpoint.
package timeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/ringclock/internal/timesync"
)

// DefaultURL returns the current time in Europe/London.
const DefaultURL = "https://timeapi.io/api/Time/current/zone?timeZone=Europe%2FLondon"

const maxErrorBody = 4 << 10

// Client implements timesync.Fetcher over HTTP.
type Client struct {
	url  string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithURL overrides the endpoint.
func WithURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.url = u
		}
	}
}

// WithHTTPClient sets the HTTP client. Its timeout applies on top of the
// context deadline.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// New returns a client for DefaultURL.
func New(opts ...Option) *Client {
	c := &Client{url: DefaultURL, http: &http.Client{Timeout: 30 * time.Second}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// response mirrors the fields used from the payload. Pointers tell a missing
// field apart from a zero one.
type response struct {
	Year         *int            `json:"year"`
	Month        *int            `json:"month"`
	Day          *int            `json:"day"`
	DayOfWeek    json.RawMessage `json:"dayOfWeek"`
	Hour         *int            `json:"hour"`
	Minute       *int            `json:"minute"`
	Seconds      *int            `json:"seconds"`
	MilliSeconds *int            `json:"milliSeconds"`
}

// Fetch performs one GET and decodes the payload.
func (c *Client) Fetch(ctx context.Context) (timesync.DateTime, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return timesync.DateTime{}, fmt.Errorf("%w: %w", timesync.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return timesync.DateTime{}, fmt.Errorf("%w: %w", timesync.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return timesync.DateTime{}, &timesync.StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(body)),
		}
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return timesync.DateTime{}, fmt.Errorf("%w: %w", timesync.ErrMalformed, err)
	}
	return r.dateTime()
}

func (r response) dateTime() (timesync.DateTime, error) {
	fields := []struct {
		name string
		v    *int
	}{
		{"year", r.Year}, {"month", r.Month}, {"day", r.Day},
		{"hour", r.Hour}, {"minute", r.Minute}, {"seconds", r.Seconds},
		{"milliSeconds", r.MilliSeconds},
	}
	for _, f := range fields {
		if f.v == nil {
			return timesync.DateTime{}, fmt.Errorf("%w: missing %s", timesync.ErrMalformed, f.name)
		}
	}
	dow, err := dayOfWeek(r.DayOfWeek)
	if err != nil {
		return timesync.DateTime{}, err
	}

	return timesync.DateTime{
		Year:         *r.Year,
		Month:        *r.Month,
		Day:          *r.Day,
		DayOfWeek:    dow,
		Hour:         *r.Hour,
		Minute:       *r.Minute,
		Seconds:      *r.Seconds,
		MilliSeconds: *r.MilliSeconds,
	}, nil
}

// dayOfWeek accepts either a number or an English day name. Names map to
// 0 for Monday through 6 for Sunday.
func dayOfWeek(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, fmt.Errorf("%w: missing dayOfWeek", timesync.ErrMalformed)
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return 0, fmt.Errorf("%w: dayOfWeek: %w", timesync.ErrMalformed, err)
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(name, d.String()) {
			return (int(d) + 6) % 7, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown dayOfWeek %q", timesync.ErrMalformed, name)
}
