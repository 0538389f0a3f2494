// Package searchch fetches connections from the search.ch timetable API.
package searchch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"fahrplan.dev/internal/logging"
	"fahrplan.dev/internal/metrics"
	"fahrplan.dev/internal/timetable"
	resty "gopkg.in/resty.v1"
)

const (
	// ResultCount is the fixed number of connections requested.
	ResultCount = 30
	// TransportationTypes restricts results to trains.
	TransportationTypes = "train"

	maxBodySize = 8 * 1024 * 1024
)

// ErrFetch wraps every failure to obtain a decoded timetable response.
var ErrFetch = errors.New("timetable fetch failed")

// StatusError reports a non-success HTTP status from the API.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: upstream returned %s", ErrFetch, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrFetch
}

// Client issues route searches. It makes exactly one request per Fetch.
type Client struct {
	baseURL string
	http    *resty.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewClient returns a Client for baseURL. timeout bounds each request; m
// and logger may be nil.
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	rc := resty.NewWithClient(newHTTPClient(timeout)).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "fahrplan-grid/1.0")

	return &Client{
		baseURL: baseURL,
		http:    rc,
		metrics: m,
		logger:  logger.With(slog.String("component", "searchch_client")),
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	var transport *http.Transport
	if t, ok := http.DefaultTransport.(*http.Transport); ok {
		transport = t.Clone()
	} else {
		transport = &http.Transport{}
	}
	transport.MaxIdleConnsPerHost = 10
	transport.IdleConnTimeout = 90 * time.Second
	transport.TLSHandshakeTimeout = 10 * time.Second

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// QueryValues returns the URL parameters of a route search for q.
func QueryValues(q timetable.Query) url.Values {
	v := url.Values{}
	v.Set("from", q.From)
	v.Set("to", q.To)
	v.Set("time", q.Time)
	v.Set("date", q.Date)
	v.Set("num", fmt.Sprint(ResultCount))
	v.Set("transportation_types", TransportationTypes)
	return v
}

// BuildURL returns the full request URL for q.
func (c *Client) BuildURL(q timetable.Query) string {
	return c.baseURL + "?" + QueryValues(q).Encode()
}

// Fetch performs the route search and decodes the response. Any transport
// failure, non-2xx status or undecodable body yields an error wrapping ErrFetch.
func (c *Client) Fetch(ctx context.Context, q timetable.Query) (*timetable.Response, error) {
	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetMultiValueQueryParams(QueryValues(q)).
		SetDoNotParseResponse(true).
		Get(c.baseURL)
	if err != nil {
		c.metrics.ObserveUpstream("transport_error", time.Since(start))
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	body := resp.RawBody()
	defer logging.SafeCloseWithLogging(body, c.logger, "http_response_body")

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		c.metrics.ObserveUpstream("status_error", time.Since(start))
		return nil, &StatusError{StatusCode: resp.StatusCode(), Status: resp.Status()}
	}

	data, err := io.ReadAll(io.LimitReader(body, maxBodySize+1))
	if err != nil {
		c.metrics.ObserveUpstream("transport_error", time.Since(start))
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrFetch, err)
	}
	if len(data) > maxBodySize {
		c.metrics.ObserveUpstream("decode_error", time.Since(start))
		return nil, fmt.Errorf("%w: response exceeds size limit of %d bytes", ErrFetch, maxBodySize)
	}

	var decoded timetable.Response
	if err := json.Unmarshal(data, &decoded); err != nil {
		c.metrics.ObserveUpstream("decode_error", time.Since(start))
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrFetch, err)
	}

	c.metrics.ObserveUpstream("ok", time.Since(start))
	logging.LogOperation(c.logger, "timetable_fetched",
		slog.String("from", q.From),
		slog.String("to", q.To),
		slog.Int("connections", len(decoded.Connections)),
		slog.Duration("duration", time.Since(start)))

	return &decoded, nil
}
