package searchch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"fahrplan.dev/internal/metrics"
	"fahrplan.dev/internal/timetable"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testQuery = timetable.Query{From: "Bern", To: "Zürich HB", Time: "04:00", Date: "01/03/2024"}

func TestBuildURL(t *testing.T) {
	c := NewClient("https://search.ch/timetable/api/route.json", time.Second, nil, nil)

	raw := c.BuildURL(testQuery)
	assert.True(t, strings.HasPrefix(raw, "https://search.ch/timetable/api/route.json?"))
	assert.Contains(t, raw, "date=01%2F03%2F2024")
	assert.Contains(t, raw, "time=04%3A00")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "Bern", q.Get("from"))
	assert.Equal(t, "Zürich HB", q.Get("to"))
	assert.Equal(t, "30", q.Get("num"))
	assert.Equal(t, "train", q.Get("transportation_types"))
}

func TestFetch_Success(t *testing.T) {
	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 1, "connections": [{"legs": [{"name": "Bern", "departure": "2024-03-01 08:02:00"}]}]}`))
	}))
	defer server.Close()

	m := metrics.New()
	c := NewClient(server.URL, time.Second, m, nil)

	resp, err := c.Fetch(context.Background(), testQuery)
	require.NoError(t, err)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 1, *resp.Count)
	require.Len(t, resp.Connections, 1)
	assert.Equal(t, "Bern", resp.Connections[0].Legs[0].Name)

	assert.Equal(t, "Zürich HB", got.Get("to"))
	assert.Equal(t, "01/03/2024", got.Get("date"))
	assert.Equal(t, "30", got.Get("num"))
	assert.Equal(t, "train", got.Get("transportation_types"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("ok")))
}

func TestFetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such route", http.StatusNotFound)
	}))
	defer server.Close()

	m := metrics.New()
	c := NewClient(server.URL, time.Second, m, nil)

	resp, err := c.Fetch(context.Background(), testQuery)
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("status_error")))
}

func TestFetch_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, nil, nil)

	_, err := c.Fetch(context.Background(), testQuery)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestFetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c := NewClient(addr, time.Second, nil, nil)

	_, err := c.Fetch(context.Background(), testQuery)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestFetch_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := NewClient(server.URL, 10*time.Second, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Fetch(ctx, testQuery)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
}
