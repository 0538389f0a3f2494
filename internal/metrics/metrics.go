// Package metrics provides Prometheus metrics for the timetable service.
package metrics

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Upstream timetable API metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration prometheus.Histogram

	// Grid shape
	GridStations    prometheus.Histogram
	GridConnections prometheus.Histogram

	// Search log database metrics
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge

	logger *slog.Logger

	// collectorStarted prevents spawning multiple collector goroutines
	collectorStarted atomic.Bool
	cancel           context.CancelFunc
	wg               sync.WaitGroup
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	return NewWithLogger(nil)
}

// NewWithLogger creates metrics with a logger for error reporting.
func NewWithLogger(logger *slog.Logger) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fahrplan_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fahrplan_http_request_duration_seconds",
				Help:    "HTTP request latency distribution",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		UpstreamRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fahrplan_upstream_requests_total",
				Help: "Timetable API requests by outcome",
			},
			[]string{"outcome"},
		),
		UpstreamRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fahrplan_upstream_request_duration_seconds",
			Help:    "Timetable API latency distribution",
			Buckets: prometheus.DefBuckets,
		}),
		GridStations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fahrplan_grid_stations",
			Help:    "Number of station rows per built timetable",
			Buckets: prometheus.LinearBuckets(0, 10, 10),
		}),
		GridConnections: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fahrplan_grid_connections",
			Help:    "Number of connection columns per built timetable",
			Buckets: prometheus.LinearBuckets(0, 5, 7),
		}),
		DBConnectionsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fahrplan_searchlog_connections_open",
			Help: "Number of open search log database connections",
		}),
		DBConnectionsInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fahrplan_searchlog_connections_in_use",
			Help: "Number of search log database connections currently in use",
		}),
		DBConnectionsIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fahrplan_searchlog_connections_idle",
			Help: "Number of idle search log database connections",
		}),
		logger: logger,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.UpstreamRequestsTotal,
		m.UpstreamRequestDuration,
		m.GridStations,
		m.GridConnections,
		m.DBConnectionsOpen,
		m.DBConnectionsInUse,
		m.DBConnectionsIdle,
	)

	return m
}

// ObserveUpstream records one timetable API call. outcome is "ok",
// "status_error", "transport_error" or "decode_error". Safe on a nil receiver.
func (m *Metrics) ObserveUpstream(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(outcome).Inc()
	m.UpstreamRequestDuration.Observe(d.Seconds())
}

// ObserveGrid records the shape of a built timetable. Safe on a nil receiver.
func (m *Metrics) ObserveGrid(stations, connections int) {
	if m == nil {
		return
	}
	m.GridStations.Observe(float64(stations))
	m.GridConnections.Observe(float64(connections))
}

// StartDBStatsCollector periodically copies db pool statistics into the
// gauges until Shutdown is called. Calls after the first are no-ops.
func (m *Metrics) StartDBStatsCollector(db *sql.DB, interval time.Duration) {
	if db == nil {
		return
	}
	if !m.collectorStarted.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Add to WaitGroup before exposing cancel to avoid racing Shutdown
	m.wg.Add(1)
	m.cancel = cancel

	go func() {
		defer m.wg.Done()
		defer func() {
			if r := recover(); r != nil && m.logger != nil {
				m.logger.Error("panic in search log stats collector", "error", r)
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
				m.DBConnectionsInUse.Set(float64(stats.InUse))
				m.DBConnectionsIdle.Set(float64(stats.Idle))
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Shutdown stops the stats collector and waits for it to exit. It is safe
// to call more than once.
func (m *Metrics) Shutdown() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}
