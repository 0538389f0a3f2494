// Package clock abstracts the current time so the default search date can be
// pinned in tests and demos.
package clock

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
	NowUnixMilli() int64
}

// RealClock reads the system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) NowUnixMilli() int64 {
	return time.Now().UnixMilli()
}

// MockClock is a settable, thread-safe clock for tests.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

func (m *MockClock) NowUnixMilli() int64 {
	return m.Now().UnixMilli()
}

func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves the clock by d, which may be negative.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// EnvironmentClock reads a pinned time from an environment variable and
// falls back to the system time when the variable is unset or invalid.
type EnvironmentClock struct {
	envVar   string
	location *time.Location
}

// NewEnvironmentClock returns a clock pinned by envVar. Values without a zone
// are read in location.
func NewEnvironmentClock(envVar string, location *time.Location) *EnvironmentClock {
	return &EnvironmentClock{envVar: envVar, location: location}
}

func (e *EnvironmentClock) Now() time.Time {
	raw := strings.TrimSpace(os.Getenv(e.envVar))
	if raw == "" {
		return time.Now()
	}
	t, err := e.parse(raw)
	if err != nil {
		slog.Warn("ignoring pinned clock value", slog.String("envVar", e.envVar), slog.String("error", err.Error()))
		return time.Now()
	}
	return t
}

func (e *EnvironmentClock) NowUnixMilli() int64 {
	return e.Now().UnixMilli()
}

func (e *EnvironmentClock) parse(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if e.location == nil {
		return time.Time{}, fmt.Errorf("unable to parse time %q without a configured location", s)
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, e.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse time %q", s)
}
