package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	c := RealClock{}
	before := time.Now()
	result := c.Now()
	after := time.Now()

	assert.False(t, result.Before(before))
	assert.False(t, result.After(after))
}

func TestMockClock_SetAndAdvance(t *testing.T) {
	start := time.Date(2024, 12, 24, 23, 0, 0, 0, time.UTC)
	c := NewMockClock(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start.UnixMilli(), c.NowUnixMilli())

	c.Advance(2 * time.Hour)
	assert.Equal(t, time.Date(2024, 12, 25, 1, 0, 0, 0, time.UTC), c.Now())

	c.Advance(-30 * time.Minute)
	assert.Equal(t, time.Date(2024, 12, 25, 0, 30, 0, 0, time.UTC), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestEnvironmentClock(t *testing.T) {
	zurich, err := time.LoadLocation("Europe/Zurich")
	if err != nil {
		t.Skip("zoneinfo not available")
	}

	t.Run("RFC3339 value", func(t *testing.T) {
		t.Setenv("FAHRPLAN_NOW", "2024-03-01T08:00:00Z")
		c := NewEnvironmentClock("FAHRPLAN_NOW", zurich)
		assert.True(t, c.Now().Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)))
	})

	t.Run("local date", func(t *testing.T) {
		t.Setenv("FAHRPLAN_NOW", "2024-03-01")
		c := NewEnvironmentClock("FAHRPLAN_NOW", zurich)
		assert.True(t, c.Now().Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, zurich)))
	})

	t.Run("invalid value falls back to system time", func(t *testing.T) {
		t.Setenv("FAHRPLAN_NOW", "yesterday")
		c := NewEnvironmentClock("FAHRPLAN_NOW", zurich)
		before := time.Now()
		assert.False(t, c.Now().Before(before))
	})

	t.Run("unset falls back to system time", func(t *testing.T) {
		t.Setenv("FAHRPLAN_NOW", "")
		c := NewEnvironmentClock("FAHRPLAN_NOW", zurich)
		assert.WithinDuration(t, time.Now(), c.Now(), time.Second)
	})
}
