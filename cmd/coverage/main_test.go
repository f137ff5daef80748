package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/zmanim-api/internal/astro"
	"github.com/zapponejosh/zmanim-api/internal/geo"
)

func eventStats(r *Report, event string) *EventStats {
	for _, s := range r.Events {
		if s.Event == event {
			return s
		}
	}
	return nil
}

func TestBuildReport_MidLatitude(t *testing.T) {
	loc := geo.MustNew(geo.Options{Name: "jerusalem", Latitude: 31.778, Longitude: 35.2354, TimeZone: "Asia/Jerusalem"})

	r := buildReport(loc, astro.NewNOAA(), 2024)
	assert.Equal(t, 366, r.Days)
	assert.Equal(t, 366, r.FullDays)
	assert.Empty(t, r.Events)

	var buf bytes.Buffer
	printReport(&buf, r, false)
	assert.Contains(t, buf.String(), "Every event has a value on every day.")
}

func TestBuildReport_Svalbard(t *testing.T) {
	loc := geo.MustNew(geo.Options{Name: "longyearbyen", Latitude: 78.2232, Longitude: 15.6267, TimeZone: "Arctic/Longyearbyen"})

	r := buildReport(loc, astro.NewNOAA(), 2023)
	assert.Equal(t, 365, r.Days)
	assert.Less(t, r.FullDays, 365)

	sunrise := eventStats(r, "sunrise")
	require.NotNil(t, sunrise)
	// polar night plus midnight sun: roughly four months each
	assert.Greater(t, sunrise.MissingDays, 200)
	assert.Len(t, sunrise.Dates, sunrise.MissingDays)
	assert.Equal(t, "2023-01-01", sunrise.FirstMissing)
	assert.Equal(t, "2023-12-31", sunrise.LastMissing)

	// most missing first
	for i := 1; i < len(r.Events); i++ {
		assert.GreaterOrEqual(t, r.Events[i-1].MissingDays, r.Events[i].MissingDays)
	}

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, saveReport(path, r))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, r.Days, decoded.Days)
}

func TestRun_DefaultsToCurrentYearAtLocation(t *testing.T) {
	// 23:00 UTC on New Year's Eve is already 2025 in Jerusalem
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC))
	opts := options{lat: 31.778, lon: 35.2354, tz: "Asia/Jerusalem", calculator: "noaa"}

	var buf bytes.Buffer
	require.NoError(t, run(&buf, clock, opts))
	assert.Contains(t, buf.String(), "Year:        2025")

	opts.tz = "UTC"
	buf.Reset()
	require.NoError(t, run(&buf, clock, opts))
	assert.Contains(t, buf.String(), "Year:        2024")
}

func TestRun_Errors(t *testing.T) {
	clock := clockwork.NewFakeClock()

	err := run(&bytes.Buffer{}, clock, options{lat: 91, tz: "UTC", calculator: "noaa"})
	assert.ErrorIs(t, err, geo.ErrInvalidLocation)

	err = run(&bytes.Buffer{}, clock, options{tz: "UTC", calculator: "sundial"})
	assert.ErrorIs(t, err, astro.ErrUnknownCalculator)
}
