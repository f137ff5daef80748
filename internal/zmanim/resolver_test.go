package zmanim

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/zmanim-api/internal/astro"
	"github.com/zapponejosh/zmanim-api/internal/geo"
)

var errMissing = errors.New("missing")

type mapStore map[string]geo.Options

func (m mapStore) LookupLocation(_ context.Context, name string) (*geo.Location, error) {
	opts, ok := m[name]
	if !ok {
		return nil, errMissing
	}
	return geo.New(opts)
}

func TestResolver_Resolve(t *testing.T) {
	store := mapStore{
		"jerusalem": {Name: "Jerusalem", Latitude: 31.778, Longitude: 35.2354, Elevation: 754, TimeZone: "Asia/Jerusalem"},
	}
	r := NewResolver(store, "noaa", true)
	date := time.Date(2024, time.April, 22, 23, 30, 0, 0, time.UTC)

	t.Run("stored location", func(t *testing.T) {
		cal, err := r.Resolve(context.Background(), Request{LocationName: "jerusalem", Date: date})
		require.NoError(t, err)
		assert.Equal(t, "Jerusalem", cal.Location.Name())
		assert.IsType(t, &astro.NOAA{}, cal.Calculator)
		assert.True(t, cal.UseElevation)

		// the civil date is kept even though 23:30 UTC is already the 23rd in Jerusalem
		y, m, d := cal.Date.Date()
		assert.Equal(t, []int{2024, 4, 22}, []int{y, int(m), d})
		assert.Equal(t, "Asia/Jerusalem", cal.Date.Location().String())
	})

	t.Run("coordinates and calculator override", func(t *testing.T) {
		cal, err := r.Resolve(context.Background(), Request{
			Coordinates: &geo.Options{Latitude: 40.0828, Longitude: -74.2094, TimeZone: "America/New_York"},
			Date:        date,
			Calculator:  "usno",
		})
		require.NoError(t, err)
		assert.IsType(t, &astro.SunTimes{}, cal.Calculator)
	})

	t.Run("unknown location", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), Request{LocationName: "atlantis", Date: date})
		assert.ErrorIs(t, err, errMissing)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), Request{Coordinates: &geo.Options{Latitude: 91}, Date: date})
		assert.ErrorIs(t, err, geo.ErrInvalidLocation)
	})

	t.Run("unknown calculator", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), Request{LocationName: "jerusalem", Date: date, Calculator: "sundial"})
		assert.ErrorIs(t, err, astro.ErrUnknownCalculator)
	})

	t.Run("nothing to resolve", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), Request{Date: date})
		assert.ErrorIs(t, err, ErrNoLocation)
	})

	t.Run("no store", func(t *testing.T) {
		_, err := NewResolver(nil, "noaa", false).Resolve(context.Background(), Request{LocationName: "jerusalem", Date: date})
		assert.Error(t, err)
	})
}

func TestResolver_DefaultsToToday(t *testing.T) {
	store := mapStore{
		"apia": {Name: "Apia", Latitude: -13.8333, Longitude: -171.75, TimeZone: "Pacific/Apia"},
	}
	// 12:00 UTC on the 3rd is already the 4th in Apia (UTC+14)
	clock := clockwork.NewFakeClockAt(time.Date(2018, time.February, 3, 12, 0, 0, 0, time.UTC))
	r := NewResolver(store, "noaa", false).WithClock(clock)

	cal, err := r.Resolve(context.Background(), Request{LocationName: "apia"})
	require.NoError(t, err)
	assert.Equal(t, "2018-02-04", cal.Date.Format("2006-01-02"))
}

func TestSummarize(t *testing.T) {
	loc := lakewood(t)
	day := Summarize(New(time.Date(2023, time.March, 1, 0, 0, 0, 0, loc.TimeZone()), loc, nil))

	assert.Equal(t, "2023-03-01", day.Date)
	assert.Equal(t, "NOAA Algorithm", day.Calculator)
	assert.Empty(t, day.Missing())
	require.NotNil(t, day.TemporalHour)
	assert.False(t, day.TemporalHour.Negative)

	polar := geo.MustNew(geo.Options{Name: "pole", Latitude: 89, Longitude: 0})
	night := Summarize(New(time.Date(2023, time.December, 21, 0, 0, 0, 0, time.UTC), polar, nil))
	assert.Nil(t, night.TemporalHour)
	assert.Contains(t, night.Missing(), "sunrise")
	assert.NotContains(t, night.Missing(), "sun_transit")

	raw, err := json.Marshal(night)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"sunrise":null`)
	assert.Contains(t, string(raw), `"temporal_hour":null`)
}

func TestSpan(t *testing.T) {
	tests := []struct {
		millis int64
		want   Span
		text   string
	}{
		{0, Span{}, "0:00:00.000"},
		{3_723_004, Span{Hours: 1, Minutes: 2, Seconds: 3, Milliseconds: 4}, "1:02:03.004"},
		{-3_723_004, Span{Hours: 1, Minutes: 2, Seconds: 3, Milliseconds: 4, Negative: true}, "-1:02:03.004"},
		{3_257_500, Span{Minutes: 54, Seconds: 17, Milliseconds: 500}, "0:54:17.500"},
		{90_000_000, Span{Hours: 25}, "25:00:00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := SpanFromMillis(tt.millis)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, got.String())
			assert.Equal(t, tt.millis, got.Millis())
			assert.Equal(t, time.Duration(tt.millis)*time.Millisecond, got.Duration())
		})
	}

	raw, err := json.Marshal(SpanFromDuration(54*time.Minute + 17500*time.Millisecond))
	require.NoError(t, err)
	assert.JSONEq(t, `{"hours":0,"minutes":54,"seconds":17,"milliseconds":500,"negative":false,"text":"0:54:17.500","millis":3257500}`, string(raw))
}
