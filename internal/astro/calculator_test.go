package astro

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/zmanim-api/internal/geo"
)

func calculators() []Calculator {
	return []Calculator{NewNOAA(), NewSunTimes()}
}

func hoursOf(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// circular difference in hours, so 23.99 and 0.01 are close
func hourDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 12 {
		d = 24 - d
	}
	return d
}

func TestByName(t *testing.T) {
	c, err := ByName("NOAA")
	require.NoError(t, err)
	assert.IsType(t, &NOAA{}, c)

	c, err = ByName("usno")
	require.NoError(t, err)
	assert.IsType(t, &SunTimes{}, c)

	_, err = ByName("sundial")
	assert.True(t, errors.Is(err, ErrUnknownCalculator), "err = %v", err)

	assert.Equal(t, []string{"noaa", "usno"}, Names())
}

func TestAdjustZenith(t *testing.T) {
	p := DefaultParams()

	assert.InDelta(t, 90+50.0/60, p.AdjustZenith(90, 0), 1e-12)
	assert.Equal(t, 96.0, p.AdjustZenith(96, 500), "twilight zenith must not be adjusted")
	assert.Equal(t, 89.99, p.AdjustZenith(89.99, 500))

	assert.Zero(t, p.ElevationAdjustment(0))
	// 1000 m above the horizon dips it by about a degree
	assert.InDelta(t, 1.0158, p.ElevationAdjustment(1000), 1e-3)
	assert.Greater(t, p.AdjustZenith(90, 100), p.AdjustZenith(90, 0))
}

func TestNOAA_UsesCivilDate(t *testing.T) {
	greenwich := geo.MustNew(geo.Options{Latitude: 51.4769, Longitude: 0})
	calc := NewNOAA()

	// J2000.0: the equation of time is about -3.3 minutes
	noon, ok := calc.UTCNoon(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), greenwich)
	require.True(t, ok)
	assert.InDelta(t, 12+3.3/60, noon, 1.0/60)

	// only the civil date matters, not the clock time or zone it carries
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	utcDate := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	lateLocal := time.Date(2024, time.February, 29, 23, 30, 0, 0, newYork)

	want, _ := calc.UTCNoon(utcDate, greenwich)
	got, _ := calc.UTCNoon(lateLocal, greenwich)
	assert.Equal(t, want, got)

	wantRise, _ := calc.UTCSunrise(utcDate, greenwich, GeometricZenith, false)
	gotRise, _ := calc.UTCSunrise(lateLocal, greenwich, GeometricZenith, false)
	assert.Equal(t, wantRise, gotRise)
}

func TestCalculators_MatchGoSunrise(t *testing.T) {
	places := []geo.Options{
		{Name: "Lakewood", Latitude: 40.0828, Longitude: -74.2094},
		{Name: "Jerusalem", Latitude: 31.778, Longitude: 35.2354},
		{Name: "Sydney", Latitude: -33.8688, Longitude: 151.2093},
		{Name: "Quito", Latitude: -0.1807, Longitude: -78.4678},
	}
	dates := []time.Time{
		time.Date(2007, time.February, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2021, time.June, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.October, 15, 0, 0, 0, 0, time.UTC),
	}

	for _, calc := range calculators() {
		for _, opts := range places {
			loc := geo.MustNew(opts)
			for _, d := range dates {
				t.Run(calc.Name()+"/"+opts.Name+"/"+d.Format("2006-01-02"), func(t *testing.T) {
					wantRise, wantSet := sunrise.SunriseSunset(opts.Latitude, opts.Longitude, d.Year(), d.Month(), d.Day())
					require.False(t, wantRise.IsZero())

					rise, ok := calc.UTCSunrise(d, loc, GeometricZenith, false)
					require.True(t, ok)
					set, ok := calc.UTCSunset(d, loc, GeometricZenith, false)
					require.True(t, ok)

					// within three minutes of an independent implementation
					assert.Less(t, hourDiff(rise, hoursOf(wantRise.UTC())), 3.0/60, "sunrise %v vs %v", rise, wantRise.UTC())
					assert.Less(t, hourDiff(set, hoursOf(wantSet.UTC())), 3.0/60, "sunset %v vs %v", set, wantSet.UTC())
				})
			}
		}
	}
}

func TestCalculators_PolarNight(t *testing.T) {
	loc := geo.MustNew(geo.Options{Latitude: 80, Longitude: 0})
	d := time.Date(2020, time.December, 21, 0, 0, 0, 0, time.UTC)

	for _, calc := range calculators() {
		t.Run(calc.Name(), func(t *testing.T) {
			_, ok := calc.UTCSunrise(d, loc, GeometricZenith, false)
			assert.False(t, ok, "sunrise")
			_, ok = calc.UTCSunset(d, loc, GeometricZenith, false)
			assert.False(t, ok, "sunset")
			// the noon sun is 13.4° down: nautical dawn never comes,
			// astronomical dawn does
			_, ok = calc.UTCSunrise(d, loc, NauticalZenith, false)
			assert.False(t, ok, "nautical dawn")
			_, ok = calc.UTCSunrise(d, loc, AstronomicalZenith, false)
			assert.True(t, ok, "astronomical dawn")
		})
	}
}

func TestCalculators_ElevationWidensDay(t *testing.T) {
	d := time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC)

	for _, calc := range calculators() {
		t.Run(calc.Name(), func(t *testing.T) {
			prevRise, prevSet := math.Inf(1), math.Inf(-1)
			for _, elevation := range []float64{0, 100, 500, 2000} {
				loc := geo.MustNew(geo.Options{Latitude: 31.778, Longitude: 35.2354, Elevation: elevation})

				rise, ok := calc.UTCSunrise(d, loc, GeometricZenith, true)
				require.True(t, ok)
				set, ok := calc.UTCSunset(d, loc, GeometricZenith, true)
				require.True(t, ok)

				assert.LessOrEqual(t, rise, prevRise, "elevation %v", elevation)
				assert.GreaterOrEqual(t, set, prevSet, "elevation %v", elevation)
				prevRise, prevSet = rise, set
			}
		})
	}
}

func TestCalculators_ElevationIgnoredUnlessRequested(t *testing.T) {
	d := time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC)
	high := geo.MustNew(geo.Options{Latitude: 31.778, Longitude: 35.2354, Elevation: 800})
	low := geo.MustNew(geo.Options{Latitude: 31.778, Longitude: 35.2354})

	for _, calc := range calculators() {
		a, _ := calc.UTCSunrise(d, high, GeometricZenith, false)
		b, _ := calc.UTCSunrise(d, low, GeometricZenith, true)
		assert.Equal(t, b, a, calc.Name())
	}
}

func TestCalculators_EquatorEquinoxSymmetry(t *testing.T) {
	loc := geo.MustNew(geo.Options{Latitude: 0, Longitude: 0})
	d := time.Date(2023, time.March, 20, 0, 0, 0, 0, time.UTC)

	for _, calc := range calculators() {
		t.Run(calc.Name(), func(t *testing.T) {
			rise, ok := calc.UTCSunrise(d, loc, GeometricZenith, false)
			require.True(t, ok)
			set, ok := calc.UTCSunset(d, loc, GeometricZenith, false)
			require.True(t, ok)

			// twelve hours of daylight plus a few minutes of refraction
			assert.InDelta(t, 12.1, set-rise, 0.1)
			assert.InDelta(t, 6, rise, 0.25)
			assert.InDelta(t, 18, set, 0.25)
		})
	}
}

func TestCalculators_TwilightOrdering(t *testing.T) {
	loc := geo.MustNew(geo.Options{Latitude: 40.0828, Longitude: -74.2094})
	d := time.Date(2023, time.May, 10, 0, 0, 0, 0, time.UTC)

	for _, calc := range calculators() {
		t.Run(calc.Name(), func(t *testing.T) {
			var rises []float64
			for _, z := range []float64{AstronomicalZenith, NauticalZenith, CivilZenith, GeometricZenith} {
				h, ok := calc.UTCSunrise(d, loc, z, false)
				require.True(t, ok, "zenith %v", z)
				rises = append(rises, h)
			}
			for i := 1; i < len(rises); i++ {
				assert.Less(t, rises[i-1], rises[i])
			}
		})
	}
}

func TestNOAA_UTCNoon(t *testing.T) {
	var _ TransitCalculator = NewNOAA()

	loc := geo.MustNew(geo.Options{Latitude: 51.4769, Longitude: 0})
	// equation of time is near its November maximum of about +16 minutes
	noon, ok := NewNOAA().UTCNoon(time.Date(2023, time.November, 3, 0, 0, 0, 0, time.UTC), loc)
	require.True(t, ok)
	assert.InDelta(t, 12-16.4/60, noon, 1.0/60)

	rise, _ := NewNOAA().UTCSunrise(time.Date(2023, time.November, 3, 0, 0, 0, 0, time.UTC), loc, GeometricZenith, false)
	set, _ := NewNOAA().UTCSunset(time.Date(2023, time.November, 3, 0, 0, 0, 0, time.UTC), loc, GeometricZenith, false)
	assert.InDelta(t, (rise+set)/2, noon, 2.0/60)
}

func TestNormalize24(t *testing.T) {
	assert.Equal(t, 1.5, normalize24(25.5))
	assert.Equal(t, 23.0, normalize24(-1))
	assert.Equal(t, 0.0, normalize24(24))
}
