// Package zmanim turns a solar calculator's UTC fractions into zoned
// instants for one civil date at one location.
//
// Every instant is a *time.Time. A nil instant means the sun does not reach
// the requested position on that date (polar day or night), and everything
// derived from a nil instant is itself nil.
package zmanim

import (
	"time"

	"github.com/zapponejosh/zmanim-api/internal/astro"
	"github.com/zapponejosh/zmanim-api/internal/geo"
)

// Calendar computes solar events for Date at Location. Only the year, month
// and day of Date are used. A Calendar is not safe for concurrent use; the
// usual pattern is one Calendar per request, advancing Date to walk days.
type Calendar struct {
	Date         time.Time
	Location     *geo.Location
	Calculator   astro.Calculator
	UseElevation bool
}

// New returns a Calendar for date at loc. A nil calc selects NOAA.
func New(date time.Time, loc *geo.Location, calc astro.Calculator) *Calendar {
	if calc == nil {
		calc = astro.NewNOAA()
	}
	return &Calendar{Date: date, Location: loc, Calculator: calc}
}

// ============================================================================
// Sunrise and sunset
// ============================================================================

// Sunrise returns sunrise, adjusted for elevation when UseElevation is set.
func (c *Calendar) Sunrise() *time.Time {
	return c.riseAt(astro.GeometricZenith, c.UseElevation)
}

// Sunset returns sunset, adjusted for elevation when UseElevation is set.
func (c *Calendar) Sunset() *time.Time {
	return c.setAt(astro.GeometricZenith, c.UseElevation)
}

// SeaLevelSunrise returns sunrise ignoring elevation. It is the base for
// twilight and temporal hour calculations.
func (c *Calendar) SeaLevelSunrise() *time.Time {
	return c.riseAt(astro.GeometricZenith, false)
}

// SeaLevelSunset returns sunset ignoring elevation.
func (c *Calendar) SeaLevelSunset() *time.Time {
	return c.setAt(astro.GeometricZenith, false)
}

// BeginCivilTwilight returns the time the sun is 6° below the horizon in the
// morning.
func (c *Calendar) BeginCivilTwilight() *time.Time {
	return c.SunriseOffsetByDegrees(astro.CivilZenith)
}

// BeginNauticalTwilight returns the time the sun is 12° below the horizon in
// the morning.
func (c *Calendar) BeginNauticalTwilight() *time.Time {
	return c.SunriseOffsetByDegrees(astro.NauticalZenith)
}

// BeginAstronomicalTwilight returns the time the sun is 18° below the horizon
// in the morning.
func (c *Calendar) BeginAstronomicalTwilight() *time.Time {
	return c.SunriseOffsetByDegrees(astro.AstronomicalZenith)
}

// EndCivilTwilight returns the time the sun is 6° below the horizon in the
// evening.
func (c *Calendar) EndCivilTwilight() *time.Time {
	return c.SunsetOffsetByDegrees(astro.CivilZenith)
}

// EndNauticalTwilight returns the time the sun is 12° below the horizon in
// the evening.
func (c *Calendar) EndNauticalTwilight() *time.Time {
	return c.SunsetOffsetByDegrees(astro.NauticalZenith)
}

// EndAstronomicalTwilight returns the time the sun is 18° below the horizon
// in the evening.
func (c *Calendar) EndAstronomicalTwilight() *time.Time {
	return c.SunsetOffsetByDegrees(astro.AstronomicalZenith)
}

// SunriseOffsetByDegrees returns the morning time the sun's center reaches
// zenith degrees. A zenith of exactly 90 is treated as sunrise.
func (c *Calendar) SunriseOffsetByDegrees(zenith float64) *time.Time {
	return c.riseAt(zenith, true)
}

// SunsetOffsetByDegrees returns the evening time the sun's center reaches
// zenith degrees.
func (c *Calendar) SunsetOffsetByDegrees(zenith float64) *time.Time {
	return c.setAt(zenith, true)
}

// UTCSunrise returns the raw calculator result for zenith, in UTC hours.
func (c *Calendar) UTCSunrise(zenith float64) (float64, bool) {
	return c.Calculator.UTCSunrise(c.adjustedDate(), c.Location, zenith, true)
}

// UTCSunset returns the raw calculator result for zenith, in UTC hours.
func (c *Calendar) UTCSunset(zenith float64) (float64, bool) {
	return c.Calculator.UTCSunset(c.adjustedDate(), c.Location, zenith, true)
}

// UTCSeaLevelSunrise is UTCSunrise at the geometric zenith without elevation.
func (c *Calendar) UTCSeaLevelSunrise() (float64, bool) {
	return c.Calculator.UTCSunrise(c.adjustedDate(), c.Location, astro.GeometricZenith, false)
}

// UTCSeaLevelSunset is UTCSunset at the geometric zenith without elevation.
func (c *Calendar) UTCSeaLevelSunset() (float64, bool) {
	return c.Calculator.UTCSunset(c.adjustedDate(), c.Location, astro.GeometricZenith, false)
}

// ============================================================================
// Derived quantities
// ============================================================================

// TemporalHour returns 1/12 of the day from sea-level sunrise to sea-level
// sunset.
func (c *Calendar) TemporalHour() (time.Duration, bool) {
	return TemporalHourBetween(c.SeaLevelSunrise(), c.SeaLevelSunset())
}

// TemporalHourBetween returns 1/12 of the interval [start, end). ok is false
// if either bound is nil.
func TemporalHourBetween(start, end *time.Time) (time.Duration, bool) {
	if start == nil || end == nil {
		return 0, false
	}
	return end.Sub(*start) / 12, true
}

// SunTransit returns solar noon. Calculators that implement
// astro.TransitCalculator supply it directly; otherwise it is the midpoint
// of sea-level sunrise and sunset.
func (c *Calendar) SunTransit() *time.Time {
	if tc, ok := c.Calculator.(astro.TransitCalculator); ok {
		hours, ok := tc.UTCNoon(c.adjustedDate(), c.Location)
		if !ok {
			return nil
		}
		return c.toZoned(hours, eventNoon)
	}
	return SunTransitBetween(c.SeaLevelSunrise(), c.SeaLevelSunset())
}

// SunTransitBetween returns the midpoint of [start, end), six temporal hours
// after start.
func SunTransitBetween(start, end *time.Time) *time.Time {
	hour, ok := TemporalHourBetween(start, end)
	if !ok {
		return nil
	}
	return TimeOffset(start, 6*hour)
}

// TimeOffset returns t shifted by d, or nil if t is nil.
func TimeOffset(t *time.Time, d time.Duration) *time.Time {
	if t == nil {
		return nil
	}
	shifted := t.Add(d)
	return &shifted
}

// ============================================================================
// UTC fraction to zoned instant
// ============================================================================

type event int

const (
	eventSunrise event = iota
	eventSunset
	eventNoon
)

func (c *Calendar) riseAt(zenith float64, elevation bool) *time.Time {
	hours, ok := c.Calculator.UTCSunrise(c.adjustedDate(), c.Location, zenith, elevation)
	if !ok {
		return nil
	}
	return c.toZoned(hours, eventSunrise)
}

func (c *Calendar) setAt(zenith float64, elevation bool) *time.Time {
	hours, ok := c.Calculator.UTCSunset(c.adjustedDate(), c.Location, zenith, elevation)
	if !ok {
		return nil
	}
	return c.toZoned(hours, eventSunset)
}

// adjustedDate is the civil date handed to the calculator. Locations whose
// zone is a day away from their longitude (Samoa, Kiribati) are solved on
// the neighboring date.
func (c *Calendar) adjustedDate() time.Time {
	y, m, d := c.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if shift := c.Location.AntimeridianAdjustment(time.Date(y, m, d, 12, 0, 0, 0, time.UTC)); shift != 0 {
		date = date.AddDate(0, 0, shift)
	}
	return date
}

// toZoned places a UTC fraction on the adjusted date and converts it to the
// location's zone. The calculator only knows a time of day, so an event
// that really belongs to the neighboring UTC date is moved there using the
// longitude's rough local hour.
func (c *Calendar) toZoned(hours float64, ev event) *time.Time {
	h := int(hours)
	rem := (hours - float64(h)) * 60
	m := int(rem)
	rem = (rem - float64(m)) * 60
	s := int(rem)
	ms := int((rem - float64(s)) * 1000)

	y, mon, d := c.adjustedDate().Date()
	lonHours := int(c.Location.Longitude()) / 15

	switch {
	case ev == eventSunrise && lonHours+h > 18:
		d--
	case ev == eventSunset && lonHours+h < 6:
		d++
	case ev == eventNoon && lonHours+h > 24:
		d--
	}

	t := time.Date(y, mon, d, h, m, s, ms*int(time.Millisecond), time.UTC).In(c.Location.TimeZone())
	return &t
}
