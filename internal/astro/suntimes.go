package astro

import (
	"math"
	"time"

	"github.com/zapponejosh/zmanim-api/internal/geo"
)

const degreesPerHour = 360.0 / 24.0

// SunTimes implements the almanac method published by the US Naval
// Observatory. It is cheaper than NOAA and slightly less accurate.
type SunTimes struct {
	Params
}

// NewSunTimes returns a SunTimes calculator with default parameters.
func NewSunTimes() *SunTimes {
	return &SunTimes{Params: DefaultParams()}
}

// Name implements Calculator.
func (c *SunTimes) Name() string { return "US Naval Almanac Algorithm" }

// UTCSunrise implements Calculator.
func (c *SunTimes) UTCSunrise(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool) (float64, bool) {
	z := c.adjustedZenith(loc, zenith, adjustForElevation)
	return almanacTimeUTC(date.YearDay(), loc.Latitude(), loc.Longitude(), z, eventSunrise)
}

// UTCSunset implements Calculator.
func (c *SunTimes) UTCSunset(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool) (float64, bool) {
	z := c.adjustedZenith(loc, zenith, adjustForElevation)
	return almanacTimeUTC(date.YearDay(), loc.Latitude(), loc.Longitude(), z, eventSunset)
}

func almanacTimeUTC(dayOfYear int, lat, lon, zenith float64, event solarEvent) (float64, bool) {
	lonHour := lon / degreesPerHour

	// rough time of the event: 6h local for sunrise, 18h for sunset
	base := 6.0
	if event == eventSunset {
		base = 18.0
	}
	approx := float64(dayOfYear) + (base-lonHour)/24

	m := 0.9856*approx - 3.289

	l := m + 1.916*sinD(m) + 0.020*sinD(2*m) + 282.634
	l = math.Mod(l, 360)
	if l < 0 {
		l += 360
	}

	// right ascension, in the same quadrant as l
	ra := rad2deg(math.Atan(0.91764 * tanD(l)))
	ra = math.Mod(ra+360, 360)
	ra += math.Floor(l/90)*90 - math.Floor(ra/90)*90
	ra /= degreesPerHour

	sinDec := 0.39782 * sinD(l)
	cosDec := math.Cos(math.Asin(sinDec))

	cosH := (cosD(zenith) - sinDec*sinD(lat)) / (cosDec * cosD(lat))
	if math.IsNaN(cosH) || cosH > 1 || cosH < -1 {
		return 0, false
	}

	var h float64
	if event == eventSunrise {
		h = 360 - acosD(cosH)
	} else {
		h = acosD(cosH)
	}
	h /= degreesPerHour

	localMeanTime := h + ra - 0.06571*approx - 6.622
	return normalize24(localMeanTime - lonHour), true
}
