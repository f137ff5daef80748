package zmanim

import (
	"time"

	"github.com/zapponejosh/zmanim-api/internal/astro"
)

const (
	dipIncrement = 0.0001
	maxDipSteps  = int(90 / dipIncrement)
)

// SunriseSolarDipFromOffset returns the degrees below the geometric zenith
// the sun is at the given number of minutes before sea-level sunrise
// (negative minutes are after sunrise). The search starts at the
// unadjusted 90° zenith and walks in 0.0001° steps, so the result includes
// the 50' refraction and solar radius correction that sea-level sunrise
// already carries. Callers that want a pure depression angle must subtract
// it themselves.
//
// ok is false when sea-level sunrise does not exist or no angle within 90°
// reaches the offset.
func (c *Calendar) SunriseSolarDipFromOffset(minutes float64) (float64, bool) {
	sunrise := c.SeaLevelSunrise()
	if sunrise == nil {
		return 0, false
	}
	target := sunrise.Add(-time.Duration(minutes * float64(time.Minute)))

	return c.searchDip(minutes, sunrise, c.SunriseOffsetByDegrees, func(at time.Time) bool {
		return (minutes < 0 && at.Before(target)) || (minutes > 0 && at.After(target))
	})
}

// SunsetSolarDipFromOffset mirrors SunriseSolarDipFromOffset: minutes after
// sea-level sunset (negative is before).
func (c *Calendar) SunsetSolarDipFromOffset(minutes float64) (float64, bool) {
	sunset := c.SeaLevelSunset()
	if sunset == nil {
		return 0, false
	}
	target := sunset.Add(time.Duration(minutes * float64(time.Minute)))

	return c.searchDip(minutes, sunset, c.SunsetOffsetByDegrees, func(at time.Time) bool {
		return (minutes > 0 && at.Before(target)) || (minutes < 0 && at.After(target))
	})
}

// searchDip steps the zenith away from 90° until event(zenith) is no longer
// short of the target according to keepGoing. The first probe, at exactly
// 90°, is seaLevel itself: event would apply the elevation adjustment there.
func (c *Calendar) searchDip(minutes float64, seaLevel *time.Time, event func(float64) *time.Time, keepGoing func(time.Time) bool) (float64, bool) {
	step := dipIncrement
	if minutes < 0 {
		step = -dipIncrement
	}

	for i := 0; i <= maxDipSteps; i++ {
		degrees := float64(i) * step
		at := seaLevel
		if i > 0 {
			at = event(astro.GeometricZenith + degrees)
		}
		if at != nil && !keepGoing(*at) {
			return degrees, true
		}
	}
	return 0, false
}
