package astro

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/zapponejosh/zmanim-api/internal/geo"
)

const (
	julianDayJ2000       = 2451545.0
	julianDaysPerCentury = 36525.0
)

type solarEvent int

const (
	eventSunrise solarEvent = iota
	eventSunset
)

// NOAA implements the NOAA solar calculator, based on Jean Meeus's
// Astronomical Algorithms. Accurate to about a minute between ±72° latitude.
type NOAA struct {
	Params
}

// NewNOAA returns a NOAA calculator with default parameters.
func NewNOAA() *NOAA {
	return &NOAA{Params: DefaultParams()}
}

// Name implements Calculator.
func (c *NOAA) Name() string { return "NOAA Algorithm" }

// UTCSunrise implements Calculator.
func (c *NOAA) UTCSunrise(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool) (float64, bool) {
	z := c.adjustedZenith(loc, zenith, adjustForElevation)
	minutes, ok := sunRiseSetUTC(date, loc.Latitude(), -loc.Longitude(), z, eventSunrise)
	if !ok {
		return 0, false
	}
	return normalize24(minutes / 60), true
}

// UTCSunset implements Calculator.
func (c *NOAA) UTCSunset(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool) (float64, bool) {
	z := c.adjustedZenith(loc, zenith, adjustForElevation)
	minutes, ok := sunRiseSetUTC(date, loc.Latitude(), -loc.Longitude(), z, eventSunset)
	if !ok {
		return 0, false
	}
	return normalize24(minutes / 60), true
}

// UTCNoon implements TransitCalculator. Solar noon always exists.
func (c *NOAA) UTCNoon(date time.Time, loc *geo.Location) (float64, bool) {
	y, m, d := date.Date()
	noon := solarNoonUTC(julian.TimeToJD(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)), -loc.Longitude())
	return normalize24(noon / 60), true
}

func julianCenturies(jd float64) float64 {
	return (jd - julianDayJ2000) / julianDaysPerCentury
}

// sunGeometricMeanLongitude returns L0 in degrees, [0, 360).
func sunGeometricMeanLongitude(t float64) float64 {
	l := 280.46646 + t*(36000.76983+0.0003032*t)
	l = math.Mod(l, 360)
	if l < 0 {
		l += 360
	}
	return l
}

// sunGeometricMeanAnomaly returns M in degrees.
func sunGeometricMeanAnomaly(t float64) float64 {
	return 357.52911 + t*(35999.05029-0.0001537*t)
}

func earthOrbitEccentricity(t float64) float64 {
	return 0.016708634 - t*(0.000042037+0.0000001267*t)
}

func sunEquationOfCenter(t float64) float64 {
	mrad := deg2rad(sunGeometricMeanAnomaly(t))
	return math.Sin(mrad)*(1.914602-t*(0.004817+0.000014*t)) +
		math.Sin(2*mrad)*(0.019993-0.000101*t) +
		math.Sin(3*mrad)*0.000289
}

func sunTrueLongitude(t float64) float64 {
	return sunGeometricMeanLongitude(t) + sunEquationOfCenter(t)
}

// sunApparentLongitude corrects the true longitude for nutation and
// aberration.
func sunApparentLongitude(t float64) float64 {
	omega := 125.04 - 1934.136*t
	return sunTrueLongitude(t) - 0.00569 - 0.00478*sinD(omega)
}

func meanObliquityOfEcliptic(t float64) float64 {
	seconds := 21.448 - t*(46.8150+t*(0.00059-t*0.001813))
	return 23.0 + (26.0+seconds/60.0)/60.0
}

func obliquityCorrection(t float64) float64 {
	omega := 125.04 - 1934.136*t
	return meanObliquityOfEcliptic(t) + 0.00256*cosD(omega)
}

func sunDeclination(t float64) float64 {
	return asinD(sinD(obliquityCorrection(t)) * sinD(sunApparentLongitude(t)))
}

// equationOfTime returns apparent minus mean solar time, in minutes.
func equationOfTime(t float64) float64 {
	epsilon := obliquityCorrection(t)
	l0 := deg2rad(sunGeometricMeanLongitude(t))
	e := earthOrbitEccentricity(t)
	m := deg2rad(sunGeometricMeanAnomaly(t))

	y := math.Tan(deg2rad(epsilon) / 2)
	y *= y

	sin2l0 := math.Sin(2 * l0)
	sinm := math.Sin(m)
	cos2l0 := math.Cos(2 * l0)
	sin4l0 := math.Sin(4 * l0)
	sin2m := math.Sin(2 * m)

	eot := y*sin2l0 - 2*e*sinm + 4*e*y*sinm*cos2l0 - 0.5*y*y*sin4l0 - 1.25*e*e*sin2m
	return rad2deg(eot) * 4
}

// sunHourAngle returns the hour angle in radians at which the sun reaches
// zenith, negative for sunset. ok is false when the sun never gets there.
func sunHourAngle(lat, declination, zenith float64, event solarEvent) (float64, bool) {
	latRad := deg2rad(lat)
	sdRad := deg2rad(declination)
	cosH := (math.Cos(deg2rad(zenith)) - math.Sin(latRad)*math.Sin(sdRad)) / (math.Cos(latRad) * math.Cos(sdRad))
	if math.IsNaN(cosH) || cosH > 1 || cosH < -1 {
		return 0, false
	}
	h := math.Acos(cosH)
	if event == eventSunset {
		h = -h
	}
	return h, true
}

// solarNoonUTC returns solar noon in minutes after 0h UTC. lonWest is
// positive west of Greenwich.
func solarNoonUTC(jd, lonWest float64) float64 {
	tnoon := julianCenturies(jd + lonWest/360.0)
	eot := equationOfTime(tnoon)
	noon := lonWest*4 - eot

	tnoon = julianCenturies(jd + noon/1440.0)
	eot = equationOfTime(tnoon)
	return 720 + lonWest*4 - eot
}

// sunRiseSetUTC returns the event in minutes after 0h UTC. The first pass
// uses the sun's position at local noon, the second its position at the
// approximate event time.
func sunRiseSetUTC(date time.Time, lat, lonWest, zenith float64, event solarEvent) (float64, bool) {
	y, m, d := date.Date()
	jd := julian.TimeToJD(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))

	noon := solarNoonUTC(jd, lonWest)
	t := julianCenturies(jd + noon/1440.0)

	timeUTC, ok := eventMinutes(t, lat, lonWest, zenith, event)
	if !ok {
		return 0, false
	}

	t = julianCenturies(jd + timeUTC/1440.0)
	return eventMinutes(t, lat, lonWest, zenith, event)
}

func eventMinutes(t, lat, lonWest, zenith float64, event solarEvent) (float64, bool) {
	eot := equationOfTime(t)
	declination := sunDeclination(t)
	h, ok := sunHourAngle(lat, declination, zenith, event)
	if !ok {
		return 0, false
	}
	delta := lonWest - rad2deg(h)
	return 720 + 4*delta - eot, true
}
