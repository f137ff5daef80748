// Package astro computes UTC sunrise and sunset times for a date, location
// and zenith angle. Two interchangeable algorithms are provided: NOAA (after
// Meeus) and SunTimes (the USNO almanac method).
//
// Calculators report "the sun never reaches this zenith today" with ok=false,
// never with an error. That is an ordinary answer near the poles.
package astro

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/zapponejosh/zmanim-api/internal/geo"
)

// Zenith angles in degrees.
const (
	// GeometricZenith is the sun's center on the horizon. A requested zenith
	// of exactly this value is treated as sunrise/sunset and corrected for
	// refraction, solar radius and elevation.
	GeometricZenith    = 90.0
	CivilZenith        = 96.0
	NauticalZenith     = 102.0
	AstronomicalZenith = 108.0
)

// Defaults for Params.
const (
	DefaultRefraction  = 34.0   // arcminutes
	DefaultSolarRadius = 16.0   // arcminutes
	DefaultEarthRadius = 6356.9 // kilometers
)

// ErrUnknownCalculator is returned by ByName for an unregistered name.
var ErrUnknownCalculator = errors.New("unknown calculator")

// Calculator is the capability every solar algorithm provides.
//
// date supplies only a civil year, month and day; the time of day and
// location are ignored. Returned hours are UTC in [0, 24).
type Calculator interface {
	UTCSunrise(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool) (hours float64, ok bool)
	UTCSunset(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool) (hours float64, ok bool)
	Name() string
}

// TransitCalculator is implemented by calculators that compute solar noon
// directly rather than as the midpoint of sunrise and sunset.
type TransitCalculator interface {
	UTCNoon(date time.Time, loc *geo.Location) (hours float64, ok bool)
}

// Params holds the corrections applied to a sunrise/sunset zenith. The zero
// value is not useful; use DefaultParams.
type Params struct {
	Refraction  float64 // arcminutes
	SolarRadius float64 // arcminutes
	EarthRadius float64 // kilometers
}

// DefaultParams returns the standard refraction, solar radius and earth
// radius.
func DefaultParams() Params {
	return Params{
		Refraction:  DefaultRefraction,
		SolarRadius: DefaultSolarRadius,
		EarthRadius: DefaultEarthRadius,
	}
}

// ElevationAdjustment returns the dip of the horizon in degrees for an
// observer elevation meters above the surrounding terrain.
func (p Params) ElevationAdjustment(elevation float64) float64 {
	return rad2deg(math.Acos(p.EarthRadius / (p.EarthRadius + elevation/1000)))
}

// AdjustZenith returns zenith corrected for refraction, solar radius and
// elevation. Only a zenith of exactly GeometricZenith is adjusted; twilight
// and other offsets are returned unchanged.
func (p Params) AdjustZenith(zenith, elevation float64) float64 {
	if zenith != GeometricZenith {
		return zenith
	}
	return zenith + (p.SolarRadius+p.Refraction)/60 + p.ElevationAdjustment(elevation)
}

func (p Params) adjustedZenith(loc *geo.Location, zenith float64, adjustForElevation bool) float64 {
	elevation := 0.0
	if adjustForElevation {
		elevation = loc.Elevation()
	}
	return p.AdjustZenith(zenith, elevation)
}

var registry = map[string]func() Calculator{
	"noaa": func() Calculator { return NewNOAA() },
	"usno": func() Calculator { return NewSunTimes() },
}

// ByName returns a new calculator with default parameters. Names are
// case-insensitive: "noaa" or "usno".
func ByName(name string) (Calculator, error) {
	newCalc, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownCalculator, name, strings.Join(Names(), ", "))
	}
	return newCalc(), nil
}

// Names lists the registered calculator names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// normalize24 maps h into [0, 24).
func normalize24(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }

func rad2deg(r float64) float64 { return r * 180.0 / math.Pi }

func sinD(deg float64) float64 { return math.Sin(deg2rad(deg)) }

func cosD(deg float64) float64 { return math.Cos(deg2rad(deg)) }

func tanD(deg float64) float64 { return math.Tan(deg2rad(deg)) }

func asinD(x float64) float64 { return rad2deg(math.Asin(x)) }

func acosD(x float64) float64 { return rad2deg(math.Acos(x)) }
