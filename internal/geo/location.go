// Package geo provides the GeoLocation value object used by the solar
// calculators: a named point on the earth with an elevation and a time zone.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidLocation is returned when a coordinate, elevation or time zone
// is outside its domain. Values are rejected, never clamped.
var ErrInvalidLocation = errors.New("invalid location")

const minuteMillis = 60 * 1000

// Options holds the fields used to build a Location.
type Options struct {
	Name      string
	Latitude  float64 // degrees, north positive
	Longitude float64 // degrees, east positive
	Elevation float64 // meters above sea level
	TimeZone  string  // IANA time zone id, e.g. "America/New_York"
}

// Location is a point on the earth together with the time zone its civil
// dates are interpreted in.
type Location struct {
	name      string
	latitude  float64
	longitude float64
	elevation float64
	tzID      string
	tz        *time.Location
}

// New validates opts and returns a Location. An empty TimeZone means UTC.
func New(opts Options) (*Location, error) {
	l := &Location{name: opts.Name}

	if err := l.SetLatitude(opts.Latitude); err != nil {
		return nil, err
	}
	if err := l.SetLongitude(opts.Longitude); err != nil {
		return nil, err
	}
	if err := l.SetElevation(opts.Elevation); err != nil {
		return nil, err
	}

	tz := opts.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	if err := l.SetTimeZone(tz); err != nil {
		return nil, err
	}

	return l, nil
}

// MustNew is like New but panics on invalid options. Intended for
// package-level fixtures.
func MustNew(opts Options) *Location {
	l, err := New(opts)
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the display name of the location.
func (l *Location) Name() string { return l.name }

// Latitude returns the latitude in signed decimal degrees.
func (l *Location) Latitude() float64 { return l.latitude }

// Longitude returns the longitude in signed decimal degrees.
func (l *Location) Longitude() float64 { return l.longitude }

// Elevation returns the elevation in meters.
func (l *Location) Elevation() float64 { return l.elevation }

// TimeZoneID returns the IANA id of the location's time zone.
func (l *Location) TimeZoneID() string { return l.tzID }

// TimeZone returns the loaded time zone.
func (l *Location) TimeZone() *time.Location { return l.tz }

// SetName sets the display name.
func (l *Location) SetName(name string) { l.name = name }

// SetLatitude sets the latitude in decimal degrees within [-90, 90].
func (l *Location) SetLatitude(lat float64) error {
	if math.IsNaN(lat) || lat > 90 || lat < -90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidLocation, lat)
	}
	l.latitude = lat
	return nil
}

// SetLatitudeDMS sets the latitude from degrees, minutes and seconds plus a
// hemisphere letter ("N" or "S").
func (l *Location) SetLatitudeDMS(degrees, minutes int, seconds float64, direction string) error {
	lat := float64(degrees) + (float64(minutes)+seconds/60.0)/60.0
	if math.IsNaN(lat) || lat > 90 || lat < 0 {
		return fmt.Errorf("%w: latitude %d°%d'%v\" must be between 0 and 90", ErrInvalidLocation, degrees, minutes, seconds)
	}
	switch strings.ToUpper(direction) {
	case "N":
	case "S":
		lat = -lat
	default:
		return fmt.Errorf("%w: latitude direction %q must be N or S", ErrInvalidLocation, direction)
	}
	l.latitude = lat
	return nil
}

// SetLongitude sets the longitude in decimal degrees within [-180, 180].
func (l *Location) SetLongitude(lon float64) error {
	if math.IsNaN(lon) || lon > 180 || lon < -180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidLocation, lon)
	}
	l.longitude = lon
	return nil
}

// SetLongitudeDMS sets the longitude from degrees, minutes and seconds plus
// a hemisphere letter ("E" or "W").
func (l *Location) SetLongitudeDMS(degrees, minutes int, seconds float64, direction string) error {
	lon := float64(degrees) + (float64(minutes)+seconds/60.0)/60.0
	if math.IsNaN(lon) || lon > 180 || lon < 0 {
		return fmt.Errorf("%w: longitude %d°%d'%v\" must be between 0 and 180", ErrInvalidLocation, degrees, minutes, seconds)
	}
	switch strings.ToUpper(direction) {
	case "E":
	case "W":
		lon = -lon
	default:
		return fmt.Errorf("%w: longitude direction %q must be E or W", ErrInvalidLocation, direction)
	}
	l.longitude = lon
	return nil
}

// SetElevation sets the elevation in meters. Negative values are rejected.
func (l *Location) SetElevation(elevation float64) error {
	if math.IsNaN(elevation) || math.IsInf(elevation, 0) || elevation < 0 {
		return fmt.Errorf("%w: elevation %v must be a non-negative number of meters", ErrInvalidLocation, elevation)
	}
	l.elevation = elevation
	return nil
}

// SetTimeZone loads and sets the IANA time zone.
func (l *Location) SetTimeZone(id string) error {
	tz, err := time.LoadLocation(id)
	if err != nil {
		return fmt.Errorf("%w: time zone %q: %v", ErrInvalidLocation, id, err)
	}
	l.tzID = id
	l.tz = tz
	return nil
}

// standardOffset returns the zone's offset from UTC with daylight saving
// removed for the year containing at. If the zone never leaves DST (or never
// enters it) the smaller of the January and July offsets is used.
func (l *Location) standardOffset(at time.Time) time.Duration {
	year := at.In(l.tz).Year()
	_, jan := time.Date(year, time.January, 1, 12, 0, 0, 0, l.tz).Zone()
	_, jul := time.Date(year, time.July, 1, 12, 0, 0, 0, l.tz).Zone()
	off := jan
	if jul < off {
		off = jul
	}
	return time.Duration(off) * time.Second
}

// LocalMeanTimeOffset returns the difference between local mean time at the
// location's longitude and the zone's standard time, for the date at.
// A location east of its zone's meridian has a positive offset.
func (l *Location) LocalMeanTimeOffset(at time.Time) time.Duration {
	lmt := time.Duration(l.longitude * 4 * minuteMillis * float64(time.Millisecond))
	return lmt - l.standardOffset(at)
}

// AntimeridianAdjustment returns the number of days (-1, 0 or +1) the civil
// date must be shifted before a solar calculation. A zone whose clock is 20
// or more hours off local mean time has crossed the antimeridian, as Samoa
// did in 2011.
func (l *Location) AntimeridianAdjustment(at time.Time) int {
	hours := float64(l.LocalMeanTimeOffset(at)) / float64(time.Hour)
	switch {
	case hours >= 20:
		return 1
	case hours <= -20:
		return -1
	}
	return 0
}

// String implements fmt.Stringer.
func (l *Location) String() string {
	return fmt.Sprintf("%s (%.6f, %.6f, %.1fm, %s)", l.name, l.latitude, l.longitude, l.elevation, l.tzID)
}
