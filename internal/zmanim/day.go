package zmanim

import (
	"time"
)

// Day is a read-only snapshot of one Calendar's events, shaped for JSON. A
// nil field is an event that does not happen on this date.
type Day struct {
	Date       string  `json:"date"`
	Location   string  `json:"location"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Elevation  float64 `json:"elevation"`
	TimeZone   string  `json:"timezone"`
	Calculator string  `json:"calculator"`

	BeginAstronomicalTwilight *time.Time `json:"begin_astronomical_twilight"`
	BeginNauticalTwilight     *time.Time `json:"begin_nautical_twilight"`
	BeginCivilTwilight        *time.Time `json:"begin_civil_twilight"`
	SeaLevelSunrise           *time.Time `json:"sea_level_sunrise"`
	Sunrise                   *time.Time `json:"sunrise"`
	SunTransit                *time.Time `json:"sun_transit"`
	Sunset                    *time.Time `json:"sunset"`
	SeaLevelSunset            *time.Time `json:"sea_level_sunset"`
	EndCivilTwilight          *time.Time `json:"end_civil_twilight"`
	EndNauticalTwilight       *time.Time `json:"end_nautical_twilight"`
	EndAstronomicalTwilight   *time.Time `json:"end_astronomical_twilight"`

	TemporalHour *Span `json:"temporal_hour"`
}

// Summarize evaluates every event of c.
func Summarize(c *Calendar) *Day {
	d := &Day{
		Date:       c.Date.Format("2006-01-02"),
		Location:   c.Location.Name(),
		Latitude:   c.Location.Latitude(),
		Longitude:  c.Location.Longitude(),
		Elevation:  c.Location.Elevation(),
		TimeZone:   c.Location.TimeZoneID(),
		Calculator: c.Calculator.Name(),

		BeginAstronomicalTwilight: c.BeginAstronomicalTwilight(),
		BeginNauticalTwilight:     c.BeginNauticalTwilight(),
		BeginCivilTwilight:        c.BeginCivilTwilight(),
		SeaLevelSunrise:           c.SeaLevelSunrise(),
		Sunrise:                   c.Sunrise(),
		SunTransit:                c.SunTransit(),
		Sunset:                    c.Sunset(),
		SeaLevelSunset:            c.SeaLevelSunset(),
		EndCivilTwilight:          c.EndCivilTwilight(),
		EndNauticalTwilight:       c.EndNauticalTwilight(),
		EndAstronomicalTwilight:   c.EndAstronomicalTwilight(),
	}
	if hour, ok := c.TemporalHour(); ok {
		span := SpanFromDuration(hour)
		d.TemporalHour = &span
	}
	return d
}

// Missing lists the JSON names of events with no value, in day order.
func (d *Day) Missing() []string {
	events := []struct {
		name string
		t    *time.Time
	}{
		{"begin_astronomical_twilight", d.BeginAstronomicalTwilight},
		{"begin_nautical_twilight", d.BeginNauticalTwilight},
		{"begin_civil_twilight", d.BeginCivilTwilight},
		{"sea_level_sunrise", d.SeaLevelSunrise},
		{"sunrise", d.Sunrise},
		{"sun_transit", d.SunTransit},
		{"sunset", d.Sunset},
		{"sea_level_sunset", d.SeaLevelSunset},
		{"end_civil_twilight", d.EndCivilTwilight},
		{"end_nautical_twilight", d.EndNauticalTwilight},
		{"end_astronomical_twilight", d.EndAstronomicalTwilight},
	}

	var missing []string
	for _, e := range events {
		if e.t == nil {
			missing = append(missing, e.name)
		}
	}
	return missing
}
