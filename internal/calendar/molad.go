package calendar

import (
	"time"
)

// Jerusalem, where the molad is reckoned in local mean time.
const (
	jerusalemLongitude = 35.2354
	jerusalemStdOffset = 2 * time.Hour
)

// Molad returns the molad of d's month. The returned date's Gregorian fields
// are the civil day of the molad and MoladHours is a civil hour (0-23).
//
// The molad is counted from 18:00 on the evening before its Jewish day, so
// a molad 6 or more hours in falls after civil midnight of the next day.
func (d *JewishDate) Molad() (*JewishDate, error) {
	molad, err := FromMolad(d.ChalakimSinceMoladTohu())
	if err != nil {
		return nil, err
	}

	hours, minutes, chalakim := molad.moladHours, molad.moladMinutes, molad.moladChalakim
	if hours >= 6 {
		if err := molad.Forward(Day, 1); err != nil {
			return nil, err
		}
	}
	molad.moladHours = (hours + 18) % 24
	molad.moladMinutes = minutes
	molad.moladChalakim = chalakim
	return molad, nil
}

// MoladTime returns the molad of d's month as an instant. The molad is
// Jerusalem local mean time, which runs about 20m56s ahead of the +02:00
// standard time.
func (d *JewishDate) MoladTime() (time.Time, error) {
	molad, err := d.Molad()
	if err != nil {
		return time.Time{}, err
	}

	// a chelek is 10/3 seconds
	seconds := float64(molad.moladChalakim) * 10 / 3
	whole := int(seconds)
	nanos := int((seconds-float64(whole))*1000) * int(time.Millisecond)

	zone := time.FixedZone("GMT+2", int(jerusalemStdOffset.Seconds()))
	local := time.Date(molad.gregorianYear, time.Month(molad.gregorianMonth), molad.gregorianDay,
		molad.moladHours, molad.moladMinutes, whole, nanos, zone)

	lmtOffset := time.Duration(jerusalemLongitude*4*float64(time.Minute)) - jerusalemStdOffset
	return local.Add(-lmtOffset.Truncate(time.Millisecond)).UTC(), nil
}
