package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned for dates outside the supported range or with
// out of range fields.
var ErrInvalidDate = errors.New("invalid date")

// Field selects the unit for Forward and Back.
type Field int

const (
	Day Field = iota
	Month
	Year
)

// JewishDate is a day with both its Jewish and Gregorian fields. The
// absolute day is the single source of truth; every mutation recomputes
// the other fields from it.
//
// The earliest supported date is absolute day 1, January 1, 1 (18 Teves
// 3761). A JewishDate is a mutable value and not safe for concurrent use.
type JewishDate struct {
	abs int

	jewishYear  int
	jewishMonth int
	jewishDay   int

	gregorianYear  int
	gregorianMonth int
	gregorianDay   int

	// set only on dates returned by Molad
	moladHours    int
	moladMinutes  int
	moladChalakim int
}

// NewJewishDate returns the Jewish date year/month/day, with month counted
// from Nisan. Day 30 of a 29 day month is moved back to day 29.
func NewJewishDate(year, month, day int) (*JewishDate, error) {
	d := &JewishDate{}
	if err := d.SetJewishDate(year, month, day); err != nil {
		return nil, err
	}
	return d, nil
}

// FromGregorian returns the date for a Gregorian year, month (1-12) and
// day. A day past the end of the month is moved back to the last day.
func FromGregorian(year, month, day int) (*JewishDate, error) {
	d := &JewishDate{}
	if err := d.SetGregorianDate(year, month, day); err != nil {
		return nil, err
	}
	return d, nil
}

// FromTime returns the date for t's civil year, month and day in t's own
// location.
func FromTime(t time.Time) (*JewishDate, error) {
	y, m, d := t.Date()
	return FromGregorian(y, int(m), d)
}

// FromAbsolute returns the date for an absolute day.
func FromAbsolute(abs int) (*JewishDate, error) {
	d := &JewishDate{}
	if err := d.SetAbsDate(abs); err != nil {
		return nil, err
	}
	return d, nil
}

// FromMolad returns the day containing the given molad, with the molad's
// time of day set. The hours are counted from 18:00 of the previous civil
// evening, the start of the Jewish day.
func FromMolad(chalakim int64) (*JewishDate, error) {
	d, err := FromAbsolute(int(chalakim/ChalakimPerDay) + JewishEpoch)
	if err != nil {
		return nil, err
	}
	parts := int(chalakim % ChalakimPerDay)
	d.moladHours = parts / ChalakimPerHour
	parts -= d.moladHours * ChalakimPerHour
	d.moladMinutes = parts / ChalakimPerMinute
	d.moladChalakim = parts - d.moladMinutes*ChalakimPerMinute
	return d, nil
}

// ============================================================================
// Setters
// ============================================================================

// SetJewishDate moves d to the given Jewish date.
func (d *JewishDate) SetJewishDate(year, month, day int) error {
	if year < 1 {
		return fmt.Errorf("%w: Jewish year %d is before year 1", ErrInvalidDate, year)
	}
	if month < Nisan || month > LastMonthOfJewishYear(year) {
		return fmt.Errorf("%w: month %d out of range for year %d", ErrInvalidDate, month, year)
	}
	if day < 1 || day > 30 {
		return fmt.Errorf("%w: day %d out of range", ErrInvalidDate, day)
	}
	if last := DaysInJewishMonth(month, year); day > last {
		day = last
	}

	abs := JewishToAbs(year, month, day)
	if abs < 1 {
		return fmt.Errorf("%w: %d-%d-%d is before 18 Teves 3761", ErrInvalidDate, year, month, day)
	}
	d.setAbs(abs)
	return nil
}

// SetGregorianDate moves d to the given Gregorian date.
func (d *JewishDate) SetGregorianDate(year, month, day int) error {
	if year < 1 {
		return fmt.Errorf("%w: Gregorian year %d is before year 1", ErrInvalidDate, year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDate, month)
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("%w: day %d out of range", ErrInvalidDate, day)
	}
	if last := DaysInGregorianMonth(month, year); day > last {
		day = last
	}
	d.setAbs(GregorianToAbs(year, month, day))
	return nil
}

// SetAbsDate moves d to an absolute day.
func (d *JewishDate) SetAbsDate(abs int) error {
	if abs < 1 {
		return fmt.Errorf("%w: absolute day %d is before January 1, 1", ErrInvalidDate, abs)
	}
	d.setAbs(abs)
	return nil
}

func (d *JewishDate) setAbs(abs int) {
	d.abs = abs
	d.gregorianYear, d.gregorianMonth, d.gregorianDay = AbsToGregorian(abs)
	d.jewishYear, d.jewishMonth, d.jewishDay = AbsToJewish(abs)
	d.moladHours, d.moladMinutes, d.moladChalakim = 0, 0, 0
}

// ============================================================================
// Arithmetic
// ============================================================================

// Forward moves d n days, Jewish months or Jewish years ahead. n must be
// positive. Moving by months or years keeps the day of the month, clamped
// to the target month's length; Adar II becomes Adar in a common year.
func (d *JewishDate) Forward(field Field, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: forward amount %d must be positive", ErrInvalidDate, n)
	}
	return d.move(field, n)
}

// Back is the inverse of Forward.
func (d *JewishDate) Back(field Field, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: back amount %d must be positive", ErrInvalidDate, n)
	}
	return d.move(field, -n)
}

func (d *JewishDate) move(field Field, n int) error {
	switch field {
	case Day:
		return d.SetAbsDate(d.abs + n)

	case Month:
		year, month := d.jewishYear, d.jewishMonth
		for ; n > 0; n-- {
			year, month = nextJewishMonth(year, month)
		}
		for ; n < 0; n++ {
			year, month = prevJewishMonth(year, month)
		}
		return d.SetJewishDate(year, month, d.jewishDay)

	case Year:
		year := d.jewishYear + n
		month := d.jewishMonth
		if month == AdarII && !IsJewishLeapYear(year) {
			month = Adar
		}
		return d.SetJewishDate(year, month, d.jewishDay)

	default:
		return fmt.Errorf("%w: unknown field %d", ErrInvalidDate, field)
	}
}

// nextJewishMonth steps in calendar order: Tishrei … Adar (II), Nisan … Elul.
func nextJewishMonth(year, month int) (int, int) {
	switch {
	case month == Elul:
		return year + 1, Tishrei
	case month == LastMonthOfJewishYear(year):
		return year, Nisan
	default:
		return year, month + 1
	}
}

func prevJewishMonth(year, month int) (int, int) {
	switch month {
	case Tishrei:
		return year - 1, Elul
	case Nisan:
		return year, LastMonthOfJewishYear(year)
	default:
		return year, month - 1
	}
}

// ============================================================================
// Accessors
// ============================================================================

func (d *JewishDate) AbsDate() int        { return d.abs }
func (d *JewishDate) JewishYear() int     { return d.jewishYear }
func (d *JewishDate) JewishMonth() int    { return d.jewishMonth }
func (d *JewishDate) JewishDay() int      { return d.jewishDay }
func (d *JewishDate) GregorianYear() int  { return d.gregorianYear }
func (d *JewishDate) GregorianMonth() int { return d.gregorianMonth }
func (d *JewishDate) GregorianDay() int   { return d.gregorianDay }
func (d *JewishDate) MoladHours() int     { return d.moladHours }
func (d *JewishDate) MoladMinutes() int   { return d.moladMinutes }
func (d *JewishDate) MoladChalakim() int  { return d.moladChalakim }

// DayOfWeek derives the weekday from the absolute day; day 1 was a Monday.
func (d *JewishDate) DayOfWeek() time.Weekday {
	return time.Weekday(d.abs % 7)
}

// Time returns midnight UTC of the Gregorian date.
func (d *JewishDate) Time() time.Time {
	return time.Date(d.gregorianYear, time.Month(d.gregorianMonth), d.gregorianDay, 0, 0, 0, 0, time.UTC)
}

func (d *JewishDate) IsJewishLeapYear() bool { return IsJewishLeapYear(d.jewishYear) }
func (d *JewishDate) DaysInJewishYear() int  { return DaysInJewishYear(d.jewishYear) }
func (d *JewishDate) DaysInJewishMonth() int { return DaysInJewishMonth(d.jewishMonth, d.jewishYear) }
func (d *JewishDate) IsCheshvanLong() bool   { return IsCheshvanLong(d.jewishYear) }
func (d *JewishDate) IsKislevShort() bool    { return IsKislevShort(d.jewishYear) }
func (d *JewishDate) Kviah() Kviah           { return CheshvanKislevKviah(d.jewishYear) }

// DaysSinceStartOfJewishYear returns the day of the year, Tishrei 1 being 1.
func (d *JewishDate) DaysSinceStartOfJewishYear() int {
	return DaysSinceStartOfJewishYear(d.jewishYear, d.jewishMonth, d.jewishDay)
}

// ChalakimSinceMoladTohu returns the chalakim to the molad of d's month.
func (d *JewishDate) ChalakimSinceMoladTohu() int64 {
	return ChalakimSinceMoladTohu(d.jewishYear, d.jewishMonth)
}

// Compare returns -1, 0 or 1 as d is before, equal to or after other.
func (d *JewishDate) Compare(other *JewishDate) int {
	switch {
	case d.abs < other.abs:
		return -1
	case d.abs > other.abs:
		return 1
	default:
		return 0
	}
}

// Clone returns an independent copy.
func (d *JewishDate) Clone() *JewishDate {
	c := *d
	return &c
}

// String formats the Jewish date, e.g. "1 Tishrei 5771".
func (d *JewishDate) String() string {
	return fmt.Sprintf("%d %s %d", d.jewishDay, MonthName(d.jewishYear, d.jewishMonth), d.jewishYear)
}
