// Package calendar provides Jewish and Gregorian calendar arithmetic.
//
// Both calendars are reached through an absolute day number: day 1 is
// January 1 of year 1 in the proleptic Gregorian calendar. Jewish months
// are numbered from Nisan, as in the Torah, even though the year begins
// with Tishrei.
package calendar

// Jewish months.
const (
	Nisan    = 1
	Iyar     = 2
	Sivan    = 3
	Tammuz   = 4
	Av       = 5
	Elul     = 6
	Tishrei  = 7
	Cheshvan = 8
	Kislev   = 9
	Teves    = 10
	Shevat   = 11
	Adar     = 12 // Adar I in a leap year
	AdarII   = 13
)

// Molad arithmetic. A chelek is 1/1080 of an hour.
const (
	ChalakimPerMinute = 18
	ChalakimPerHour   = 1080
	ChalakimPerDay    = 25920
	ChalakimPerMonth  = 765433 // 29d 12h 793p

	// ChalakimMoladTohu is the molad of Tishrei of year 1, counted from the
	// start of the Jewish epoch: 5 hours 204 chalakim into day 2 (BeHaRaD).
	ChalakimMoladTohu = 31524

	// JewishEpoch is the absolute day of the day before Tishrei 1 of year 1.
	JewishEpoch = -1373429
)

// Kviah is the combined length of Cheshvan and Kislev.
type Kviah int

const (
	// Chaserim: both 29 days.
	Chaserim Kviah = iota
	// Kesidran: Cheshvan 29, Kislev 30.
	Kesidran
	// Shelaimim: both 30 days.
	Shelaimim
)

func (k Kviah) String() string {
	switch k {
	case Chaserim:
		return "chaserim"
	case Kesidran:
		return "kesidran"
	case Shelaimim:
		return "shelaimim"
	default:
		return "unknown"
	}
}

// ============================================================================
// Jewish calendar
// ============================================================================

// IsJewishLeapYear reports whether year has 13 months. Years 3, 6, 8, 11,
// 14, 17 and 19 of each 19 year cycle are leap years.
func IsJewishLeapYear(year int) bool {
	return (7*year+1)%19 < 7
}

// LastMonthOfJewishYear returns AdarII in a leap year and Adar otherwise.
func LastMonthOfJewishYear(year int) int {
	if IsJewishLeapYear(year) {
		return AdarII
	}
	return Adar
}

// jewishMonthOfYear converts a Nisan-based month number into its position
// counted from Tishrei.
func jewishMonthOfYear(year, month int) int {
	if IsJewishLeapYear(year) {
		return (month+6)%13 + 1
	}
	return (month+5)%12 + 1
}

// ChalakimSinceMoladTohu returns the chalakim from the epoch to the molad of
// month in year.
func ChalakimSinceMoladTohu(year, month int) int64 {
	y := year - 1
	monthsElapsed := 235*(y/19) + // complete cycles
		12*(y%19) + // regular months in this cycle
		(7*(y%19)+1)/19 + // leap months in this cycle
		(jewishMonthOfYear(year, month) - 1)

	return ChalakimMoladTohu + ChalakimPerMonth*int64(monthsElapsed)
}

// ElapsedDays returns the days from the epoch to the day before Rosh
// Hashana of year.
func ElapsedDays(year int) int {
	chalakim := ChalakimSinceMoladTohu(year, Tishrei)
	moladDay := int(chalakim / ChalakimPerDay)
	moladParts := int(chalakim - int64(moladDay)*ChalakimPerDay)
	return addDechiyos(year, moladDay, moladParts)
}

// addDechiyos applies the postponements of Rosh Hashana to the molad day.
func addDechiyos(year, moladDay, moladParts int) int {
	roshHashana := moladDay

	// Molad Zaken (noon or later), GaTRaD and BeTuTaKFoT
	if moladParts >= 19440 ||
		(moladDay%7 == 2 && moladParts >= 9924 && !IsJewishLeapYear(year)) ||
		(moladDay%7 == 1 && moladParts >= 16789 && IsJewishLeapYear(year-1)) {
		roshHashana++
	}

	// Lo ADU Rosh: never Sunday, Wednesday or Friday
	switch roshHashana % 7 {
	case 0, 3, 5:
		roshHashana++
	}
	return roshHashana
}

// DaysInJewishYear returns 353, 354, 355, 383, 384 or 385.
func DaysInJewishYear(year int) int {
	return ElapsedDays(year+1) - ElapsedDays(year)
}

// IsCheshvanLong reports whether Cheshvan has 30 days in year.
func IsCheshvanLong(year int) bool {
	return DaysInJewishYear(year)%10 == 5
}

// IsKislevShort reports whether Kislev has 29 days in year.
func IsKislevShort(year int) bool {
	return DaysInJewishYear(year)%10 == 3
}

// CheshvanKislevKviah classifies year by the lengths of Cheshvan and Kislev.
func CheshvanKislevKviah(year int) Kviah {
	switch {
	case IsCheshvanLong(year) && !IsKislevShort(year):
		return Shelaimim
	case !IsCheshvanLong(year) && IsKislevShort(year):
		return Chaserim
	default:
		return Kesidran
	}
}

// DaysInJewishMonth returns 29 or 30.
func DaysInJewishMonth(month, year int) int {
	switch {
	case month == Iyar, month == Tammuz, month == Elul, month == Teves, month == AdarII:
		return 29
	case month == Cheshvan && !IsCheshvanLong(year):
		return 29
	case month == Kislev && IsKislevShort(year):
		return 29
	case month == Adar && !IsJewishLeapYear(year):
		return 29
	default:
		return 30
	}
}

// DaysSinceStartOfJewishYear returns the day of the year, Tishrei 1 being 1.
func DaysSinceStartOfJewishYear(year, month, day int) int {
	elapsed := day
	if month < Tishrei {
		for m := Tishrei; m <= LastMonthOfJewishYear(year); m++ {
			elapsed += DaysInJewishMonth(m, year)
		}
		for m := Nisan; m < month; m++ {
			elapsed += DaysInJewishMonth(m, year)
		}
	} else {
		for m := Tishrei; m < month; m++ {
			elapsed += DaysInJewishMonth(m, year)
		}
	}
	return elapsed
}

// JewishToAbs returns the absolute day of a Jewish date. The date is not
// validated.
func JewishToAbs(year, month, day int) int {
	return DaysSinceStartOfJewishYear(year, month, day) + ElapsedDays(year) + JewishEpoch
}

// AbsToJewish converts an absolute day to a Jewish date.
func AbsToJewish(abs int) (year, month, day int) {
	// Estimate from the mean year of 235 months per 19 years, then correct.
	year = (abs-JewishEpoch)*98496/35975351 + 1
	if year < 1 {
		year = 1
	}
	for year > 1 && abs < JewishToAbs(year, Tishrei, 1) {
		year--
	}
	for abs >= JewishToAbs(year+1, Tishrei, 1) {
		year++
	}

	month = Nisan
	if abs < JewishToAbs(year, Nisan, 1) {
		month = Tishrei
	}
	for abs > JewishToAbs(year, month, DaysInJewishMonth(month, year)) {
		month++
	}

	day = abs - JewishToAbs(year, month, 1) + 1
	return year, month, day
}

// ============================================================================
// Gregorian calendar
// ============================================================================

// IsGregorianLeapYear reports whether February has 29 days in year.
func IsGregorianLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInGregorianMonth returns the length of month (1-12) in year.
func DaysInGregorianMonth(month, year int) int {
	switch month {
	case 2:
		if IsGregorianLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// GregorianToAbs returns the absolute day of a Gregorian date. The date is
// not validated.
func GregorianToAbs(year, month, day int) int {
	abs := day
	for m := 1; m < month; m++ {
		abs += DaysInGregorianMonth(m, year)
	}
	y := year - 1
	return abs + 365*y + y/4 - y/100 + y/400
}

// AbsToGregorian converts an absolute day (≥ 1) to a Gregorian date.
func AbsToGregorian(abs int) (year, month, day int) {
	year = abs / 366
	for abs >= GregorianToAbs(year+1, 1, 1) {
		year++
	}

	month = 1
	for abs > GregorianToAbs(year, month, DaysInGregorianMonth(month, year)) {
		month++
	}

	day = abs - GregorianToAbs(year, month, 1) + 1
	return year, month, day
}
