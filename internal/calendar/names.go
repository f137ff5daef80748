package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthNames = [...]string{
	Nisan:    "Nissan",
	Iyar:     "Iyar",
	Sivan:    "Sivan",
	Tammuz:   "Tammuz",
	Av:       "Av",
	Elul:     "Elul",
	Tishrei:  "Tishrei",
	Cheshvan: "Cheshvan",
	Kislev:   "Kislev",
	Teves:    "Teves",
	Shevat:   "Shevat",
	Adar:     "Adar",
	AdarII:   "Adar II",
}

// MonthName returns the transliterated name of month. In a leap year Adar
// is "Adar I".
func MonthName(year, month int) string {
	if month < Nisan || month > AdarII {
		return fmt.Sprintf("month %d", month)
	}
	if month == Adar && IsJewishLeapYear(year) {
		return "Adar I"
	}
	return monthNames[month]
}

// ParseMonth accepts a month number or a name as returned by MonthName,
// case-insensitively. "Adar I" is Adar.
func ParseMonth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < Nisan || n > AdarII {
			return 0, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, n)
		}
		return n, nil
	}

	switch norm := strings.ToLower(strings.Join(strings.Fields(s), " ")); norm {
	case "adar i", "adar 1":
		return Adar, nil
	case "adar 2":
		return AdarII, nil
	case "nisan":
		return Nisan, nil
	default:
		for m := Nisan; m <= AdarII; m++ {
			if strings.ToLower(monthNames[m]) == norm {
				return m, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unknown month %q", ErrInvalidDate, s)
}

// ParseDateString parses a date string in YYYY-MM-DD format
func ParseDateString(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, dateStr)
	}
	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format("2006-01-02")
}
