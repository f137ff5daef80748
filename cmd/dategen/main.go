// Command dategen prints the structure of one or more Jewish years: Rosh
// Hashana, length, kviah, and the first day and molad of every month.
//
// Usage:
//
//	go run ./cmd/dategen -year 5785 -count 2
//
// Without -year the current Jewish year is used.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/zapponejosh/zmanim-api/internal/calendar"
)

func main() {
	year := flag.Int("year", 0, "Jewish year (default: the current year)")
	count := flag.Int("count", 1, "Number of consecutive years to print")
	flag.Parse()

	if err := run(os.Stdout, clockwork.NewRealClock(), *year, *count); err != nil {
		fmt.Fprintln(os.Stderr, "dategen:", err)
		os.Exit(1)
	}
}

func run(out io.Writer, clock clockwork.Clock, year, count int) error {
	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}
	if year == 0 {
		today, err := calendar.FromTime(clock.Now())
		if err != nil {
			return err
		}
		year = today.JewishYear()
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for y := year; y < year+count; y++ {
		if err := printYear(w, y); err != nil {
			return err
		}
	}
	return w.Flush()
}

func printYear(w *tabwriter.Writer, year int) error {
	rh, err := calendar.NewJewishDate(year, calendar.Tishrei, 1)
	if err != nil {
		return err
	}

	leap := "common"
	months := 12
	if rh.IsJewishLeapYear() {
		leap = "leap"
		months = 13
	}

	fmt.Fprintf(w, "=== %d ===\n", year)
	fmt.Fprintf(w, "Rosh Hashana:\t%s (%s)\n", calendar.FormatDate(rh.Time()), rh.DayOfWeek())
	fmt.Fprintf(w, "Length:\t%d days, %s, %s\n", rh.DaysInJewishYear(), leap, rh.Kviah())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Month\tDays\tFirst day\tMolad (Jerusalem mean time)\tMolad (UTC)")

	month := rh.Clone()
	for i := 0; i < months; i++ {
		if i > 0 {
			if err := month.Forward(calendar.Month, 1); err != nil {
				return err
			}
		}
		molad, err := month.Molad()
		if err != nil {
			return err
		}
		instant, err := month.MoladTime()
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s\t%d\t%s %s\t%s %02d:%02d and %d chalakim\t%s\n",
			calendar.MonthName(year, month.JewishMonth()),
			month.DaysInJewishMonth(),
			month.DayOfWeek().String()[:3],
			calendar.FormatDate(month.Time()),
			molad.DayOfWeek().String()[:3],
			molad.MoladHours(),
			molad.MoladMinutes(),
			molad.MoladChalakim(),
			instant.Format(time.RFC3339),
		)
	}
	fmt.Fprintln(w)
	return nil
}
