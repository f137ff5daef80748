// Command coverage reports, for one location and Gregorian year, how many
// days each solar event has no value. Near the poles sunrise, sunset and the
// twilights disappear for weeks at a time; elsewhere every count should be
// zero.
//
// Usage:
//
//	go run ./cmd/coverage -lat 78.2232 -lon 15.6267 -tz Arctic/Longyearbyen -year 2024
//	go run ./cmd/coverage -lat 69.6492 -lon 18.9553 -tz Europe/Oslo -calculator usno -o tromso.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/zapponejosh/zmanim-api/internal/astro"
	"github.com/zapponejosh/zmanim-api/internal/geo"
	"github.com/zapponejosh/zmanim-api/internal/zmanim"
)

// EventStats tracks the days one event had no value.
type EventStats struct {
	Event        string   `json:"event"`
	MissingDays  int      `json:"missing_days"`
	FirstMissing string   `json:"first_missing,omitempty"`
	LastMissing  string   `json:"last_missing,omitempty"`
	Dates        []string `json:"dates,omitempty"`
}

// Report is the coverage of one location over one year.
type Report struct {
	Location   string        `json:"location"`
	Latitude   float64       `json:"latitude"`
	Longitude  float64       `json:"longitude"`
	TimeZone   string        `json:"timezone"`
	Calculator string        `json:"calculator"`
	Year       int           `json:"year"`
	Days       int           `json:"days"`
	FullDays   int           `json:"full_days"`
	Events     []*EventStats `json:"events"`
}

// options are the command-line flags.
type options struct {
	lat, lon, elevation float64
	tz                  string
	year                int
	calculator          string
	verbose             bool
	outputFile          string
}

func main() {
	var opts options
	flag.Float64Var(&opts.lat, "lat", 78.2232, "Latitude in degrees, north positive")
	flag.Float64Var(&opts.lon, "lon", 15.6267, "Longitude in degrees, east positive")
	flag.Float64Var(&opts.elevation, "elevation", 0, "Elevation in meters")
	flag.StringVar(&opts.tz, "tz", "Arctic/Longyearbyen", "IANA time zone")
	flag.IntVar(&opts.year, "year", 0, "Gregorian year (default: the current year at the location)")
	flag.StringVar(&opts.calculator, "calculator", "noaa", "Calculator: noaa or usno")
	flag.BoolVar(&opts.verbose, "v", false, "List every missing date")
	flag.StringVar(&opts.outputFile, "o", "", "Output report to JSON file")
	flag.Parse()

	if err := run(os.Stdout, clockwork.NewRealClock(), opts); err != nil {
		fmt.Fprintln(os.Stderr, "coverage:", err)
		os.Exit(1)
	}
}

func run(out io.Writer, clock clockwork.Clock, opts options) error {
	loc, err := geo.New(geo.Options{
		Name:      fmt.Sprintf("%.4f,%.4f", opts.lat, opts.lon),
		Latitude:  opts.lat,
		Longitude: opts.lon,
		Elevation: opts.elevation,
		TimeZone:  opts.tz,
	})
	if err != nil {
		return err
	}
	calc, err := astro.ByName(opts.calculator)
	if err != nil {
		return err
	}

	year := opts.year
	if year == 0 {
		year = clock.Now().In(loc.TimeZone()).Year()
	}

	report := buildReport(loc, calc, year)
	printReport(out, report, opts.verbose)

	if opts.outputFile != "" {
		if err := saveReport(opts.outputFile, report); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nReport written to %s\n", opts.outputFile)
	}
	return nil
}

// buildReport evaluates every day of year at loc.
func buildReport(loc *geo.Location, calc astro.Calculator, year int) *Report {
	report := &Report{
		Location:   loc.Name(),
		Latitude:   loc.Latitude(),
		Longitude:  loc.Longitude(),
		TimeZone:   loc.TimeZoneID(),
		Calculator: calc.Name(),
		Year:       year,
	}

	stats := make(map[string]*EventStats)
	current := time.Date(year, time.January, 1, 0, 0, 0, 0, loc.TimeZone())
	for current.Year() == year {
		day := zmanim.Summarize(zmanim.New(current, loc, calc))
		report.Days++

		missing := day.Missing()
		if len(missing) == 0 {
			report.FullDays++
		}
		for _, event := range missing {
			s, ok := stats[event]
			if !ok {
				s = &EventStats{Event: event, FirstMissing: day.Date}
				stats[event] = s
			}
			s.MissingDays++
			s.LastMissing = day.Date
			s.Dates = append(s.Dates, day.Date)
		}
		current = current.AddDate(0, 0, 1)
	}

	for _, s := range stats {
		report.Events = append(report.Events, s)
	}
	sort.Slice(report.Events, func(i, j int) bool {
		if report.Events[i].MissingDays != report.Events[j].MissingDays {
			return report.Events[i].MissingDays > report.Events[j].MissingDays
		}
		return report.Events[i].Event < report.Events[j].Event
	})
	return report
}

func printReport(out io.Writer, r *Report, verbose bool) {
	fmt.Fprintln(out, "================================================================")
	fmt.Fprintln(out, "Solar Event Coverage")
	fmt.Fprintln(out, "================================================================")
	fmt.Fprintf(out, "Location:    %s (%s)\n", r.Location, r.TimeZone)
	fmt.Fprintf(out, "Calculator:  %s\n", r.Calculator)
	fmt.Fprintf(out, "Year:        %d\n", r.Year)
	fmt.Fprintf(out, "Full days:   %d/%d\n", r.FullDays, r.Days)
	fmt.Fprintln(out)

	if len(r.Events) == 0 {
		fmt.Fprintln(out, "Every event has a value on every day.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Event\tMissing days\tFirst\tLast")
	for _, s := range r.Events {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", s.Event, s.MissingDays, s.FirstMissing, s.LastMissing)
	}
	w.Flush()

	if verbose {
		for _, s := range r.Events {
			fmt.Fprintf(out, "\n%s:\n", s.Event)
			for _, d := range s.Dates {
				fmt.Fprintf(out, "  %s\n", d)
			}
		}
	}
}

func saveReport(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
