package geo

import (
	"errors"
	"math"
	"testing"
	"time"
	_ "time/tzdata"
)

func TestNew_Valid(t *testing.T) {
	l, err := New(Options{
		Name:      "Lakewood, NJ",
		Latitude:  40.0828,
		Longitude: -74.2094,
		Elevation: 20,
		TimeZone:  "America/New_York",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.Latitude() != 40.0828 || l.Longitude() != -74.2094 || l.Elevation() != 20 {
		t.Errorf("New() = %v, fields not preserved", l)
	}
	if l.TimeZoneID() != "America/New_York" {
		t.Errorf("TimeZoneID() = %q", l.TimeZoneID())
	}
}

func TestNew_DefaultsToUTC(t *testing.T) {
	l, err := New(Options{Latitude: 0, Longitude: 0})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.TimeZone() != time.UTC && l.TimeZone().String() != "UTC" {
		t.Errorf("TimeZone() = %v, want UTC", l.TimeZone())
	}
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"latitude above 90", Options{Latitude: 90.0001}},
		{"latitude below -90", Options{Latitude: -91}},
		{"longitude above 180", Options{Longitude: 180.5}},
		{"longitude below -180", Options{Longitude: -200}},
		{"negative elevation", Options{Elevation: -1}},
		{"NaN latitude", Options{Latitude: math.NaN()}},
		{"unknown zone", Options{TimeZone: "Mars/Olympus_Mons"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			if !errors.Is(err, ErrInvalidLocation) {
				t.Errorf("New() error = %v, want ErrInvalidLocation", err)
			}
		})
	}
}

func TestSetDMS(t *testing.T) {
	l := MustNew(Options{})

	if err := l.SetLatitudeDMS(37, 57, 3.7203, "S"); err != nil {
		t.Fatalf("SetLatitudeDMS() error = %v", err)
	}
	if want := -(37 + 57.0/60 + 3.7203/3600); math.Abs(l.Latitude()-want) > 1e-12 {
		t.Errorf("Latitude() = %v, want %v", l.Latitude(), want)
	}

	if err := l.SetLongitudeDMS(144, 25, 29.5244, "e"); err != nil {
		t.Fatalf("SetLongitudeDMS() error = %v", err)
	}
	if want := 144 + 25.0/60 + 29.5244/3600; math.Abs(l.Longitude()-want) > 1e-12 {
		t.Errorf("Longitude() = %v, want %v", l.Longitude(), want)
	}

	if err := l.SetLatitudeDMS(10, 0, 0, "E"); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("SetLatitudeDMS(E) error = %v, want ErrInvalidLocation", err)
	}
	if err := l.SetLongitudeDMS(181, 0, 0, "W"); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("SetLongitudeDMS(181) error = %v, want ErrInvalidLocation", err)
	}
	if err := l.SetLatitudeDMS(-5, 0, 0, "N"); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("SetLatitudeDMS(-5) error = %v, want ErrInvalidLocation", err)
	}
}

func TestLocalMeanTimeOffset(t *testing.T) {
	jerusalem := MustNew(Options{Latitude: 31.778, Longitude: 35.2354, TimeZone: "Asia/Jerusalem"})
	at := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	got := jerusalem.LocalMeanTimeOffset(at)
	want := time.Duration(20.9416 * float64(time.Minute))
	if diff := got - want; diff > time.Second || diff < -time.Second {
		t.Errorf("LocalMeanTimeOffset() = %v, want about %v", got, want)
	}
}

func TestAntimeridianAdjustment(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"Apia uses the prior date", Options{Latitude: -13.8333, Longitude: -171.75, TimeZone: "Pacific/Apia"}, -1},
		{"Lakewood needs nothing", Options{Latitude: 40.0828, Longitude: -74.2094, TimeZone: "America/New_York"}, 0},
		{"Kiritimati uses the prior date", Options{Latitude: 1.87, Longitude: -157.4, TimeZone: "Pacific/Kiritimati"}, -1},
		{"date line west in eastern zone", Options{Latitude: 0, Longitude: 175, TimeZone: "Etc/GMT+12"}, 1},
	}

	at := time.Date(2018, time.February, 3, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := MustNew(tt.opts)
			if got := l.AntimeridianAdjustment(at); got != tt.want {
				t.Errorf("AntimeridianAdjustment() = %d, want %d (LMT offset %v)", got, tt.want, l.LocalMeanTimeOffset(at))
			}
		})
	}
}
