package geo

import (
	"math"
	"testing"
)

func normalize360(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Flinders Peak to Buninyong is the worked example in Vincenty (1975).
func TestGeodesic_FlindersPeakToBuninyong(t *testing.T) {
	flinders := MustNew(Options{Name: "Flinders Peak"})
	if err := flinders.SetLatitudeDMS(37, 57, 3.72030, "S"); err != nil {
		t.Fatal(err)
	}
	if err := flinders.SetLongitudeDMS(144, 25, 29.52440, "E"); err != nil {
		t.Fatal(err)
	}

	buninyong := MustNew(Options{Name: "Buninyong"})
	if err := buninyong.SetLatitudeDMS(37, 39, 10.15610, "S"); err != nil {
		t.Fatal(err)
	}
	if err := buninyong.SetLongitudeDMS(143, 55, 35.38390, "E"); err != nil {
		t.Fatal(err)
	}

	g, ok := flinders.GeodesicTo(buninyong)
	if !ok {
		t.Fatal("GeodesicTo() did not converge")
	}

	if math.Abs(g.Distance-54972.271) > 0.05 {
		t.Errorf("Distance = %.4f m, want 54972.271", g.Distance)
	}

	wantInitial := 306 + 52.0/60 + 5.37/3600
	if got := normalize360(g.InitialBearing); math.Abs(got-wantInitial) > 1e-4 {
		t.Errorf("InitialBearing = %.6f°, want %.6f°", got, wantInitial)
	}

	// reverse azimuth 127°10'25.07" is the bearing back toward Flinders Peak
	wantFinal := 127 + 10.0/60 + 25.07/3600 - 180
	if got := normalize360(g.FinalBearing); math.Abs(got-normalize360(wantFinal)) > 1e-4 {
		t.Errorf("FinalBearing = %.6f°, want %.6f°", got, normalize360(wantFinal))
	}
}

func TestGeodesic_CoincidentPoints(t *testing.T) {
	a := MustNew(Options{Latitude: 31.778, Longitude: 35.2354})
	b := MustNew(Options{Latitude: 31.778, Longitude: 35.2354})

	d, ok := a.GeodesicDistance(b)
	if !ok || d != 0 {
		t.Errorf("GeodesicDistance() = %v, %v; want 0, true", d, ok)
	}
}

func TestGeodesic_EquatorialLine(t *testing.T) {
	a := MustNew(Options{Latitude: 0, Longitude: 0})
	b := MustNew(Options{Latitude: 0, Longitude: 1})

	d, ok := a.GeodesicDistance(b)
	if !ok {
		t.Fatal("GeodesicDistance() did not converge")
	}
	// one degree of the WGS-84 equator
	if math.Abs(d-111319.491) > 0.01 {
		t.Errorf("GeodesicDistance() = %.4f, want 111319.491", d)
	}

	bearing, _ := a.GeodesicInitialBearing(b)
	if math.Abs(bearing-90) > 1e-9 {
		t.Errorf("GeodesicInitialBearing() = %v, want 90", bearing)
	}
}

func TestRhumbLine(t *testing.T) {
	tests := []struct {
		name        string
		from, to    Options
		wantBearing float64
		wantDist    float64
		tolerance   float64
	}{
		{
			name:        "due east along the equator",
			from:        Options{Latitude: 0, Longitude: 0},
			to:          Options{Latitude: 0, Longitude: 1},
			wantBearing: 90,
			wantDist:    111319.49,
			tolerance:   0.01,
		},
		{
			name:        "due north along a meridian",
			from:        Options{Latitude: 10, Longitude: 20},
			to:          Options{Latitude: 11, Longitude: 20},
			wantBearing: 0,
			wantDist:    111319.49,
			tolerance:   0.01,
		},
		{
			name:        "shorter way across the antimeridian",
			from:        Options{Latitude: 0, Longitude: 179.5},
			to:          Options{Latitude: 0, Longitude: -179.5},
			wantBearing: 90,
			wantDist:    111319.49,
			tolerance:   0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := MustNew(tt.from), MustNew(tt.to)

			if got := from.RhumbLineBearing(to); math.Abs(got-tt.wantBearing) > 1e-6 {
				t.Errorf("RhumbLineBearing() = %v, want %v", got, tt.wantBearing)
			}
			if got := from.RhumbLineDistance(to); math.Abs(got-tt.wantDist) > tt.tolerance {
				t.Errorf("RhumbLineDistance() = %.4f, want %.4f", got, tt.wantDist)
			}
		})
	}
}
