package database

import (
	"time"

	"github.com/zapponejosh/zmanim-api/internal/geo"
)

// Location is a saved place that requests can refer to by name.
type Location struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Elevation float64    `json:"elevation"`    // meters
	TimeZone  string     `json:"timezone"`     // IANA id
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// GeoLocation validates l and converts it for calculation.
func (l *Location) GeoLocation() (*geo.Location, error) {
	return geo.New(geo.Options{
		Name:      l.Name,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Elevation: l.Elevation,
		TimeZone:  l.TimeZone,
	})
}
