package zmanim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/zapponejosh/zmanim-api/internal/astro"
	"github.com/zapponejosh/zmanim-api/internal/geo"
)

// ErrNoLocation is returned when a request names neither a stored location
// nor coordinates.
var ErrNoLocation = errors.New("no location given")

// LocationStore looks up saved locations by name.
// *database.DB satisfies it.
type LocationStore interface {
	LookupLocation(ctx context.Context, name string) (*geo.Location, error)
}

// Request describes one calendar to build. Exactly one of LocationName and
// Coordinates is normally set; LocationName wins if both are.
type Request struct {
	LocationName string
	Coordinates  *geo.Options
	Date         time.Time // zero means today in the location's zone
	Calculator   string    // empty selects the resolver's default
}

// Resolver turns requests into Calendars.
type Resolver struct {
	store        LocationStore
	calculator   string
	useElevation bool
	clock        clockwork.Clock
}

// NewResolver creates a resolver. store may be nil when only coordinate
// requests are expected.
func NewResolver(store LocationStore, defaultCalculator string, useElevation bool) *Resolver {
	return &Resolver{
		store:        store,
		calculator:   defaultCalculator,
		useElevation: useElevation,
		clock:        clockwork.NewRealClock(),
	}
}

// WithClock replaces the clock used for requests without a date.
func (r *Resolver) WithClock(clock clockwork.Clock) *Resolver {
	r.clock = clock
	return r
}

// Resolve validates req and returns a fresh Calendar for it. The request
// date's year, month and day are taken as a civil date in the location's
// zone.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Calendar, error) {
	loc, err := r.location(ctx, req)
	if err != nil {
		return nil, err
	}

	name := req.Calculator
	if name == "" {
		name = r.calculator
	}
	calc, err := astro.ByName(name)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date.IsZero() {
		date = r.clock.Now().In(loc.TimeZone())
	}
	y, m, d := date.Date()
	cal := New(time.Date(y, m, d, 0, 0, 0, 0, loc.TimeZone()), loc, calc)
	cal.UseElevation = r.useElevation
	return cal, nil
}

func (r *Resolver) location(ctx context.Context, req Request) (*geo.Location, error) {
	switch {
	case req.LocationName != "":
		if r.store == nil {
			return nil, fmt.Errorf("resolve %q: no location store configured", req.LocationName)
		}
		loc, err := r.store.LookupLocation(ctx, req.LocationName)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", req.LocationName, err)
		}
		return loc, nil

	case req.Coordinates != nil:
		return geo.New(*req.Coordinates)

	default:
		return nil, ErrNoLocation
	}
}
