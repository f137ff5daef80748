package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zapponejosh/zmanim-api/internal/geo"
)

// querier is satisfied by both *DB and *Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	t, err := time.Parse(time.RFC3339, ns.String)
	if err == nil {
		return &t
	}

	// SQLite datetime('now') has no zone and is always UTC
	t, err = time.ParseInLocation("2006-01-02 15:04:05", ns.String, time.UTC)
	if err == nil {
		return &t
	}

	return nil
}

const locationColumns = `id, name, latitude, longitude, elevation, timezone, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (*Location, error) {
	var (
		loc                  Location
		createdAt, updatedAt sql.NullString
	)
	err := row.Scan(
		&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude,
		&loc.Elevation, &loc.TimeZone, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	loc.CreatedAt = parseTimestamp(createdAt)
	loc.UpdatedAt = parseTimestamp(updatedAt)
	return &loc, nil
}

// =============================================================================
// Location Queries
// =============================================================================

// CreateLocation validates and inserts loc, filling in its ID.
// Returns ErrDuplicate if the name is taken (names compare case-insensitively).
func (db *DB) CreateLocation(ctx context.Context, loc *Location) error {
	return createLocation(ctx, db, loc)
}

// CreateLocation inserts loc inside the transaction.
func (tx *Tx) CreateLocation(ctx context.Context, loc *Location) error {
	return createLocation(ctx, tx, loc)
}

func createLocation(ctx context.Context, q querier, loc *Location) error {
	loc.Name = strings.TrimSpace(loc.Name)
	if loc.Name == "" {
		return fmt.Errorf("%w: location name is required", geo.ErrInvalidLocation)
	}
	g, err := loc.GeoLocation()
	if err != nil {
		return err
	}
	loc.TimeZone = g.TimeZoneID()

	result, err := q.ExecContext(ctx, `
		INSERT INTO locations (name, latitude, longitude, elevation, timezone)
		VALUES (?, ?, ?, ?, ?)
	`, loc.Name, loc.Latitude, loc.Longitude, loc.Elevation, loc.TimeZone)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("location %q: %w", loc.Name, ErrDuplicate)
		}
		return fmt.Errorf("insert location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get location id: %w", err)
	}
	loc.ID = id
	return nil
}

// GetLocationByName retrieves a saved location by name, ignoring case.
// Returns ErrNotFound if no location has that name.
func (db *DB) GetLocationByName(ctx context.Context, name string) (*Location, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE name = ?`,
		strings.TrimSpace(name))

	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("location %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("query location: %w", err)
	}
	return loc, nil
}

// ListLocations returns every saved location ordered by name.
// Returns an empty slice, not nil, when there are none.
func (db *DB) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	locations := []Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, *loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return locations, nil
}

// DeleteLocation removes a location by name.
// Returns ErrNotFound if nothing was deleted.
func (db *DB) DeleteLocation(ctx context.Context, name string) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM locations WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("location %q: %w", name, ErrNotFound)
	}
	return nil
}

// CountLocations returns the number of saved locations.
func (db *DB) CountLocations(ctx context.Context) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return count, nil
}

// LookupLocation resolves a saved location for calculation.
func (db *DB) LookupLocation(ctx context.Context, name string) (*geo.Location, error) {
	loc, err := db.GetLocationByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return loc.GeoLocation()
}
