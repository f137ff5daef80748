// Command import loads saved locations from a JSON file into the SQLite
// database.
//
// Usage:
//
//	go run ./cmd/import -json data/locations.json -db data/zmanim.db
//
// The file is either an array of locations or an object with a "locations"
// array; each entry has name, latitude, longitude, elevation and timezone.
//
// This tool:
// 1. Parses and validates every location before touching the database
// 2. Creates/opens the SQLite database and runs migrations
// 3. Imports all locations in a single transaction
//
// A name that already exists fails the whole import unless -skip-existing
// is given.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zapponejosh/zmanim-api/internal/database"
	"github.com/zapponejosh/zmanim-api/internal/logger"
)

func main() {
	jsonPath := flag.String("json", "data/locations.json", "Path to locations JSON file")
	dbPath := flag.String("db", "data/zmanim.db", "Path to SQLite database")
	skipExisting := flag.Bool("skip-existing", false, "Skip locations whose name is already saved")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.New(os.Stdout, level, "text")

	if err := run(*jsonPath, *dbPath, *skipExisting, log); err != nil {
		log.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("import complete")
}

// ImportStats tracks import statistics.
type ImportStats struct {
	Imported int
	Skipped  int
}

func run(jsonPath, dbPath string, skipExisting bool, log *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read, parse and validate JSON
	// =========================================================================
	log.Info("reading JSON file", slog.String("path", jsonPath))

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("read JSON file: %w", err)
	}

	locations, err := parseLocations(data)
	if err != nil {
		return err
	}
	for i := range locations {
		if _, err := locations[i].GeoLocation(); err != nil {
			return fmt.Errorf("location %d (%s): %w", i+1, locations[i].Name, err)
		}
	}
	log.Info("parsed JSON", slog.Int("locations", len(locations)))

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	db, err := database.Open(database.DefaultConfig(dbPath), log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// =========================================================================
	// Step 3: Import in a transaction
	// =========================================================================
	var stats ImportStats
	err = db.WithTx(ctx, func(tx *database.Tx) error {
		return importLocations(ctx, tx, locations, skipExisting, log, &stats)
	})
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}

	// =========================================================================
	// Step 4: Verify
	// =========================================================================
	total, err := db.CountLocations(ctx)
	if err != nil {
		return fmt.Errorf("count locations: %w", err)
	}

	elapsed := time.Since(startTime)
	log.Info("import verified",
		slog.Int("saved_locations", total),
		slog.Duration("elapsed", elapsed),
	)

	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Locations imported:  %d\n", stats.Imported)
	fmt.Printf("Locations skipped:   %d\n", stats.Skipped)
	fmt.Printf("Saved locations:     %d\n", total)
	fmt.Printf("Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// parseLocations accepts a bare array or {"locations": [...]}.
func parseLocations(data []byte) ([]database.Location, error) {
	data = bytes.TrimSpace(data)

	var locations []database.Location
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &locations); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
		return locations, nil
	}

	var wrapped struct {
		Locations []database.Location `json:"locations"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return wrapped.Locations, nil
}

func importLocations(ctx context.Context, tx *database.Tx, locations []database.Location, skipExisting bool, log *slog.Logger, stats *ImportStats) error {
	for i := range locations {
		loc := &locations[i]
		loc.ID = 0

		err := tx.CreateLocation(ctx, loc)
		switch {
		case err == nil:
			stats.Imported++
			log.Debug("imported location", slog.String("name", loc.Name), slog.Int64("id", loc.ID))
		case skipExisting && errors.Is(err, database.ErrDuplicate):
			stats.Skipped++
			log.Debug("skipped existing location", slog.String("name", loc.Name))
		default:
			return fmt.Errorf("create location %d (%s): %w", i+1, loc.Name, err)
		}
	}
	return nil
}
