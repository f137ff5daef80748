package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1Locations,
	2: migrationV2SeedLocations,
}

// migrationV1Locations creates the named location store. Names are matched
// case-insensitively. Coordinates are checked again in Go through geo.New,
// which also validates the time zone id.
const migrationV1Locations = `
CREATE TABLE IF NOT EXISTS locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    latitude REAL NOT NULL CHECK (latitude BETWEEN -90 AND 90),
    longitude REAL NOT NULL CHECK (longitude BETWEEN -180 AND 180),
    elevation REAL NOT NULL DEFAULT 0 CHECK (elevation >= 0),
    timezone TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// migrationV2SeedLocations adds reference locations used by the docs and
// smoke tests: a mid-latitude US city, Jerusalem, and Apia, which sits east
// of the date line in time but west of it in longitude.
const migrationV2SeedLocations = `
INSERT OR IGNORE INTO locations (name, latitude, longitude, elevation, timezone) VALUES
    ('lakewood', 40.0828, -74.2094, 20, 'America/New_York'),
    ('jerusalem', 31.778, 35.2354, 754, 'Asia/Jerusalem'),
    ('apia', -13.8333, -171.75, 0, 'Pacific/Apia');
`
