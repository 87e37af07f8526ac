package database

// migration is one forward-only schema step.
type migration struct {
	version int
	name    string
	sql     string
}

// migrations lists every schema step in version order. Versions are never
// reused or edited once released; add a new entry instead.
var migrations = []migration{
	{1, "locations", migrationV1Locations},
	{2, "seed locations", migrationV2SeedLocations},
}

// migrationV1Locations creates the saved-location table. Slugs are the public
// identifier used in URLs and the DEFAULT_LOCATION setting.
const migrationV1Locations = `
CREATE TABLE IF NOT EXISTS locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- URL-safe identifier, e.g. "new-delhi"
    slug TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,

    -- Decimal degrees, east-positive longitude
    latitude REAL NOT NULL CHECK (latitude BETWEEN -90 AND 90),
    longitude REAL NOT NULL CHECK (longitude BETWEEN -180 AND 180),

    -- IANA zone name, e.g. "Asia/Kolkata"
    timezone TEXT NOT NULL,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_locations_name ON locations(name);
`

// migrationV2SeedLocations adds a handful of reference cities so a fresh
// database can serve requests without an import. Ujjain is the traditional
// prime meridian of Indian astronomy.
const migrationV2SeedLocations = `
INSERT OR IGNORE INTO locations (slug, name, latitude, longitude, timezone) VALUES
    ('new-delhi', 'New Delhi', 28.6139, 77.2090, 'Asia/Kolkata'),
    ('mumbai', 'Mumbai', 19.0760, 72.8777, 'Asia/Kolkata'),
    ('ujjain', 'Ujjain', 23.1765, 75.7885, 'Asia/Kolkata'),
    ('varanasi', 'Varanasi', 25.3176, 82.9739, 'Asia/Kolkata'),
    ('kathmandu', 'Kathmandu', 27.7172, 85.3240, 'Asia/Kathmandu');
`
