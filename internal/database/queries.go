package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so every query below can
// run standalone or inside WithTx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

const locationColumns = `id, slug, name, latitude, longitude, timezone, created_at, updated_at`

func scanLocation(row rowScanner) (*Location, error) {
	var loc Location
	var createdAt, updatedAt sql.NullString

	if err := row.Scan(
		&loc.ID,
		&loc.Slug,
		&loc.Name,
		&loc.Latitude,
		&loc.Longitude,
		&loc.Timezone,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if t := parseTimestamp(createdAt); t != nil {
		loc.CreatedAt = *t
	}
	if t := parseTimestamp(updatedAt); t != nil {
		loc.UpdatedAt = *t
	}
	return &loc, nil
}

// =============================================================================
// Location Queries
// =============================================================================

// CreateLocation inserts loc and sets its ID and timestamps. Returns
// ErrDuplicate if the slug is taken.
func (db *DB) CreateLocation(ctx context.Context, loc *Location) error {
	return createLocation(ctx, db.DB, loc)
}

// CreateLocation inserts loc within the transaction.
func (tx *Tx) CreateLocation(ctx context.Context, loc *Location) error {
	return createLocation(ctx, tx.Tx, loc)
}

func createLocation(ctx context.Context, q querier, loc *Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO locations (slug, name, latitude, longitude, timezone)
		VALUES (?, ?, ?, ?, ?)
		RETURNING ` + locationColumns

	created, err := scanLocation(q.QueryRowContext(ctx, query,
		loc.Slug, loc.Name, loc.Latitude, loc.Longitude, loc.Timezone,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}

	*loc = *created
	return nil
}

// UpsertLocation inserts loc or, when the slug exists, updates its name,
// coordinates and time zone. The importer uses this so reruns are harmless.
func (db *DB) UpsertLocation(ctx context.Context, loc *Location) error {
	return upsertLocation(ctx, db.DB, loc)
}

// UpsertLocation upserts loc within the transaction.
func (tx *Tx) UpsertLocation(ctx context.Context, loc *Location) error {
	return upsertLocation(ctx, tx.Tx, loc)
}

func upsertLocation(ctx context.Context, q querier, loc *Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO locations (slug, name, latitude, longitude, timezone, updated_at)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			timezone = excluded.timezone,
			updated_at = datetime('now')
		RETURNING ` + locationColumns

	saved, err := scanLocation(q.QueryRowContext(ctx, query,
		loc.Slug, loc.Name, loc.Latitude, loc.Longitude, loc.Timezone,
	))
	if err != nil {
		return fmt.Errorf("upsert location: %w", err)
	}

	*loc = *saved
	return nil
}

// GetLocationBySlug returns the location with slug, or ErrNotFound.
func (db *DB) GetLocationBySlug(ctx context.Context, slug string) (*Location, error) {
	return getLocationBySlug(ctx, db.DB, slug)
}

// GetLocationBySlug looks up slug within the transaction.
func (tx *Tx) GetLocationBySlug(ctx context.Context, slug string) (*Location, error) {
	return getLocationBySlug(ctx, tx.Tx, slug)
}

func getLocationBySlug(ctx context.Context, q querier, slug string) (*Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE slug = ?`

	loc, err := scanLocation(q.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query location by slug: %w", err)
	}
	return loc, nil
}

// ListLocations returns every saved location ordered by name. The result is
// empty, not nil, when there are none.
func (db *DB) ListLocations(ctx context.Context) ([]Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY name ASC, slug ASC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	locations := []Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location row: %w", err)
		}
		locations = append(locations, *loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}

	return locations, nil
}

// DeleteLocation removes a location by slug.
// Returns ErrNotFound if the slug doesn't exist.
func (db *DB) DeleteLocation(ctx context.Context, slug string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM locations WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ImportLocations upserts every location in one transaction. Nothing is saved
// if any entry is invalid.
func (db *DB) ImportLocations(ctx context.Context, locations []Location) (int, error) {
	err := db.WithTx(ctx, func(tx *Tx) error {
		for i := range locations {
			if err := tx.UpsertLocation(ctx, &locations[i]); err != nil {
				return fmt.Errorf("location %d (%s): %w", i+1, locations[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	db.logger.Info("locations imported", slog.Int("count", len(locations)))
	return len(locations), nil
}
