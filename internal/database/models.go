package database

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/zapponejosh/panchang-api/internal/panchang"
)

// Location is a saved place that Panchang requests can refer to by slug.
type Location struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug" yaml:"slug"`
	Name      string    `json:"name" yaml:"name"`
	Latitude  float64   `json:"latitude" yaml:"latitude"`
	Longitude float64   `json:"longitude" yaml:"longitude"`
	Timezone  string    `json:"timezone" yaml:"timezone"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validate checks the slug format, name, coordinates and time zone. An empty
// slug is derived from the name first.
func (l *Location) Validate() error {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if l.Slug == "" {
		l.Slug = Slugify(l.Name)
	}
	if !slugPattern.MatchString(l.Slug) {
		return fmt.Errorf("%w: slug %q must be lowercase letters, digits and dashes", ErrInvalid, l.Slug)
	}
	if _, err := l.GeoLocation().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// GeoLocation converts the record for the calculator.
func (l Location) GeoLocation() panchang.GeoLocation {
	return panchang.GeoLocation{
		Name:      l.Name,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Timezone:  l.Timezone,
	}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
