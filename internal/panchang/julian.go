// Package panchang computes the Vedic almanac (Panchang) for a civil date and
// place: the five limbs (tithi, nakshatra, yoga, karana, vara), the day and night
// choghadiya, the well-known muhurta windows and the calendar epochs.
//
// The calculation is deterministic. Longitudes come from a low-precision mean
// element model unless a higher precision PositionSource is configured and
// answers successfully.
package panchang

import (
	"math"
	"time"
)

const (
	// J2000 is the Julian Day of 2000-01-01T12:00:00 UTC.
	J2000 = 2451545.0

	// UnixEpochJD is the Julian Day of 1970-01-01T00:00:00 UTC.
	UnixEpochJD = 2440587.5

	secondsPerDay  = 86400.0
	daysPerCentury = 36525.0
)

// JulianDay converts t to a Julian Day using the Gregorian day number formula.
// t is read in UTC. Leap seconds are ignored and the proleptic Gregorian calendar
// is assumed for every date.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()

	// January and February count as months 13 and 14 of the previous year.
	a := (14 - int(month)) / 12
	y := year + 4800 - a
	m := int(month) + 12*a - 3

	jdn := day + (153*m+2)/5 + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045

	seconds := float64(u.Second()) + float64(u.Nanosecond())/1e9
	fraction := (float64(u.Hour())-12)/24 + float64(u.Minute())/1440 + seconds/secondsPerDay

	return float64(jdn) + fraction
}

// FromJulianDay converts a Julian Day back to wall-clock time in loc, rounded to
// the second. It only labels window bounds; positions are never recomputed from it.
func FromJulianDay(jd float64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	secs := math.Round((jd - UnixEpochJD) * secondsPerDay)
	return time.Unix(int64(secs), 0).In(loc)
}

// centuriesSinceJ2000 returns Julian centuries elapsed since J2000.
func centuriesSinceJ2000(jd float64) float64 {
	return (jd - J2000) / daysPerCentury
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
