package panchang

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJulianDay_J2000(t *testing.T) {
	j2000 := time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, 2451545.0, JulianDay(j2000))
}

func TestJulianDay_ReadsUTC(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 17:30 IST is 12:00 UTC.
	local := time.Date(2000, time.January, 1, 17, 30, 0, 0, ist)
	require.Equal(t, 2451545.0, JulianDay(local))
}

func TestJulianDay_KnownDates(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"unix epoch", time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"february uses previous year", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), 2460369.5},
		{"march after leap day", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 2460370.5},
		{"gregorian start", time.Date(1582, time.October, 15, 12, 0, 0, 0, time.UTC), 2299161.0},
		{"quarter day", time.Date(2000, time.January, 1, 18, 0, 0, 0, time.UTC), 2451545.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, JulianDay(tt.t), 1e-9)
		})
	}
}

func TestFromJulianDay(t *testing.T) {
	got := FromJulianDay(J2000, time.UTC)
	require.True(t, got.Equal(time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)), "got %s", got)

	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	local := FromJulianDay(J2000, ist)
	require.Equal(t, "2000-01-01T17:30:00+05:30", local.Format(time.RFC3339))

	require.Equal(t, time.UTC, FromJulianDay(J2000, nil).Location())
}

func TestFromJulianDay_RoundTrip(t *testing.T) {
	start := time.Date(1900, time.March, 3, 4, 5, 6, 0, time.UTC)
	for i := 0; i < 200; i++ {
		want := start.Add(time.Duration(i) * 97 * 24 * time.Hour).Add(time.Duration(i) * 13 * time.Minute)
		got := FromJulianDay(JulianDay(want), time.UTC)
		assert.True(t, got.Equal(want), "round trip of %s gave %s", want, got)
	}
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 2, floorDiv(9, 4))
	assert.Equal(t, -3, floorDiv(-9, 4))
	assert.Equal(t, -2, floorDiv(-8, 4))
	assert.Equal(t, 0, floorDiv(0, 4))
}
