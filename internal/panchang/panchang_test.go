package panchang

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var newDelhi = GeoLocation{
	Name:      "New Delhi",
	Latitude:  28.6139,
	Longitude: 77.2090,
	Timezone:  "Asia/Kolkata",
}

func TestCalculate_NewDelhiSunday(t *testing.T) {
	calc := NewCalculator()

	result, err := calc.Calculate(context.Background(), "2024-01-07", newDelhi)
	require.NoError(t, err)

	assert.Equal(t, "New Delhi", result.Location)
	assert.Equal(t, "2024-01-07", result.Date)
	assert.Equal(t, "Asia/Kolkata", result.Timezone)
	assert.Equal(t, Vara{Number: 1, Name: "Ravivar", English: "Sunday", Lord: "Sun"}, result.Vara)
	assert.Equal(t, MethodFallback, result.Diagnostics.Method)

	rise, err := ParseClock(result.Sunrise)
	require.NoError(t, err)
	assert.InDelta(t, 7.23, rise, 0.17, "sunrise %s", result.Sunrise)
	set, err := ParseClock(result.Sunset)
	require.NoError(t, err)
	assert.InDelta(t, 17.63, set, 0.17, "sunset %s", result.Sunset)

	require.Len(t, result.DayChoghadiya, 8)
	require.Len(t, result.NightChoghadiya, 8)
	assert.Equal(t, result.Sunrise, result.DayChoghadiya[0].Start)
	assert.Equal(t, result.Sunset, result.DayChoghadiya[7].End)
	assert.Equal(t, result.Sunset, result.NightChoghadiya[0].Start)
	assert.Equal(t, "Udveg", result.DayChoghadiya[0].Name)

	assert.Len(t, result.Auspicious, 4)
	assert.Len(t, result.Inauspicious, 3)
	assert.Equal(t, "Rahu Kaal", result.Inauspicious[0].Name)

	assert.True(t, result.Tithi.Number >= 1 && result.Tithi.Number <= 30)
	assert.Equal(t, Paksha(result.Tithi.Number), result.Tithi.Paksha)
	assert.True(t, result.Nakshatra.Number >= 1 && result.Nakshatra.Number <= 27)
	assert.True(t, result.Yoga.Number >= 1 && result.Yoga.Number <= 27)
	assert.True(t, result.Karana.Number >= 1 && result.Karana.Number <= 7)
	assert.Equal(t, 12*time.Hour, result.Karana.End.Sub(result.Karana.Start))
	assert.Equal(t, 24*time.Hour, result.Tithi.End.Sub(result.Tithi.Start))

	assert.Equal(t, 2080, result.VikramSamvat)
	assert.Equal(t, 1945, result.ShakaSamvat)
	assert.Equal(t, "Dhanu", result.SunSign)
	assert.Equal(t, AyanaDakshinayana, result.Ayana)
	assert.NotNil(t, result.Festivals)

	// A bare date is evaluated at sunrise, about 01:44 UTC.
	assert.InDelta(t, 2460316.572, result.Diagnostics.JulianDay, 0.01)
}

func TestCalculate_Deterministic(t *testing.T) {
	calc := NewCalculator()
	ctx := context.Background()

	first, err := calc.Calculate(ctx, "2024-03-25", newDelhi)
	require.NoError(t, err)
	second, err := calc.Calculate(ctx, "2024-03-25", newDelhi)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculate_ConcurrentUse(t *testing.T) {
	calc := NewCalculator(WithBoundarySearch(true))
	want, err := calc.Calculate(context.Background(), "2024-08-15", newDelhi)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = calc.Calculate(context.Background(), "2024-08-15", newDelhi)
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}

func TestCalculate_KiritimatiUsesItsOwnSunrise(t *testing.T) {
	kiritimati := GeoLocation{Name: "Kiritimati", Latitude: 1.87, Longitude: -157.4, Timezone: "Pacific/Kiritimati"}
	honolulu := GeoLocation{Name: "Honolulu", Latitude: 21.31, Longitude: -157.86, Timezone: "Pacific/Honolulu"}

	calc := NewCalculator()
	k, err := calc.Calculate(context.Background(), "2024-11-01", kiritimati)
	require.NoError(t, err)
	h, err := calc.Calculate(context.Background(), "2024-11-01", honolulu)
	require.NoError(t, err)

	assert.Equal(t, "2024-11-01", k.Date)
	assert.Equal(t, "Shukravar", k.Vara.Name)
	// Kiritimati's Nov 1 sunrise happens a civil day before Honolulu's.
	assert.InDelta(t, 1.0, h.Diagnostics.JulianDay-k.Diagnostics.JulianDay, 0.05)
}

func TestCalculate_ExplicitClockTime(t *testing.T) {
	result, err := NewCalculator().Calculate(context.Background(), "2024-01-07T12:00", newDelhi)
	require.NoError(t, err)

	// 12:00 IST is 06:30 UTC.
	assert.InDelta(t, 2460316.5+6.5/24, result.Diagnostics.JulianDay, 1e-6)
	assert.Equal(t, "2024-01-07", result.Date)
}

func TestCalculate_EphemerisSuccess(t *testing.T) {
	var calls int
	src := PositionSourceFunc(func(_ context.Context, jd float64) (Positions, error) {
		calls++
		return Positions{SunLongitude: 262.5, MoonLongitude: 460, Ayanamsa: 24.2}, nil
	})

	result, err := NewCalculator(WithEphemeris(src)).Calculate(context.Background(), "2024-01-07", newDelhi)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	assert.Equal(t, MethodEphemeris, result.Diagnostics.Method)
	assert.Equal(t, 262.5, result.Diagnostics.SunLongitude)
	assert.Equal(t, 100.0, result.Diagnostics.MoonLongitude)
	assert.Equal(t, 24.2, result.Diagnostics.Ayanamsa)

	// Elongation 197.5 degrees.
	assert.Equal(t, 17, result.Tithi.Number)
	assert.Equal(t, "Dwitiya", result.Tithi.Name)
	assert.Equal(t, PakshaKrishna, result.Tithi.Paksha)
	assert.Equal(t, "Pushya", result.Nakshatra.Name)
	assert.Equal(t, "Saturn", result.Nakshatra.Lord)
	assert.Equal(t, "Dhanu", result.SunSign)
	assert.Equal(t, "Karka", result.MoonSign)
	assert.False(t, result.Panchak)
}

func TestCalculate_EphemerisFailureFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	src := PositionSourceFunc(func(context.Context, float64) (Positions, error) {
		return Positions{}, errors.New("connection refused")
	})
	calc := NewCalculator(WithEphemeris(src), WithLogger(logger))

	result, err := calc.Calculate(context.Background(), "2024-01-07", newDelhi)
	require.NoError(t, err)

	assert.Equal(t, MethodFallback, result.Diagnostics.Method)
	want := MeanElements{}.At(result.Diagnostics.JulianDay)
	assert.Equal(t, want.SunLongitude, result.Diagnostics.SunLongitude)
	assert.Equal(t, want.MoonLongitude, result.Diagnostics.MoonLongitude)
	assert.Contains(t, buf.String(), "ephemeris unavailable")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestCalculate_InputErrors(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		loc     GeoLocation
		wantErr error
	}{
		{"unknown timezone", "2024-01-07", GeoLocation{Latitude: 10, Longitude: 10, Timezone: "Mars/Olympus"}, ErrInvalidLocation},
		{"missing timezone", "2024-01-07", GeoLocation{Latitude: 10, Longitude: 10}, ErrInvalidLocation},
		{"latitude out of range", "2024-01-07", GeoLocation{Latitude: 91, Longitude: 0, Timezone: "UTC"}, ErrInvalidLocation},
		{"longitude out of range", "2024-01-07", GeoLocation{Latitude: 0, Longitude: -181, Timezone: "UTC"}, ErrInvalidLocation},
		{"bad month", "2024-13-01", newDelhi, ErrInvalidDate},
		{"wrong layout", "07/01/2024", newDelhi, ErrInvalidDate},
		{"empty date", "", newDelhi, ErrInvalidDate},
		{"polar day", "2024-06-21", GeoLocation{Latitude: 89, Longitude: 0, Timezone: "UTC"}, ErrNoSunrise},
	}

	calc := NewCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Calculate(context.Background(), tt.date, tt.loc)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}
}

func TestResult_JSON(t *testing.T) {
	result, err := NewCalculator().Calculate(context.Background(), "2024-01-07", newDelhi)
	require.NoError(t, err)

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"tithi", "nakshatra", "yoga", "karana", "vara", "day_choghadiya", "night_choghadiya", "diagnostics"} {
		assert.Contains(t, decoded, key)
	}
	assert.NotNil(t, decoded["festivals"])

	tithi := decoded["tithi"].(map[string]any)
	assert.Contains(t, tithi, "paksha")
	assert.Contains(t, tithi, "start")

	segment := decoded["day_choghadiya"].([]any)[0].(map[string]any)
	assert.NotContains(t, segment, "StartHour")
	assert.Contains(t, segment, "lord")
}

func TestParseDate(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	tests := []struct {
		in        string
		want      time.Time
		wantClock bool
	}{
		{"2024-01-07", time.Date(2024, time.January, 7, 0, 0, 0, 0, ist), false},
		{" 2024-01-07 ", time.Date(2024, time.January, 7, 0, 0, 0, 0, ist), false},
		{"2024-01-07T01:44:00Z", time.Date(2024, time.January, 7, 7, 14, 0, 0, ist), true},
		{"2024-01-07T15:04:05", time.Date(2024, time.January, 7, 15, 4, 5, 0, ist), true},
		{"2024-01-07T15:04", time.Date(2024, time.January, 7, 15, 4, 0, 0, ist), true},
		{"2024-01-07 15:04", time.Date(2024, time.January, 7, 15, 4, 0, 0, ist), true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, clock, err := ParseDate(tt.in, ist)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, tt.wantClock, clock)
		})
	}

	_, _, err = ParseDate("tomorrow", ist)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestGeoLocation_Label(t *testing.T) {
	assert.Equal(t, "New Delhi", newDelhi.Label())
	assert.Equal(t, "28.6139, 77.2090", GeoLocation{Latitude: 28.6139, Longitude: 77.209}.Label())
}
