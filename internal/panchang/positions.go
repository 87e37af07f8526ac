package panchang

import (
	"context"
	"math"
)

// Calculation methods reported in Diagnostics.Method.
const (
	MethodEphemeris = "ephemeris"
	MethodFallback  = "mean-elements"
)

// Positions holds sidereal longitudes in degrees, each in [0, 360).
type Positions struct {
	SunLongitude  float64 `json:"sun_longitude"`
	MoonLongitude float64 `json:"moon_longitude"`
	Ayanamsa      float64 `json:"ayanamsa"`
}

// PositionSource returns sidereal solar and lunar longitudes at a Julian Day.
type PositionSource interface {
	Positions(ctx context.Context, jd float64) (Positions, error)
}

// PositionSourceFunc adapts a function to PositionSource.
type PositionSourceFunc func(ctx context.Context, jd float64) (Positions, error)

// Positions calls f.
func (f PositionSourceFunc) Positions(ctx context.Context, jd float64) (Positions, error) {
	return f(ctx, jd)
}

// Lahiri-style ayanamsa: value at J2000 plus precession of 50.29 arcseconds a year.
const (
	ayanamsaJ2000       = 23.85
	ayanamsaDriftPerDay = 50.29 / 3600.0 / 365.25
)

// MeanElements is the dependency-free low precision model: the solar mean
// longitude with a three-term equation of centre and the lunar mean longitude
// with its leading periodic term. It never fails.
type MeanElements struct{}

// Positions implements PositionSource.
func (MeanElements) Positions(_ context.Context, jd float64) (Positions, error) {
	return MeanElements{}.At(jd), nil
}

// At evaluates the model at jd.
func (MeanElements) At(jd float64) Positions {
	ayanamsa := Ayanamsa(jd)
	return Positions{
		SunLongitude:  Normalize(TropicalSunLongitude(jd) - ayanamsa),
		MoonLongitude: Normalize(TropicalMoonLongitude(jd) - ayanamsa),
		Ayanamsa:      ayanamsa,
	}
}

// TropicalSunLongitude returns the apparent tropical solar longitude in [0, 360).
func TropicalSunLongitude(jd float64) float64 {
	t := centuriesSinceJ2000(jd)

	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := radians(357.52911 + 35999.05029*t - 0.0001537*t*t)

	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)

	return Normalize(l0 + c)
}

// TropicalMoonLongitude returns the tropical lunar longitude in [0, 360).
func TropicalMoonLongitude(jd float64) float64 {
	t := centuriesSinceJ2000(jd)

	l := 218.3164477 + 481267.88123421*t
	mPrime := radians(134.9633964 + 477198.8675055*t)

	return Normalize(l + 6.289*math.Sin(mPrime))
}

// Ayanamsa returns the sidereal offset in degrees at jd, normalized to [0, 360).
func Ayanamsa(jd float64) float64 {
	return Normalize(ayanamsaJ2000 + (jd-J2000)*ayanamsaDriftPerDay)
}

// Normalize wraps degrees into [0, 360).
func Normalize(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	// A tiny negative remainder rounds up to exactly 360 after the addition.
	if r >= 360 {
		r = 0
	}
	return r
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
