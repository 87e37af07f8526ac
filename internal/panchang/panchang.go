package panchang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Errors returned by Calculate. Anything else is unexpected.
var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidLocation = errors.New("invalid location")
	ErrNoSunrise       = errors.New("sun does not rise or set")
)

// GeoLocation is a place on Earth. Longitude is east-positive.
type GeoLocation struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// Validate checks coordinate ranges and resolves the time zone.
func (g GeoLocation) Validate() (*time.Location, error) {
	if math.IsNaN(g.Latitude) || g.Latitude < -90 || g.Latitude > 90 {
		return nil, fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidLocation, g.Latitude)
	}
	if math.IsNaN(g.Longitude) || g.Longitude < -180 || g.Longitude > 180 {
		return nil, fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidLocation, g.Longitude)
	}
	if strings.TrimSpace(g.Timezone) == "" {
		return nil, fmt.Errorf("%w: timezone is required", ErrInvalidLocation)
	}
	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	return loc, nil
}

// Label returns the display name, falling back to the coordinates.
func (g GeoLocation) Label() string {
	if g.Name != "" {
		return g.Name
	}
	return fmt.Sprintf("%.4f, %.4f", g.Latitude, g.Longitude)
}

// Diagnostics records the raw inputs behind a result.
type Diagnostics struct {
	JulianDay     float64 `json:"julian_day"`
	SunLongitude  float64 `json:"sun_longitude"`
	MoonLongitude float64 `json:"moon_longitude"`
	Ayanamsa      float64 `json:"ayanamsa"`
	Method        string  `json:"method"`
}

// Result is the full almanac for one date and place.
type Result struct {
	Location string `json:"location"`
	Date     string `json:"date"`
	Timezone string `json:"timezone"`

	Sunrise  string `json:"sunrise"`
	Sunset   string `json:"sunset"`
	Moonrise string `json:"moonrise"`
	Moonset  string `json:"moonset"`

	Tithi     Tithi     `json:"tithi"`
	Nakshatra Nakshatra `json:"nakshatra"`
	Yoga      Element   `json:"yoga"`
	Karana    Element   `json:"karana"`
	Vara      Vara      `json:"vara"`

	SunSign      string   `json:"sun_sign"`
	MoonSign     string   `json:"moon_sign"`
	VikramSamvat int      `json:"vikram_samvat"`
	ShakaSamvat  int      `json:"shaka_samvat"`
	LunarMonth   string   `json:"lunar_month"`
	Ritu         string   `json:"ritu"`
	Ayana        string   `json:"ayana"`
	Festivals    []string `json:"festivals"`

	DayChoghadiya   []DaySegment `json:"day_choghadiya"`
	NightChoghadiya []DaySegment `json:"night_choghadiya"`
	Auspicious      []TimeWindow `json:"auspicious"`
	Inauspicious    []TimeWindow `json:"inauspicious"`

	Panchak bool `json:"panchak"`
	Bhadra  bool `json:"bhadra"`

	Diagnostics Diagnostics `json:"diagnostics"`
}

// Calculator produces Panchang results. It holds no mutable state and is safe
// for concurrent use.
type Calculator struct {
	precise  PositionSource
	fallback MeanElements
	window   windowFunc
	logger   *slog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithEphemeris tries src before the mean element model. Any error from src
// is logged and the model is used instead.
func WithEphemeris(src PositionSource) Option {
	return func(c *Calculator) {
		c.precise = src
	}
}

// WithLogger sets the logger for fallback warnings and debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBoundarySearch replaces the fixed-width validity windows of tithi,
// nakshatra, yoga and karana with the actual transition times found on the
// mean element model.
func WithBoundarySearch(enabled bool) Option {
	return func(c *Calculator) {
		if enabled {
			c.window = boundaryWindow
		} else {
			c.window = symmetricWindow
		}
	}
}

// NewCalculator returns a Calculator using the mean element model unless an
// ephemeris is supplied.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		window: symmetricWindow,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate computes the Panchang for dateISO at loc. dateISO is YYYY-MM-DD,
// YYYY-MM-DDTHH:MM[:SS] or RFC 3339 and is read in loc's time zone. A bare date
// is evaluated at local sunrise.
func (c *Calculator) Calculate(ctx context.Context, dateISO string, loc GeoLocation) (*Result, error) {
	tz, err := loc.Validate()
	if err != nil {
		return nil, err
	}

	date, hasClock, err := ParseDate(dateISO, tz)
	if err != nil {
		return nil, err
	}

	rise, set, err := SunTimes(loc.Latitude, loc.Longitude, date)
	if err != nil {
		return nil, err
	}
	nextRise, _, err := SunTimes(loc.Latitude, loc.Longitude, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	moment := rise
	if hasClock {
		moment = date
	}
	jd := JulianDay(moment)
	pos, method := c.positions(ctx, jd)

	sunrise, sunset := clockLabel(rise), clockLabel(set)
	riseHours, _ := ParseClock(sunrise)
	setHours, _ := ParseClock(sunset)

	vara, err := CalculateVara(date, sunrise)
	if err != nil {
		return nil, err
	}
	weekday := time.Weekday(vara.Number - 1)

	day, err := DayChoghadiya(sunrise, sunset, weekday)
	if err != nil {
		return nil, err
	}
	night, err := NightChoghadiya(sunset, clockLabel(nextRise), weekday)
	if err != nil {
		return nil, err
	}
	muhurtas, err := CalculateMuhurtas(sunrise, sunset, weekday)
	if err != nil {
		return nil, err
	}

	a := almanac{pos: pos, jd: jd, loc: tz, window: c.window}
	tithi := a.tithi()
	karana := a.karana(tithi.Number)
	month := LunarMonthIndex(pos)
	vikram := VikramSamvat(date, month)
	moonrise, moonset := MoonTimes(riseHours, setHours, pos.MoonLongitude-pos.SunLongitude)

	result := &Result{
		Location:        loc.Label(),
		Date:            date.Format(dateLayout),
		Timezone:        tz.String(),
		Sunrise:         sunrise,
		Sunset:          sunset,
		Moonrise:        moonrise,
		Moonset:         moonset,
		Tithi:           tithi,
		Nakshatra:       a.nakshatra(),
		Yoga:            a.yoga(),
		Karana:          karana,
		Vara:            vara,
		SunSign:         Rashi(pos.SunLongitude),
		MoonSign:        Rashi(pos.MoonLongitude),
		VikramSamvat:    vikram,
		ShakaSamvat:     ShakaSamvat(vikram),
		LunarMonth:      lunarMonthNames[month],
		Ritu:            Ritu(pos.SunLongitude),
		Ayana:           Ayana(pos.SunLongitude),
		Festivals:       Festivals(month, tithi.Number, pos.SunLongitude),
		DayChoghadiya:   day,
		NightChoghadiya: night,
		Auspicious:      muhurtas.Auspicious,
		Inauspicious:    muhurtas.Inauspicious,
		Panchak:         Panchak(pos.MoonLongitude),
		Bhadra:          Bhadra(karana.Name),
		Diagnostics: Diagnostics{
			JulianDay:     jd,
			SunLongitude:  pos.SunLongitude,
			MoonLongitude: pos.MoonLongitude,
			Ayanamsa:      pos.Ayanamsa,
			Method:        method,
		},
	}

	c.logger.DebugContext(ctx, "panchang calculated",
		slog.String("date", result.Date),
		slog.String("location", result.Location),
		slog.Float64("julian_day", jd),
		slog.String("method", method),
	)

	return result, nil
}

// positions asks the ephemeris once and falls back to the mean element model
// on any failure. The returned method names the source that answered.
func (c *Calculator) positions(ctx context.Context, jd float64) (Positions, string) {
	if c.precise != nil {
		pos, err := c.precise.Positions(ctx, jd)
		if err == nil {
			return Positions{
				SunLongitude:  Normalize(pos.SunLongitude),
				MoonLongitude: Normalize(pos.MoonLongitude),
				Ayanamsa:      Normalize(pos.Ayanamsa),
			}, MethodEphemeris
		}
		c.logger.WarnContext(ctx, "ephemeris unavailable, using mean elements",
			slog.Float64("julian_day", jd),
			slog.Any("error", err),
		)
	}
	return c.fallback.At(jd), MethodFallback
}

// ParseDate reads dateISO in tz. The boolean reports whether a clock time was
// present.
func ParseDate(dateISO string, tz *time.Location) (time.Time, bool, error) {
	s := strings.TrimSpace(dateISO)
	if s == "" {
		return time.Time{}, false, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if t, err := time.ParseInLocation(dateLayout, s, tz); err == nil {
		return t, false, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(tz), true, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, tz); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("%w: %q, use YYYY-MM-DD or RFC 3339", ErrInvalidDate, dateISO)
}
