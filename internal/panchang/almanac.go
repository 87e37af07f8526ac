package panchang

import (
	"fmt"
	"math"
	"time"
)

const (
	// tithiSpan is the elongation covered by one tithi.
	tithiSpan = 12.0

	// karanaSpan is the elongation covered by one half-tithi.
	karanaSpan = 6.0

	// nakshatraSpan is 360/27 degrees, shared by nakshatras and yogas.
	nakshatraSpan = 360.0 / 27.0
)

// Element is one limb of the almanac together with the window it is valid for.
type Element struct {
	Name       string    `json:"name"`
	Number     int       `json:"number"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Percentage float64   `json:"percentage"`
}

// Tithi is the lunar day.
type Tithi struct {
	Element
	Paksha string `json:"paksha"`
}

// Nakshatra is the lunar mansion with its ruling planet.
type Nakshatra struct {
	Element
	Lord string `json:"lord"`
}

// Vara is the weekday counted from sunrise.
type Vara struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	English string `json:"english"`
	Lord    string `json:"lord"`
}

// elementKind selects one of the angular limbs.
type elementKind int

const (
	kindTithi elementKind = iota
	kindNakshatra
	kindYoga
	kindKarana
)

// halfWindowDays is the half width of the symmetric validity window per kind.
var halfWindowDays = map[elementKind]float64{
	kindTithi:     0.5,
	kindNakshatra: 0.5,
	kindYoga:      0.5,
	kindKarana:    0.25,
}

// progress returns the continuous element count for pos; its integer part is
// the 0-based element index before any table wrap.
func (k elementKind) progress(pos Positions) float64 {
	switch k {
	case kindTithi:
		return Normalize(pos.MoonLongitude-pos.SunLongitude) / tithiSpan
	case kindNakshatra:
		return Normalize(pos.MoonLongitude) / nakshatraSpan
	case kindYoga:
		return Normalize(pos.SunLongitude+pos.MoonLongitude) / nakshatraSpan
	case kindKarana:
		return Normalize(pos.MoonLongitude-pos.SunLongitude) / karanaSpan
	default:
		panic(fmt.Sprintf("panchang: unknown element kind %d", k))
	}
}

// count is the number of distinct indices a kind cycles through.
func (k elementKind) count() int {
	switch k {
	case kindTithi:
		return 30
	case kindKarana:
		return 60
	default:
		return 27
	}
}

// index returns the 0-based element index at pos, always in [0, count).
func (k elementKind) index(pos Positions) int {
	limit := k.count()
	n := int(math.Floor(k.progress(pos))) % limit
	if n < 0 {
		n += limit
	}
	return n
}

// TithiIndex returns the tithi number minus one, in [0, 29].
func TithiIndex(pos Positions) int {
	return kindTithi.index(pos)
}

// NakshatraIndex returns the nakshatra index in [0, 26].
func NakshatraIndex(pos Positions) int {
	return kindNakshatra.index(pos)
}

// YogaIndex returns the yoga index in [0, 26].
func YogaIndex(pos Positions) int {
	return kindYoga.index(pos)
}

// KaranaIndex returns the karana table index in [0, 6] for a tithi number.
func KaranaIndex(tithiNumber int) int {
	idx := ((tithiNumber - 1) * 2) % len(karanaNames)
	if idx < 0 {
		idx += len(karanaNames)
	}
	return idx
}

// Paksha returns the lunar fortnight of a 1-based tithi number.
func Paksha(tithiNumber int) string {
	if tithiNumber <= 15 {
		return PakshaShukla
	}
	return PakshaKrishna
}

// windowFunc reports the Julian Day span an element is valid for.
type windowFunc func(kind elementKind, jd float64, index int) (start, end float64)

// symmetricWindow centres a fixed-width window on the lookup instant. It does
// not search for the real transition.
func symmetricWindow(kind elementKind, jd float64, _ int) (float64, float64) {
	half := halfWindowDays[kind]
	return jd - half, jd + half
}

// almanac derives the angular limbs for one instant.
type almanac struct {
	pos    Positions
	jd     float64
	loc    *time.Location
	window windowFunc
}

func (a almanac) element(kind elementKind, number int, name string) Element {
	start, end := a.window(kind, a.jd, number-1)
	return Element{
		Name:       name,
		Number:     number,
		Start:      FromJulianDay(start, a.loc),
		End:        FromJulianDay(end, a.loc),
		Percentage: completion(kind.progress(a.pos)),
	}
}

func (a almanac) tithi() Tithi {
	number := TithiIndex(a.pos) + 1
	name := tithiNames[(number-1)%len(tithiNames)]
	if number == 30 {
		name = amavasya
	}
	return Tithi{
		Element: a.element(kindTithi, number, name),
		Paksha:  Paksha(number),
	}
}

func (a almanac) nakshatra() Nakshatra {
	idx := NakshatraIndex(a.pos)
	return Nakshatra{
		Element: a.element(kindNakshatra, idx+1, nakshatraNames[idx]),
		Lord:    nakshatraLords[idx],
	}
}

func (a almanac) yoga() Element {
	idx := YogaIndex(a.pos)
	return a.element(kindYoga, idx+1, yogaNames[idx])
}

// karana is looked up from the tithi number. Its window and completion follow
// the half-tithi the moon is in.
func (a almanac) karana(tithiNumber int) Element {
	idx := KaranaIndex(tithiNumber)
	half := kindKarana.index(a.pos)
	start, end := a.window(kindKarana, a.jd, half)
	return Element{
		Name:       karanaNames[idx],
		Number:     idx + 1,
		Start:      FromJulianDay(start, a.loc),
		End:        FromJulianDay(end, a.loc),
		Percentage: completion(kindKarana.progress(a.pos)),
	}
}

// CalculateVara returns the weekday in force at sunrise on date. sunrise is the
// local "HH:MM" label; the weekday is read from that instant in date's location.
func CalculateVara(date time.Time, sunrise string) (Vara, error) {
	hours, err := ParseClock(sunrise)
	if err != nil {
		return Vara{}, fmt.Errorf("vara: %w", err)
	}
	year, month, day := date.Date()
	minutes := int(math.Round(hours * 60))
	at := time.Date(year, month, day, minutes/60, minutes%60, 0, 0, date.Location())

	idx := int(at.Weekday())
	entry := varaTable[idx]
	return Vara{
		Number:  idx + 1,
		Name:    entry.name,
		English: entry.english,
		Lord:    entry.lord,
	}, nil
}

// completion returns the fractional part of progress as a percentage rounded
// to one decimal.
func completion(progress float64) float64 {
	_, frac := math.Modf(progress)
	return math.Round(frac*1000) / 10
}
