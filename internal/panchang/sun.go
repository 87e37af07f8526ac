package panchang

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

const clockLayout = "15:04"

// lunarDayHours is the mean interval between successive moonrises.
const lunarDayHours = 24.0 + 50.0/60.0

// SunTimes returns the sunrise that falls on date's local calendar day and the
// sunset that follows it, both in date's location.
//
// go-sunrise works on UTC days. Where a zone's offset is far from its solar
// time (Kiritimati, Apia) the UTC day's sunrise lands on a different local
// day, so the neighbouring UTC days are tried as well.
func SunTimes(latitude, longitude float64, date time.Time) (rise, set time.Time, err error) {
	loc := date.Location()
	year, month, day := date.Date()
	for _, offset := range []int{0, -1, 1} {
		y, m, d := time.Date(year, month, day+offset, 12, 0, 0, 0, time.UTC).Date()
		r, s := sunrise.SunriseSunset(latitude, longitude, y, m, d)
		if r.IsZero() || s.IsZero() {
			continue
		}
		r, s = r.In(loc), s.In(loc)
		if ry, rm, rd := r.Date(); ry == year && rm == month && rd == day {
			return r, s, nil
		}
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w at %.4f,%.4f on %s",
		ErrNoSunrise, latitude, longitude, date.Format(dateLayout))
}

// MoonTimes estimates moonrise and moonset from the sun's rise and set and the
// moon's elongation: the moon trails the sun by elongation/360 of a lunar day.
// Both are returned as HH:MM clock labels on a 24-hour dial.
func MoonTimes(sunriseHours, sunsetHours, elongation float64) (rise, set string) {
	lag := Normalize(elongation) / 360 * lunarDayHours
	return FormatClock(sunriseHours + lag), FormatClock(sunsetHours + lag)
}

// ParseClock converts an "HH:MM" label into decimal hours.
func ParseClock(s string) (float64, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock minute in %q", s)
	}
	return float64(h) + float64(m)/60, nil
}

// FormatClock renders decimal hours as "HH:MM", rounding to the nearest minute
// and wrapping past midnight.
func FormatClock(hours float64) string {
	minutes := int(math.Round(hours * 60))
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// clockLabel formats t's wall-clock time as "HH:MM", rounded to the minute.
func clockLabel(t time.Time) string {
	return t.Round(time.Minute).Format(clockLayout)
}
