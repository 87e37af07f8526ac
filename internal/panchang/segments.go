package panchang

import (
	"fmt"
	"time"
)

// TimeWindow is a named span of local clock time. StartHour and EndHour are
// decimal hours from local midnight of the calculation date and may exceed 24
// or drop below 0 for windows that cross midnight.
type TimeWindow struct {
	Name      string  `json:"name"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	StartHour float64 `json:"-"`
	EndHour   float64 `json:"-"`
}

// DaySegment is one choghadiya.
type DaySegment struct {
	TimeWindow
	Type string `json:"type"`
	Lord string `json:"lord"`
}

func newWindow(name string, start, end float64) TimeWindow {
	return TimeWindow{
		Name:      name,
		Start:     FormatClock(start),
		End:       FormatClock(end),
		StartHour: start,
		EndHour:   end,
	}
}

// DayChoghadiya partitions sunrise to sunset into eight equal segments named
// by the weekday's sequence. sunrise and sunset are "HH:MM" labels.
func DayChoghadiya(sunrise, sunset string, weekday time.Weekday) ([]DaySegment, error) {
	rise, set, err := parseSpan(sunrise, sunset)
	if err != nil {
		return nil, err
	}
	return partition(dayChoghadiya[weekdayIndex(weekday)], rise, set), nil
}

// NightChoghadiya partitions sunset to the next sunrise into eight segments.
// nextSunrise is the following morning's "HH:MM" label. A sunset clock
// earlier than nextSunrise is taken to be past midnight, so the night starts
// where DayChoghadiya ends.
func NightChoghadiya(sunset, nextSunrise string, weekday time.Weekday) ([]DaySegment, error) {
	set, err := ParseClock(sunset)
	if err != nil {
		return nil, fmt.Errorf("sunset: %w", err)
	}
	rise, err := ParseClock(nextSunrise)
	if err != nil {
		return nil, fmt.Errorf("next sunrise: %w", err)
	}
	if set < rise {
		set += 24
	}
	return partition(nightChoghadiya[weekdayIndex(weekday)], set, rise+24), nil
}

// partition tiles [start, end) with eight segments. Every segment starts
// exactly where the previous one ends and the last one ends at end.
func partition(names [8]string, start, end float64) []DaySegment {
	span := (end - start) / float64(len(names))
	segments := make([]DaySegment, 0, len(names))
	for i, name := range names {
		from := start + float64(i)*span
		to := start + float64(i+1)*span
		if i == len(names)-1 {
			to = end
		}
		segments = append(segments, DaySegment{
			TimeWindow: newWindow(name, from, to),
			Type:       choghadiyaType(name),
			Lord:       choghadiyaLords[name],
		})
	}
	return segments
}

func choghadiyaType(name string) string {
	switch name {
	case chogAmrit, chogLabh, chogShubh, chogChar:
		return SegmentAuspicious
	default:
		return SegmentInauspicious
	}
}

// Muhurtas holds the fixed-fraction windows of one day.
type Muhurtas struct {
	Auspicious   []TimeWindow
	Inauspicious []TimeWindow
}

// CalculateMuhurtas derives Abhijit, Vijaya, Brahma and Godhuli (auspicious)
// and Rahu Kaal, Yamaganda and Gulika (inauspicious) from sunrise and sunset.
func CalculateMuhurtas(sunrise, sunset string, weekday time.Weekday) (Muhurtas, error) {
	rise, set, err := parseSpan(sunrise, sunset)
	if err != nil {
		return Muhurtas{}, err
	}
	day := set - rise
	at := func(fraction float64) float64 { return rise + day*fraction }

	rahu := RahuKaalFraction(weekday)
	return Muhurtas{
		Auspicious: []TimeWindow{
			newWindow("Abhijit Muhurat", at(abhijitStart), at(abhijitEnd)),
			newWindow("Vijaya Muhurat", at(vijayaStart), at(vijayaEnd)),
			newWindow("Brahma Muhurat", rise-brahmaStartHours, rise-brahmaEndHours),
			newWindow("Godhuli Muhurat", set-godhuliHalfHours, set+godhuliHalfHours),
		},
		Inauspicious: []TimeWindow{
			newWindow("Rahu Kaal", at(rahu), at(rahu+eighthOfDay)),
			newWindow("Yamaganda", at(yamagandaFraction), at(yamagandaFraction+eighthOfDay)),
			newWindow("Gulika Kaal", at(gulikaFraction), at(gulikaFraction+eighthOfDay)),
		},
	}, nil
}

// RahuKaalFraction returns where Rahu Kaal starts as a fraction of the day
// span past sunrise.
func RahuKaalFraction(weekday time.Weekday) float64 {
	return rahuKaalFraction[weekdayIndex(weekday)]
}

func parseSpan(sunrise, sunset string) (float64, float64, error) {
	rise, err := ParseClock(sunrise)
	if err != nil {
		return 0, 0, fmt.Errorf("sunrise: %w", err)
	}
	set, err := ParseClock(sunset)
	if err != nil {
		return 0, 0, fmt.Errorf("sunset: %w", err)
	}
	// Sunset after local midnight, as in high-latitude summers.
	if set <= rise {
		set += 24
	}
	return rise, set, nil
}

func weekdayIndex(w time.Weekday) int {
	idx := int(w) % 7
	if idx < 0 {
		idx += 7
	}
	return idx
}
