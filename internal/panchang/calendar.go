package panchang

import (
	"math"
	"time"
)

// Mean daily motions in degrees, used to date the preceding new moon.
const (
	sunDailyMotion  = 0.9856
	moonDailyMotion = 13.1764
)

// Rashi returns the zodiac sign holding a sidereal longitude.
func Rashi(longitude float64) string {
	return rashiNames[rashiIndex(longitude)]
}

func rashiIndex(longitude float64) int {
	return int(Normalize(longitude)/30) % 12
}

// LunarMonthIndex returns the amanta month, 0=Chaitra, in force at pos. The
// month is named after the sign the sun occupied at the preceding new moon:
// a new moon with the sun in Meena opens Chaitra.
func LunarMonthIndex(pos Positions) int {
	elongation := Normalize(pos.MoonLongitude - pos.SunLongitude)
	daysSinceNewMoon := elongation / (moonDailyMotion - sunDailyMotion)
	sunAtNewMoon := Normalize(pos.SunLongitude - daysSinceNewMoon*sunDailyMotion)
	return (rashiIndex(sunAtNewMoon) + 1) % 12
}

// VikramSamvat returns the Vikram era year. The year turns over at Chaitra, so
// January to April dates whose lunar month has not yet reached Chaitra belong
// to the previous era year.
func VikramSamvat(date time.Time, lunarMonth int) int {
	year := date.Year()
	if date.Month() <= time.April && lunarMonth >= 6 {
		return year + 56
	}
	return year + 57
}

// ShakaSamvat returns the Shaka era year, 135 years behind Vikram Samvat.
func ShakaSamvat(vikram int) int {
	return vikram - 135
}

// Ritu returns the season from the sun's sidereal sign. Vasanta spans Meena
// and Mesha and each later season covers the next two signs.
func Ritu(sunLongitude float64) string {
	return rituNames[((rashiIndex(sunLongitude)+1)%12)/2]
}

// Ayana returns Uttarayana while the sun runs from Makara through Mithuna.
func Ayana(sunLongitude float64) string {
	switch rashiIndex(sunLongitude) {
	case 9, 10, 11, 0, 1, 2:
		return AyanaUttarayana
	default:
		return AyanaDakshinayana
	}
}

// Panchak reports the moon in Kumbha or Meena, from the second half of
// Dhanishta to the end of Revati.
func Panchak(moonLongitude float64) bool {
	return Normalize(moonLongitude) >= 300
}

// Bhadra reports the Vishti karana.
func Bhadra(karana string) bool {
	return karana == karanaVishti
}

type festivalKey struct {
	month int
	tithi int
}

// festivals maps an amanta month and tithi number (1-30) to observances.
var festivals = map[festivalKey][]string{
	{0, 1}:   {"Ugadi", "Gudi Padwa", "Chaitra Navratri begins"},
	{0, 9}:   {"Rama Navami"},
	{0, 15}:  {"Hanuman Jayanti"},
	{1, 3}:   {"Akshaya Tritiya"},
	{1, 15}:  {"Buddha Purnima"},
	{3, 11}:  {"Devshayani Ekadashi"},
	{3, 15}:  {"Guru Purnima"},
	{4, 5}:   {"Nag Panchami"},
	{4, 15}:  {"Raksha Bandhan"},
	{4, 23}:  {"Krishna Janmashtami"},
	{5, 4}:   {"Ganesh Chaturthi"},
	{6, 1}:   {"Sharad Navratri begins"},
	{6, 10}:  {"Vijayadashami"},
	{6, 28}:  {"Dhanteras"},
	{6, 30}:  {"Diwali"},
	{7, 1}:   {"Govardhan Puja"},
	{7, 2}:   {"Bhai Dooj"},
	{7, 11}:  {"Prabodhini Ekadashi"},
	{7, 15}:  {"Kartik Purnima"},
	{10, 5}:  {"Vasant Panchami"},
	{10, 29}: {"Maha Shivaratri"},
	{11, 15}: {"Holika Dahan"},
}

// Festivals lists the observances falling on a tithi of an amanta month, plus
// the recurring Ekadashi, Purnima and Amavasya days and any Sankranti (the sun
// entering a sign within the last day).
func Festivals(lunarMonth, tithiNumber int, sunLongitude float64) []string {
	out := []string{}
	out = append(out, festivals[festivalKey{lunarMonth, tithiNumber}]...)

	switch tithiNumber {
	case 11, 26:
		out = append(out, "Ekadashi")
	case 15:
		out = append(out, "Purnima")
	case 30:
		out = append(out, "Amavasya")
	}

	if math.Mod(Normalize(sunLongitude), 30) < sunDailyMotion {
		sign := rashiIndex(sunLongitude)
		if sign == 9 {
			out = append(out, "Makar Sankranti")
		} else {
			out = append(out, rashiNames[sign]+" Sankranti")
		}
	}
	return out
}
