package panchang

// Fixed almanac tables. Every table is indexed by a 0-based integer derived from
// the longitudes; order matters and must not change.

var tithiNames = [15]string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "Purnima",
}

// amavasya labels tithi 30, which shares slot 14 of tithiNames with Purnima.
const amavasya = "Amavasya"

const (
	PakshaShukla  = "Shukla Paksha"
	PakshaKrishna = "Krishna Paksha"
)

var nakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

var nakshatraLords = [27]string{
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury",
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury",
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury",
}

var yogaNames = [27]string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda",
	"Sukarma", "Dhriti", "Shula", "Ganda", "Vriddhi", "Dhruva",
	"Vyaghata", "Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyana",
	"Parigha", "Shiva", "Siddha", "Sadhya", "Shubha", "Shukla",
	"Brahma", "Indra", "Vaidhriti",
}

var karanaNames = [7]string{
	"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti",
}

// karanaVishti is the karana that marks Bhadra.
const karanaVishti = "Vishti"

type varaEntry struct {
	name    string
	english string
	lord    string
}

// varaTable is indexed 0=Sunday through 6=Saturday, matching time.Weekday.
var varaTable = [7]varaEntry{
	{"Ravivar", "Sunday", "Sun"},
	{"Somvar", "Monday", "Moon"},
	{"Mangalvar", "Tuesday", "Mars"},
	{"Budhvar", "Wednesday", "Mercury"},
	{"Guruvar", "Thursday", "Jupiter"},
	{"Shukravar", "Friday", "Venus"},
	{"Shanivar", "Saturday", "Saturn"},
}

var rashiNames = [12]string{
	"Mesha", "Vrishabha", "Mithuna", "Karka", "Simha", "Kanya",
	"Tula", "Vrishchika", "Dhanu", "Makara", "Kumbha", "Meena",
}

// lunarMonthNames starts at Chaitra, the first month of the lunisolar year.
var lunarMonthNames = [12]string{
	"Chaitra", "Vaishakha", "Jyeshtha", "Ashadha", "Shravana", "Bhadrapada",
	"Ashwin", "Kartika", "Margashirsha", "Pausha", "Magha", "Phalguna",
}

var rituNames = [6]string{
	"Vasanta", "Grishma", "Varsha", "Sharad", "Hemanta", "Shishira",
}

const (
	AyanaUttarayana   = "Uttarayana"
	AyanaDakshinayana = "Dakshinayana"
)

// Choghadiya names and their ruling bodies.
const (
	chogUdveg = "Udveg"
	chogChar  = "Char"
	chogLabh  = "Labh"
	chogAmrit = "Amrit"
	chogKaal  = "Kaal"
	chogShubh = "Shubh"
	chogRog   = "Rog"
)

var choghadiyaLords = map[string]string{
	chogUdveg: "Sun",
	chogChar:  "Venus",
	chogLabh:  "Mercury",
	chogAmrit: "Moon",
	chogKaal:  "Saturn",
	chogShubh: "Jupiter",
	chogRog:   "Mars",
}

const (
	SegmentAuspicious   = "Auspicious"
	SegmentInauspicious = "Inauspicious"
)

// dayChoghadiya holds the eight day segments for each weekday, Sunday first.
// Each row walks the ring Udveg, Char, Labh, Amrit, Kaal, Shubh, Rog and the
// eighth entry repeats the first.
var dayChoghadiya = [7][8]string{
	{chogUdveg, chogChar, chogLabh, chogAmrit, chogKaal, chogShubh, chogRog, chogUdveg},
	{chogAmrit, chogKaal, chogShubh, chogRog, chogUdveg, chogChar, chogLabh, chogAmrit},
	{chogRog, chogUdveg, chogChar, chogLabh, chogAmrit, chogKaal, chogShubh, chogRog},
	{chogLabh, chogAmrit, chogKaal, chogShubh, chogRog, chogUdveg, chogChar, chogLabh},
	{chogShubh, chogRog, chogUdveg, chogChar, chogLabh, chogAmrit, chogKaal, chogShubh},
	{chogChar, chogLabh, chogAmrit, chogKaal, chogShubh, chogRog, chogUdveg, chogChar},
	{chogKaal, chogShubh, chogRog, chogUdveg, chogChar, chogLabh, chogAmrit, chogKaal},
}

// nightChoghadiya steps the same ring two places backwards per segment.
var nightChoghadiya = [7][8]string{
	{chogShubh, chogAmrit, chogChar, chogRog, chogKaal, chogLabh, chogUdveg, chogShubh},
	{chogChar, chogRog, chogKaal, chogLabh, chogUdveg, chogShubh, chogAmrit, chogChar},
	{chogKaal, chogLabh, chogUdveg, chogShubh, chogAmrit, chogChar, chogRog, chogKaal},
	{chogUdveg, chogShubh, chogAmrit, chogChar, chogRog, chogKaal, chogLabh, chogUdveg},
	{chogAmrit, chogChar, chogRog, chogKaal, chogLabh, chogUdveg, chogShubh, chogAmrit},
	{chogRog, chogKaal, chogLabh, chogUdveg, chogShubh, chogAmrit, chogChar, chogRog},
	{chogLabh, chogUdveg, chogShubh, chogAmrit, chogChar, chogRog, chogKaal, chogLabh},
}

// rahuKaalFraction is the start of Rahu Kaal as a fraction of the day span
// past sunrise, Sunday first.
var rahuKaalFraction = [7]float64{0.50, 0.125, 0.25, 0.375, 0.625, 0.75, 0.875}

// Fixed-fraction windows measured against the sunrise-sunset span.
const (
	eighthOfDay       = 0.125
	yamagandaFraction = 0.25
	gulikaFraction    = 0.625
	abhijitStart      = 0.45
	abhijitEnd        = 0.55
	vijayaStart       = 10.0 / 15.0
	vijayaEnd         = 11.0 / 15.0
	brahmaStartHours  = 1.6
	brahmaEndHours    = 0.8
	godhuliHalfHours  = 0.5
)
