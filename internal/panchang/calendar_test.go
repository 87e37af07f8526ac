package panchang

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRashi(t *testing.T) {
	assert.Equal(t, "Mesha", Rashi(0))
	assert.Equal(t, "Mesha", Rashi(29.99))
	assert.Equal(t, "Vrishabha", Rashi(30))
	assert.Equal(t, "Makara", Rashi(275))
	assert.Equal(t, "Meena", Rashi(-1))
}

func TestLunarMonthIndex(t *testing.T) {
	tests := []struct {
		name      string
		sun, moon float64
		want      string
	}{
		{"new moon in meena opens chaitra", 350, 350, "Chaitra"},
		{"waxing after meena new moon", 5, 125, "Chaitra"},
		{"new moon in vrishabha", 40, 40, "Jyeshtha"},
		{"new moon in dhanu", 245, 245, "Pausha"},
		{"late in phalguna", 330, 318, "Phalguna"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := LunarMonthIndex(Positions{SunLongitude: tt.sun, MoonLongitude: tt.moon})
			assert.Equal(t, tt.want, lunarMonthNames[idx])
		})
	}
}

func TestVikramAndShakaSamvat(t *testing.T) {
	tests := []struct {
		name       string
		date       time.Time
		lunarMonth int
		wantVikram int
	}{
		{"january in margashirsha", time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC), 8, 2080},
		{"january in pausha", time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC), 9, 2080},
		{"march in phalguna", time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC), 11, 2080},
		{"april after chaitra", time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC), 0, 2081},
		{"october", time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC), 6, 2081},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vikram := VikramSamvat(tt.date, tt.lunarMonth)
			assert.Equal(t, tt.wantVikram, vikram)
			assert.Equal(t, tt.wantVikram-135, ShakaSamvat(vikram))
		})
	}
}

func TestRitu(t *testing.T) {
	assert.Equal(t, "Vasanta", Ritu(345))
	assert.Equal(t, "Vasanta", Ritu(15))
	assert.Equal(t, "Grishma", Ritu(45))
	assert.Equal(t, "Hemanta", Ritu(255))
	assert.Equal(t, "Shishira", Ritu(280))
}

func TestAyana(t *testing.T) {
	assert.Equal(t, AyanaUttarayana, Ayana(280))
	assert.Equal(t, AyanaUttarayana, Ayana(80))
	assert.Equal(t, AyanaDakshinayana, Ayana(100))
	assert.Equal(t, AyanaDakshinayana, Ayana(260))
}

func TestAfflictions(t *testing.T) {
	assert.True(t, Panchak(300))
	assert.True(t, Panchak(359))
	assert.False(t, Panchak(299.9))
	assert.False(t, Panchak(10))

	assert.True(t, Bhadra("Vishti"))
	assert.False(t, Bhadra("Bava"))
}

func TestFestivals(t *testing.T) {
	tests := []struct {
		name  string
		month int
		tithi int
		sun   float64
		want  []string
	}{
		{"diwali", 6, 30, 190.5, []string{"Diwali", "Amavasya"}},
		{"plain ekadashi", 0, 11, 45, []string{"Ekadashi"}},
		{"krishna ekadashi", 2, 26, 75, []string{"Ekadashi"}},
		{"makar sankranti", 9, 2, 270.4, []string{"Makar Sankranti"}},
		{"other sankranti", 1, 5, 30.2, []string{"Vrishabha Sankranti"}},
		{"holi eve", 11, 15, 335, []string{"Holika Dahan", "Purnima"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Festivals(tt.month, tt.tithi, tt.sun))
		})
	}
}

func TestFestivals_NeverNil(t *testing.T) {
	got := Festivals(2, 4, 100)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
