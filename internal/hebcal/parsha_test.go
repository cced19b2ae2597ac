package hebcal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-luach/internal/hebcal"
)

func gregorianDay(y, m, d int, inIsrael bool) hebcal.JewishCalendar {
	return hebcal.NewCalendar(hebcal.MustFromGregorian(y, m, d), inIsrael)
}

func TestParsha_KnownShabbosos(t *testing.T) {
	tests := []struct {
		name     string
		y, m, d  int
		diaspora hebcal.Parsha
		israel   hebcal.Parsha
	}{
		{"Bereshis 5785", 2024, 10, 26, hebcal.Bereshis, hebcal.Bereshis},
		{"Vayigash 5784", 2023, 12, 23, hebcal.Vayigash, hebcal.Vayigash},
		{"Shabbos Chol Hamoed", 2025, 4, 19, hebcal.NoParsha, hebcal.NoParsha},
		{"Doubled reading", 2025, 5, 3, hebcal.TazriaMetzora, hebcal.TazriaMetzora},
		{"Eighth day of Pesach on Shabbos", 2019, 4, 27, hebcal.NoParsha, hebcal.AchreiMos},
		{"Nitzavim alone", 2025, 9, 20, hebcal.Nitzavim, hebcal.Nitzavim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.diaspora, gregorianDay(tt.y, tt.m, tt.d, false).Parsha())
			assert.Equal(t, tt.israel, gregorianDay(tt.y, tt.m, tt.d, true).Parsha())
		})
	}
}

func TestParsha_Weekday(t *testing.T) {
	assert.Equal(t, hebcal.NoParsha, gregorianDay(2024, 10, 24, false).Parsha())
	assert.Equal(t, hebcal.Bereshis, gregorianDay(2024, 10, 24, false).UpcomingParsha())
}

func TestUpcomingParsha_SkipsHolidays(t *testing.T) {
	// Shabbos Chol Hamoed Pesach 5785 has no weekly reading; the next is Shmini.
	assert.Equal(t, hebcal.Shmini, gregorianDay(2025, 4, 14, false).UpcomingParsha())
}

func TestParsha_DefinedForEveryYear(t *testing.T) {
	// Every Shabbos of two centuries resolves in both schedules without panicking.
	d := hebcal.MustFromGregorian(1900, 1, 6)
	end := hebcal.MustFromGregorian(2100, 1, 1)
	require.True(t, d.IsShabbos())

	for d.Before(end) {
		for _, israel := range []bool{false, true} {
			assert.NotPanics(t, func() { hebcal.NewCalendar(d, israel).Parsha() })
		}
		d = d.AddDays(7)
	}
}

func TestSpecialShabbos(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		want    hebcal.Parsha
	}{
		{"Zachor", 2024, 3, 23, hebcal.Zachor},
		{"Hagadol", 2024, 4, 20, hebcal.Hagadol},
		{"Shuva", 2024, 10, 5, hebcal.Shuva},
		{"Ordinary", 2024, 10, 26, hebcal.NoParsha},
		{"Weekday", 2024, 3, 21, hebcal.NoParsha},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gregorianDay(tt.y, tt.m, tt.d, false).SpecialShabbos())
		})
	}
}
