package hebcal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-luach/internal/hebcal"
)

func TestHebrewBirthday(t *testing.T) {
	tests := []struct {
		name  string
		birth hebcal.JewishDate
		year  int
		want  hebcal.JewishDate
	}{
		{"Ordinary month", hebcal.MustFromHebrew(5750, hebcal.Sivan, 6), 5784, hebcal.MustFromHebrew(5784, hebcal.Sivan, 6)},
		{"AdarII into common year", hebcal.MustFromHebrew(5784, hebcal.AdarII, 14), 5785, hebcal.MustFromHebrew(5785, hebcal.Adar, 14)},
		{"AdarII into leap year", hebcal.MustFromHebrew(5784, hebcal.AdarII, 14), 5787, hebcal.MustFromHebrew(5787, hebcal.AdarII, 14)},
		{"Common Adar into leap year", hebcal.MustFromHebrew(5783, hebcal.Adar, 10), 5784, hebcal.MustFromHebrew(5784, hebcal.AdarII, 10)},
		{"Adar I 30 rolls over", hebcal.MustFromHebrew(5784, hebcal.Adar, 30), 5785, hebcal.MustFromHebrew(5785, hebcal.Nissan, 1)},
		{"Adar I 30 in a leap year", hebcal.MustFromHebrew(5784, hebcal.Adar, 30), 5787, hebcal.MustFromHebrew(5787, hebcal.Adar, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hebcal.HebrewBirthday(tt.birth, tt.year)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestYahrzeit(t *testing.T) {
	tests := []struct {
		name  string
		death hebcal.JewishDate
		year  int
		want  hebcal.JewishDate
	}{
		{"Ordinary month", hebcal.MustFromHebrew(5770, hebcal.Tammuz, 3), 5784, hebcal.MustFromHebrew(5784, hebcal.Tammuz, 3)},
		// 5781 has a short Cheshvan, so the yahrzeit stays on the last day of Cheshvan.
		{"Cheshvan 30, short year after", hebcal.MustFromHebrew(5780, hebcal.Cheshvan, 30), 5781, hebcal.MustFromHebrew(5781, hebcal.Cheshvan, 29)},
		{"Cheshvan 30, short year after, long target", hebcal.MustFromHebrew(5780, hebcal.Cheshvan, 30), 5783, hebcal.MustFromHebrew(5783, hebcal.Cheshvan, 30)},
		{"Cheshvan 30, long year after", hebcal.MustFromHebrew(5779, hebcal.Cheshvan, 30), 5781, hebcal.MustFromHebrew(5781, hebcal.Kislev, 1)},
		{"Kislev 30, short year after", hebcal.MustFromHebrew(5780, hebcal.Kislev, 30), 5784, hebcal.MustFromHebrew(5784, hebcal.Kislev, 29)},
		{"Kislev 30, full year after", hebcal.MustFromHebrew(5782, hebcal.Kislev, 30), 5784, hebcal.MustFromHebrew(5784, hebcal.Teves, 1)},
		{"AdarII into common year", hebcal.MustFromHebrew(5784, hebcal.AdarII, 14), 5785, hebcal.MustFromHebrew(5785, hebcal.Adar, 14)},
		{"Adar I 30 into common year", hebcal.MustFromHebrew(5784, hebcal.Adar, 30), 5785, hebcal.MustFromHebrew(5785, hebcal.Shevat, 30)},
		{"Adar I 30 into leap year", hebcal.MustFromHebrew(5784, hebcal.Adar, 30), 5787, hebcal.MustFromHebrew(5787, hebcal.Adar, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hebcal.Yahrzeit(tt.death, tt.year)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestAnniversary_InvalidYear(t *testing.T) {
	d := hebcal.MustFromHebrew(5784, hebcal.Nissan, 1)

	_, err := hebcal.HebrewBirthday(d, 0)
	assert.ErrorIs(t, err, hebcal.ErrInvalidYear)

	_, err = hebcal.Yahrzeit(d, -1)
	assert.ErrorIs(t, err, hebcal.ErrInvalidYear)
}
