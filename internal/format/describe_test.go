package format_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-luach/internal/format"
	"github.com/tartampluch/go-luach/internal/hebcal"
)

func TestDescribe_Shabbos(t *testing.T) {
	en := format.New("en")

	// 24 Tishrei 5785, Shabbos Bereshis and Shabbos Mevorchim of Cheshvan.
	info := en.Describe(calendar(5785, hebcal.Tishrei, 24))

	assert.Equal(t, "2024-10-26", info.Gregorian)
	assert.Equal(t, format.HebrewDate{Year: 5785, Month: 7, Day: 24, MonthName: "Tishrei"}, info.Hebrew)
	assert.Equal(t, "Shabbos", info.DayOfWeek)
	assert.Equal(t, "Bereshis", info.Parsha)
	assert.Equal(t, "Noach", info.UpcomingParsha)
	assert.True(t, info.ShabbosMevorchim)
	assert.False(t, info.Israel)
	assert.Empty(t, info.YomTov)
	assert.Empty(t, info.YomTovKey)
	assert.Zero(t, info.OmerDay)
	assert.NotEmpty(t, info.DafBavli)
	assert.NotEmpty(t, info.Kviah)
}

func TestDescribe_LagBaomer(t *testing.T) {
	en := format.New("en")

	info := en.Describe(calendar(5785, hebcal.Iyar, 18))

	assert.Equal(t, "2025-05-16", info.Gregorian)
	assert.Equal(t, "Lag B'Omer", info.YomTov)
	assert.Equal(t, hebcal.LagBaomer.String(), info.YomTovKey)
	assert.Equal(t, 33, info.OmerDay)
	assert.NotEmpty(t, info.Omer)
	assert.Empty(t, info.Parsha)
	assert.False(t, info.AssurBemelacha)
}

func TestDescribe_YomKippur(t *testing.T) {
	he := format.New("he")

	info := he.Describe(hebcal.NewCalendar(hebcal.MustFromHebrew(5784, hebcal.Tishrei, 10), true))

	assert.True(t, info.Israel)
	assert.True(t, info.Taanis)
	assert.True(t, info.AssurBemelacha)
	assert.Equal(t, he.YomTov(calendar(5784, hebcal.Tishrei, 10)), info.YomTov)
}

func TestDescribe_JSONOmitsEmptyLabels(t *testing.T) {
	en := format.New("en")

	// A plain Tuesday: 2025-01-14, 14 Teves 5785.
	info := en.Describe(hebcal.NewCalendar(hebcal.MustFromGregorian(2025, 1, 14), false))
	raw, err := json.Marshal(info)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	assert.NotContains(t, fields, "yom_tov")
	assert.NotContains(t, fields, "parsha")
	assert.NotContains(t, fields, "omer_day")
	assert.Contains(t, fields, "upcoming_parsha")
	assert.Contains(t, fields, "kviah")
	assert.Equal(t, "2025-01-14", fields["gregorian"])
}
