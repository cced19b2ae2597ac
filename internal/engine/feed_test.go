package engine_test

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/engine"
	"github.com/tartampluch/go-luach/internal/format"
	"github.com/tartampluch/go-luach/internal/hebcal"
)

func buildFeed(t *testing.T, gen *engine.Generator, cfg engine.FeedConfig) (string, int) {
	t.Helper()
	ics, n, err := gen.BuildFeed(context.Background(), cfg)
	require.NoError(t, err)
	return string(ics), n
}

func TestBuildFeed_ShabbosBereshis(t *testing.T) {
	gen := &engine.Generator{Clock: day(2024, time.October, 20)}

	ics, n := buildFeed(t, gen, engine.FeedConfig{
		Start:      hebcal.MustFromGregorian(2024, 10, 26),
		Days:       1,
		Categories: engine.AllCategories(),
	})

	assert.Contains(t, ics, "SUMMARY:Parshas Bereshis")
	assert.Contains(t, ics, "CATEGORIES:"+config.EventKindParsha)
	assert.Contains(t, ics, "CATEGORIES:"+config.EventKindDafBavli)
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20241026")
	assert.Contains(t, ics, "TRANSP:TRANSPARENT")
	// 24 Tishrei is Shabbos Mevorchim for Cheshvan.
	assert.Contains(t, ics, "SUMMARY:Molad Cheshvan")
	assert.Equal(t, n, strings.Count(ics, "BEGIN:VEVENT"))
}

func TestBuildFeed_CategoriesFilter(t *testing.T) {
	gen := &engine.Generator{Clock: day(2024, time.October, 1)}
	yomKippur := hebcal.MustFromGregorian(2024, 10, 12)

	ics, n := buildFeed(t, gen, engine.FeedConfig{
		Start:      yomKippur,
		Days:       1,
		Categories: engine.Categories{YomTov: true},
	})
	assert.Equal(t, 1, n)
	assert.Contains(t, ics, "SUMMARY:Yom Kippur")

	// There is no Yerushalmi daf on Yom Kippur.
	ics, n = buildFeed(t, gen, engine.FeedConfig{
		Start:      yomKippur,
		Days:       1,
		Categories: engine.Categories{DafYerushalmi: true},
	})
	assert.Equal(t, 0, n)
	assert.Equal(t, config.StubVCalendar, ics)
}

func TestBuildFeed_LagBaomerOnce(t *testing.T) {
	gen := &engine.Generator{Clock: day(2025, time.May, 1)}

	ics, n := buildFeed(t, gen, engine.FeedConfig{
		Start:      hebcal.MustFromGregorian(2025, 5, 16),
		Days:       1,
		Categories: engine.Categories{YomTov: true, Omer: true},
	})
	assert.Equal(t, 1, n)
	assert.Contains(t, ics, "SUMMARY:Lag B'Omer")

	_, n = buildFeed(t, gen, engine.FeedConfig{
		Start:      hebcal.MustFromGregorian(2025, 5, 16),
		Days:       1,
		Categories: engine.Categories{Omer: true},
	})
	assert.Equal(t, 1, n, "The Omer count stands alone when holidays are off")
}

func TestBuildFeed_Hebrew(t *testing.T) {
	gen := &engine.Generator{
		Clock:     day(2024, time.October, 20),
		Formatter: format.New(config.LangHebrew),
	}

	ics, _ := buildFeed(t, gen, engine.FeedConfig{
		Start:      hebcal.MustFromGregorian(2024, 10, 26),
		Days:       1,
		Categories: engine.Categories{Parsha: true},
	})
	assert.Contains(t, ics, "SUMMARY:פרשת בראשית")
}

func TestBuildFeed_StableUIDs(t *testing.T) {
	cfg := engine.FeedConfig{
		Start:      hebcal.MustFromGregorian(2025, 1, 1),
		Days:       30,
		Categories: engine.AllCategories(),
	}
	uid := regexp.MustCompile(`(?m)^UID:.*$`)

	first, _ := buildFeed(t, &engine.Generator{Clock: day(2025, time.January, 1)}, cfg)
	second, _ := buildFeed(t, &engine.Generator{Clock: day(2025, time.January, 2)}, cfg)

	firstUIDs := uid.FindAllString(first, -1)
	require.NotEmpty(t, firstUIDs)
	assert.Equal(t, firstUIDs, uid.FindAllString(second, -1), "UIDs must not depend on the build time")

	seen := make(map[string]bool)
	for _, u := range firstUIDs {
		assert.False(t, seen[u], "Duplicate UID %s", u)
		seen[u] = true
	}
}

func TestBuildFeed_WithAnniversaries(t *testing.T) {
	path := writeFile(t, "anniversaries.toml", anniversariesTOML)
	gen := &engine.Generator{Clock: day(2025, time.January, 1)}

	ics, _ := buildFeed(t, gen, engine.FeedConfig{
		Start:      hebcal.MustFromGregorian(2025, 1, 1),
		Days:       1,
		Categories: engine.Categories{RoshChodesh: true},
		Sync:       &engine.SyncConfig{Anniversaries: path},
	})

	assert.Contains(t, ics, "SUMMARY:Rosh Chodesh Teves")
	assert.Contains(t, ics, "SUMMARY:Yahrzeit: Sarah Imenu (2)")
}

func TestBuildFeed_Errors(t *testing.T) {
	gen := &engine.Generator{Clock: day(2025, time.January, 1)}

	for _, days := range []int{0, config.MaxFeedDays + 1} {
		_, _, err := gen.BuildFeed(context.Background(), engine.FeedConfig{
			Start: hebcal.MustFromGregorian(2025, 1, 1),
			Days:  days,
		})
		assert.Error(t, err, "days=%d", days)
	}

	_, _, err := gen.BuildFeed(context.Background(), engine.FeedConfig{
		Start: hebcal.MustFromGregorian(2025, 1, 1),
		Days:  1,
		Sync:  &engine.SyncConfig{Anniversaries: "/nonexistent/anniversaries.toml"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrAnnivRead)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = gen.BuildFeed(ctx, engine.FeedConfig{Start: hebcal.MustFromGregorian(2025, 1, 1), Days: 10})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCategoriesFrom(t *testing.T) {
	cats := engine.CategoriesFrom(config.FeedSettings{YomTov: true, Molad: true})
	assert.Equal(t, engine.Categories{YomTov: true, Molad: true}, cats)
}
