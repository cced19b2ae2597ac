package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/hebcal"
)

// Categories selects which daily events a feed carries.
type Categories struct {
	YomTov        bool
	RoshChodesh   bool
	Parsha        bool
	Omer          bool
	DafBavli      bool
	DafYerushalmi bool
	Molad         bool
}

// AllCategories enables every daily event.
func AllCategories() Categories {
	return Categories{true, true, true, true, true, true, true}
}

// CategoriesFrom maps the feed settings onto Categories.
func CategoriesFrom(s config.FeedSettings) Categories {
	return Categories{
		YomTov:        s.YomTov,
		RoshChodesh:   s.RoshChodesh,
		Parsha:        s.Parsha,
		Omer:          s.Omer,
		DafBavli:      s.DafBavli,
		DafYerushalmi: s.DafYerushalmi,
		Molad:         s.Molad,
	}
}

// FeedConfig describes a calendar feed: a range of days, the events to include and,
// optionally, the anniversaries to merge in.
type FeedConfig struct {
	Start      hebcal.JewishDate
	Days       int
	Israel     bool
	Categories Categories

	// Sync adds the anniversaries of RunSync to the feed when set.
	Sync *SyncConfig
}

// BuildFeed renders cfg as an iCalendar document. It returns the document and the
// number of events in it.
func (g *Generator) BuildFeed(ctx context.Context, cfg FeedConfig) ([]byte, int, error) {
	start := time.Now()
	if cfg.Days < 1 || cfg.Days > config.MaxFeedDays {
		return nil, 0, fmt.Errorf("%s: %s, got %d", config.ErrFeedBuild, config.ErrFeedRange, cfg.Days)
	}

	var events []*ical.Event
	c := hebcal.NewCalendar(cfg.Start, cfg.Israel)
	for i := 0; i < cfg.Days; i++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		events = append(events, g.dayEvents(c, cfg.Categories)...)
		c = c.AddDays(1)
	}

	if cfg.Sync != nil {
		_, anniversaries, _, err := g.collect(ctx, *cfg.Sync)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", config.ErrFeedBuild, err)
		}
		events = append(events, anniversaries...)
	}

	ics, err := g.encode(events)
	if err != nil {
		return nil, 0, err
	}

	slog.Info(config.MsgFeedBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyFrom, cfg.Start.String(),
		config.LogKeyDays, cfg.Days,
		config.LogKeyEvents, len(events),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return ics, len(events), nil
}

// dayEvents lists the selected events of one day.
func (g *Generator) dayEvents(c hebcal.JewishCalendar, cats Categories) []*ical.Event {
	f := g.formatter()
	loc := g.location()
	key := fmt.Sprintf("%04d-%02d-%02d", c.GregorianYear(), c.GregorianMonth(), c.GregorianDay())

	var events []*ical.Event
	add := func(kind, summary string) {
		if summary == "" {
			return
		}
		event := newEvent(kind, key, summary, c.JewishDate, loc)
		event.Props.SetText(config.PropDescription, f.Date(c.JewishDate))
		events = append(events, event)
	}

	yomTov := ""
	if cats.YomTov {
		yomTov = f.YomTov(c)
		add(config.EventKindYomTov, yomTov)
	}
	if cats.RoshChodesh {
		add(config.EventKindRoshChodesh, f.RoshChodesh(c))
	}
	if cats.Parsha && c.IsShabbos() {
		if name := f.Parsha(c); name != "" {
			add(config.EventKindParsha, f.Template(config.TKeyEvtParsha, map[string]any{"Parsha": name}))
		}
		if name := f.SpecialParsha(c); name != "" {
			add(config.EventKindSpecialParsha, f.Template(config.TKeyEvtSpecialShabbos, map[string]any{"Parsha": name}))
		}
	}
	// Lag B'Omer is already named by the holiday event.
	if omer := f.Omer(c); cats.Omer && omer != yomTov {
		add(config.EventKindOmer, omer)
	}
	if cats.DafBavli {
		if daf := f.DafBavli(c); daf != "" {
			add(config.EventKindDafBavli, f.Template(config.TKeyEvtDafBavli, map[string]any{"Daf": daf}))
		}
	}
	if cats.DafYerushalmi {
		if _, ok := c.DafYerushalmi(); ok {
			add(config.EventKindDafYerushalmi, f.Template(config.TKeyEvtDafYerushalmi, map[string]any{"Daf": f.DafYerushalmi(c)}))
		}
	}
	if cats.Molad && c.IsShabbosMevorchim() {
		year := c.HebrewYear()
		if molad, err := f.Molad(year, c.HebrewMonth().Next(year)); err == nil {
			add(config.EventKindMolad, molad)
		}
	}
	return events
}
