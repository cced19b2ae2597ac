// Package engine builds iCalendar feeds from the Hebrew calendar: daily events such as
// holidays, readings and Daf Yomi, and anniversaries read from vCards or a TOML file.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/format"
	"github.com/tartampluch/go-luach/internal/hebcal"
)

// SyncConfig contains all parameters required to collect anniversaries.
type SyncConfig struct {
	Mode            string // config.SourceModeLocal, config.SourceModeWeb or none
	LocalPath       string // Path to the .vcf file
	WebURL          string // CardDAV or WebDAV URL
	WebUser         string // HTTP Basic Auth Username
	WebPass         string // HTTP Basic Auth Password
	AfterSunset     bool   // vCard birthdays happened after sunset (next Hebrew day)
	Anniversaries   string // Optional TOML anniversaries file
	ReminderTrigger string // ISO8601 duration string (e.g., "-P1D")
}

// Generator is the core service responsible for fetching and converting data.
type Generator struct {
	Clock     hebcal.Clock      // Interface for time mocking.
	Fetcher   VCardFetcher      // Interface for network abstraction.
	Formatter *format.Formatter // Labels; English when nil.
}

// syncStats counts what a sync found, for logging.
type syncStats struct {
	processed, withBday, today int
}

// RunSync collects anniversaries from the configured vCard source and anniversaries file.
// It returns the ICS data, the anniversaries sorted as read, the count of anniversaries
// falling today, and any error.
func (g *Generator) RunSync(ctx context.Context, cfg SyncConfig) ([]byte, []Anniversary, int, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	entries, events, stats, err := g.collect(ctx, cfg)
	if err != nil {
		return nil, nil, 0, err
	}

	ics, err := g.encode(events)
	if err != nil {
		return nil, nil, 0, err
	}

	g.logSuccess(stats)
	log.Debug(config.MsgSyncFinished, config.LogKeyDuration, time.Since(start).Milliseconds())
	return ics, entries, stats.today, nil
}

// collect reads every anniversary source and projects them onto the Hebrew years around today.
func (g *Generator) collect(ctx context.Context, cfg SyncConfig) ([]Anniversary, []*ical.Event, syncStats, error) {
	var stats syncStats

	today, err := hebcal.Now(g.Clock)
	if err != nil {
		return nil, nil, stats, fmt.Errorf("%s: %w", config.ErrDateRange, err)
	}

	var sources []Source
	if cfg.Mode != config.SourceModeNone {
		reader, err := g.acquireStream(ctx, cfg)
		if err != nil {
			// If context error occurred during acquisition, return it directly.
			if ctx.Err() != nil {
				return nil, nil, stats, ctx.Err()
			}
			return nil, nil, stats, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}
		// Best effort close. Errors in Close() for read-only files are rarely actionable here.
		defer func() { _ = reader.Close() }()

		if err := ctx.Err(); err != nil {
			return nil, nil, stats, err
		}

		sources, err = readVCards(ctx, reader, cfg.AfterSunset, &stats)
		if err != nil {
			return nil, nil, stats, err
		}
	}

	if cfg.Anniversaries != "" {
		extra, err := LoadAnniversaries(cfg.Anniversaries)
		if err != nil {
			return nil, nil, stats, err
		}
		stats.withBday += len(extra)
		sources = append(sources, extra...)
	}

	var (
		entries []Anniversary
		events  []*ical.Event
	)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, nil, stats, err
		}
		entry, evts, isToday := g.anniversaryEvents(src, today, cfg.ReminderTrigger)
		if isToday {
			stats.today++
			slog.Info(config.MsgAnniversaryDay,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, src.Name,
				config.LogKeyKind, src.Kind,
			)
		}
		entries = append(entries, entry)
		events = append(events, evts...)
	}
	return entries, events, stats, nil
}

// acquireStream opens the appropriate data source based on configuration.
func (g *Generator) acquireStream(ctx context.Context, cfg SyncConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return g.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// readVCards turns every card with a full BDAY into a birthday source. Malformed cards and
// birthdays without a year are skipped: the Hebrew date depends on the year.
func readVCards(ctx context.Context, r io.Reader, afterSunset bool, stats *syncStats) ([]Source, error) {
	decoder := vcard.NewDecoder(r)
	var sources []Source

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Log error but continue to next card to maximize data recovery
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		stats.processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birthDate, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}
		if !yearKnown {
			slog.Debug(config.MsgSkippedNoYear,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}

		origin, err := hebcal.FromTime(birthDate)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value,
				config.LogKeyError, err)
			continue
		}
		if afterSunset {
			origin = origin.AddDays(1)
		}
		stats.withBday++

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		sources = append(sources, Source{Name: cleanName(name), Kind: config.KindBirthday, Origin: origin})
	}
	return sources, nil
}

// -----------------------------------------------------------------------------
// iCalendar helpers
// -----------------------------------------------------------------------------

// newCalendar returns an empty VCALENDAR with the standard headers.
func newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)
	return cal
}

// encode stamps and serializes events. An empty event list yields the stub calendar so that
// clients never see an invalid feed.
func (g *Generator) encode(events []*ical.Event) ([]byte, error) {
	if len(events) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	cal := newCalendar()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(g.Clock.Now().UTC())

	for _, e := range events {
		e.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, e.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// newEvent returns an all-day, non-blocking event on the civil day of d.
func newEvent(kind, key, summary string, d hebcal.JewishDate, loc *time.Location) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, eventUID(kind, key))
	event.Props.SetText(config.PropSummary, summary)
	event.Props.SetText(config.PropCategories, kind)
	event.Props.SetText(config.PropTransp, config.TranspFree)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(d.Time(loc))
	event.Props.Set(dtStartProp)
	return event
}

// eventUID is stable across rebuilds so that clients update events in place.
func eventUID(kind, key string) string {
	name := fmt.Sprintf(config.FormatUIDName, kind, key, config.UIDSalt)
	return fmt.Sprintf(config.FormatUID, uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String(), config.ICalDomain)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

func (g *Generator) formatter() *format.Formatter {
	if g.Formatter == nil {
		return format.New(config.DefaultLanguage)
	}
	return g.Formatter
}

func (g *Generator) location() *time.Location {
	return g.Clock.Now().Location()
}

// logSuccess logs the final statistics of the generation process.
func (g *Generator) logSuccess(stats syncStats) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
}

// parseDate handles various vCard date formats.
func parseDate(value string) (time.Time, bool, error) {
	// Full dates (Year known)
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (Year unknown) - vCard specific
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
