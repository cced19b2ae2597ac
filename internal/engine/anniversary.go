package engine

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/emersion/go-ical"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pelletier/go-toml/v2"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/hebcal"
)

// Source is one remembered date: a birth or a death, fixed on the Hebrew calendar.
type Source struct {
	Name   string
	Kind   string // config.KindBirthday or config.KindYahrzeit
	Origin hebcal.JewishDate
}

// Anniversary is the summary of a Source as seen from today, for listings.
type Anniversary struct {
	// UID is stable across refreshes.
	UID string

	Name string
	Kind string

	// Origin is the Hebrew date of the birth or death.
	Origin hebcal.JewishDate

	// Next is the coming occurrence, today included. HasNext is false when the origin
	// lies more than a year ahead.
	Next    hebcal.JewishDate
	HasNext bool

	// CountNext is the age (birthday) or the number of years (yahrzeit) at Next.
	CountNext int
}

// anniversaryFile mirrors the TOML layout:
//
//	[[anniversary]]
//	name = "Sarah"
//	date = 1950-03-14
//	kind = "yahrzeit"
//	after_sunset = true
//
// A Hebrew date ("5710-12-25", months counted from Nissan) may be given as hebrew
// instead of date.
type anniversaryFile struct {
	Anniversary []anniversaryRecord `toml:"anniversary"`
}

type anniversaryRecord struct {
	Name        string          `toml:"name"`
	Date        *toml.LocalDate `toml:"date"`
	Hebrew      string          `toml:"hebrew"`
	Kind        string          `toml:"kind"`
	AfterSunset bool            `toml:"after_sunset"`
}

// LoadAnniversaries reads the anniversaries file at path.
func LoadAnniversaries(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrAnnivRead, err)
	}
	defer func() { _ = f.Close() }()
	return ParseAnniversaries(f)
}

// ParseAnniversaries decodes an anniversaries document. Unknown keys are rejected so that
// typos do not silently drop a date.
func ParseAnniversaries(r io.Reader) ([]Source, error) {
	var file anniversaryFile
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&file); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrAnnivParse, err)
	}

	sources := make([]Source, 0, len(file.Anniversary))
	for i, rec := range file.Anniversary {
		src, err := rec.source()
		if err != nil {
			return nil, fmt.Errorf("%s: entry %d (%q): %w", config.ErrAnnivParse, i+1, rec.Name, err)
		}
		src.Name = cleanName(src.Name)
		sources = append(sources, src)
	}
	return sources, nil
}

func (rec anniversaryRecord) source() (Source, error) {
	kind := rec.Kind
	if kind == "" {
		kind = config.KindBirthday
	}
	if kind != config.KindBirthday && kind != config.KindYahrzeit {
		return Source{}, fmt.Errorf("%s: %q", config.ErrAnnivKind, rec.Kind)
	}

	var (
		origin hebcal.JewishDate
		err    error
	)
	switch {
	case rec.Date != nil:
		origin, err = hebcal.FromGregorian(rec.Date.Year, rec.Date.Month, rec.Date.Day)
		if err == nil && rec.AfterSunset {
			origin = origin.AddDays(1)
		}
	case rec.Hebrew != "":
		origin, err = ParseHebrewDate(rec.Hebrew)
	default:
		err = fmt.Errorf("%s: missing date", config.ErrDateParse)
	}
	if err != nil {
		return Source{}, err
	}
	return Source{Name: rec.Name, Kind: kind, Origin: origin}, nil
}

// namePolicy strips every tag from names coming from address books and files.
var namePolicy = bluemonday.StrictPolicy()

// cleanName removes markup from a display name. The policy escapes text as HTML, which
// iCalendar does not want, so entities are decoded again.
func cleanName(name string) string {
	clean := strings.TrimSpace(html.UnescapeString(namePolicy.Sanitize(name)))
	if clean == "" {
		return config.FallbackName
	}
	return clean
}

// ParseHebrewDate reads "year-month-day" with months numbered from Nissan (1) to Adar II (13).
func ParseHebrewDate(value string) (hebcal.JewishDate, error) {
	var y, m, d int
	if _, err := fmt.Sscanf(value, config.FormatHebrewDateInput, &y, &m, &d); err != nil {
		return hebcal.JewishDate{}, fmt.Errorf("%s: %q: %w", config.ErrDateParse, value, err)
	}
	return hebcal.FromHebrew(y, hebcal.HebrewMonth(m), d)
}

// anniversaryEvents projects src onto the previous, current and next Hebrew years. Nothing
// is generated before a birth, nor for the year of a death.
func (g *Generator) anniversaryEvents(src Source, today hebcal.JewishDate, reminderTrigger string) (Anniversary, []*ical.Event, bool) {
	f := g.formatter()
	loc := g.location()
	kind := eventKind(src.Kind)
	originYear := src.Origin.HebrewYear()

	entry := Anniversary{
		UID:    eventUID(kind, fmt.Sprintf(config.FormatAnnivKey, src.Name, src.Origin, 0)),
		Name:   src.Name,
		Kind:   src.Kind,
		Origin: src.Origin,
	}

	var events []*ical.Event
	isToday := false
	currentYear := today.HebrewYear()

	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		var (
			occ hebcal.JewishDate
			err error
		)
		if src.Kind == config.KindYahrzeit {
			if y <= originYear {
				continue
			}
			occ, err = hebcal.Yahrzeit(src.Origin, y)
		} else {
			if y < originYear {
				continue
			}
			occ, err = hebcal.HebrewBirthday(src.Origin, y)
		}
		if err != nil {
			continue
		}

		count := y - originYear
		summary := g.anniversarySummary(src, count)
		event := newEvent(kind, fmt.Sprintf(config.FormatAnnivKey, src.Name, src.Origin, y), summary, occ, loc)
		event.Props.SetText(config.PropDescription, f.Date(occ))
		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, summary)
		}
		events = append(events, event)

		if occ.Equal(today) {
			isToday = true
		}
		if !entry.HasNext && !occ.Before(today) {
			entry.Next, entry.HasNext, entry.CountNext = occ, true, count
		}
	}
	return entry, events, isToday
}

func (g *Generator) anniversarySummary(src Source, count int) string {
	f := g.formatter()
	if src.Kind == config.KindYahrzeit {
		return f.Template(config.TKeyEvtYahrzeitYears, map[string]any{"Name": src.Name, "Years": count})
	}
	if count > 0 {
		return f.Template(config.TKeyEvtBirthdayAge, map[string]any{"Name": src.Name, "Age": count})
	}
	return f.Template(config.TKeyEvtBirthday, map[string]any{"Name": src.Name})
}

func eventKind(kind string) string {
	if kind == config.KindYahrzeit {
		return config.EventKindYahrzeit
	}
	return config.EventKindBirthday
}
