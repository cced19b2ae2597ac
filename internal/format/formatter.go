// Package format renders hebcal values as display labels, in transliterated English or
// in Hebrew, from embedded go-i18n catalogs.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/hebcal"
	"golang.org/x/text/language"
)

// Formatter turns calendar values into labels. It never modifies the dates it is given.
type Formatter struct {
	// Hebrew selects Hebrew script and Hebrew numerals. It follows the catalog language.
	Hebrew bool

	// UseGershGershayim marks Hebrew numerals with ׳ and ״.
	UseGershGershayim bool

	// UseLongHebrewYears keeps the thousands in Hebrew years (ה׳ תשפ״ד instead of תשפ״ד).
	UseLongHebrewYears bool

	// UseFinalFormLetters ends round tens with final letters (5780 is תש״ף rather than תש״פ).
	UseFinalFormLetters bool

	lang      language.Tag
	localizer *i18n.Localizer
}

// New returns a formatter for lang using the embedded catalogs.
func New(lang string) *Formatter {
	return NewWithBundle(defaultBundle(), lang)
}

// NewWithBundle returns a formatter for the catalog of bundle closest to lang.
func NewWithBundle(bundle *i18n.Bundle, lang string) *Formatter {
	tag := Match(bundle, lang)
	base, _ := tag.Base()
	hebrew, _ := language.Hebrew.Base()
	return &Formatter{
		Hebrew:            base == hebrew,
		UseGershGershayim: true,
		lang:              tag,
		localizer:         i18n.NewLocalizer(bundle, tag.String()),
	}
}

// Language returns the catalog language in use.
func (f *Formatter) Language() language.Tag {
	return f.lang
}

// Label returns a plain catalog message by key.
func (f *Formatter) Label(key string) string {
	return f.localize(key, nil)
}

// Template renders a catalog message with data.
func (f *Formatter) Template(key string, data map[string]any) string {
	return f.localize(key, data)
}

// MonthName returns the name of month in year. In a leap year Adar is labelled Adar I.
func (f *Formatter) MonthName(year int, month hebcal.HebrewMonth) string {
	leap := hebcal.IsLeapYear(year)
	switch {
	case month == hebcal.Adar && leap:
		return f.adarLabel(config.TKeyMonthAdar1)
	case month == hebcal.AdarII:
		return f.adarLabel(config.TKeyMonthAdar2)
	}
	return f.Label(config.TKeyMonthPrefix + strings.ToLower(month.String()))
}

func (f *Formatter) adarLabel(key string) string {
	label := f.Label(key)
	if f.Hebrew && f.UseGershGershayim {
		label += geresh
	}
	return label
}

// Month returns the name of the month of d.
func (f *Formatter) Month(d hebcal.JewishDate) string {
	return f.MonthName(d.HebrewYear(), d.HebrewMonth())
}

// DayOfWeek returns the weekday of d, with Shabbos for Saturday.
func (f *Formatter) DayOfWeek(d hebcal.JewishDate) string {
	return f.Label(config.TKeyDowPrefix + strconv.Itoa(int(d.Weekday())))
}

// Date returns "26 Shevat, 5771", or "כ״ו שבט תשע״א" in Hebrew.
func (f *Formatter) Date(d hebcal.JewishDate) string {
	return f.Template(config.TKeyDateFormat, map[string]any{
		"Day":   f.number(d.HebrewDay()),
		"Month": f.Month(d),
		"Year":  f.number(d.HebrewYear()),
	})
}

// YomTov names the holiday of c, including the day of Chanukah. It is empty on
// an ordinary day.
func (f *Formatter) YomTov(c hebcal.JewishCalendar) string {
	yt := c.YomTov()
	if yt == hebcal.NoYomTov {
		return ""
	}
	if day, ok := c.DayOfChanukah(); ok {
		return f.Template(config.TKeyChanukahDay, map[string]any{"Day": f.number(day)})
	}
	return f.Label(config.TKeyYomTovPrefix + yt.String())
}

// RoshChodesh names the month being inaugurated, or is empty when c is not Rosh
// Chodesh. The 30th of a month belongs to the month that follows.
func (f *Formatter) RoshChodesh(c hebcal.JewishCalendar) string {
	if !c.IsRoshChodesh() {
		return ""
	}
	year, month := c.HebrewYear(), c.HebrewMonth()
	if c.HebrewDay() == 30 {
		month = month.Next(year)
	}
	return f.Template(config.TKeyRoshChodesh, map[string]any{"Month": f.MonthName(year, month)})
}

// Omer returns the count of the Omer, with Lag B'Omer for day 33 in English. It is
// empty outside the Omer.
func (f *Formatter) Omer(c hebcal.JewishCalendar) string {
	day, ok := c.DayOfOmer()
	if !ok {
		return ""
	}
	if day == 33 && !f.Hebrew {
		return f.Label(config.TKeyYomTovPrefix + hebcal.LagBaomer.String())
	}
	return f.Template(config.TKeyOmerDay, map[string]any{"Day": f.number(day)})
}

// ParshaName names a reading; NoParsha yields "".
func (f *Formatter) ParshaName(p hebcal.Parsha) string {
	if p == hebcal.NoParsha {
		return ""
	}
	return f.Label(config.TKeyParshaPrefix + p.String())
}

// Parsha names the weekly reading of c.
func (f *Formatter) Parsha(c hebcal.JewishCalendar) string {
	return f.ParshaName(c.Parsha())
}

// SpecialParsha names the special Shabbos of c.
func (f *Formatter) SpecialParsha(c hebcal.JewishCalendar) string {
	return f.ParshaName(c.SpecialShabbos())
}

// Kviah writes the year type in its traditional three letters: the weekday of Rosh
// Hashana, ח/כ/ש for the lengths of Cheshvan and Kislev, and the weekday of Pesach.
// The notation is Hebrew in every language.
func (f *Formatter) Kviah(year int) (string, error) {
	pesach, err := hebcal.FromHebrew(year, hebcal.Nissan, 15)
	if err != nil {
		return "", err
	}
	info := hebcal.YearInfo(year)

	plain := &Formatter{}
	rh, _ := plain.HebrewNumber(int(info.RoshHashanaDay) + 1)
	p, _ := plain.HebrewNumber(int(pesach.Weekday()) + 1)

	var kind string
	switch info.Kviah {
	case hebcal.Chaserim:
		kind = "ח"
	case hebcal.Shelaimim:
		kind = "ש"
	default:
		kind = "כ"
	}
	return rh + kind + p, nil
}

// DafBavli names the Bavli daf of c, or is empty before the first cycle.
func (f *Formatter) DafBavli(c hebcal.JewishCalendar) string {
	daf, ok := c.DafBavli()
	if !ok {
		return ""
	}
	return f.daf(config.TKeyBavliPrefix, daf)
}

// DafYerushalmi names the Yerushalmi daf of c. Yom Kippur and Tisha B'Av have no daf.
func (f *Formatter) DafYerushalmi(c hebcal.JewishCalendar) string {
	daf, ok := c.DafYerushalmi()
	if !ok {
		return f.Label(config.TKeyNoDafToday)
	}
	return f.daf(config.TKeyYerushalmiPrefix, daf)
}

func (f *Formatter) daf(prefix string, daf hebcal.Daf) string {
	return f.Template(config.TKeyDaf, map[string]any{
		"Tractate": f.Label(prefix + strconv.Itoa(daf.Tractate)),
		"Page":     f.number(daf.Page),
	})
}

// Molad announces the molad of month in year, in Jerusalem local mean time.
func (f *Formatter) Molad(year int, month hebcal.HebrewMonth) (string, error) {
	m, err := hebcal.MoladOf(year, month)
	if err != nil {
		return "", err
	}
	return f.Template(config.TKeyMolad, map[string]any{
		"Month":    f.MonthName(year, month),
		"Weekday":  f.DayOfWeek(m.Date),
		"Hours":    m.Hours,
		"Minutes":  fmt.Sprintf("%02d", m.Minutes),
		"Chalakim": m.Chalakim,
	}), nil
}
