package format

import (
	"fmt"

	"github.com/tartampluch/go-luach/internal/hebcal"
)

// HebrewDate is the numeric Hebrew date, months counted from Nissan.
type HebrewDate struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"month_name"`
}

// DayInfo gathers everything derived for one day, labelled in the formatter's language.
// Empty labels are omitted from JSON.
type DayInfo struct {
	Gregorian string     `json:"gregorian"`
	Hebrew    HebrewDate `json:"hebrew"`
	Formatted string     `json:"formatted"`
	DayOfWeek string     `json:"day_of_week"`
	Israel    bool       `json:"israel"`

	YomTov         string `json:"yom_tov,omitempty"`
	YomTovKey      string `json:"yom_tov_key,omitempty"`
	RoshChodesh    string `json:"rosh_chodesh,omitempty"`
	Parsha         string `json:"parsha,omitempty"`
	UpcomingParsha string `json:"upcoming_parsha"`
	SpecialShabbos string `json:"special_shabbos,omitempty"`
	Omer           string `json:"omer,omitempty"`
	OmerDay        int    `json:"omer_day,omitempty"`
	DafBavli       string `json:"daf_bavli,omitempty"`
	DafYerushalmi  string `json:"daf_yerushalmi"`
	Kviah          string `json:"kviah"`

	ShabbosMevorchim bool `json:"shabbos_mevorchim"`
	Taanis           bool `json:"taanis"`
	AssurBemelacha   bool `json:"assur_bemelacha"`
}

// Describe labels every derived value of c.
func (f *Formatter) Describe(c hebcal.JewishCalendar) DayInfo {
	info := DayInfo{
		Gregorian: fmt.Sprintf("%04d-%02d-%02d", c.GregorianYear(), c.GregorianMonth(), c.GregorianDay()),
		Hebrew: HebrewDate{
			Year:      c.HebrewYear(),
			Month:     int(c.HebrewMonth()),
			Day:       c.HebrewDay(),
			MonthName: f.Month(c.JewishDate),
		},
		Formatted:        f.Date(c.JewishDate),
		DayOfWeek:        f.DayOfWeek(c.JewishDate),
		Israel:           c.InIsrael,
		YomTov:           f.YomTov(c),
		RoshChodesh:      f.RoshChodesh(c),
		Parsha:           f.Parsha(c),
		UpcomingParsha:   f.ParshaName(c.UpcomingParsha()),
		SpecialShabbos:   f.SpecialParsha(c),
		Omer:             f.Omer(c),
		DafBavli:         f.DafBavli(c),
		DafYerushalmi:    f.DafYerushalmi(c),
		ShabbosMevorchim: c.IsShabbosMevorchim(),
		Taanis:           c.IsTaanis(),
		AssurBemelacha:   c.IsAssurBemelacha(),
	}
	if yt := c.YomTov(); yt != hebcal.NoYomTov {
		info.YomTovKey = yt.String()
	}
	if day, ok := c.DayOfOmer(); ok {
		info.OmerDay = day
	}
	if kviah, err := f.Kviah(c.HebrewYear()); err == nil {
		info.Kviah = kviah
	}
	return info
}
