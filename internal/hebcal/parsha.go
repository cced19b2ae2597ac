package hebcal

import (
	"fmt"
	"time"
)

// Parsha identifies a weekly Torah reading, a doubled reading, or one of the special
// Shabbosos. NoParsha marks a Shabbos on which the weekly cycle is suspended by a holiday.
type Parsha int

const (
	NoParsha Parsha = iota
	Bereshis
	Noach
	LechLecha
	Vayera
	ChayeiSara
	Toldos
	Vayetzei
	Vayishlach
	Vayeshev
	Miketz
	Vayigash
	Vayechi
	Shemos
	Vaera
	Bo
	Beshalach
	Yisro
	Mishpatim
	Terumah
	Tetzaveh
	KiSisa
	Vayakhel
	Pekudei
	Vayikra
	Tzav
	Shmini
	Tazria
	Metzora
	AchreiMos
	Kedoshim
	Emor
	Behar
	Bechukosai
	Bamidbar
	Nasso
	Behaaloscha
	Shlach
	Korach
	Chukas
	Balak
	Pinchas
	Matos
	Masei
	Devarim
	Vaeschanan
	Eikev
	Reeh
	Shoftim
	KiSeitzei
	KiSavo
	Nitzavim
	Vayeilech
	Haazinu
	VzosHaberacha

	// Doubled readings.
	VayakhelPekudei
	TazriaMetzora
	AchreiMosKedoshim
	BeharBechukosai
	ChukasBalak
	MatosMasei
	NitzavimVayeilech

	// Special Shabbosos, read in addition to the weekly portion.
	Shekalim
	Zachor
	Parah
	Hachodesh
	Shuva
	Shira
	Hagadol
	Chazon
	Nachamu
)

var parshaKeys = [...]string{
	NoParsha:          "none",
	Bereshis:          "bereshis",
	Noach:             "noach",
	LechLecha:         "lech_lecha",
	Vayera:            "vayera",
	ChayeiSara:        "chayei_sara",
	Toldos:            "toldos",
	Vayetzei:          "vayetzei",
	Vayishlach:        "vayishlach",
	Vayeshev:          "vayeshev",
	Miketz:            "miketz",
	Vayigash:          "vayigash",
	Vayechi:           "vayechi",
	Shemos:            "shemos",
	Vaera:             "vaera",
	Bo:                "bo",
	Beshalach:         "beshalach",
	Yisro:             "yisro",
	Mishpatim:         "mishpatim",
	Terumah:           "terumah",
	Tetzaveh:          "tetzaveh",
	KiSisa:            "ki_sisa",
	Vayakhel:          "vayakhel",
	Pekudei:           "pekudei",
	Vayikra:           "vayikra",
	Tzav:              "tzav",
	Shmini:            "shmini",
	Tazria:            "tazria",
	Metzora:           "metzora",
	AchreiMos:         "achrei_mos",
	Kedoshim:          "kedoshim",
	Emor:              "emor",
	Behar:             "behar",
	Bechukosai:        "bechukosai",
	Bamidbar:          "bamidbar",
	Nasso:             "nasso",
	Behaaloscha:       "behaaloscha",
	Shlach:            "shlach",
	Korach:            "korach",
	Chukas:            "chukas",
	Balak:             "balak",
	Pinchas:           "pinchas",
	Matos:             "matos",
	Masei:             "masei",
	Devarim:           "devarim",
	Vaeschanan:        "vaeschanan",
	Eikev:             "eikev",
	Reeh:              "reeh",
	Shoftim:           "shoftim",
	KiSeitzei:         "ki_seitzei",
	KiSavo:            "ki_savo",
	Nitzavim:          "nitzavim",
	Vayeilech:         "vayeilech",
	Haazinu:           "haazinu",
	VzosHaberacha:     "vzos_haberacha",
	VayakhelPekudei:   "vayakhel_pekudei",
	TazriaMetzora:     "tazria_metzora",
	AchreiMosKedoshim: "achrei_mos_kedoshim",
	BeharBechukosai:   "behar_bechukosai",
	ChukasBalak:       "chukas_balak",
	MatosMasei:        "matos_masei",
	NitzavimVayeilech: "nitzavim_vayeilech",
	Shekalim:          "shekalim",
	Zachor:            "zachor",
	Parah:             "parah",
	Hachodesh:         "hachodesh",
	Shuva:             "shuva",
	Shira:             "shira",
	Hagadol:           "hagadol",
	Chazon:            "chazon",
	Nachamu:           "nachamu",
}

// String returns a stable snake_case key, used for message lookup and JSON.
func (p Parsha) String() string {
	if p < NoParsha || int(p) >= len(parshaKeys) {
		return fmt.Sprintf("Parsha(%d)", int(p))
	}
	return parshaKeys[p]
}

// Parshiyos lists every reading, doubled reading and special Shabbos, in declaration order.
func Parshiyos() []Parsha {
	out := make([]Parsha, 0, len(parshaKeys)-1)
	for p := Bereshis; int(p) < len(parshaKeys); p++ {
		out = append(out, p)
	}
	return out
}

// parshaCycles holds one reading schedule per year type, indexed by the number of weeks
// since the Shabbos on or before Rosh Hashana. See parshaYearType for the index.
var parshaCycles = [17][]Parsha{
	{
		NoParsha, Vayeilech, Haazinu, NoParsha, Bereshis, Noach, LechLecha, Vayera, ChayeiSara,
		Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos, Vaera, Bo,
		Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, VayakhelPekudei, Vayikra, Tzav,
		NoParsha, Shmini, TazriaMetzora, AchreiMosKedoshim, Emor, BeharBechukosai, Bamidbar,
		Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas, MatosMasei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, NitzavimVayeilech,
	},
	{
		NoParsha, Vayeilech, Haazinu, NoParsha, Bereshis, Noach, LechLecha, Vayera, ChayeiSara,
		Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos, Vaera, Bo,
		Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, VayakhelPekudei, Vayikra, Tzav,
		NoParsha, Shmini, TazriaMetzora, AchreiMosKedoshim, Emor, BeharBechukosai, Bamidbar,
		NoParsha, Nasso, Behaaloscha, Shlach, Korach, ChukasBalak, Pinchas, MatosMasei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, NitzavimVayeilech,
	},
	{
		NoParsha, Haazinu, NoParsha, NoParsha, Bereshis, Noach, LechLecha, Vayera, ChayeiSara,
		Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos, Vaera, Bo,
		Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, VayakhelPekudei, Vayikra, Tzav,
		NoParsha, NoParsha, Shmini, TazriaMetzora, AchreiMosKedoshim, Emor, BeharBechukosai,
		Bamidbar, Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas, MatosMasei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, Nitzavim,
	},
	{
		NoParsha, Haazinu, NoParsha, NoParsha, Bereshis, Noach, LechLecha, Vayera, ChayeiSara,
		Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos, Vaera, Bo,
		Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, Vayakhel, Pekudei, Vayikra, Tzav,
		NoParsha, Shmini, TazriaMetzora, AchreiMosKedoshim, Emor, BeharBechukosai, Bamidbar,
		Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas, MatosMasei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, Nitzavim,
	},
	{
		NoParsha, NoParsha, Haazinu, NoParsha, NoParsha, Bereshis, Noach, LechLecha, Vayera,
		ChayeiSara, Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos,
		Vaera, Bo, Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, VayakhelPekudei,
		Vayikra, Tzav, NoParsha, Shmini, TazriaMetzora, AchreiMosKedoshim, Emor, BeharBechukosai,
		Bamidbar, Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas, MatosMasei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, Nitzavim,
	},
	{
		NoParsha, NoParsha, Haazinu, NoParsha, NoParsha, Bereshis, Noach, LechLecha, Vayera,
		ChayeiSara, Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos,
		Vaera, Bo, Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, VayakhelPekudei,
		Vayikra, Tzav, NoParsha, Shmini, TazriaMetzora, AchreiMosKedoshim, Emor, BeharBechukosai,
		Bamidbar, Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas, MatosMasei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, NitzavimVayeilech,
	},
	{
		NoParsha, Vayeilech, Haazinu, NoParsha, Bereshis, Noach, LechLecha, Vayera, ChayeiSara,
		Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos, Vaera, Bo,
		Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, Vayakhel, Pekudei, Vayikra, Tzav,
		Shmini, Tazria, Metzora, NoParsha, AchreiMos, Kedoshim, Emor, Behar, Bechukosai, Bamidbar,
		NoParsha, Nasso, Behaaloscha, Shlach, Korach, ChukasBalak, Pinchas, MatosMasei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, NitzavimVayeilech,
	},
	{
		NoParsha, Vayeilech, Haazinu, NoParsha, Bereshis, Noach, LechLecha, Vayera, ChayeiSara,
		Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos, Vaera, Bo,
		Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, Vayakhel, Pekudei, Vayikra, Tzav,
		Shmini, Tazria, Metzora, NoParsha, NoParsha, AchreiMos, Kedoshim, Emor, Behar, Bechukosai,
		Bamidbar, Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas, MatosMasei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, Nitzavim,
	},
	{
		NoParsha, Haazinu, NoParsha, NoParsha, Bereshis, Noach, LechLecha, Vayera, ChayeiSara,
		Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos, Vaera, Bo,
		Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, Vayakhel, Pekudei, Vayikra, Tzav,
		Shmini, Tazria, Metzora, AchreiMos, NoParsha, Kedoshim, Emor, Behar, Bechukosai, Bamidbar,
		Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas, Matos, Masei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, Nitzavim,
	},
	{
		NoParsha, Haazinu, NoParsha, NoParsha, Bereshis, Noach, LechLecha, Vayera, ChayeiSara,
		Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos, Vaera, Bo,
		Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, Vayakhel, Pekudei, Vayikra, Tzav,
		Shmini, Tazria, Metzora, AchreiMos, NoParsha, Kedoshim, Emor, Behar, Bechukosai, Bamidbar,
		Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas, Matos, Masei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, NitzavimVayeilech,
	},
	{
		NoParsha, NoParsha, Haazinu, NoParsha, NoParsha, Bereshis, Noach, LechLecha, Vayera,
		ChayeiSara, Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos,
		Vaera, Bo, Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, Vayakhel, Pekudei,
		Vayikra, Tzav, Shmini, Tazria, Metzora, NoParsha, AchreiMos, Kedoshim, Emor, Behar,
		Bechukosai, Bamidbar, Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas,
		MatosMasei, Devarim, Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo,
		NitzavimVayeilech,
	},
	{
		NoParsha, NoParsha, Haazinu, NoParsha, NoParsha, Bereshis, Noach, LechLecha, Vayera,
		ChayeiSara, Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos,
		Vaera, Bo, Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, Vayakhel, Pekudei,
		Vayikra, Tzav, Shmini, Tazria, Metzora, NoParsha, AchreiMos, Kedoshim, Emor, Behar,
		Bechukosai, Bamidbar, NoParsha, Nasso, Behaaloscha, Shlach, Korach, ChukasBalak, Pinchas,
		MatosMasei, Devarim, Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo,
		NitzavimVayeilech,
	},
	{
		NoParsha, Vayeilech, Haazinu, NoParsha, Bereshis, Noach, LechLecha, Vayera, ChayeiSara,
		Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos, Vaera, Bo,
		Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, VayakhelPekudei, Vayikra, Tzav,
		NoParsha, Shmini, TazriaMetzora, AchreiMosKedoshim, Emor, BeharBechukosai, Bamidbar,
		Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas, MatosMasei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, NitzavimVayeilech,
	},
	{
		NoParsha, Haazinu, NoParsha, NoParsha, Bereshis, Noach, LechLecha, Vayera, ChayeiSara,
		Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos, Vaera, Bo,
		Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, VayakhelPekudei, Vayikra, Tzav,
		NoParsha, Shmini, TazriaMetzora, AchreiMosKedoshim, Emor, Behar, Bechukosai, Bamidbar,
		Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas, MatosMasei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, Nitzavim,
	},
	{
		NoParsha, Vayeilech, Haazinu, NoParsha, Bereshis, Noach, LechLecha, Vayera, ChayeiSara,
		Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos, Vaera, Bo,
		Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, Vayakhel, Pekudei, Vayikra, Tzav,
		Shmini, Tazria, Metzora, NoParsha, AchreiMos, Kedoshim, Emor, Behar, Bechukosai, Bamidbar,
		Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas, MatosMasei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, NitzavimVayeilech,
	},
	{
		NoParsha, Vayeilech, Haazinu, NoParsha, Bereshis, Noach, LechLecha, Vayera, ChayeiSara,
		Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos, Vaera, Bo,
		Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, Vayakhel, Pekudei, Vayikra, Tzav,
		Shmini, Tazria, Metzora, NoParsha, AchreiMos, Kedoshim, Emor, Behar, Bechukosai, Bamidbar,
		Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas, Matos, Masei, Devarim,
		Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo, Nitzavim,
	},
	{
		NoParsha, NoParsha, Haazinu, NoParsha, NoParsha, Bereshis, Noach, LechLecha, Vayera,
		ChayeiSara, Toldos, Vayetzei, Vayishlach, Vayeshev, Miketz, Vayigash, Vayechi, Shemos,
		Vaera, Bo, Beshalach, Yisro, Mishpatim, Terumah, Tetzaveh, KiSisa, Vayakhel, Pekudei,
		Vayikra, Tzav, Shmini, Tazria, Metzora, NoParsha, AchreiMos, Kedoshim, Emor, Behar,
		Bechukosai, Bamidbar, Nasso, Behaaloscha, Shlach, Korach, Chukas, Balak, Pinchas,
		MatosMasei, Devarim, Vaeschanan, Eikev, Reeh, Shoftim, KiSeitzei, KiSavo,
		NitzavimVayeilech,
	},
}
// parshaYearType selects the reading schedule for the calendar's year from the weekday of
// Rosh Hashana, the length of Cheshvan and Kislev, leap status and location. Diaspora and
// Israel diverge in years where the eighth day of Pesach or the second day of Shavuos falls
// on Shabbos. It returns -1 for combinations that the postponement rules never produce.
func (c JewishCalendar) parshaYearType() int {
	info := c.YearInfo()
	israel := func(inIsrael, diaspora int) int {
		if c.InIsrael {
			return inIsrael
		}
		return diaspora
	}
	if info.Leap {
		switch info.RoshHashanaDay {
		case time.Monday:
			if info.KislevShort {
				return israel(14, 6)
			}
			if info.CheshvanLong {
				return israel(15, 7)
			}
		case time.Tuesday:
			return israel(15, 7)
		case time.Thursday:
			if info.KislevShort {
				return 8
			}
			if info.CheshvanLong {
				return 9
			}
		case time.Saturday:
			if info.KislevShort {
				return 10
			}
			if info.CheshvanLong {
				return israel(16, 11)
			}
		}
		return -1
	}
	switch info.RoshHashanaDay {
	case time.Monday:
		if info.KislevShort {
			return 0
		}
		if info.CheshvanLong {
			return israel(12, 1)
		}
	case time.Tuesday:
		return israel(12, 1)
	case time.Thursday:
		if info.CheshvanLong {
			return 3
		}
		if !info.KislevShort {
			return israel(13, 2)
		}
	case time.Saturday:
		if info.KislevShort {
			return 4
		}
		if info.CheshvanLong {
			return 5
		}
	}
	return -1
}

// Parsha returns the weekly reading for a Shabbos, or NoParsha on weekdays and on
// Shabbosos that coincide with Yom Tov or Chol Hamoed.
func (c JewishCalendar) Parsha() Parsha {
	if !c.IsShabbos() {
		return NoParsha
	}
	yearType := c.parshaYearType()
	if yearType < 0 {
		panic(fmt.Sprintf("hebcal: no reading schedule for year %d", c.HebrewYear()))
	}
	// Weeks are counted from the Shabbos on or before Rosh Hashana.
	day := floorMod(ElapsedDays(c.HebrewYear()), 7) + c.DaysSinceStartOfYear()
	cycle := parshaCycles[yearType]
	week := day / 7
	if week >= len(cycle) {
		panic(fmt.Sprintf("hebcal: week %d outside reading schedule %d", week, yearType))
	}
	return cycle[week]
}

// UpcomingParsha returns the reading of the next Shabbos that has one. On Shabbos itself
// the search starts a week later.
func (c JewishCalendar) UpcomingParsha() Parsha {
	daysToShabbos := (int(time.Saturday) - int(c.Weekday()) + 7) % 7
	if daysToShabbos == 0 {
		daysToShabbos = 7
	}
	next := c.AddDays(daysToShabbos)
	for next.Parsha() == NoParsha {
		next = next.AddDays(7)
	}
	return next.Parsha()
}

// SpecialShabbos returns the special reading of this Shabbos, or NoParsha.
func (c JewishCalendar) SpecialShabbos() Parsha {
	if !c.IsShabbos() {
		return NoParsha
	}
	month, day, leap := c.HebrewMonth(), c.HebrewDay(), c.IsLeapYear()

	if (month == Shevat && !leap) || (month == Adar && leap) {
		if day == 25 || day == 27 || day == 29 {
			return Shekalim
		}
	}
	if (month == Adar && !leap) || month == AdarII {
		switch day {
		case 1:
			return Shekalim
		case 8, 9, 11, 13:
			return Zachor
		case 18, 20, 22, 23:
			return Parah
		case 25, 27, 29:
			return Hachodesh
		}
	}
	switch month {
	case Nissan:
		if day == 1 {
			return Hachodesh
		}
		if day >= 8 && day <= 14 {
			return Hagadol
		}
	case Av:
		if day >= 4 && day <= 9 {
			return Chazon
		}
		if day >= 10 && day <= 16 {
			return Nachamu
		}
	case Tishrei:
		if day >= 3 && day <= 8 {
			return Shuva
		}
	}
	if c.Parsha() == Beshalach {
		return Shira
	}
	return NoParsha
}
