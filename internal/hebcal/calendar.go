package hebcal

import (
	"math"
	"time"
)

// JewishCalendar is a JewishDate together with the observance settings needed to derive
// holidays and readings. All derived values are computed on demand from the date fields.
type JewishCalendar struct {
	JewishDate

	// InIsrael selects the Israeli holiday and reading schedule (one day of Yom Tov).
	InIsrael bool
	// MukafChoma marks a walled city that reads the Megillah on Shushan Purim.
	MukafChoma bool
	// UseModernHolidays enables Yom HaShoah, Yom Hazikaron, Yom Ha'atzmaut and Yom Yerushalayim.
	UseModernHolidays bool
}

// NewCalendar wraps d with the given location setting.
func NewCalendar(d JewishDate, inIsrael bool) JewishCalendar {
	return JewishCalendar{JewishDate: d, InIsrael: inIsrael}
}

// AddDays returns a copy of c moved by n days, keeping its settings.
func (c JewishCalendar) AddDays(n int) JewishCalendar {
	c.JewishDate = c.JewishDate.AddDays(n)
	return c
}

// YomTov returns the holiday of the day, or NoYomTov. Fasts that would fall on Shabbos are
// reported on the day they are actually observed.
func (c JewishCalendar) YomTov() YomTov {
	day := c.HebrewDay()
	dow := c.Weekday()

	switch c.HebrewMonth() {
	case Nissan:
		switch {
		case day == 14:
			return ErevPesach
		case day == 15 || day == 21 || (!c.InIsrael && (day == 16 || day == 22)):
			return Pesach
		case (day >= 17 && day <= 20) || (day == 16 && c.InIsrael):
			return CholHamoedPesach
		case (day == 22 && c.InIsrael) || (day == 23 && !c.InIsrael):
			return IsruChag
		case c.UseModernHolidays && ((day == 26 && dow == time.Thursday) ||
			(day == 28 && dow == time.Monday) ||
			(day == 27 && dow != time.Sunday && dow != time.Friday)):
			return YomHashoah
		}
	case Iyar:
		switch {
		case c.UseModernHolidays && ((day == 4 && dow == time.Tuesday) ||
			((day == 3 || day == 2) && dow == time.Wednesday) ||
			(day == 5 && dow == time.Monday)):
			return YomHazikaron
		// 5 Iyar moves back to Thursday from Friday or Shabbos, and forward to Tuesday from Monday.
		case c.UseModernHolidays && ((day == 5 && dow == time.Wednesday) ||
			((day == 4 || day == 3) && dow == time.Thursday) ||
			(day == 6 && dow == time.Tuesday)):
			return YomHaatzmaut
		case day == 14:
			return PesachSheni
		case day == 18:
			return LagBaomer
		case c.UseModernHolidays && day == 28:
			return YomYerushalayim
		}
	case Sivan:
		switch {
		case day == 5:
			return ErevShavuos
		case day == 6 || (day == 7 && !c.InIsrael):
			return Shavuos
		case (day == 7 && c.InIsrael) || (day == 8 && !c.InIsrael):
			return IsruChag
		}
	case Tammuz:
		if (day == 17 && dow != time.Saturday) || (day == 18 && dow == time.Sunday) {
			return SeventeenthOfTammuz
		}
	case Av:
		if (day == 9 && dow != time.Saturday) || (day == 10 && dow == time.Sunday) {
			return TishaBav
		}
		if day == 15 {
			return TuBav
		}
	case Elul:
		if day == 29 {
			return ErevRoshHashana
		}
	case Tishrei:
		switch {
		case day == 1 || day == 2:
			return RoshHashana
		case (day == 3 && dow != time.Saturday) || (day == 4 && dow == time.Sunday):
			return FastOfGedalyah
		case day == 9:
			return ErevYomKippur
		case day == 10:
			return YomKippur
		case day == 14:
			return ErevSuccos
		case day == 15 || (day == 16 && !c.InIsrael):
			return Succos
		case (day >= 17 && day <= 20) || (day == 16 && c.InIsrael):
			return CholHamoedSuccos
		case day == 21:
			return HoshanaRabba
		case day == 22:
			return SheminiAtzeres
		case day == 23 && !c.InIsrael:
			return SimchasTorah
		case (day == 23 && c.InIsrael) || (day == 24 && !c.InIsrael):
			return IsruChag
		}
	case Kislev:
		if day >= 25 {
			return Chanukah
		}
	case Teves:
		if day == 1 || day == 2 || (day == 3 && IsKislevShort(c.HebrewYear())) {
			return Chanukah
		}
		if day == 10 {
			return TenthOfTeves
		}
	case Shevat:
		if day == 15 {
			return TuBshvat
		}
	case Adar:
		if c.IsLeapYear() {
			switch day {
			case 14:
				return PurimKatan
			case 15:
				return ShushanPurimKatan
			}
			return NoYomTov
		}
		return purimSeason(day, dow)
	case AdarII:
		return purimSeason(day, dow)
	}
	return NoYomTov
}

// purimSeason covers the last Adar of the year. Ta'anis Esther moves back to Thursday
// when 13 Adar is Shabbos.
func purimSeason(day int, dow time.Weekday) YomTov {
	switch {
	case ((day == 11 || day == 12) && dow == time.Thursday) ||
		(day == 13 && dow != time.Friday && dow != time.Saturday):
		return FastOfEsther
	case day == 14:
		return Purim
	case day == 15:
		return ShushanPurim
	}
	return NoYomTov
}

// IsYomTov reports whether the day is a holiday proper. Erev Yom Tov, fasts other than
// Yom Kippur and Isru Chag are excluded even though YomTov() names them.
func (c JewishCalendar) IsYomTov() bool {
	yt := c.YomTov()
	if (c.IsErevYomTov() && yt != HoshanaRabba) || (c.IsTaanis() && yt != YomKippur) || yt == IsruChag {
		return false
	}
	return yt != NoYomTov
}

// IsYomTovAssurBemelacha reports whether the day is a Yom Tov on which work is forbidden.
func (c JewishCalendar) IsYomTovAssurBemelacha() bool {
	switch c.YomTov() {
	case Pesach, Shavuos, Succos, SheminiAtzeres, SimchasTorah, RoshHashana, YomKippur:
		return true
	}
	return false
}

// IsAssurBemelacha reports whether work is forbidden, on Shabbos or Yom Tov.
func (c JewishCalendar) IsAssurBemelacha() bool {
	return c.IsShabbos() || c.IsYomTovAssurBemelacha()
}

// IsTomorrowShabbosOrYomTov reports whether candles are lit this evening.
func (c JewishCalendar) IsTomorrowShabbosOrYomTov() bool {
	return c.Weekday() == time.Friday || c.IsErevYomTov() || c.IsErevYomTovSheni()
}

// IsErevYomTov reports whether the next day is a Yom Tov on which work is forbidden.
// The sixth day of Chol Hamoed Pesach counts, Erev Shabbos does not.
func (c JewishCalendar) IsErevYomTov() bool {
	switch yt := c.YomTov(); yt {
	case ErevPesach, ErevShavuos, ErevRoshHashana, ErevYomKippur, ErevSuccos, HoshanaRabba:
		return true
	case CholHamoedPesach:
		return c.HebrewDay() == 20
	}
	return false
}

// IsErevYomTovSheni reports whether the day is the first of a two-day Yom Tov.
func (c JewishCalendar) IsErevYomTovSheni() bool {
	month, day := c.HebrewMonth(), c.HebrewDay()
	if month == Tishrei && day == 1 {
		return true
	}
	if c.InIsrael {
		return false
	}
	return (month == Nissan && (day == 15 || day == 21)) ||
		(month == Tishrei && (day == 15 || day == 22)) ||
		(month == Sivan && day == 6)
}

// IsAseresYemeiTeshuva reports whether the day falls in the first ten days of Tishrei.
func (c JewishCalendar) IsAseresYemeiTeshuva() bool {
	return c.HebrewMonth() == Tishrei && c.HebrewDay() <= 10
}

// IsPesach includes Chol Hamoed.
func (c JewishCalendar) IsPesach() bool {
	yt := c.YomTov()
	return yt == Pesach || yt == CholHamoedPesach
}

// IsSuccos includes Chol Hamoed and Hoshana Rabba.
func (c JewishCalendar) IsSuccos() bool {
	switch c.YomTov() {
	case Succos, CholHamoedSuccos, HoshanaRabba:
		return true
	}
	return false
}

func (c JewishCalendar) IsCholHamoedPesach() bool { return c.YomTov() == CholHamoedPesach }

// IsCholHamoedSuccos counts Hoshana Rabba as Chol Hamoed.
func (c JewishCalendar) IsCholHamoedSuccos() bool {
	yt := c.YomTov()
	return yt == CholHamoedSuccos || yt == HoshanaRabba
}

func (c JewishCalendar) IsCholHamoed() bool {
	return c.IsCholHamoedPesach() || c.IsCholHamoedSuccos()
}

func (c JewishCalendar) IsRoshHashana() bool { return c.YomTov() == RoshHashana }
func (c JewishCalendar) IsYomKippur() bool   { return c.YomTov() == YomKippur }
func (c JewishCalendar) IsShavuos() bool     { return c.YomTov() == Shavuos }
func (c JewishCalendar) IsTishaBav() bool    { return c.YomTov() == TishaBav }
func (c JewishCalendar) IsIsruChag() bool    { return c.YomTov() == IsruChag }
func (c JewishCalendar) IsChanukah() bool    { return c.YomTov() == Chanukah }

// IsPurim reports whether the Megillah is read today, which depends on MukafChoma.
func (c JewishCalendar) IsPurim() bool {
	if c.MukafChoma {
		return c.YomTov() == ShushanPurim
	}
	return c.YomTov() == Purim
}

// IsTaanis reports whether the day is one of the public fasts.
func (c JewishCalendar) IsTaanis() bool {
	switch c.YomTov() {
	case SeventeenthOfTammuz, TishaBav, YomKippur, FastOfGedalyah, TenthOfTeves, FastOfEsther:
		return true
	}
	return false
}

// IsTaanisBechoros reports the fast of the firstborn: 14 Nissan, or the preceding
// Thursday when 14 Nissan is Shabbos.
func (c JewishCalendar) IsTaanisBechoros() bool {
	day, dow := c.HebrewDay(), c.Weekday()
	return c.HebrewMonth() == Nissan &&
		((day == 14 && dow != time.Saturday) || (day == 12 && dow == time.Thursday))
}

// IsRoshChodesh reports the first day of a month or the thirtieth day of the preceding
// month. Rosh Hashana is not Rosh Chodesh.
func (c JewishCalendar) IsRoshChodesh() bool {
	day := c.HebrewDay()
	return (day == 1 && c.HebrewMonth() != Tishrei) || day == 30
}

// IsErevRoshChodesh reports the 29th of any month but Elul.
func (c JewishCalendar) IsErevRoshChodesh() bool {
	return c.HebrewDay() == 29 && c.HebrewMonth() != Elul
}

// IsMacharChodesh reports a Shabbos that precedes Rosh Chodesh.
func (c JewishCalendar) IsMacharChodesh() bool {
	day := c.HebrewDay()
	return c.IsShabbos() && (day == 30 || day == 29)
}

// IsShabbosMevorchim reports the Shabbos on which the coming month is announced.
func (c JewishCalendar) IsShabbosMevorchim() bool {
	day := c.HebrewDay()
	return c.IsShabbos() && day >= 23 && day <= 29 && c.HebrewMonth() != Elul
}

// IsYomKippurKatan reports Erev Rosh Chodesh as observed, moved back to Thursday when
// it falls on Friday or Shabbos. It is not observed before Tishrei, Cheshvan, Teves or Iyar.
func (c JewishCalendar) IsYomKippurKatan() bool {
	month, day, dow := c.HebrewMonth(), c.HebrewDay(), c.Weekday()
	switch month {
	case Elul, Tishrei, Kislev, Nissan:
		return false
	}
	if day == 29 && dow != time.Friday && dow != time.Saturday {
		return true
	}
	return (day == 27 || day == 28) && dow == time.Thursday
}

// IsBeHaB reports the Monday, Thursday and Monday fasts after Pesach and Succos.
func (c JewishCalendar) IsBeHaB() bool {
	month, day, dow := c.HebrewMonth(), c.HebrewDay(), c.Weekday()
	if month != Cheshvan && month != Iyar {
		return false
	}
	return (dow == time.Monday && day > 4 && day < 18) ||
		(dow == time.Thursday && day > 7 && day < 14)
}

// DayOfOmer returns the count of the Omer, from 1 on 16 Nissan to 49 on 5 Sivan.
func (c JewishCalendar) DayOfOmer() (int, bool) {
	day := c.HebrewDay()
	switch c.HebrewMonth() {
	case Nissan:
		if day >= 16 {
			return day - 15, true
		}
	case Iyar:
		return day + 15, true
	case Sivan:
		if day < 6 {
			return day + 44, true
		}
	}
	return 0, false
}

// DayOfChanukah returns 1 to 8 during Chanukah.
func (c JewishCalendar) DayOfChanukah() (int, bool) {
	if !c.IsChanukah() {
		return 0, false
	}
	day := c.HebrewDay()
	if c.HebrewMonth() == Kislev {
		return day - 24, true
	}
	if IsKislevShort(c.HebrewYear()) {
		return day + 5, true
	}
	return day + 6, true
}

// TekufasTishreiElapsedDays counts days since the Tekufas Tishrei of the current solar
// year, using Shmuel's year of 365.25 days.
func (c JewishCalendar) TekufasTishreiElapsedDays() int {
	// The first tekufah fell 9 hours into the day; half a day lets all four years of the
	// Julian leap cycle share day 47.
	days := float64(ElapsedDays(c.HebrewYear())) + float64(c.DaysSinceStartOfYear()-1) + 0.5
	solar := float64(c.HebrewYear()-1) * 365.25
	return int(math.Floor(days - solar))
}

// IsBirkasHachamah reports the day of the blessing on the sun, once every 28 years.
func (c JewishCalendar) IsBirkasHachamah() bool {
	elapsed := ElapsedDays(c.HebrewYear()) + c.DaysSinceStartOfYear()
	// Tekufas Nissan of year 1 fell 172 days into the count, on a Tuesday night.
	return elapsed%10227 == 172
}
