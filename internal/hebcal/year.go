package hebcal

import (
	"fmt"
	"time"
)

const (
	// jewishEpoch is the absolute day preceding the first Rosh Hashana by its
	// elapsed-day count, so that 1 Tishrei of year y is jewishEpoch + ElapsedDays(y) + 1.
	jewishEpoch = -1373429

	chalakimPerMinute = 18
	chalakimPerHour   = 1080
	chalakimPerDay    = 25920
	// chalakimPerMonth is 29 days 12 hours 793 chalakim.
	chalakimPerMonth = 765433
	// chalakimMoladTohu is the molad of Tishrei of year 1 (BaHaRaD), measured from 6pm on day 0.
	chalakimMoladTohu = 31524

	// Postponement thresholds, in chalakim after the start of the molad day (6pm).
	moladZaken = 18 * chalakimPerHour
	gatarad    = 9*chalakimPerHour + 204
	betutakpat = 15*chalakimPerHour + 589
)

// Kviah classifies the lengths of Cheshvan and Kislev.
type Kviah int

const (
	// Chaserim: Cheshvan and Kislev both have 29 days.
	Chaserim Kviah = iota
	// Kesidran: Cheshvan has 29 days and Kislev 30.
	Kesidran
	// Shelaimim: Cheshvan and Kislev both have 30 days.
	Shelaimim
)

func (k Kviah) String() string {
	switch k {
	case Chaserim:
		return "Chaserim"
	case Kesidran:
		return "Kesidran"
	case Shelaimim:
		return "Shelaimim"
	}
	return fmt.Sprintf("Kviah(%d)", int(k))
}

// HebrewYearInfo summarizes the structure of one Hebrew year.
type HebrewYearInfo struct {
	Year           int
	Leap           bool
	Days           int
	Kviah          Kviah
	RoshHashanaDay time.Weekday
	RoshHashanaAbs int
	MonthsInYear   int
	CheshvanLong   bool
	KislevShort    bool
}

// YearInfo computes the structure of year.
func YearInfo(year int) HebrewYearInfo {
	rh := roshHashanaAbs(year)
	return HebrewYearInfo{
		Year:           year,
		Leap:           IsLeapYear(year),
		Days:           DaysInYear(year),
		Kviah:          YearKviah(year),
		RoshHashanaDay: weekdayOf(rh),
		RoshHashanaAbs: rh,
		MonthsInYear:   int(monthsInYear(year)),
		CheshvanLong:   IsCheshvanLong(year),
		KislevShort:    IsKislevShort(year),
	}
}

// IsLeapYear reports whether year has 13 months (years 3, 6, 8, 11, 14, 17 and 19 of the cycle).
func IsLeapYear(year int) bool {
	return floorMod(7*year+1, 19) < 7
}

// tishreiBasedMonth renumbers month so that Tishrei is 1.
func tishreiBasedMonth(year int, month HebrewMonth) int {
	if IsLeapYear(year) {
		return (int(month)+6)%13 + 1
	}
	return (int(month)+5)%12 + 1
}

// chalakimSinceMoladTohu returns the molad of the given month, counted in chalakim from the
// start of day 0 of the Hebrew calendar.
func chalakimSinceMoladTohu(year int, month HebrewMonth) int {
	prev := year - 1
	cycles := floorDiv(prev, 19)
	inCycle := floorMod(prev, 19)
	monthsElapsed := 235*cycles + 12*inCycle + (7*inCycle+1)/19 + tishreiBasedMonth(year, month) - 1
	return chalakimMoladTohu + chalakimPerMonth*monthsElapsed
}

// ElapsedDays returns the number of days from the epoch to Rosh Hashana of year,
// after applying the four postponement rules.
func ElapsedDays(year int) int {
	chalakim := chalakimSinceMoladTohu(year, Tishrei)
	moladDay := floorDiv(chalakim, chalakimPerDay)
	moladParts := chalakim - moladDay*chalakimPerDay
	return addDechiyos(year, moladDay, moladParts)
}

func addDechiyos(year, moladDay, moladParts int) int {
	rh := moladDay
	dow := floorMod(moladDay, 7)
	if moladParts >= moladZaken ||
		(dow == 2 && moladParts >= gatarad && !IsLeapYear(year)) ||
		(dow == 1 && moladParts >= betutakpat && IsLeapYear(year-1)) {
		rh++
	}
	// Lo ADU Rosh: not Sunday, Wednesday or Friday.
	switch floorMod(rh, 7) {
	case 0, 3, 5:
		rh++
	}
	return rh
}

// DaysInYear returns the length of year. It panics if the postponement arithmetic
// ever yields a length outside the six legal values.
func DaysInYear(year int) int {
	days := ElapsedDays(year+1) - ElapsedDays(year)
	switch days {
	case 353, 354, 355, 383, 384, 385:
		return days
	}
	panic(fmt.Sprintf("hebcal: year %d has illegal length %d", year, days))
}

// IsCheshvanLong reports whether Cheshvan has 30 days in year.
func IsCheshvanLong(year int) bool {
	return DaysInYear(year)%10 == 5
}

// IsKislevShort reports whether Kislev has 29 days in year.
func IsKislevShort(year int) bool {
	return DaysInYear(year)%10 == 3
}

// YearKviah classifies year as deficient, regular or complete.
func YearKviah(year int) Kviah {
	switch {
	case IsCheshvanLong(year):
		return Shelaimim
	case IsKislevShort(year):
		return Chaserim
	}
	return Kesidran
}

// DaysInMonth returns 29 or 30. Month values that do not exist in year report 29 for
// AdarII; callers validate months before relying on the result.
func DaysInMonth(year int, month HebrewMonth) int {
	switch month {
	case Iyar, Tammuz, Elul, Teves, AdarII:
		return 29
	case Cheshvan:
		if IsCheshvanLong(year) {
			return 30
		}
		return 29
	case Kislev:
		if IsKislevShort(year) {
			return 29
		}
		return 30
	case Adar:
		if IsLeapYear(year) {
			return 30
		}
		return 29
	}
	return 30
}

// daysSinceStartOfYear counts days from 1 Tishrei, which is day 1.
func daysSinceStartOfYear(year int, month HebrewMonth, day int) int {
	elapsed := day
	if month < Tishrei {
		for m := Tishrei; m <= monthsInYear(year); m++ {
			elapsed += DaysInMonth(year, m)
		}
		for m := Nissan; m < month; m++ {
			elapsed += DaysInMonth(year, m)
		}
		return elapsed
	}
	for m := Tishrei; m < month; m++ {
		elapsed += DaysInMonth(year, m)
	}
	return elapsed
}

// weekdayOf maps an absolute day to its weekday; absolute day 1 is a Monday.
func weekdayOf(abs int) time.Weekday {
	return time.Weekday(floorMod(abs, 7))
}
