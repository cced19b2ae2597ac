package hebcal

import "fmt"

// Absolute days are Rata Die counts: day 1 is Monday, January 1 of year 1 in the
// proleptic Gregorian calendar. Day 0 is the preceding Sunday.

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the modulus matching floorDiv; the result has the sign of b.
func floorMod(a, b int) int {
	return a - b*floorDiv(a, b)
}

// IsGregorianLeapYear applies the proleptic Gregorian rule.
func IsGregorianLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInGregorianMonth returns the length of month (1-12) of year.
func DaysInGregorianMonth(year, month int) int {
	switch month {
	case 2:
		if IsGregorianLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func validateGregorian(year, month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: Gregorian month %d", ErrInvalidMonth, month)
	}
	if day < 1 || day > DaysInGregorianMonth(year, month) {
		return fmt.Errorf("%w: %d for %04d-%02d", ErrInvalidDay, day, year, month)
	}
	return nil
}

// gregorianToAbs assumes valid fields.
func gregorianToAbs(year, month, day int) int {
	y := year - 1
	abs := 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) + floorDiv(367*month-362, 12) + day
	if month > 2 {
		if IsGregorianLeapYear(year) {
			abs--
		} else {
			abs -= 2
		}
	}
	return abs
}

// GregorianToAbs returns the absolute day of a proleptic Gregorian date.
func GregorianToAbs(year, month, day int) (int, error) {
	if err := validateGregorian(year, month, day); err != nil {
		return 0, err
	}
	return gregorianToAbs(year, month, day), nil
}

func gregorianYearFromAbs(abs int) int {
	d0 := abs - 1
	n400 := floorDiv(d0, 146097)
	d1 := floorMod(d0, 146097)
	n100 := d1 / 36524
	d2 := d1 % 36524
	n4 := d2 / 1461
	d3 := d2 % 1461
	n1 := d3 / 365
	year := 400*n400 + 100*n100 + 4*n4 + n1
	if n100 == 4 || n1 == 4 {
		return year
	}
	return year + 1
}

// AbsToGregorian returns the proleptic Gregorian date of an absolute day.
func AbsToGregorian(abs int) (year, month, day int) {
	year = gregorianYearFromAbs(abs)
	priorDays := abs - gregorianToAbs(year, 1, 1)
	correction := 0
	if abs >= gregorianToAbs(year, 3, 1) {
		if IsGregorianLeapYear(year) {
			correction = 1
		} else {
			correction = 2
		}
	}
	month = (12*(priorDays+correction) + 373) / 367
	day = abs - gregorianToAbs(year, month, 1) + 1
	return year, month, day
}

func validateHebrew(year int, month HebrewMonth, day int) error {
	if year < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	if !validMonth(year, month) {
		return fmt.Errorf("%w: %d in Hebrew year %d", ErrInvalidMonth, int(month), year)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return fmt.Errorf("%w: %d for %s %d", ErrInvalidDay, day, month, year)
	}
	return nil
}

// hebrewToAbs assumes valid fields.
func hebrewToAbs(year int, month HebrewMonth, day int) int {
	return jewishEpoch + ElapsedDays(year) + daysSinceStartOfYear(year, month, day)
}

// HebrewToAbs returns the absolute day of a Hebrew date.
func HebrewToAbs(year int, month HebrewMonth, day int) (int, error) {
	if err := validateHebrew(year, month, day); err != nil {
		return 0, err
	}
	return hebrewToAbs(year, month, day), nil
}

// AbsToHebrew returns the Hebrew date of an absolute day. Days before
// 1 Tishrei of year 1 resolve to year 0 or below; callers building dates reject them.
func AbsToHebrew(abs int) (year int, month HebrewMonth, day int) {
	// Average year is 365.2468 days; the estimate is refined below.
	year = floorDiv((abs-jewishEpoch)*98496, 35975351) + 1
	for abs < roshHashanaAbs(year) {
		year--
	}
	for abs >= roshHashanaAbs(year+1) {
		year++
	}

	month = Tishrei
	if abs >= hebrewToAbs(year, Nissan, 1) {
		month = Nissan
	}
	for abs > hebrewToAbs(year, month, DaysInMonth(year, month)) {
		month = month.Next(year)
	}
	day = abs - hebrewToAbs(year, month, 1) + 1
	return year, month, day
}

// roshHashanaAbs is the absolute day of 1 Tishrei of year.
func roshHashanaAbs(year int) int {
	return jewishEpoch + ElapsedDays(year) + 1
}
