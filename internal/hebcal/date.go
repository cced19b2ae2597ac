package hebcal

import (
	"fmt"
	"time"
)

// JewishDate is a single day seen through both calendars. All fields are derived
// from abs; every mutation goes through resync so the two views never drift apart.
// The zero value is not meaningful; use one of the constructors.
type JewishDate struct {
	abs int

	hebrewYear  int
	hebrewMonth HebrewMonth
	hebrewDay   int

	gregorianYear  int
	gregorianMonth int
	gregorianDay   int
}

// FromAbs builds the date for an absolute day. It fails with ErrInvalidYear for days
// before 1 Tishrei of year 1.
func FromAbs(abs int) (JewishDate, error) {
	var d JewishDate
	if abs < roshHashanaAbs(1) {
		return d, fmt.Errorf("%w: absolute day %d precedes the Hebrew epoch", ErrInvalidYear, abs)
	}
	d.resync(abs)
	return d, nil
}

// FromGregorian builds the date for a proleptic Gregorian year, month (1-12) and day.
func FromGregorian(year, month, day int) (JewishDate, error) {
	var d JewishDate
	err := d.SetGregorian(year, month, day)
	return d, err
}

// FromHebrew builds the date for a Hebrew year, month and day.
func FromHebrew(year int, month HebrewMonth, day int) (JewishDate, error) {
	var d JewishDate
	err := d.SetHebrew(year, month, day)
	return d, err
}

// FromTime builds the date for the civil day of t in t's own location.
func FromTime(t time.Time) (JewishDate, error) {
	y, m, d := t.Date()
	return FromGregorian(y, int(m), d)
}

// Now builds the date for the current civil day according to clock.
func Now(clock Clock) (JewishDate, error) {
	return FromTime(clock.Now())
}

// MustFromHebrew is FromHebrew for fixed, known-valid dates. It panics on error.
func MustFromHebrew(year int, month HebrewMonth, day int) JewishDate {
	d, err := FromHebrew(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// MustFromGregorian is FromGregorian for fixed, known-valid dates. It panics on error.
func MustFromGregorian(year, month, day int) JewishDate {
	d, err := FromGregorian(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// SetGregorian moves d to the given Gregorian date. On error d is left unchanged.
func (d *JewishDate) SetGregorian(year, month, day int) error {
	abs, err := GregorianToAbs(year, month, day)
	if err != nil {
		return err
	}
	if abs < roshHashanaAbs(1) {
		return fmt.Errorf("%w: %04d-%02d-%02d precedes the Hebrew epoch", ErrInvalidYear, year, month, day)
	}
	d.resync(abs)
	return nil
}

// SetHebrew moves d to the given Hebrew date. On error d is left unchanged.
func (d *JewishDate) SetHebrew(year int, month HebrewMonth, day int) error {
	abs, err := HebrewToAbs(year, month, day)
	if err != nil {
		return err
	}
	d.resync(abs)
	return nil
}

// Forward advances d by one day.
func (d *JewishDate) Forward() {
	d.resync(d.abs + 1)
}

// Back moves d one day earlier. Stepping back from 1 Tishrei of year 1 is a no-op.
func (d *JewishDate) Back() {
	if d.abs <= roshHashanaAbs(1) {
		return
	}
	d.resync(d.abs - 1)
}

// AddDays returns a copy of d moved by n days. The result is clamped to the Hebrew epoch.
func (d JewishDate) AddDays(n int) JewishDate {
	abs := d.abs + n
	if first := roshHashanaAbs(1); abs < first {
		abs = first
	}
	d.resync(abs)
	return d
}

func (d *JewishDate) resync(abs int) {
	d.abs = abs
	d.gregorianYear, d.gregorianMonth, d.gregorianDay = AbsToGregorian(abs)
	d.hebrewYear, d.hebrewMonth, d.hebrewDay = AbsToHebrew(abs)
}

// Abs returns the absolute (Rata Die) day number.
func (d JewishDate) Abs() int { return d.abs }

func (d JewishDate) HebrewYear() int          { return d.hebrewYear }
func (d JewishDate) HebrewMonth() HebrewMonth { return d.hebrewMonth }
func (d JewishDate) HebrewDay() int           { return d.hebrewDay }

func (d JewishDate) GregorianYear() int  { return d.gregorianYear }
func (d JewishDate) GregorianMonth() int { return d.gregorianMonth }
func (d JewishDate) GregorianDay() int   { return d.gregorianDay }

// Weekday returns the civil day of the week.
func (d JewishDate) Weekday() time.Weekday {
	return weekdayOf(d.abs)
}

// IsShabbos reports whether d falls on Saturday.
func (d JewishDate) IsShabbos() bool {
	return d.Weekday() == time.Saturday
}

// IsLeapYear reports whether d's Hebrew year has 13 months.
func (d JewishDate) IsLeapYear() bool {
	return IsLeapYear(d.hebrewYear)
}

// DaysInMonth returns the length of d's Hebrew month.
func (d JewishDate) DaysInMonth() int {
	return DaysInMonth(d.hebrewYear, d.hebrewMonth)
}

// DaysSinceStartOfYear counts from 1 Tishrei, which is day 1.
func (d JewishDate) DaysSinceStartOfYear() int {
	return d.abs - roshHashanaAbs(d.hebrewYear) + 1
}

// YearInfo returns the structure of d's Hebrew year.
func (d JewishDate) YearInfo() HebrewYearInfo {
	return YearInfo(d.hebrewYear)
}

// Time returns midnight of d's civil day in loc.
func (d JewishDate) Time(loc *time.Location) time.Time {
	return time.Date(d.gregorianYear, time.Month(d.gregorianMonth), d.gregorianDay, 0, 0, 0, 0, loc)
}

// Compare returns -1, 0 or +1 as d is before, equal to or after other.
func (d JewishDate) Compare(other JewishDate) int {
	switch {
	case d.abs < other.abs:
		return -1
	case d.abs > other.abs:
		return 1
	}
	return 0
}

func (d JewishDate) Equal(other JewishDate) bool  { return d.abs == other.abs }
func (d JewishDate) Before(other JewishDate) bool { return d.abs < other.abs }
func (d JewishDate) After(other JewishDate) bool  { return d.abs > other.abs }

// String renders the date as "5771-11-26 (2011-01-31)" for logs and debugging.
func (d JewishDate) String() string {
	return fmt.Sprintf("%d-%02d-%02d (%04d-%02d-%02d)",
		d.hebrewYear, int(d.hebrewMonth), d.hebrewDay,
		d.gregorianYear, d.gregorianMonth, d.gregorianDay)
}
