package hebcal

import "fmt"

// HebrewMonth numbers months in the order of the religious year, starting at Nissan.
// The civil year begins at Tishrei (7). In a leap year Adar (12) is Adar I and AdarII (13) follows it.
type HebrewMonth int

const (
	Nissan HebrewMonth = iota + 1
	Iyar
	Sivan
	Tammuz
	Av
	Elul
	Tishrei
	Cheshvan
	Kislev
	Teves
	Shevat
	Adar
	AdarII
)

var monthNames = [...]string{
	"", "Nissan", "Iyar", "Sivan", "Tammuz", "Av", "Elul", "Tishrei",
	"Cheshvan", "Kislev", "Teves", "Shevat", "Adar", "AdarII",
}

// String returns the identifier-style name of the month (not a display label).
func (m HebrewMonth) String() string {
	if m < Nissan || m > AdarII {
		return fmt.Sprintf("HebrewMonth(%d)", int(m))
	}
	return monthNames[m]
}

// LastMonthOfYear returns Adar in a common year and AdarII in a leap year.
func LastMonthOfYear(year int) HebrewMonth {
	if IsLeapYear(year) {
		return AdarII
	}
	return Adar
}

// monthsInYear is 13 in a leap year, 12 otherwise.
func monthsInYear(year int) HebrewMonth {
	return LastMonthOfYear(year)
}

// validMonth reports whether m exists in the given year.
func validMonth(year int, m HebrewMonth) bool {
	return m >= Nissan && m <= monthsInYear(year)
}

// Next returns the month that follows m within the civil year, wrapping the religious
// numbering (Adar or AdarII is followed by Nissan).
func (m HebrewMonth) Next(year int) HebrewMonth {
	if m == monthsInYear(year) {
		return Nissan
	}
	return m + 1
}
