package hebcal

import "fmt"

// HebrewBirthday returns the anniversary of birth in the given Hebrew year. A birth in the
// last month of its year (Adar, or AdarII in a leap year) is kept in the last month of the
// target year. A 30th that does not exist in the target month rolls into the next month.
func HebrewBirthday(birth JewishDate, year int) (JewishDate, error) {
	if year < 1 {
		return JewishDate{}, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	month, day := birth.hebrewMonth, birth.hebrewDay
	if month == LastMonthOfYear(birth.hebrewYear) {
		return FromAbs(hebrewToAbs(year, LastMonthOfYear(year), day))
	}
	return FromAbs(hebrewToAbs(year, month, 1) + day - 1)
}

// Yahrzeit returns the anniversary of death in the given Hebrew year.
//
// A death on 30 Cheshvan or 30 Kislev is kept on the last day of that month when the month
// was short in the year after the death. A death in AdarII is kept in the last Adar, and
// 30 Adar I falls back to 30 Shevat in a common year.
func Yahrzeit(death JewishDate, year int) (JewishDate, error) {
	if year < 1 {
		return JewishDate{}, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	month, day, next := death.hebrewMonth, death.hebrewDay, death.hebrewYear+1

	var abs int
	switch {
	case month == Cheshvan && day == 30 && !IsCheshvanLong(next):
		abs = hebrewToAbs(year, Kislev, 1) - 1
	case month == Kislev && day == 30 && IsKislevShort(next):
		abs = hebrewToAbs(year, Teves, 1) - 1
	case month == AdarII:
		abs = hebrewToAbs(year, LastMonthOfYear(year), day)
	case month == Adar && day == 30 && !IsLeapYear(year):
		abs = hebrewToAbs(year, Shevat, 30)
	default:
		abs = hebrewToAbs(year, month, 1) + day - 1
	}
	return FromAbs(abs)
}
