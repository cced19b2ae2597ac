package hebcal

import "time"

// Seasonal changes to the Amidah. Outside Israel the request for rain follows the solar
// calendar (the 60th day after Tekufas Tishrei); in Israel it starts on 7 Cheshvan.

// IsVeseinTalUmatarStartDate reports the first day on which the request for rain is said.
func (c JewishCalendar) IsVeseinTalUmatarStartDate() bool {
	if c.InIsrael {
		// 7 Cheshvan never falls on Shabbos.
		return c.HebrewMonth() == Cheshvan && c.HebrewDay() == 7
	}
	switch c.Weekday() {
	case time.Saturday:
		return false
	case time.Sunday:
		// Delayed from Friday night when the start date falls then.
		e := c.TekufasTishreiElapsedDays()
		return e == 48 || e == 47
	}
	return c.TekufasTishreiElapsedDays() == 47
}

// IsVeseinTalUmatarStartingTonight reports the day before IsVeseinTalUmatarStartDate.
func (c JewishCalendar) IsVeseinTalUmatarStartingTonight() bool {
	if c.InIsrael {
		return c.HebrewMonth() == Cheshvan && c.HebrewDay() == 6
	}
	switch c.Weekday() {
	case time.Friday:
		return false
	case time.Saturday:
		e := c.TekufasTishreiElapsedDays()
		return e == 47 || e == 46
	}
	return c.TekufasTishreiElapsedDays() == 46
}

// IsVeseinTalUmatarRecited reports whether the request for rain is said today.
func (c JewishCalendar) IsVeseinTalUmatarRecited() bool {
	month := c.HebrewMonth()
	if month == Nissan && c.HebrewDay() < 15 {
		return true
	}
	if month < Cheshvan {
		return false
	}
	if c.InIsrael {
		return month != Cheshvan || c.HebrewDay() >= 7
	}
	return c.TekufasTishreiElapsedDays() >= 47
}

// IsVeseinBerachaRecited is the complement of IsVeseinTalUmatarRecited.
func (c JewishCalendar) IsVeseinBerachaRecited() bool {
	return !c.IsVeseinTalUmatarRecited()
}

// IsMashivHaruachStartDate reports Shemini Atzeres, when Mashiv Haruach is first said.
func (c JewishCalendar) IsMashivHaruachStartDate() bool {
	return c.HebrewMonth() == Tishrei && c.HebrewDay() == 22
}

// IsMashivHaruachEndDate reports the first day of Pesach, when it is last said.
func (c JewishCalendar) IsMashivHaruachEndDate() bool {
	return c.HebrewMonth() == Nissan && c.HebrewDay() == 15
}

// IsMashivHaruachRecited reports the days strictly between the start and end dates.
func (c JewishCalendar) IsMashivHaruachRecited() bool {
	year := c.HebrewYear()
	start := hebrewToAbs(year, Tishrei, 22)
	end := hebrewToAbs(year, Nissan, 15)
	return c.Abs() > start && c.Abs() < end
}

// IsMoridHatalRecited covers the rest of the year, including both transition days.
func (c JewishCalendar) IsMoridHatalRecited() bool {
	return !c.IsMashivHaruachRecited() || c.IsMashivHaruachStartDate() || c.IsMashivHaruachEndDate()
}
