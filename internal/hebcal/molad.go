package hebcal

import (
	"fmt"
	"time"
)

// Molad is the mean conjunction of a month, expressed the traditional way: a civil date,
// and hours, minutes and chalakim counted from midnight in Jerusalem local mean time.
type Molad struct {
	Date     JewishDate
	Hours    int
	Minutes  int
	Chalakim int
}

// jerusalemStandard is fixed GMT+2; daylight saving is a display concern.
var jerusalemStandard = time.FixedZone("GMT+2", 2*60*60)

// jerusalemLocalMeanOffset is the local mean time of Har Habayis (35.2354°E) ahead of GMT+2.
const jerusalemLocalMeanOffset = 20*time.Minute + 56*time.Second + 496*time.Millisecond

// MoladOf returns the molad of the given Hebrew month.
func MoladOf(year int, month HebrewMonth) (Molad, error) {
	if year < 1 {
		return Molad{}, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	if !validMonth(year, month) {
		return Molad{}, fmt.Errorf("%w: %d in Hebrew year %d", ErrInvalidMonth, int(month), year)
	}
	return moladFromChalakim(chalakimSinceMoladTohu(year, month)), nil
}

// Molad returns the molad of the calendar's month.
func (d JewishDate) Molad() Molad {
	return moladFromChalakim(chalakimSinceMoladTohu(d.hebrewYear, d.hebrewMonth))
}

func moladFromChalakim(chalakim int) Molad {
	day := floorDiv(chalakim, chalakimPerDay)
	parts := chalakim - day*chalakimPerDay
	abs := day + jewishEpoch

	// The count starts at 6pm; from hour 6 onward the molad belongs to the next civil day.
	hours := parts / chalakimPerHour
	if hours >= 6 {
		abs++
	}
	parts -= hours * chalakimPerHour
	minutes := parts / chalakimPerMinute
	parts -= minutes * chalakimPerMinute

	var date JewishDate
	date.resync(abs)
	return Molad{
		Date:     date,
		Hours:    (hours + 18) % 24,
		Minutes:  minutes,
		Chalakim: parts,
	}
}

// Time returns the molad as an instant. The fields are Jerusalem local mean time; the
// result is converted to standard time (GMT+2).
func (m Molad) Time() time.Time {
	// A chelek is 10/3 seconds.
	fraction := time.Duration(m.Chalakim) * 10 * time.Second / 3
	local := time.Date(m.Date.GregorianYear(), time.Month(m.Date.GregorianMonth()), m.Date.GregorianDay(),
		m.Hours, m.Minutes, 0, 0, jerusalemStandard)
	return local.Add(fraction).Add(-jerusalemLocalMeanOffset)
}

// KiddushLevanaWindow bounds the period in which the blessing on the new moon is said.
type KiddushLevanaWindow struct {
	Molad time.Time
	// Earliest3Days and Earliest7Days are the two customary start times.
	Earliest3Days time.Time
	Earliest7Days time.Time
	// LatestBetweenMoldos is halfway to the next molad; Latest15Days is the later opinion.
	LatestBetweenMoldos time.Time
	Latest15Days        time.Time
}

// halfSynodicMonth is 14 days 18 hours 22 minutes 1.666 seconds.
const halfSynodicMonth = (14*24+18)*time.Hour + 22*time.Minute + 1*time.Second + 666*time.Millisecond

// KiddushLevana computes the window for the molad of the date's month.
func (d JewishDate) KiddushLevana() KiddushLevanaWindow {
	molad := d.Molad().Time()
	return KiddushLevanaWindow{
		Molad:               molad,
		Earliest3Days:       molad.Add(72 * time.Hour),
		Earliest7Days:       molad.Add(168 * time.Hour),
		LatestBetweenMoldos: molad.Add(halfSynodicMonth),
		Latest15Days:        molad.Add(15 * 24 * time.Hour),
	}
}
