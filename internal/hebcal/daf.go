package hebcal

import "fmt"

// Daf is one page of a Talmud study cycle. Tractate is a 0-based index into the
// cycle's tractate order (see BavliTractates and YerushalmiTractates).
type Daf struct {
	Tractate int
	Page     int
}

var (
	bavliStart         = gregorianToAbs(1923, 9, 11)
	bavliShekalimStart = gregorianToAbs(1975, 6, 24)
	yerushalmiStart    = gregorianToAbs(1980, 2, 2)
)

const (
	bavliOldCycleLength = 2702
	bavliCycleLength    = 2711
	yerushalmiPages     = 1554
	// Shekalim is studied from the Bavli's 13 pages in cycles 1 to 7 and the Yerushalmi's 22 after.
	shekalimIndex      = 4
	shekalimOldPages   = 13
	firstShekalimCycle = 8
)

// bavliPages is the last page number of each tractate in Bavli order.
var bavliPages = [...]int{
	64, 157, 105, 121, 22, 88, 56, 40, 35, 31, 32, 29, 27, 122, 112, 91, 66, 49, 90, 82,
	119, 119, 176, 113, 24, 49, 76, 14, 120, 110, 142, 61, 34, 34, 28, 22, 4, 9, 5, 73,
}

// bavliFirstPage offsets the tractates printed as a continuation of Meilah.
var bavliFirstPage = map[int]int{36: 21, 37: 24, 38: 32}

// yerushalmiPageCounts is the page count of each tractate in Yerushalmi (Vilna) order.
var yerushalmiPageCounts = [...]int{
	68, 37, 34, 44, 31, 59, 26, 33, 28, 20, 13, 92, 65, 71, 22, 22, 42, 26, 26, 33, 34, 22,
	19, 85, 72, 47, 40, 47, 54, 48, 44, 37, 34, 44, 9, 57, 37, 19, 13,
}

// BavliTractates and YerushalmiTractates are the number of tractates in each cycle.
const (
	BavliTractates      = len(bavliPages)
	YerushalmiTractates = len(yerushalmiPageCounts)
)

// Bavli returns the Daf Yomi of the Babylonian Talmud for d. It reports false for dates
// before the first cycle began on 11 September 1923.
func Bavli(d JewishDate) (Daf, bool) {
	abs := d.Abs()
	if abs < bavliStart {
		return Daf{}, false
	}

	var cycle, dafNo int
	if abs >= bavliShekalimStart {
		cycle = firstShekalimCycle + (abs-bavliShekalimStart)/bavliCycleLength
		dafNo = (abs - bavliShekalimStart) % bavliCycleLength
	} else {
		cycle = 1 + (abs-bavliStart)/bavliOldCycleLength
		dafNo = (abs - bavliStart) % bavliOldCycleLength
	}

	total := 0
	for tractate, pages := range bavliPages {
		if tractate == shekalimIndex && cycle < firstShekalimCycle {
			pages = shekalimOldPages
		}
		// Every tractate starts on page 2.
		total += pages - 1
		if dafNo < total {
			page := 1 + pages - (total - dafNo)
			return Daf{Tractate: tractate, Page: page + bavliFirstPage[tractate]}, true
		}
	}
	panic(fmt.Sprintf("hebcal: Bavli offset %d outside cycle table", dafNo))
}

// Yerushalmi returns the Daf Yomi of the Jerusalem Talmud for d. No page is studied on
// Yom Kippur or Tisha B'Av, so those days and dates before the first cycle (2 February
// 1980) report false. Each skipped day lengthens its cycle by one day, and the
// lengthened cycle may in turn reach another skipped day.
func Yerushalmi(d JewishDate) (Daf, bool) {
	switch NewCalendar(d, false).YomTov() {
	case YomKippur, TishaBav:
		return Daf{}, false
	}
	requested := d.Abs()
	if requested < yerushalmiStart {
		return Daf{}, false
	}

	prev, next := yerushalmiStart, yerushalmiStart
	for requested >= next {
		prev = next
		next = yerushalmiCycleEnd(prev)
	}

	total := requested - prev - yerushalmiSkippedDays(prev, requested)
	for tractate, pages := range yerushalmiPageCounts {
		if total < pages {
			return Daf{Tractate: tractate, Page: total + 1}, true
		}
		total -= pages
	}
	panic(fmt.Sprintf("hebcal: Yerushalmi offset %d outside cycle table", total))
}

// yerushalmiCycleEnd returns the first day after the cycle starting at start.
func yerushalmiCycleEnd(start int) int {
	end := start + yerushalmiPages
	for {
		extended := start + yerushalmiPages + yerushalmiSkippedDays(start, end)
		if extended == end {
			return end
		}
		end = extended
	}
}

// yerushalmiSkippedDays counts 10 Tishrei and 9 Av strictly between the two absolute days.
func yerushalmiSkippedDays(start, end int) int {
	startYear, _, _ := AbsToHebrew(start)
	endYear, _, _ := AbsToHebrew(end)
	count := 0
	for y := startYear; y <= endYear; y++ {
		for _, abs := range []int{hebrewToAbs(y, Tishrei, 10), hebrewToAbs(y, Av, 9)} {
			if abs > start && abs < end {
				count++
			}
		}
	}
	return count
}

// DafBavli is Bavli(c.JewishDate).
func (c JewishCalendar) DafBavli() (Daf, bool) {
	return Bavli(c.JewishDate)
}

// DafYerushalmi is Yerushalmi(c.JewishDate).
func (c JewishCalendar) DafYerushalmi() (Daf, bool) {
	return Yerushalmi(c.JewishDate)
}
