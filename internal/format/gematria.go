package format

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-luach/internal/config"
)

const (
	geresh    = "׳"
	gershayim = "״"
	alafim    = "אלפים"
	efes      = "אפס"
)

var (
	hundredLetters = [...]string{"", "ק", "ר", "ש", "ת", "תק", "תר", "תש", "תת", "תתק"}
	tenLetters     = [...]string{"", "י", "כ", "ל", "מ", "נ", "ס", "ע", "פ", "צ"}
	tenFinalForms  = [...]string{"", "י", "ך", "ל", "ם", "ן", "ס", "ע", "ף", "ץ"}
	oneLetters     = [...]string{"", "א", "ב", "ג", "ד", "ה", "ו", "ז", "ח", "ט"}
)

// HebrewNumber writes n in Hebrew numerals. Thousands are dropped unless
// UseLongHebrewYears is set, except for round thousands ("ה׳ אלפים"). 15 and 16 are
// written ט״ו and ט״ז. Zero is אפס.
func (f *Formatter) HebrewNumber(n int) (string, error) {
	if n < 0 || n > config.MaxHebrewNumber {
		return "", fmt.Errorf("%s: %d", config.ErrHebrewNumber, n)
	}
	if n == 0 {
		return efes, nil
	}

	short := n % 1000
	single := short < 11 || (short < 100 && short%10 == 0) || (short <= 400 && short%100 == 0)
	thousands := n / 1000

	var sb strings.Builder
	if short == 0 {
		sb.WriteString(oneLetters[thousands])
		if f.UseGershGershayim {
			sb.WriteString(geresh)
		}
		sb.WriteString(" " + alafim)
		return sb.String(), nil
	}
	if f.UseLongHebrewYears && thousands > 0 {
		sb.WriteString(oneLetters[thousands])
		if f.UseGershGershayim {
			sb.WriteString(geresh)
		}
		sb.WriteString(" ")
	}

	sb.WriteString(hundredLetters[short/100])
	rest := short % 100
	switch {
	case rest == 15:
		sb.WriteString("טו")
	case rest == 16:
		sb.WriteString("טז")
	case rest%10 == 0 && !single && f.UseFinalFormLetters:
		sb.WriteString(tenFinalForms[rest/10])
	default:
		sb.WriteString(tenLetters[rest/10])
		sb.WriteString(oneLetters[rest%10])
	}

	if !f.UseGershGershayim {
		return sb.String(), nil
	}
	if single {
		return sb.String() + geresh, nil
	}
	// Gershayim goes before the last letter.
	runes := []rune(sb.String())
	last := len(runes) - 1
	return string(runes[:last]) + gershayim + string(runes[last:]), nil
}

// number writes n in Hebrew numerals for Hebrew output and in digits otherwise.
func (f *Formatter) number(n int) string {
	if !f.Hebrew {
		return fmt.Sprint(n)
	}
	s, err := f.HebrewNumber(n)
	if err != nil {
		return fmt.Sprint(n)
	}
	return s
}
