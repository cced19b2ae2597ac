package hebcal

import "fmt"

// YomTov identifies a holiday, fast or commemorative day. NoYomTov marks an ordinary day.
type YomTov int

const (
	NoYomTov YomTov = iota
	ErevPesach
	Pesach
	CholHamoedPesach
	PesachSheni
	ErevShavuos
	Shavuos
	SeventeenthOfTammuz
	TishaBav
	TuBav
	ErevRoshHashana
	RoshHashana
	FastOfGedalyah
	ErevYomKippur
	YomKippur
	ErevSuccos
	Succos
	CholHamoedSuccos
	HoshanaRabba
	SheminiAtzeres
	SimchasTorah
	Chanukah
	TenthOfTeves
	TuBshvat
	FastOfEsther
	Purim
	ShushanPurim
	PurimKatan
	ShushanPurimKatan
	YomHashoah
	YomHazikaron
	YomHaatzmaut
	YomYerushalayim
	LagBaomer
	IsruChag
)

var yomTovKeys = [...]string{
	NoYomTov:            "none",
	ErevPesach:          "erev_pesach",
	Pesach:              "pesach",
	CholHamoedPesach:    "chol_hamoed_pesach",
	PesachSheni:         "pesach_sheni",
	ErevShavuos:         "erev_shavuos",
	Shavuos:             "shavuos",
	SeventeenthOfTammuz: "seventeenth_of_tammuz",
	TishaBav:            "tisha_beav",
	TuBav:               "tu_beav",
	ErevRoshHashana:     "erev_rosh_hashana",
	RoshHashana:         "rosh_hashana",
	FastOfGedalyah:      "fast_of_gedalyah",
	ErevYomKippur:       "erev_yom_kippur",
	YomKippur:           "yom_kippur",
	ErevSuccos:          "erev_succos",
	Succos:              "succos",
	CholHamoedSuccos:    "chol_hamoed_succos",
	HoshanaRabba:        "hoshana_rabba",
	SheminiAtzeres:      "shemini_atzeres",
	SimchasTorah:        "simchas_torah",
	Chanukah:            "chanukah",
	TenthOfTeves:        "tenth_of_teves",
	TuBshvat:            "tu_beshvat",
	FastOfEsther:        "fast_of_esther",
	Purim:               "purim",
	ShushanPurim:        "shushan_purim",
	PurimKatan:          "purim_katan",
	ShushanPurimKatan:   "shushan_purim_katan",
	YomHashoah:          "yom_hashoah",
	YomHazikaron:        "yom_hazikaron",
	YomHaatzmaut:        "yom_haatzmaut",
	YomYerushalayim:     "yom_yerushalayim",
	LagBaomer:           "lag_baomer",
	IsruChag:            "isru_chag",
}

// String returns a stable snake_case key, used for message lookup and JSON.
func (y YomTov) String() string {
	if y < NoYomTov || int(y) >= len(yomTovKeys) {
		return fmt.Sprintf("YomTov(%d)", int(y))
	}
	return yomTovKeys[y]
}

// YomTovs lists every holiday tag except NoYomTov, in declaration order.
func YomTovs() []YomTov {
	out := make([]YomTov, 0, len(yomTovKeys)-1)
	for y := ErevPesach; int(y) < len(yomTovKeys); y++ {
		out = append(out, y)
	}
	return out
}
