package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/hebcal"
)

// handleDay describes one Gregorian day: /api/v1/day/2024-03-23 or /api/v1/day/today.
func (s *CalendarServer) handleDay(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, config.URLParamDate)

	var (
		d   hebcal.JewishDate
		err error
	)
	if param == config.ArgToday {
		d, err = hebcal.Now(s.opts.Clock)
	} else {
		var t time.Time
		t, err = time.Parse(config.DateFormatFullDash, param)
		if err == nil {
			d, err = hebcal.FromTime(t)
		}
	}
	if err != nil {
		_ = WriteError(w, http.StatusBadRequest, config.HTTPMsgBadDate, config.HTTPCodeBadRequest)
		return
	}

	s.describe(w, r, d)
}

// handleConvert describes a Hebrew date: /api/v1/convert?year=5784&month=13&day=14.
// Months are counted from Nissan.
func (s *CalendarServer) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, errY := strconv.Atoi(q.Get(config.QueryYear))
	month, errM := strconv.Atoi(q.Get(config.QueryMonth))
	day, errD := strconv.Atoi(q.Get(config.QueryDay))
	if errY != nil || errM != nil || errD != nil {
		_ = WriteError(w, http.StatusBadRequest, config.HTTPMsgBadHebrew, config.HTTPCodeBadRequest)
		return
	}

	d, err := hebcal.FromHebrew(year, hebcal.HebrewMonth(month), day)
	if err != nil {
		_ = WriteError(w, http.StatusBadRequest, config.HTTPMsgBadHebrew+" "+err.Error(), config.HTTPCodeBadRequest)
		return
	}

	s.describe(w, r, d)
}

// describe answers with the DayInfo of d, honoring the lang and israel query parameters.
func (s *CalendarServer) describe(w http.ResponseWriter, r *http.Request, d hebcal.JewishDate) {
	q := r.URL.Query()

	lang := s.opts.Lang
	if v := q.Get(config.QueryLang); v != "" {
		lang = v
	}
	israel := s.opts.Israel
	if v, err := strconv.ParseBool(q.Get(config.QueryIsrael)); err == nil {
		israel = v
	}

	f := s.opts.NewFormatter(lang)
	_ = WriteSuccess(w, f.Describe(hebcal.NewCalendar(d, israel)))
}
