package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/zmanim-api/internal/calendar"
)

// hebrewDate is the JSON form of a calendar.JewishDate.
type hebrewDate struct {
	Gregorian   string `json:"gregorian"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	MonthName   string `json:"month_name"`
	Day         int    `json:"day"`
	DayOfWeek   string `json:"day_of_week"`
	Text        string `json:"text"`
	LeapYear    bool   `json:"leap_year"`
	AbsoluteDay int    `json:"absolute_day"`
}

func newHebrewDate(d *calendar.JewishDate) hebrewDate {
	return hebrewDate{
		Gregorian:   calendar.FormatDate(d.Time()),
		Year:        d.JewishYear(),
		Month:       d.JewishMonth(),
		MonthName:   calendar.MonthName(d.JewishYear(), d.JewishMonth()),
		Day:         d.JewishDay(),
		DayOfWeek:   d.DayOfWeek().String(),
		Text:        d.String(),
		LeapYear:    d.IsJewishLeapYear(),
		AbsoluteDay: d.AbsDate(),
	}
}

// GetHebrewDate handles GET /api/v1/hebrew-date?date=YYYY-MM-DD&tz=
//
// Without a date, today's civil date in tz (default UTC) is used.
func (h *Handlers) GetHebrewDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var date time.Time
	if s := q.Get("date"); s != "" {
		parsed, err := calendar.ParseDateString(s)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", s))
			return
		}
		date = parsed
	} else {
		tz := time.UTC
		if id := q.Get("tz"); id != "" {
			loaded, err := time.LoadLocation(id)
			if err != nil {
				WriteBadRequest(w, fmt.Sprintf("Unknown time zone: %s", id))
				return
			}
			tz = loaded
		}
		date = h.today(tz)
	}

	jd, err := calendar.FromTime(date)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	WriteSuccess(w, newHebrewDate(jd))
}

// GetGregorianDate handles GET /api/v1/hebrew-date/{year}/{month}/{day}
//
// month is a number counted from Nisan or a name such as "Cheshvan" or
// "Adar II".
func (h *Handlers) GetGregorianDate(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Invalid year")
		return
	}
	month, err := calendar.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		WriteBadRequest(w, "Invalid day")
		return
	}

	jd, err := calendar.NewJewishDate(year, month, day)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	WriteSuccess(w, newHebrewDate(jd))
}

type jewishMonth struct {
	Month int    `json:"month"`
	Name  string `json:"name"`
	Days  int    `json:"days"`
	Start string `json:"start"`
}

type jewishYear struct {
	Year         int           `json:"year"`
	RoshHashana  string        `json:"rosh_hashana"`
	DayOfWeek    string        `json:"day_of_week"`
	Days         int           `json:"days"`
	LeapYear     bool          `json:"leap_year"`
	Kviah        string        `json:"kviah"`
	CheshvanLong bool          `json:"cheshvan_long"`
	KislevShort  bool          `json:"kislev_short"`
	Months       []jewishMonth `json:"months"`
}

// GetJewishYear handles GET /api/v1/years/{year}
func (h *Handlers) GetJewishYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Invalid year")
		return
	}

	roshHashana, err := calendar.NewJewishDate(year, calendar.Tishrei, 1)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	resp := jewishYear{
		Year:         year,
		RoshHashana:  calendar.FormatDate(roshHashana.Time()),
		DayOfWeek:    roshHashana.DayOfWeek().String(),
		Days:         roshHashana.DaysInJewishYear(),
		LeapYear:     roshHashana.IsJewishLeapYear(),
		Kviah:        roshHashana.Kviah().String(),
		CheshvanLong: roshHashana.IsCheshvanLong(),
		KislevShort:  roshHashana.IsKislevShort(),
	}

	months := 12
	if resp.LeapYear {
		months = 13
	}
	month := roshHashana.Clone()
	for i := 0; i < months; i++ {
		if i > 0 {
			if err := month.Forward(calendar.Month, 1); err != nil {
				WriteBadRequest(w, err.Error())
				return
			}
		}
		resp.Months = append(resp.Months, jewishMonth{
			Month: month.JewishMonth(),
			Name:  calendar.MonthName(year, month.JewishMonth()),
			Days:  month.DaysInJewishMonth(),
			Start: calendar.FormatDate(month.Time()),
		})
	}

	WriteSuccess(w, resp)
}

type molad struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	MonthName string    `json:"month_name"`
	Date      string    `json:"date"`
	DayOfWeek string    `json:"day_of_week"`
	Hours     int       `json:"hours"`
	Minutes   int       `json:"minutes"`
	Chalakim  int       `json:"chalakim"`
	Instant   time.Time `json:"instant"`
}

// GetMolad handles GET /api/v1/molad/{year}/{month}
//
// Hours, minutes and chalakim are civil Jerusalem mean time on date;
// instant is the same moment in UTC.
func (h *Handlers) GetMolad(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Invalid year")
		return
	}
	month, err := calendar.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	jd, err := calendar.NewJewishDate(year, month, 1)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	m, err := jd.Molad()
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	instant, err := jd.MoladTime()
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	WriteSuccess(w, molad{
		Year:      year,
		Month:     month,
		MonthName: calendar.MonthName(year, month),
		Date:      calendar.FormatDate(m.Time()),
		DayOfWeek: m.DayOfWeek().String(),
		Hours:     m.MoladHours(),
		Minutes:   m.MoladMinutes(),
		Chalakim:  m.MoladChalakim(),
		Instant:   instant,
	})
}
