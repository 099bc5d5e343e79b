package schedule

import (
	"fmt"
	"strings"

	"github.com/cronkit/systemd-crontab-generator/internal/limits"
)

// Calendar is the 5-interval-list calendar specification: minutes, hours,
// days-of-month, months, and days-of-week.
type Calendar struct {
	Minutes    []limits.Interval[limits.Minute]
	Hours      []limits.Interval[limits.Hour]
	Days       []limits.Interval[limits.Day]
	Months     []limits.Interval[limits.Month]
	DaysOfWeek []limits.Interval[limits.DayOfWeek]
}

// CalendarFieldError names which of the five fields failed to parse and why.
type CalendarFieldError struct {
	Field string // "minutes", "hours", "days", "months", "daysOfWeek"
	Err   error  // nil when the field was simply missing
}

func (e *CalendarFieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("missing %s", e.Field)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *CalendarFieldError) Unwrap() error { return e.Err }

// ParseCalendar reads exactly five whitespace-delimited interval lists in
// order (minutes, hours, days, months, days-of-week). Runs of spaces/tabs
// collapse to a single separator.
func ParseCalendar(s string) (Calendar, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '\t' })

	next := func(name string) (string, error) {
		if len(fields) == 0 {
			return "", &CalendarFieldError{Field: name}
		}
		v := fields[0]
		fields = fields[1:]
		return v, nil
	}

	minTok, err := next("minutes")
	if err != nil {
		return Calendar{}, err
	}
	hrTok, err := next("hours")
	if err != nil {
		return Calendar{}, err
	}
	dayTok, err := next("days")
	if err != nil {
		return Calendar{}, err
	}
	monTok, err := next("months")
	if err != nil {
		return Calendar{}, err
	}
	dowTok, err := next("daysOfWeek")
	if err != nil {
		return Calendar{}, err
	}

	mins, err := limits.ParseList[limits.Minute](minTok, limits.ParseMinute)
	if err != nil {
		return Calendar{}, &CalendarFieldError{Field: "minutes", Err: err}
	}
	hrs, err := limits.ParseList[limits.Hour](hrTok, limits.ParseHour)
	if err != nil {
		return Calendar{}, &CalendarFieldError{Field: "hours", Err: err}
	}
	days, err := limits.ParseList[limits.Day](dayTok, limits.ParseDay)
	if err != nil {
		return Calendar{}, &CalendarFieldError{Field: "days", Err: err}
	}
	mons, err := limits.ParseList[limits.Month](monTok, limits.ParseMonth)
	if err != nil {
		return Calendar{}, &CalendarFieldError{Field: "months", Err: err}
	}
	dows, err := limits.ParseList[limits.DayOfWeek](dowTok, limits.ParseDayOfWeek)
	if err != nil {
		return Calendar{}, &CalendarFieldError{Field: "daysOfWeek", Err: err}
	}

	return Calendar{Minutes: mins, Hours: hrs, Days: days, Months: mons, DaysOfWeek: dows}, nil
}

// Format renders the calendar back to its 5-field crontab string.
func (c Calendar) Format() string {
	fmtMinutes := func() string {
		parts := make([]string, len(c.Minutes))
		for i, iv := range c.Minutes {
			parts[i] = limits.Format(iv, func(v limits.Minute) string { return v.String() })
		}
		return strings.Join(parts, ",")
	}
	fmtHours := func() string {
		parts := make([]string, len(c.Hours))
		for i, iv := range c.Hours {
			parts[i] = limits.Format(iv, func(v limits.Hour) string { return v.String() })
		}
		return strings.Join(parts, ",")
	}
	fmtDays := func() string {
		parts := make([]string, len(c.Days))
		for i, iv := range c.Days {
			parts[i] = limits.Format(iv, func(v limits.Day) string { return v.String() })
		}
		return strings.Join(parts, ",")
	}
	fmtMonths := func() string {
		parts := make([]string, len(c.Months))
		for i, iv := range c.Months {
			parts[i] = limits.Format(iv, func(v limits.Month) string { return v.String() })
		}
		return strings.Join(parts, ",")
	}
	fmtDOW := func() string {
		parts := make([]string, len(c.DaysOfWeek))
		for i, iv := range c.DaysOfWeek {
			parts[i] = limits.Format(iv, func(v limits.DayOfWeek) string { return v.String() })
		}
		return strings.Join(parts, ",")
	}

	return strings.Join([]string{fmtMinutes(), fmtHours(), fmtDays(), fmtMonths(), fmtDOW()}, " ")
}

// Linearize renders the five fields into the systemd OnCalendar fragments:
// days-of-week (empty sentinel), months, days, hours and minutes.
func (c Calendar) Linearize() (dows, months, days, hours, mins string) {
	dows = limits.Linearize(c.DaysOfWeek, "", func(v limits.DayOfWeek) string { return v.String() })
	months = limits.Linearize(c.Months, "*", func(v limits.Month) string { return v.String() })
	days = limits.Linearize(c.Days, "*", func(v limits.Day) string { return v.String() })
	hours = limits.Linearize(c.Hours, "*", func(v limits.Hour) string { return v.String() })
	mins = limits.Linearize(c.Minutes, "*", func(v limits.Minute) string { return v.String() })
	return
}
