package schedule

import (
	"fmt"
	"strings"
)

// Schedule is a crontab time specification: either a 5-field Calendar or an
// "@period" shorthand (including the anacrontab bare-integer day count).
type Schedule struct {
	Calendar *Calendar
	Period   *Period
}

// Parse splits the leading schedule tokens off fields and parses them. If
// the first token begins with "@", the schedule is a Period consuming one
// token; otherwise it is a 5-field Calendar consuming five tokens. Bare
// integer periods are an anacron-only notation and are never reached from
// here; ParseAnacronEntry calls ParsePeriod directly for that field. The
// remainder of fields (the command, or for system entries the user column)
// is returned unconsumed.
func Parse(fields []string) (Schedule, []string, error) {
	if len(fields) == 0 {
		return Schedule{}, nil, fmt.Errorf("empty schedule")
	}

	if strings.HasPrefix(fields[0], "@") {
		p, err := ParsePeriod(fields[0])
		if err != nil {
			return Schedule{}, nil, err
		}
		return Schedule{Period: &p}, fields[1:], nil
	}

	if len(fields) < 5 {
		return Schedule{}, nil, fmt.Errorf("calendar schedule needs 5 fields, got %d", len(fields))
	}
	cal, err := ParseCalendar(strings.Join(fields[:5], " "))
	if err != nil {
		return Schedule{}, nil, err
	}
	return Schedule{Calendar: &cal}, fields[5:], nil
}

// IsReboot reports whether the schedule fires once at boot rather than on a
// calendar recurrence.
func (s Schedule) IsReboot() bool {
	return s.Period != nil && s.Period.Kind == Reboot
}

// String renders the schedule back to its crontab token(s).
func (s Schedule) String() string {
	if s.Calendar != nil {
		return s.Calendar.Format()
	}
	return periodToken(*s.Period)
}

func periodToken(p Period) string {
	switch p.Kind {
	case Reboot:
		return "@reboot"
	case Minutely:
		return "@minutely"
	case Hourly:
		return "@hourly"
	case Midnight:
		return "@midnight"
	case Daily:
		return "@daily"
	case Weekly:
		return "@weekly"
	case Monthly:
		return "@monthly"
	case Quarterly:
		return "@quarterly"
	case Biannually:
		return "@biannually"
	case Yearly:
		return "@yearly"
	case Days:
		return fmt.Sprintf("%d", p.N)
	}
	return ""
}

// OnCalendar renders the plain (unmodified by DELAY/START_HOURS_RANGE)
// OnCalendar= value for a Calendar schedule: "<dows> *-<mons>-<days> <hrs>:<mins>:00".
// The units normalizer calls this directly; Period schedules are normalized
// there too, since their canonical string depends on the DELAY/START_HOURS_RANGE
// environment modifiers rather than the Period alone.
func (c Calendar) OnCalendar() string {
	dows, months, days, hours, mins := c.Linearize()
	// dows is "" for an all-wildcard days-of-week field (its sentinel), but
	// the leading separator space is emitted either way.
	return fmt.Sprintf("%s *-%s-%s %s:%s:00", dows, months, days, hours, mins)
}
