// Package humanize renders a parsed schedule as a short English phrase
// for log messages.
package humanize

import (
	"fmt"
	"strings"

	"github.com/cronkit/systemd-crontab-generator/internal/limits"
	"github.com/cronkit/systemd-crontab-generator/internal/schedule"
)

var dayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// list joins items with an Oxford comma.
func list(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return fmt.Sprintf("%s and %s", items[0], items[1])
	default:
		return fmt.Sprintf("%s, and %s", strings.Join(items[:len(items)-1], ", "), items[len(items)-1])
	}
}

// Schedule describes s in one short English phrase for log lines, e.g.
// "at 04:30", "daily" or "at boot".
func Schedule(s schedule.Schedule) string {
	switch {
	case s.Period != nil:
		return period(*s.Period)
	case s.Calendar != nil:
		return calendar(*s.Calendar)
	default:
		return "unscheduled"
	}
}

func period(p schedule.Period) string {
	switch p.Kind {
	case schedule.Reboot:
		return "at boot"
	case schedule.Minutely:
		return "every minute"
	case schedule.Hourly:
		return "hourly"
	case schedule.Midnight, schedule.Daily:
		return "daily"
	case schedule.Weekly:
		return "weekly"
	case schedule.Monthly:
		return "monthly"
	case schedule.Quarterly:
		return "quarterly"
	case schedule.Biannually:
		return "twice a year"
	case schedule.Yearly:
		return "yearly"
	case schedule.Days:
		return fmt.Sprintf("every %d days", p.N)
	default:
		return "on an unknown schedule"
	}
}

// calendar gives a coarse description of a 5-field calendar schedule,
// covering only the two shapes the generator actually logs about: a
// single fixed time, or "multiple times a day".
func calendar(c schedule.Calendar) string {
	var names []string
	for _, iv := range c.DaysOfWeek {
		vals := limits.Iterate(iv)
		if len(vals) == 1 {
			names = append(names, dayNames[vals[0].Value()%7])
		}
	}

	timePart := "multiple times a day"
	if len(c.Hours) == 1 && len(c.Minutes) == 1 {
		hrs := limits.Iterate(c.Hours[0])
		mins := limits.Iterate(c.Minutes[0])
		if len(hrs) == 1 && len(mins) == 1 {
			timePart = fmt.Sprintf("at %02d:%02d", hrs[0].Value(), mins[0].Value())
		}
	}

	if len(names) > 0 {
		return fmt.Sprintf("%s on %s", timePart, list(names))
	}
	return timePart
}
