// Package units turns a parsed crontab entry into systemd timer+service
// unit files, plus the script and symlink that go with them.
package units

import (
	"fmt"
	"strconv"

	"github.com/cronkit/systemd-crontab-generator/internal/crontab"
	"github.com/cronkit/systemd-crontab-generator/internal/schedule"
)

// Params are the environment-driven modifiers computed once per job from
// its crontab.Env snapshot, per spec §4.6.
type Params struct {
	Persistent  bool
	Batch       bool
	RandomDelay int
	Delay       int
	Hour        int
	Shell       string
}

// ComputeParams reads PERSISTENT, BATCH, RANDOM_DELAY, DELAY, START_HOURS_RANGE
// and SHELL out of env, applying the defaults spec §4.6 specifies. The
// default for PERSISTENT depends on the entry's schedule kind: true for
// Anacron entries and for User/System entries whose schedule is a Period,
// false otherwise (a Calendar schedule).
func ComputeParams(entry crontab.Entry, env map[string]string) Params {
	p := Params{
		RandomDelay: 1,
		Shell:       "/bin/sh",
	}

	if v, ok := env["SHELL"]; ok {
		p.Shell = v
	}
	if v, ok := env["RANDOM_DELAY"]; ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			p.RandomDelay = int(n)
		}
	}
	// An anacrontab line carries its own delay-in-minutes field; that's the
	// baseline, but a DELAY env-var assignment earlier in the file still
	// overrides it like it does for every other dialect.
	if entry.Kind == crontab.KindAnacron {
		p.Delay = entry.Anacron.Delay
	}
	if v, ok := env["DELAY"]; ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			p.Delay = int(n)
		}
	}
	// The original generator parses START_HOURS_RANGE with a splitn(1, '-')
	// call, which (n=1) yields the whole string unsplit rather than the
	// text before the first '-'. A plain hour like "8" still parses; a
	// range like "8-18" fails to parse as a decimal and falls back to 0.
	// Preserved here rather than "fixed" since existing crontabs may rely
	// on the fallback.
	if v, ok := env["START_HOURS_RANGE"]; ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			p.Hour = int(n)
		}
	}

	p.Batch = false
	if v, ok := env["BATCH"]; ok {
		switch v {
		case "yes", "true", "1":
			p.Batch = true
		}
	}

	defaultPersistent := entry.Kind == crontab.KindAnacron
	if sched := entry.Period(); sched != nil && entry.Kind != crontab.KindAnacron {
		defaultPersistent = true
	}

	p.Persistent = defaultPersistent
	if v, ok := env["PERSISTENT"]; ok {
		switch v {
		case "yes", "true", "1":
			p.Persistent = true
		case "auto", "":
			p.Persistent = defaultPersistent
		default:
			p.Persistent = false
		}
	}

	return p
}

// CanonicalSchedule computes the systemd OnCalendar= value (or "" when the
// job should use OnBootSec instead) per the normalization table in §4.6,
// mutating params.Persistent/params.Delay the same way the original
// generator does for @reboot and @minutely.
func CanonicalSchedule(entry crontab.Entry, params *Params) string {
	if period := entry.Period(); period != nil {
		return periodSchedule(*period, params)
	}
	if cal := entry.Calendar(); cal != nil {
		return cal.OnCalendar()
	}
	return ""
}

func periodSchedule(p schedule.Period, params *Params) string {
	switch p.Kind {
	case schedule.Reboot:
		params.Persistent = false
		if params.Delay == 0 {
			params.Delay = 1
		}
		return ""
	case schedule.Minutely:
		params.Persistent = false
		return "minutely"
	case schedule.Hourly:
		if params.Delay == 0 {
			return "hourly"
		}
		return fmt.Sprintf("*-*-* *:%d:0", params.Delay)
	case schedule.Midnight:
		if params.Delay == 0 {
			return "daily"
		}
		return fmt.Sprintf("*-*-* 0:%d:0", params.Delay)
	case schedule.Daily:
		if params.Delay == 0 && params.Hour == 0 {
			return "daily"
		}
		return fmt.Sprintf("*-*-* %d:%d:0", params.Hour, params.Delay)
	case schedule.Weekly:
		if params.Delay == 0 && params.Hour == 0 {
			return "weekly"
		}
		return fmt.Sprintf("Mon *-*-* %d:%d:0", params.Hour, params.Delay)
	case schedule.Monthly:
		if params.Delay == 0 && params.Hour == 0 {
			return "monthly"
		}
		return fmt.Sprintf("*-*-1 %d:%d:0", params.Hour, params.Delay)
	case schedule.Quarterly:
		if params.Delay == 0 && params.Hour == 0 {
			return "quarterly"
		}
		return fmt.Sprintf("*-1,4,7,10-1 %d:%d:0", params.Hour, params.Delay)
	case schedule.Biannually:
		if params.Delay == 0 && params.Hour == 0 {
			return "semiannually"
		}
		return fmt.Sprintf("*-1,7-1 %d:%d:0", params.Hour, params.Delay)
	case schedule.Yearly:
		if params.Delay == 0 && params.Hour == 0 {
			return "yearly"
		}
		return fmt.Sprintf("*-1-1 %d:%d:0", params.Hour, params.Delay)
	case schedule.Days:
		n := int(p.N)
		if n > 31 {
			return fmt.Sprintf("*-1/%d-1 %d:%d:0", n/30, params.Hour, params.Delay)
		}
		return fmt.Sprintf("*-*-1/%d %d:%d:0", n, params.Hour, params.Delay)
	}
	return ""
}
