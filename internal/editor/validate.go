package editor

import (
	"os"

	"github.com/robfig/cron/v3"

	"github.com/cronkit/systemd-crontab-generator/internal/crontab"
	"github.com/cronkit/systemd-crontab-generator/internal/syslog"
)

// cronBoundaryParser is the SINGLE place in this codebase that constructs
// a robfig/cron parser. It never drives scheduling decisions (the unit
// emitter's own schedule math in internal/schedule and internal/units
// owns that entirely); it only gives the editor a second, independently
// implemented opinion on plain 5-field calendar lines as an extra
// diagnostic before an edit is committed.
var cronBoundaryParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Validate parses path as a user crontab, returning the first positioned
// parse error encountered (§4.9 "any parse error aborts"). It also
// cross-checks every calendar-schedule line against robfig/cron and logs
// a warning on disagreement, without failing the edit; our own parser in
// internal/schedule is authoritative.
func (e *Editor) Validate(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := crontab.NewReader(f, crontab.User)
	for {
		entry, perr, ok := r.Next()
		if !ok {
			return nil
		}
		if perr != nil {
			return perr
		}

		if cal := entry.Calendar(); cal != nil {
			// BOUNDARY: the only robfig/cron Parse() call in this codebase.
			if _, err := cronBoundaryParser.Parse(cal.Format()); err != nil && e.Logger != nil {
				e.Logger.Log(syslog.Warning, "robfig/cron disagrees with %q: %v", cal.Format(), err)
			}
		}
	}
}
