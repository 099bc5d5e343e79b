// Command remove-stale-stamps deletes leftover systemd timer persistence
// stamps for cron-generated timers that are no longer produced by the
// current generator run, per spec §4.11. Idempotent: it only removes
// stamps older than ten days, and never touches the six well-known
// period stamps (daily/weekly/monthly/quarterly/semi-annually/yearly).
package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	actualStampsGlob = "/var/lib/systemd/timers/stamp-cron-*.timer"
	timerStampsGlob  = "/run/systemd/generator/cron-*.timer"
	stampPrefix      = "/var/lib/systemd/timers/stamp-cron-"
	timerPrefix      = "/run/systemd/generator/cron-"
	staleAfter       = 10 * 24 * time.Hour
)

var knownStamps = []string{
	"/var/lib/systemd/timers/stamp-cron-daily.timer",
	"/var/lib/systemd/timers/stamp-cron-weekly.timer",
	"/var/lib/systemd/timers/stamp-cron-monthly.timer",
	"/var/lib/systemd/timers/stamp-cron-quarterly.timer",
	"/var/lib/systemd/timers/stamp-cron-semi-annually.timer",
	"/var/lib/systemd/timers/stamp-cron-yearly.timer",
}

func main() {
	actual, err := filepath.Glob(actualStampsGlob)
	if err != nil {
		return
	}

	generated, err := filepath.Glob(timerStampsGlob)
	if err != nil {
		generated = nil
	}

	live := make(map[string]bool, len(generated)+len(knownStamps))
	for _, g := range generated {
		live[strings.Replace(g, timerPrefix, stampPrefix, 1)] = true
	}
	for _, k := range knownStamps {
		live[k] = true
	}

	cutoff := time.Now().Add(-staleAfter)
	for _, stamp := range actual {
		if live[stamp] {
			continue
		}
		info, err := os.Stat(stamp)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(stamp)
		}
	}
}
