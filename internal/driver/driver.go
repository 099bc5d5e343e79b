// Package driver walks the three legacy input sources (user crontab
// directory, system crontab file+directory, anacron table) concurrently
// and feeds every job entry found to the unit emitter, per spec §4.8/§5.
package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cronkit/systemd-crontab-generator/internal/crontab"
	"github.com/cronkit/systemd-crontab-generator/internal/genconfig"
	"github.com/cronkit/systemd-crontab-generator/internal/humanize"
	"github.com/cronkit/systemd-crontab-generator/internal/schedule"
	"github.com/cronkit/systemd-crontab-generator/internal/syslog"
	"github.com/cronkit/systemd-crontab-generator/internal/units"
)

// Run launches one goroutine per input source, per spec §4.8/§5 ("the
// driver launches exactly three independent workers... and joins them").
// Each worker produces files into disjoint filename sets, so no
// synchronization is needed between them beyond the final join.
func Run(dstdir string, cfg genconfig.Config, logger syslog.Logger) {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		walkUser(dstdir, cfg, logger)
	}()
	go func() {
		defer wg.Done()
		walkSystem(dstdir, cfg, logger)
	}()
	go func() {
		defer wg.Done()
		walkAnacron(dstdir, cfg, logger)
	}()

	wg.Wait()
}

func walkUser(dstdir string, cfg genconfig.Config, logger syslog.Logger) {
	info, err := os.Stat(cfg.UsersCrontabDir)
	if err != nil || !info.IsDir() {
		generateAfterVarUnit(dstdir, cfg, logger)
		return
	}

	entries, err := os.ReadDir(cfg.UsersCrontabDir)
	if err != nil {
		logger.Log(syslog.Error, "error processing directory %s: %v", cfg.UsersCrontabDir, err)
		return
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(cfg.UsersCrontabDir, e.Name())
		processFile(path, crontab.User, dstdir, cfg, logger)
	}

	touchRebootFile(cfg.RebootFile, logger)
}

func walkSystem(dstdir string, cfg genconfig.Config, logger syslog.Logger) {
	if _, err := os.Stat(cfg.SystemCrontabFile); err == nil {
		processFile(cfg.SystemCrontabFile, crontab.System, dstdir, cfg, logger)
	}

	entries, err := os.ReadDir(cfg.SystemCrontabDir)
	if err != nil {
		logger.Log(syslog.Error, "error processing directory %s: %v", cfg.SystemCrontabDir, err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(cfg.SystemCrontabDir, e.Name())
		processFile(path, crontab.System, dstdir, cfg, logger)
	}
}

func walkAnacron(dstdir string, cfg genconfig.Config, logger syslog.Logger) {
	if _, err := os.Stat(cfg.AnacrontabFile); err != nil {
		return
	}
	processFile(cfg.AnacrontabFile, crontab.Anacron, dstdir, cfg, logger)
}

// processFile streams one crontab file, threading env-var assignments to
// the jobs that follow them in the same file (spec §4.5) and handing every
// job entry to the unit emitter. Parse errors are logged and skipped;
// fatal I/O errors abandon the file.
func processFile(path string, dialect crontab.Dialect, dstdir string, cfg genconfig.Config, logger syslog.Logger) {
	fr, err := crontab.OpenReader(path, dialect)
	if err != nil {
		logger.Log(syslog.Error, "error parsing file %s: %v", path, err)
		return
	}
	defer fr.Close()

	env := crontab.NewEnv()

	crontab.All(fr.Reader, func(entry crontab.Entry) {
		if entry.Kind == crontab.KindEnvVar {
			env.Set(entry.EnvVar.Name, entry.EnvVar.Value)
			return
		}

		emitCfg := units.Config{LibDir: cfg.LibDir, Package: cfg.Package}
		if err := units.Emit(entry, env.Snapshot(), path, dstdir, emitCfg); err != nil {
			logger.Log(syslog.Warning, "skipping job from %s: %v", path, err)
			return
		}
		logger.Log(syslog.Info, "installed unit for %q (%s)", entry.Command(), humanize.Schedule(entrySchedule(entry)))
	}, func(perr *crontab.PositionedError) {
		if perr.Kind == crontab.KindIO {
			logger.Log(syslog.Warning, "error accessing file %s: %v", path, perr)
		} else {
			logger.Log(syslog.Warning, "skipping line in %s: %v", path, perr)
		}
	})
}

// entrySchedule reassembles the schedule.Schedule sum type from whichever
// half of it an entry actually carries, for log-message purposes.
func entrySchedule(entry crontab.Entry) schedule.Schedule {
	return schedule.Schedule{Calendar: entry.Calendar(), Period: entry.Period()}
}

func touchRebootFile(path string, logger syslog.Logger) {
	f, err := os.Create(path)
	if err != nil {
		logger.Log(syslog.Warning, "error creating lock file %s: %v", path, err)
		return
	}
	_ = f.Close()
}

// generateAfterVarUnit reproduces original_source/src/main.rs's
// generate_after_var_unit: when the user crontab directory doesn't exist
// yet (typically because /var hasn't been mounted during early boot), it
// drops a one-shot unit that reruns this generator once that directory
// becomes non-empty.
func generateAfterVarUnit(dstdir string, cfg genconfig.Config, logger syslog.Logger) {
	unitPath := filepath.Join(dstdir, "cron-after-var.service")

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "[Unit]\n")
	fmt.Fprintf(&buf, "Description=Rerun systemd-crontab-generator because /var is a separate mount\n")
	fmt.Fprintf(&buf, "Documentation=man:systemd.cron(7)\n")
	fmt.Fprintf(&buf, "After=cron.target\n")
	fmt.Fprintf(&buf, "ConditionDirectoryNotEmpty=%s\n", cfg.UsersCrontabDir)
	fmt.Fprintf(&buf, "\n[Service]\n")
	fmt.Fprintf(&buf, "Type=oneshot\n")
	fmt.Fprintf(&buf, "ExecStart=/bin/sh -c \"%s/systemctl daemon-reload ; %s/systemctl try-restart cron.target\"\n", cfg.BinDir, cfg.BinDir)

	if err := os.WriteFile(unitPath, buf.Bytes(), 0644); err != nil {
		logger.Log(syslog.Error, "error creating %s: %v", unitPath, err)
		return
	}

	wantsDir := filepath.Join(dstdir, "multi-user.target.wants")
	if err := os.MkdirAll(wantsDir, 0755); err != nil {
		logger.Log(syslog.Error, "error creating %s: %v", wantsDir, err)
		return
	}

	linkPath := filepath.Join(wantsDir, "cron-after-var.service")
	_ = os.Remove(linkPath)
	if err := os.Symlink(filepath.Join("..", "cron-after-var.service"), linkPath); err != nil {
		logger.Log(syslog.Error, "error linking %s: %v", linkPath, err)
	}
}
