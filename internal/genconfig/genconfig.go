// Package genconfig loads the small set of process-level paths the
// generator and driver need, the Go equivalent of the constants
// original_source/src/main.rs bakes in via its build-time config.rs
// include. This is distinct from the per-file crontab EnvVar accumulator
// (internal/crontab): these are process environment overrides, never
// crontab-file data.
package genconfig

import "github.com/caarlos0/env/v11"

// Config is the set of filesystem locations and identifiers the driver
// and unit emitter consult outside of the crontab files themselves.
type Config struct {
	UsersCrontabDir   string `env:"USERS_CRONTAB_DIR" envDefault:"/var/spool/cron/crontabs"`
	SystemCrontabDir  string `env:"SYSTEM_CRONTAB_DIR" envDefault:"/etc/cron.d"`
	SystemCrontabFile string `env:"SYSTEM_CRONTAB_FILE" envDefault:"/etc/crontab"`
	AnacrontabFile    string `env:"ANACRONTAB_FILE" envDefault:"/etc/anacrontab"`
	RebootFile        string `env:"REBOOT_FILE" envDefault:"/run/crond.reboot"`
	LibDir            string `env:"LIB_DIR" envDefault:"/usr/lib"`
	BinDir            string `env:"BIN_DIR" envDefault:"/usr/bin"`
	Package           string `env:"PACKAGE" envDefault:"systemd-crontab-generator"`
}

// Load reads Config from the process environment, applying the defaults
// above for anything unset.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
