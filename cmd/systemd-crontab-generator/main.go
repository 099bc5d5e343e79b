// Command systemd-crontab-generator is invoked by systemd as a generator:
// systemd-crontab-generator <destination-directory>. It translates the
// legacy crontab/anacrontab inputs into timer+service unit files dropped
// into that directory, per spec §4.8 and §6.
package main

import (
	"fmt"
	"os"

	"github.com/cronkit/systemd-crontab-generator/internal/driver"
	"github.com/cronkit/systemd-crontab-generator/internal/genconfig"
	"github.com/cronkit/systemd-crontab-generator/internal/syslog"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: systemd-crontab-generator <destination-directory>")
		os.Exit(1)
	}
	dstdir := os.Args[1]

	logger := syslog.New()

	cfg, err := genconfig.Load()
	if err != nil {
		logger.Log(syslog.Error, "error loading configuration: %v", err)
		os.Exit(1)
	}

	driver.Run(dstdir, cfg, logger)
}
