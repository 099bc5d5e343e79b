package main

import (
	"os"

	"github.com/cronkit/systemd-crontab-generator/internal/crontabcmd"
)

func main() {
	if err := crontabcmd.Execute(); err != nil {
		crontabcmd.Fatalf(err)
		os.Exit(1)
	}
}
