// Package syslog picks between a kernel-log and a stderr logging
// transport depending on how the generator was invoked, per spec §7:
// "Logs go to the kernel ring buffer when the generator is invoked by the
// service manager, otherwise stderr."
package syslog

import (
	"fmt"
	"log"
	"os"

	"github.com/coreos/go-systemd/v22/journal"
)

// Level mirrors the syslog priority levels the original Rust Logger trait
// exposed; only a subset is named, and Debug is not currently emitted.
type Level int

const (
	Error Level = iota
	Warning
	Info
	Debug
)

func (l Level) journalPriority() journal.Priority {
	switch l {
	case Error:
		return journal.PriErr
	case Warning:
		return journal.PriWarning
	case Info:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "debug"
	}
}

// Logger is the minimal interface the driver and emitter log through.
type Logger interface {
	Log(level Level, format string, args ...any)
}

// New picks the kernel-journal backend when systemd's journal is reachable
// (the generator is running under the service manager) and falls back to
// a stderr logger otherwise, so the binary behaves sensibly when run by
// hand off a systemd machine too.
func New() Logger {
	if journal.Enabled() {
		return &journalLogger{}
	}
	return &consoleLogger{l: log.New(os.Stderr, "", log.LstdFlags)}
}

type journalLogger struct{}

func (j *journalLogger) Log(level Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_ = journal.Send(msg, level.journalPriority(), nil)
}

type consoleLogger struct {
	l *log.Logger
}

func (c *consoleLogger) Log(level Level, format string, args ...any) {
	c.l.Printf("%s: %s", level, fmt.Sprintf(format, args...))
}
