// Package editor implements the per-user crontab maintenance operations
// behind the crontab command: list, edit, replace, remove and show, per
// spec §4.9.
package editor

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/cronkit/systemd-crontab-generator/internal/syslog"
)

// Editor operates on one target user's crontab file in SpoolDir.
type Editor struct {
	SpoolDir string
	Logger   syslog.Logger
}

// New returns an Editor rooted at spoolDir (conventionally
// /var/spool/cron/crontabs).
func New(spoolDir string, logger syslog.Logger) *Editor {
	return &Editor{SpoolDir: spoolDir, Logger: logger}
}

// ResolveUser picks the target user: the named user when requestedUser is
// non-empty (which requires the caller to already be privileged, per
// §4.9's "-u <user> requires effective uid 0"), otherwise the process's
// own user.
func ResolveUser(requestedUser string) (*user.User, error) {
	if requestedUser == "" {
		return user.Current()
	}

	if os.Geteuid() != 0 {
		return nil, fmt.Errorf("must be privileged to use -u")
	}
	return user.Lookup(requestedUser)
}

// CrontabPath returns the spool path for u.
func (e *Editor) CrontabPath(u *user.User) string {
	return filepath.Join(e.SpoolDir, u.Username)
}

func uidGid(u *user.User) (int, int, error) {
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, 0, err
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return 0, 0, err
	}
	return uid, gid, nil
}
