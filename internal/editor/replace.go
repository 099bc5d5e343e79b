package editor

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"
)

// Replace installs src (a file path, or "-" for stdin) as the target
// user's crontab without invoking an editor, per spec §4.9 "replace"
// (crontab <file>).
func (e *Editor) Replace(u *user.User, src string, stdin io.Reader) error {
	uid, gid, err := uidGid(u)
	if err != nil {
		return err
	}

	tmpPath := filepath.Join(e.SpoolDir, "crontab."+uuid.NewString())
	if err := e.copyIn(tmpPath, src, stdin); err != nil {
		return err
	}

	if err := unix.Chown(tmpPath, uid, gid); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chown %s: %w", tmpPath, err)
	}

	if err := e.Validate(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("errors in crontab file, can't install: %w", err)
	}

	if err := os.Rename(tmpPath, e.CrontabPath(u)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("installing crontab for %s: %w", u.Username, err)
	}
	return nil
}

// copyIn writes src (or stdin, when src is "-") into tmpPath.
func (e *Editor) copyIn(tmpPath, src string, stdin io.Reader) error {
	var r io.Reader
	if src == "-" {
		r = stdin
	} else {
		f, err := os.Open(src)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	dst, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, r)
	return err
}
