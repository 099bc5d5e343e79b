package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
)

// ErrNoCrontab is returned by List when the target has no crontab file.
var ErrNoCrontab = errors.New("no crontab")

// List streams the target user's crontab to w, per spec §4.9 "list".
func (e *Editor) List(w io.Writer, u *user.User) error {
	path := e.CrontabPath(u)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no crontab for %s: %w", u.Username, ErrNoCrontab)
		}
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

// Show enumerates every file in the spool directory, printing to w each
// filename that resolves to a known system user and writing a warning to
// warnings for any filename that doesn't, per spec
// §4.9 "show" and original_source/src/bin/crontab.rs's show().
func (e *Editor) Show(w, warnings io.Writer) error {
	entries, err := os.ReadDir(e.SpoolDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, err := user.Lookup(name); err != nil {
			fmt.Fprintf(warnings, "WARNING: crontab found with no matching user: %s\n", name)
			continue
		}
		fmt.Fprintln(w, name)
	}
	return nil
}
