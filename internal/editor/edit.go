package editor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
)

// placeholderCrontab is written into a brand-new temp file when the target
// has no existing crontab, matching the header crontab(1) implementations
// conventionally seed an empty file with.
const placeholderCrontab = "# min\thour\tdom\tmonth\tdow\tcommand\n"

// editorCandidates is the fallback search order used when neither EDITOR
// nor VISUAL is set, per spec §4.9.
var editorCandidates = []string{"/usr/bin/editor", "vim", "nano", "mcedit"}

// resolveEditor picks the editor command to exec, in priority order
// EDITOR, VISUAL, then the first executable candidate on PATH.
func resolveEditor() (string, error) {
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return e, nil
	}
	for _, candidate := range editorCandidates {
		if filepath.IsAbs(candidate) {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			continue
		}
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no editor found: set EDITOR or VISUAL")
}

// Edit opens the target user's crontab in an interactive editor, validates
// the result, and atomically installs it, per spec §4.9 "edit".
//
// A temp file is created in SpoolDir (so the final rename stays on one
// filesystem), seeded from the existing crontab or a placeholder header,
// and chowned to the target user before the editor subprocess drops
// privileges to that user. If the edited file fails validation the temp
// file is preserved and its path is reported via stderr so the caller can
// retry.
func (e *Editor) Edit(u *user.User, stderr io.Writer) error {
	uid, gid, err := uidGid(u)
	if err != nil {
		return err
	}

	tmpPath := filepath.Join(e.SpoolDir, "crontab."+uuid.NewString())
	if err := e.seedTemp(tmpPath, u); err != nil {
		return err
	}
	if err := os.Chown(tmpPath, uid, gid); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chown %s: %w", tmpPath, err)
	}

	for {
		if err := e.runEditor(tmpPath, uid, gid); err != nil {
			os.Remove(tmpPath)
			return err
		}

		if verr := e.Validate(tmpPath); verr != nil {
			fmt.Fprintf(stderr, "errors in crontab file, can't install: %v\n", verr)
			if !Confirm(os.Stdin, stderr, "Do you want to retry the same edit? ") {
				fmt.Fprintf(stderr, "crontab file unchanged; edits left in %s\n", tmpPath)
				return verr
			}
			continue
		}

		dest := e.CrontabPath(u)
		if err := os.Rename(tmpPath, dest); err != nil {
			return fmt.Errorf("installing crontab for %s: %w", u.Username, err)
		}
		return nil
	}
}

// seedTemp creates tmpPath containing the target's existing crontab, or
// placeholderCrontab if they have none yet.
func (e *Editor) seedTemp(tmpPath string, u *user.User) error {
	src, err := os.Open(e.CrontabPath(u))
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		return os.WriteFile(tmpPath, []byte(placeholderCrontab), 0600)
	}
	defer src.Close()

	dst, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// runEditor execs the resolved editor on path, dropping privileges to
// uid/gid in the child process before exec so the editor runs as the
// target user rather than as whoever invoked the crontab command.
func (e *Editor) runEditor(path string, uid, gid int) error {
	editorPath, err := resolveEditor()
	if err != nil {
		return err
	}

	cmd := exec.Command(editorPath, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Credential: &syscall.Credential{Uid: uint32(uid), Gid: uint32(gid)},
	}
	return cmd.Run()
}
