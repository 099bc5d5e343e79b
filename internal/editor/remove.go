package editor

import (
	"fmt"
	"io"
	"os"
	"os/user"
)

// Remove deletes the target user's crontab, per spec §4.9 "remove". When
// ask is set it first prompts for confirmation via Confirm, reprompting
// until it gets an affirmative or negative answer; a negative answer
// leaves the file untouched and returns nil.
func (e *Editor) Remove(u *user.User, ask bool, stdin io.Reader, stdout io.Writer) error {
	path := e.CrontabPath(u)

	if ask && !Confirm(stdin, stdout, fmt.Sprintf("Are you sure you want to delete %s (y/n)? ", path)) {
		return nil
	}

	err := os.Remove(path)
	switch {
	case err == nil:
		return nil
	case os.IsNotExist(err):
		return fmt.Errorf("no crontab for %s", u.Username)
	case os.IsPermission(err):
		return fmt.Errorf("you can not remove %s's crontab", u.Username)
	default:
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
}
