package crontabcmd

import (
	"bytes"
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSpoolDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("USERS_CRONTAB_DIR", dir)
	return dir
}

// run resets the package-level flag state, then executes rootCmd with args,
// capturing stdout/stderr. The flags are cobra-bound package vars rather
// than a fresh struct per invocation, so tests must reset them explicitly
// between runs.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	flags = rootFlags{}
	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestListPrintsExistingCrontab(t *testing.T) {
	dir := withSpoolDir(t)
	u, err := user.Current()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, u.Username), []byte("@daily echo hi\n"), 0644))

	stdout, _, err := run(t, "-l")
	require.NoError(t, err)
	assert.Equal(t, "@daily echo hi\n", stdout)
}

func TestListWithoutCrontabReturnsError(t *testing.T) {
	withSpoolDir(t)

	_, _, err := run(t, "-l")
	assert.Error(t, err)
}

func TestShowListsSpoolOwners(t *testing.T) {
	dir := withSpoolDir(t)
	u, err := user.Current()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, u.Username), []byte("@daily echo hi\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "no-such-user-xyz"), []byte("@daily echo hi\n"), 0644))

	stdout, stderr, err := run(t, "-s")
	require.NoError(t, err)
	assert.Contains(t, stdout, u.Username)
	assert.Contains(t, stderr, "no matching user")
}

func TestNoFlagsPrintsHelp(t *testing.T) {
	withSpoolDir(t)

	stdout, _, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, stdout, "crontab edits, lists, replaces or removes a user's crontab")
}

func TestBareFileArgumentReplacesCrontab(t *testing.T) {
	dir := withSpoolDir(t)
	u, err := user.Current()
	require.NoError(t, err)

	srcPath := filepath.Join(t.TempDir(), "newcrontab")
	require.NoError(t, os.WriteFile(srcPath, []byte("@daily echo replaced\n"), 0644))

	_, _, err = run(t, srcPath)
	require.NoError(t, err)

	installed, err := os.ReadFile(filepath.Join(dir, u.Username))
	require.NoError(t, err)
	assert.Equal(t, "@daily echo replaced\n", string(installed))
}
