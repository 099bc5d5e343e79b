package crontab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cronkit/systemd-crontab-generator/internal/crontab"
)

func TestParseEnvVar(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    crontab.EnvVar
		wantErr error
	}{
		{name: "simple", in: "MAILTO=root", want: crontab.EnvVar{Name: "MAILTO", Value: "root"}},
		{name: "double quoted value stripped", in: `PATH="/usr/bin"`, want: crontab.EnvVar{Name: "PATH", Value: "/usr/bin"}},
		{name: "single quoted value stripped", in: "SHELL='/bin/bash'", want: crontab.EnvVar{Name: "SHELL", Value: "/bin/bash"}},
		{name: "mismatched quotes kept", in: `FOO="bar'`, want: crontab.EnvVar{Name: "FOO", Value: `"bar'`}},
		{name: "value trims leading whitespace", in: "FOO=   bar", want: crontab.EnvVar{Name: "FOO", Value: "bar"}},
		{name: "no equals", in: "not an assignment", wantErr: crontab.ErrMissingEnvVarValue},
		{name: "empty name", in: "=bar", wantErr: crontab.ErrMissingEnvVarName},
		{name: "name with space", in: "FOO BAR=baz", wantErr: crontab.ErrInvalidEnvVarName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := crontab.ParseEnvVar(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUserEntry(t *testing.T) {
	ue, err := crontab.ParseUserEntry("*/5 * * * * /usr/bin/do-thing --flag")
	require.NoError(t, err)
	require.NotNil(t, ue.Sched.Calendar)
	assert.Equal(t, "/usr/bin/do-thing --flag", ue.Cmd)

	ue, err = crontab.ParseUserEntry("@reboot /usr/bin/startup.sh")
	require.NoError(t, err)
	require.NotNil(t, ue.Sched.Period)
	assert.Equal(t, "/usr/bin/startup.sh", ue.Cmd)
}

func TestParseSystemEntry(t *testing.T) {
	se, err := crontab.ParseSystemEntry("0 4 * * * root:staff:idle /usr/bin/backup")
	require.NoError(t, err)
	assert.Equal(t, "root", se.User.Name)
	assert.Equal(t, "staff", se.User.Group)
	assert.Equal(t, "idle", se.User.Class)
	assert.Equal(t, "/usr/bin/backup", se.Cmd)

	se, err = crontab.ParseSystemEntry("0 4 * * * www-data /usr/bin/cleanup")
	require.NoError(t, err)
	assert.Equal(t, "www-data", se.User.Name)
	assert.Empty(t, se.User.Group)

	_, err = crontab.ParseSystemEntry("0 4 * * *")
	assert.ErrorIs(t, err, crontab.ErrInvalidUser)
}

func TestParseAnacronEntry(t *testing.T) {
	ae, err := crontab.ParseAnacronEntry("7 10 weekly.backup /usr/bin/backup --weekly")
	require.NoError(t, err)
	assert.Equal(t, 10, ae.Delay)
	assert.Equal(t, "weekly.backup", ae.JobID)
	assert.Equal(t, "/usr/bin/backup --weekly", ae.Cmd)

	_, err = crontab.ParseAnacronEntry("7")
	assert.ErrorIs(t, err, crontab.ErrMissingDelay)

	_, err = crontab.ParseAnacronEntry("7 10")
	assert.ErrorIs(t, err, crontab.ErrMissingJobID)
}

func TestParseLineDispatch(t *testing.T) {
	entry, err := crontab.ParseLine(crontab.User, "MAILTO=admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, crontab.KindEnvVar, entry.Kind)

	entry, err = crontab.ParseLine(crontab.User, "* * * * * /bin/true")
	require.NoError(t, err)
	assert.Equal(t, crontab.KindUser, entry.Kind)
	assert.Equal(t, "/bin/true", entry.Command())

	entry, err = crontab.ParseLine(crontab.System, "* * * * * root /bin/true")
	require.NoError(t, err)
	assert.Equal(t, crontab.KindSystem, entry.Kind)
	name, ok := entry.UserName()
	assert.True(t, ok)
	assert.Equal(t, "root", name)

	entry, err = crontab.ParseLine(crontab.Anacron, "7 10 job.id /bin/true")
	require.NoError(t, err)
	assert.Equal(t, crontab.KindAnacron, entry.Kind)
}

func TestEntryString(t *testing.T) {
	entry, err := crontab.ParseLine(crontab.User, "@daily /bin/true")
	require.NoError(t, err)
	assert.Equal(t, "@daily /bin/true", entry.String())
}
