package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cronkit/systemd-crontab-generator/internal/crontab"
	"github.com/cronkit/systemd-crontab-generator/internal/units"
)

func TestComputeParamsDefaults(t *testing.T) {
	entry, err := crontab.ParseLine(crontab.User, "* * * * * /bin/true")
	require.NoError(t, err)

	params := units.ComputeParams(entry, map[string]string{})
	assert.Equal(t, 1, params.RandomDelay)
	assert.Equal(t, "/bin/sh", params.Shell)
	assert.False(t, params.Persistent, "calendar schedules default to non-persistent")
	assert.False(t, params.Batch)
}

func TestComputeParamsPersistentDefaultsForPeriod(t *testing.T) {
	entry, err := crontab.ParseLine(crontab.User, "@daily /bin/true")
	require.NoError(t, err)

	params := units.ComputeParams(entry, map[string]string{})
	assert.True(t, params.Persistent, "period schedules default to persistent")
}

func TestComputeParamsAnacronDelayFromEntry(t *testing.T) {
	entry, err := crontab.ParseLine(crontab.Anacron, "60 5 backup /usr/local/bin/backup")
	require.NoError(t, err)

	params := units.ComputeParams(entry, map[string]string{})
	assert.Equal(t, 5, params.Delay)
	assert.True(t, params.Persistent)
}

func TestComputeParamsEnvDelayOverridesAnacronDelay(t *testing.T) {
	entry, err := crontab.ParseLine(crontab.Anacron, "60 5 backup /usr/local/bin/backup")
	require.NoError(t, err)

	params := units.ComputeParams(entry, map[string]string{"DELAY": "20"})
	assert.Equal(t, 20, params.Delay)
}

func TestComputeParamsStartHoursRangeQuirk(t *testing.T) {
	entry, err := crontab.ParseLine(crontab.User, "@daily /bin/true")
	require.NoError(t, err)

	params := units.ComputeParams(entry, map[string]string{"START_HOURS_RANGE": "8"})
	assert.Equal(t, 8, params.Hour)

	params = units.ComputeParams(entry, map[string]string{"START_HOURS_RANGE": "8-18"})
	assert.Equal(t, 0, params.Hour, "a real range fails the whole-string decimal parse and falls back to 0")
}

func TestComputeParamsPersistentOverrides(t *testing.T) {
	entry, err := crontab.ParseLine(crontab.User, "* * * * * /bin/true")
	require.NoError(t, err)

	assert.True(t, units.ComputeParams(entry, map[string]string{"PERSISTENT": "yes"}).Persistent)
	assert.False(t, units.ComputeParams(entry, map[string]string{"PERSISTENT": "no"}).Persistent)
	assert.False(t, units.ComputeParams(entry, map[string]string{"PERSISTENT": "auto"}).Persistent)
}

func TestComputeParamsBatch(t *testing.T) {
	entry, err := crontab.ParseLine(crontab.User, "* * * * * /bin/true")
	require.NoError(t, err)

	assert.True(t, units.ComputeParams(entry, map[string]string{"BATCH": "true"}).Batch)
	assert.False(t, units.ComputeParams(entry, map[string]string{"BATCH": "nope"}).Batch)
}

func TestCanonicalScheduleAnacronOverThirtyOneDays(t *testing.T) {
	entry, err := crontab.ParseLine(crontab.Anacron, "60 5 backup /usr/local/bin/backup")
	require.NoError(t, err)

	params := units.ComputeParams(entry, map[string]string{})
	assert.Equal(t, "*-1/2-1 0:5:0", units.CanonicalSchedule(entry, &params))
}

func TestCanonicalScheduleReboot(t *testing.T) {
	entry, err := crontab.ParseLine(crontab.User, "@reboot /bin/true")
	require.NoError(t, err)

	params := units.ComputeParams(entry, map[string]string{})
	canonical := units.CanonicalSchedule(entry, &params)
	assert.Empty(t, canonical)
	assert.False(t, params.Persistent)
	assert.Equal(t, 1, params.Delay)
}

func TestCanonicalScheduleCalendar(t *testing.T) {
	entry, err := crontab.ParseLine(crontab.User, "* * * * * /bin/true")
	require.NoError(t, err)

	params := units.ComputeParams(entry, map[string]string{})
	assert.Equal(t, " *-*-* *:*:00", units.CanonicalSchedule(entry, &params))
}
