package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cronkit/systemd-crontab-generator/internal/units"
)

func TestFingerprintIsStableAndDistinguishing(t *testing.T) {
	a := units.Fingerprint("/etc/crontab", " *-*-* 4:0:00", "/usr/bin/backup")
	b := units.Fingerprint("/etc/crontab", " *-*-* 4:0:00", "/usr/bin/backup")
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)

	c := units.Fingerprint("/etc/crontab", " *-*-* 5:0:00", "/usr/bin/backup")
	assert.NotEqual(t, a, c)

	d := units.Fingerprint("/etc/crontab", "", "/usr/bin/backup")
	e := units.Fingerprint("/etc/crontab", "x", "/usr/bin/backup")
	assert.NotEqual(t, d, e)
}
