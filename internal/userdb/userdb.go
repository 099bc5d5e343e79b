// Package userdb resolves system user records for the unit emitter: name,
// uid/gid and home directory, the bits §4.7 needs to decide User=/Group=
// and RequiresMountsFor= in generated service units.
package userdb

import (
	"fmt"
	"os/user"
	"strconv"
)

// Record is the subset of a passwd entry the emitter consumes.
type Record struct {
	Name    string
	UID     int
	GID     int
	HomeDir string
}

// ByUID looks up the user owning uid.
func ByUID(uid int) (Record, error) {
	u, err := user.LookupId(strconv.Itoa(uid))
	if err != nil {
		return Record{}, fmt.Errorf("unknown uid %d: %w", uid, err)
	}
	return fromOSUser(u)
}

// ByName looks up a user by login name, falling back to ownerUID when the
// name does not resolve to a known user (mirroring the effective-user
// resolution in spec §4.7 step 1: System entries, the only ones with a
// user field, use the named user when it exists, else the source file's
// owner).
func ByName(name string, ownerUID int) (Record, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return ByUID(ownerUID)
	}
	return fromOSUser(u)
}

func fromOSUser(u *user.User) (Record, error) {
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return Record{}, fmt.Errorf("malformed uid %q for user %q: %w", u.Uid, u.Username, err)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return Record{}, fmt.Errorf("malformed gid %q for user %q: %w", u.Gid, u.Username, err)
	}
	return Record{Name: u.Username, UID: uid, GID: gid, HomeDir: u.HomeDir}, nil
}
