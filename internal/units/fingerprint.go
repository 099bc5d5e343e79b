package units

import (
	"crypto/md5"
	"encoding/hex"
)

// Fingerprint hashes the source path, canonical schedule string (when one
// exists) and command into the lowercase-hex token used to name a job's
// generated unit files, per the "Generated unit identity" invariant in
// spec §3. MD5 is adequate here: collision resistance against realistic
// inputs is all that's required, not cryptographic security, and no
// library in the dependency set offers a better fit for a fixed-width,
// content-addressed filename token than the standard library's primitive.
func Fingerprint(path, canonicalSchedule, command string) string {
	h := md5.New()
	h.Write([]byte(path))
	if canonicalSchedule != "" {
		h.Write([]byte(canonicalSchedule))
	}
	h.Write([]byte(command))
	return hex.EncodeToString(h.Sum(nil))
}
