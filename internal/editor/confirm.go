package editor

import (
	"bufio"
	"fmt"
	"io"
)

// Confirm prints msg and reads a single byte from r, looping until it
// sees an ASCII y/Y (true) or n/N (false), per spec §4.9 "-i prompt
// ... repeat until an affirmative/negative character is received" and
// original_source/src/bin/crontab.rs's confirm().
func Confirm(r io.Reader, w io.Writer, msg string) bool {
	reader := bufio.NewReader(r)
	for {
		fmt.Fprint(w, msg)

		b, err := reader.ReadByte()
		if err != nil {
			return false
		}

		switch b {
		case 'y', 'Y':
			return true
		case 'n', 'N':
			return false
		default:
			fmt.Fprint(w, "Please reply \"y\" or \"n\"\n")
		}
	}
}
