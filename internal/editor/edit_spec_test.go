package editor_test

import (
	"bytes"
	"os"
	"os/user"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cronkit/systemd-crontab-generator/internal/editor"
)

// withStdin temporarily replaces os.Stdin with a pipe fed by content, for
// exercising Edit's confirm-retry prompt (which always reads the process's
// real stdin, per spec §4.9).
func withStdin(content string, fn func()) {
	r, w, err := os.Pipe()
	Expect(err).NotTo(HaveOccurred())
	_, err = w.WriteString(content)
	Expect(err).NotTo(HaveOccurred())
	w.Close()

	orig := os.Stdin
	os.Stdin = r
	defer func() {
		os.Stdin = orig
		r.Close()
	}()

	fn()
}

var _ = Describe("Edit", func() {
	var (
		spoolDir string
		u        *user.User
	)

	BeforeEach(func() {
		spoolDir = GinkgoT().TempDir()
		var err error
		u, err = user.Current()
		Expect(err).NotTo(HaveOccurred())
	})

	It("installs the editor's output when it validates", func() {
		script := filepath.Join(GinkgoT().TempDir(), "fake-editor.sh")
		Expect(os.WriteFile(script, []byte("#!/bin/sh\nprintf '@daily /usr/bin/true\\n' > \"$1\"\n"), 0755)).To(Succeed())

		os.Setenv("EDITOR", script)
		defer os.Unsetenv("EDITOR")

		ed := editor.New(spoolDir, nil)
		var stderr bytes.Buffer
		Expect(ed.Edit(u, &stderr)).To(Succeed())

		installed, err := os.ReadFile(ed.CrontabPath(u))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(installed)).To(Equal("@daily /usr/bin/true\n"))
	})

	It("preserves the temp file and reports its path when the user declines to retry an invalid edit", func() {
		script := filepath.Join(GinkgoT().TempDir(), "fake-editor.sh")
		Expect(os.WriteFile(script, []byte("#!/bin/sh\nprintf 'not a valid line\\n' > \"$1\"\n"), 0755)).To(Succeed())

		os.Setenv("EDITOR", script)
		defer os.Unsetenv("EDITOR")

		ed := editor.New(spoolDir, nil)
		var stderr bytes.Buffer

		withStdin("n\n", func() {
			err := ed.Edit(u, &stderr)
			Expect(err).To(HaveOccurred())
		})

		Expect(stderr.String()).To(ContainSubstring("edits left in"))
		_, err := os.Stat(ed.CrontabPath(u))
		Expect(os.IsNotExist(err)).To(BeTrue(), "the crontab should not have been installed")
	})
})
