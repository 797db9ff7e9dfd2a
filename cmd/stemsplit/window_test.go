package main

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

func runRoot(args ...string) (string, error) {
	var out bytes.Buffer

	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestWindowCommandDefaults(t *testing.T) {
	g := NewWithT(t)

	out, err := runRoot("window")
	g.Expect(err).NotTo(HaveOccurred())

	lines := strings.Split(strings.TrimSpace(out), "\n")
	g.Expect(lines).To(HaveLen(2))

	fields := strings.Fields(lines[1])
	g.Expect(fields).To(Equal([]string{"Hann", "4096", "1024", "1.5000", "1.5000", fields[5], "true"}))
}

func TestWindowCommandHalfOverlap(t *testing.T) {
	g := NewWithT(t)

	// Squared Hann is not constant at 50% overlap.
	out, err := runRoot("window", "--size", "1024", "--hop", "512", "hann")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(ContainSubstring("false"))
}

func TestWindowCommandErrors(t *testing.T) {
	g := NewWithT(t)

	_, err := runRoot("window", "kaiser")
	g.Expect(err).To(MatchError(ContainSubstring("unknown window")))

	_, err = runRoot("window", "--hop", "0")
	g.Expect(err).To(HaveOccurred())
}
