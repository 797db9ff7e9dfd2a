package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/cwbudde/algo-stems/internal/testutil"
	"github.com/cwbudde/algo-stems/separate/pcm"
)

func TestWAVRoundTrip(t *testing.T) {
	g := NewWithT(t)

	in := &pcm.Waveform{
		SampleRate: 44100,
		Channels: testutil.Stereo(
			testutil.DeterministicSine(440, 44100, 0.8, 2000),
			testutil.DeterministicNoise(3, 0.5, 2000),
		),
	}

	path := filepath.Join(t.TempDir(), "stem.wav")
	g.Expect(writeWAVFile(path, in)).To(Succeed())

	out, err := readWAVFile(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out.SampleRate).To(Equal(44100))
	g.Expect(out.Channels).To(HaveLen(2))
	g.Expect(out.Len()).To(Equal(2000))

	for c := range in.Channels {
		d, err := testutil.MaxAbsDiff(out.Channels[c], in.Channels[c])
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(d).To(BeNumerically("<=", 0.5/pcm.IntScale+1e-12))
	}
}

func TestWAVClipping(t *testing.T) {
	g := NewWithT(t)

	in := &pcm.Waveform{SampleRate: 8000, Channels: [][]float64{{1.5, -1.5, 0.25}}}

	path := filepath.Join(t.TempDir(), "loud.wav")
	g.Expect(writeWAVFile(path, in, pcm.WithClipping())).To(Succeed())

	out, err := readWAVFile(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out.Channels[0][0]).To(Equal(1.0))
	g.Expect(out.Channels[0][1]).To(Equal(-1.0))
	g.Expect(out.Channels[0][2]).To(BeNumerically("~", 0.25, 1.0/pcm.IntScale))
}

func TestReadWAVRejectsGarbage(t *testing.T) {
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "noise.wav")
	g.Expect(os.WriteFile(path, []byte("definitely not RIFF data"), 0o644)).To(Succeed())

	_, err := readWAVFile(path)
	g.Expect(err).To(HaveOccurred())
}

func TestContainerFor(t *testing.T) {
	g := NewWithT(t)

	g.Expect(containerFor("song.WAV")).To(Equal(containerWAV))
	g.Expect(containerFor("song.pcm")).To(Equal(containerRaw))
	g.Expect(containerFor("song")).To(Equal(containerRaw))
	g.Expect(containerWAV.ext()).To(Equal(".wav"))
	g.Expect(containerRaw.ext()).To(Equal(".pcm"))
}

func TestRoundDB(t *testing.T) {
	g := NewWithT(t)
	g.Expect(roundDB(-6.0206)).To(Equal(-6.0))
	g.Expect(roundDB(-12.349)).To(Equal(-12.3))
	g.Expect(math.IsInf(roundDB(math.Inf(-1)), -1)).To(BeTrue())
}

func TestConformKeepsMatchingRate(t *testing.T) {
	g := NewWithT(t)

	w := &pcm.Waveform{SampleRate: 44100, Channels: [][]float64{{1, 2, 3}}}
	out, err := conform(w, 44100)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(BeIdenticalTo(w))
}

func TestConformResamples(t *testing.T) {
	g := NewWithT(t)

	w := &pcm.Waveform{
		SampleRate: 48000,
		Channels: testutil.Stereo(
			testutil.DeterministicSine(440, 48000, 0.5, 4800),
			testutil.DeterministicSine(880, 48000, 0.5, 4800),
		),
	}

	out, err := conform(w, 44100)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out.SampleRate).To(Equal(44100))
	g.Expect(out.Channels).To(HaveLen(2))
	g.Expect(out.Len()).To(Equal(4410))

	back, err := conform(out, 48000)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(back.Len()).To(Equal(4800))

	d, err := testutil.MaxAbsDiff(back.Channels[0][100:4700], w.Channels[0][100:4700])
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(d).To(BeNumerically("<", 2e-3))

	_, err = conform(&pcm.Waveform{SampleRate: 0, Channels: [][]float64{{0}}}, 44100)
	g.Expect(err).To(HaveOccurred())
}
