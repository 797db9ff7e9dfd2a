package stft

import (
	"testing"

	"github.com/cwbudde/algo-stems/internal/testutil"
)

func BenchmarkAnalyze(b *testing.B) {
	a, err := NewAnalyzer(DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}

	x := testutil.DeterministicNoise(1, 1, 44100)
	in := testutil.Stereo(x, x)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		if _, _, err := a.Analyze(in); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReconstruct(b *testing.B) {
	cfg := DefaultConfig()

	a, err := NewAnalyzer(cfg)
	if err != nil {
		b.Fatal(err)
	}
	s, err := NewSynthesizer(cfg)
	if err != nil {
		b.Fatal(err)
	}

	x := testutil.DeterministicNoise(1, 1, 44100)
	spec, _, err := a.Analyze(testutil.Stereo(x, x))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		if _, err := s.Reconstruct(spec, nil); err != nil {
			b.Fatal(err)
		}
	}
}
