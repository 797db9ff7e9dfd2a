package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Tones sums equal-amplitude sines at the given frequencies.
func Tones(sampleRate, amplitude float64, length int, freqsHz ...float64) []float64 {
	out := make([]float64, length)
	for _, f := range freqsHz {
		s := DeterministicSine(f, sampleRate, amplitude, length)
		for i, v := range s {
			out[i] += v
		}
	}
	return out
}

// Faded multiplies x in place by a symmetric raised-cosine envelope spanning
// the whole signal and returns it. The result starts and ends at zero with
// zero slope, which keeps its spectrum compact near the signal edges.
func Faded(x []float64) []float64 {
	n := len(x)
	if n < 2 {
		return x
	}
	for i := range x {
		x[i] *= 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return x
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Stereo groups channels into the planar layout used by the transforms.
func Stereo(left, right []float64) [][]float64 {
	return [][]float64{left, right}
}

// Energy returns the sum of squares over all channels.
func Energy(channels ...[]float64) float64 {
	sum := 0.0
	for _, ch := range channels {
		for _, v := range ch {
			sum += v * v
		}
	}
	return sum
}
