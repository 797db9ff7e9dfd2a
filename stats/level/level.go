package level

import "math"

// FullScale is the largest magnitude that encodes without wrap-around.
const FullScale = 1.0

// Stats holds level statistics of a block of samples.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	OverFullScale  int // samples with |x| > FullScale
}

// Clipped reports whether any sample exceeds full scale.
func (s Stats) Clipped() bool {
	return s.OverFullScale > 0
}

// AmpToDB converts an amplitude to decibels: 20 * log10(|value|).
// Returns -Inf for zero.
func AmpToDB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// Calculate computes the statistics of signal in a single pass.
func Calculate(signal []float64) Stats {
	var acc Accumulator
	acc.Update(signal)

	return acc.Result()
}

// Channels computes the statistics over all samples of all channels, as if
// they were one block.
func Channels(channels [][]float64) Stats {
	var acc Accumulator
	for _, ch := range channels {
		acc.Update(ch)
	}

	return acc.Result()
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}

	return peak
}

// Accumulator gathers statistics over several blocks. The zero value is
// ready to use.
type Accumulator struct {
	n     int
	sum   float64
	sumSq float64
	peak  float64
	over  int
}

// Update adds a block of samples.
func (a *Accumulator) Update(samples []float64) {
	for _, x := range samples {
		a.sum += x
		a.sumSq += x * x

		abs := math.Abs(x)
		if abs > a.peak {
			a.peak = abs
		}

		if abs > FullScale {
			a.over++
		}
	}

	a.n += len(samples)
}

// Result returns the statistics of everything added so far. dB fields are
// -Inf for silence.
func (a *Accumulator) Result() Stats {
	if a.n == 0 {
		return Stats{
			RMS_dB:         math.Inf(-1),
			Peak_dB:        math.Inf(-1),
			CrestFactor_dB: math.Inf(-1),
		}
	}

	nf := float64(a.n)
	rms := math.Sqrt(a.sumSq / nf)

	s := Stats{
		Length:         a.n,
		DC:             a.sum / nf,
		RMS:            rms,
		RMS_dB:         AmpToDB(rms),
		Peak:           a.peak,
		Peak_dB:        AmpToDB(a.peak),
		CrestFactor_dB: math.Inf(-1),
		OverFullScale:  a.over,
	}

	if rms > 0 {
		s.CrestFactor = a.peak / rms
		s.CrestFactor_dB = AmpToDB(s.CrestFactor)
	}

	return s
}

// Reset clears all accumulated data.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}
