package spectrum

import (
	"errors"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// ErrLengthMismatch is returned when input and output slices disagree in length.
var ErrLengthMismatch = errors.New("spectrum: length mismatch")

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

func split(in []complex128, re, im []float64) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	_ = MagnitudeInto(out, in)

	return out
}

// MagnitudeInto writes |X[k]| into dst without allocating in steady state.
// dst and in must have the same length.
func MagnitudeInto(dst []float64, in []complex128) error {
	if len(dst) != len(in) {
		return ErrLengthMismatch
	}
	if len(in) == 0 {
		return nil
	}

	re, im, buf := getScratch(len(in))
	split(in, re, im)
	vecmath.Magnitude(dst, re, im)
	putScratch(buf)

	return nil
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	split(in, re, im)
	vecmath.Power(out, re, im)
	putScratch(buf)

	return out
}

// Energy returns sum(|X[k]|^2) over the given bins.
func Energy(in []complex128) float64 {
	sum := 0.0
	for _, p := range Power(in) {
		sum += p
	}
	return sum
}

// ApplyGains multiplies each complex bin by a real gain in place. Phase is
// left untouched.
func ApplyGains(bins []complex128, gains []float64) error {
	if len(bins) != len(gains) {
		return ErrLengthMismatch
	}

	for k, g := range gains {
		bins[k] = complex(real(bins[k])*g, imag(bins[k])*g)
	}

	return nil
}

// ExpandHermitian fills full (length n, even) with the spectrum of a real
// signal whose lowest len(half) bins are given. Bins from len(half) up to n/2
// are zero, the upper half mirrors the lower half as complex conjugates, and
// the DC and Nyquist bins are forced real.
func ExpandHermitian(full, half []complex128) error {
	n := len(full)
	if n == 0 || n%2 != 0 || len(half) > n/2+1 {
		return ErrLengthMismatch
	}

	for i := range full {
		full[i] = 0
	}

	copy(full, half)

	if len(half) > 0 {
		full[0] = complex(real(full[0]), 0)
	}

	full[n/2] = complex(real(full[n/2]), 0)

	for k := 1; k < n/2; k++ {
		v := full[k]
		full[n-k] = complex(real(v), -imag(v))
	}

	return nil
}
