package window

import "math"

// OverlapAddEnvelope returns the sum of squared coefficients seen by each output
// sample when frames windowed frames, spaced hop samples apart, are windowed a
// second time and overlap-added. The result has len(coeffs)+(frames-1)*hop samples.
//
// Dividing an analysis/synthesis overlap-add output by this envelope undoes the
// amplitude modulation introduced by windowing twice.
func OverlapAddEnvelope(coeffs []float64, hop, frames int) ([]float64, error) {
	if err := validateHop(len(coeffs), hop); err != nil {
		return nil, err
	}
	if frames <= 0 {
		return nil, nil
	}

	env := make([]float64, len(coeffs)+(frames-1)*hop)
	for f := 0; f < frames; f++ {
		off := f * hop
		for i, w := range coeffs {
			env[off+i] += w * w
		}
	}

	return env, nil
}

// COLA reports the steady-state squared-window overlap gain for the given hop
// and its relative ripple ((max-min)/mean). A ripple near zero means the pair
// satisfies the constant overlap-add condition for analysis plus synthesis
// windowing; the gain is then the factor an overlap-add output must be divided by.
//
// Periodic Hann at hop = N/4 yields gain 1.5 with zero ripple.
func COLA(coeffs []float64, hop int) (gain, ripple float64, err error) {
	if err := validateHop(len(coeffs), hop); err != nil {
		return 0, 0, err
	}

	lo := math.Inf(1)
	hi := math.Inf(-1)
	sum := 0.0

	for r := 0; r < hop; r++ {
		acc := 0.0
		for i := r; i < len(coeffs); i += hop {
			acc += coeffs[i] * coeffs[i]
		}
		sum += acc
		lo = math.Min(lo, acc)
		hi = math.Max(hi, acc)
	}

	gain = sum / float64(hop)
	if gain == 0 {
		return 0, 0, errZeroCoherentGain
	}

	return gain, (hi - lo) / gain, nil
}
