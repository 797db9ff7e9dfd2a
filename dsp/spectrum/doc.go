// Package spectrum provides FFT-adjacent spectrum-domain utilities.
//
// The package intentionally does not implement FFT itself. It operates on
// complex spectrum bins produced by an external FFT backend (the stft package
// uses algo-fft) and provides the per-frame helpers a masking pipeline needs:
// magnitude and power extraction, real-valued gain application and bin-range
// Hermitian expansion for real inverse transforms.
package spectrum
