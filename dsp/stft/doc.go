// Package stft implements a centred short-time Fourier transform with
// band-limited storage and its overlap-add inverse.
//
// Analysis zero-pads each channel by WinLength/2 samples on both ends, frames
// it every HopLength samples (1 + samples/HopLength frames), applies a periodic
// Hann window and keeps only the lowest Bins FFT outputs. Synthesis restores
// the discarded bins as zeros, inverse transforms each frame, windows it again
// and overlap-adds, normalising by the squared-window envelope.
//
// Tensors are stored flat in channel, bin, frame order.
//
//	a, _ := stft.NewAnalyzer(stft.DefaultConfig())
//	spec, mag, _ := a.Analyze([][]float64{left, right})
//
//	s, _ := stft.NewSynthesizer(stft.DefaultConfig())
//	out, _ := s.Reconstruct(spec, gains) // gains shaped like mag.Data, or nil
//	aligned := stft.DefaultConfig().TrimPadding(out, len(left))
package stft
