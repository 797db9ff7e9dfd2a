package stft

import (
	"errors"
	"fmt"
)

const (
	// DefaultWinLength is the analysis window and FFT length.
	DefaultWinLength = 4096
	// DefaultHopLength is the frame stride in samples.
	DefaultHopLength = 1024
	// DefaultBins is the number of retained low-frequency bins. It is below
	// DefaultWinLength/2+1 so the upper part of the spectrum is never stored.
	DefaultBins = 1024
)

// Errors returned by the transform.
var (
	ErrInvalidConfig  = errors.New("stft: invalid config")
	ErrShapeMismatch  = errors.New("stft: shape mismatch")
	ErrNoChannels     = errors.New("stft: no channels")
	ErrChannelLengths = errors.New("stft: channels differ in length")
)

// Config describes the transform geometry.
type Config struct {
	WinLength int
	HopLength int
	Bins      int
}

// DefaultConfig returns the 4096/1024/1024 geometry the separation models
// were trained on.
func DefaultConfig() Config {
	return Config{
		WinLength: DefaultWinLength,
		HopLength: DefaultHopLength,
		Bins:      DefaultBins,
	}
}

// Validate checks that the geometry is usable.
func (c Config) Validate() error {
	if c.WinLength < 2 || c.WinLength&(c.WinLength-1) != 0 {
		return fmt.Errorf("%w: window length must be a power of two >= 2: %d", ErrInvalidConfig, c.WinLength)
	}

	if c.HopLength <= 0 || c.HopLength > c.WinLength/2 {
		return fmt.Errorf("%w: hop length must be in [1, %d]: %d", ErrInvalidConfig, c.WinLength/2, c.HopLength)
	}

	if c.Bins <= 0 || c.Bins > c.FullBins() {
		return fmt.Errorf("%w: bins must be in [1, %d]: %d", ErrInvalidConfig, c.FullBins(), c.Bins)
	}

	return nil
}

// FullBins returns the non-redundant bin count of a real FFT, WinLength/2+1.
func (c Config) FullBins() int {
	return c.WinLength/2 + 1
}

// FrameCount returns the number of frames produced for a channel of the
// given length.
func (c Config) FrameCount(samples int) int {
	return 1 + samples/c.HopLength
}

// OutputLength returns the raw overlap-add length for a frame count.
func (c Config) OutputLength(frames int) int {
	if frames <= 0 {
		return 0
	}
	return c.WinLength + (frames-1)*c.HopLength
}

// TrimPadding drops the WinLength/2 leading samples introduced by centred
// framing and cuts each channel to length, the analysed input length, so that
// sample i of each returned channel lines up with sample i of the input. The
// trailing samples past the input sit where the window envelope decays to
// zero and are never returned. The channels share storage with the argument.
func (c Config) TrimPadding(channels [][]float64, length int) [][]float64 {
	half := c.WinLength / 2
	out := make([][]float64, len(channels))
	for i, ch := range channels {
		if len(ch) <= half || length <= 0 {
			out[i] = ch[:0]
			continue
		}
		out[i] = ch[half:min(half+length, len(ch))]
	}
	return out
}
