package stft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-stems/dsp/spectrum"
	"github.com/cwbudde/algo-stems/dsp/window"
)

// Analyzer computes band-limited centred STFTs.
//
// An Analyzer owns scratch buffers and is not safe for concurrent use.
type Analyzer struct {
	cfg    Config
	plan   *algofft.Plan[complex128]
	window []float64

	frame []float64
	buf   []complex128
	mag   []float64
}

// NewAnalyzer builds the FFT plan and periodic Hann window for cfg.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(cfg.WinLength)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
	}

	return &Analyzer{
		cfg:    cfg,
		plan:   plan,
		window: window.Generate(window.TypeHann, cfg.WinLength, window.WithPeriodic()),
		frame:  make([]float64, cfg.WinLength),
		buf:    make([]complex128, cfg.WinLength),
		mag:    make([]float64, cfg.Bins),
	}, nil
}

// Config returns the transform geometry.
func (a *Analyzer) Config() Config { return a.cfg }

// Window returns the analysis window. Callers must not modify it.
func (a *Analyzer) Window() []float64 { return a.window }

// Analyze transforms every channel independently. All channels must have the
// same length; an empty length yields a single all-zero frame.
func (a *Analyzer) Analyze(channels [][]float64) (*Spectrogram, *Magnitude, error) {
	if len(channels) == 0 {
		return nil, nil, ErrNoChannels
	}

	samples := len(channels[0])
	for c, ch := range channels {
		if len(ch) != samples {
			return nil, nil, fmt.Errorf("%w: channel %d has %d samples, want %d",
				ErrChannelLengths, c, len(ch), samples)
		}
	}

	frames := a.cfg.FrameCount(samples)
	bins := a.cfg.Bins
	spec := NewSpectrogram(len(channels), bins, frames)
	mag := NewMagnitude(len(channels), bins, frames)

	for c, ch := range channels {
		for t := 0; t < frames; t++ {
			if err := a.transformFrame(ch, t); err != nil {
				return nil, nil, err
			}

			if err := spectrum.MagnitudeInto(a.mag, a.buf[:bins]); err != nil {
				return nil, nil, fmt.Errorf("stft: magnitude: %w", err)
			}

			for f := 0; f < bins; f++ {
				idx := spec.Index(c, f, t)
				spec.Data[idx] = a.buf[f]
				mag.Data[idx] = a.mag[f]
			}
		}
	}

	return spec, mag, nil
}

// transformFrame leaves the spectrum of frame t of x in a.buf.
func (a *Analyzer) transformFrame(x []float64, t int) error {
	start := t*a.cfg.HopLength - a.cfg.WinLength/2

	for i := range a.frame {
		idx := start + i
		if idx >= 0 && idx < len(x) {
			a.frame[i] = x[idx]
		} else {
			a.frame[i] = 0
		}
	}

	if err := window.ApplyCoefficientsInPlace(a.frame, a.window); err != nil {
		return fmt.Errorf("stft: window: %w", err)
	}

	for i, v := range a.frame {
		a.buf[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.buf, a.buf); err != nil {
		return fmt.Errorf("stft: forward FFT failed: %w", err)
	}

	return nil
}
