package stft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-stems/dsp/spectrum"
	"github.com/cwbudde/algo-stems/dsp/window"
)

const envelopeFloor = 1e-12

// Synthesizer inverts band-limited spectrograms by windowed overlap-add.
//
// A Synthesizer owns scratch buffers and is not safe for concurrent use.
type Synthesizer struct {
	cfg    Config
	plan   *algofft.Plan[complex128]
	window []float64

	half  []complex128
	full  []complex128
	time  []complex128
	gains []float64
}

// NewSynthesizer builds the FFT plan and periodic Hann window for cfg.
func NewSynthesizer(cfg Config) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(cfg.WinLength)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
	}

	return &Synthesizer{
		cfg:    cfg,
		plan:   plan,
		window: window.Generate(window.TypeHann, cfg.WinLength, window.WithPeriodic()),
		full:   make([]complex128, cfg.WinLength),
		time:   make([]complex128, cfg.WinLength),
	}, nil
}

// Config returns the transform geometry.
func (s *Synthesizer) Config() Config { return s.cfg }

// Reconstruct applies gains to spec and returns one raw overlap-add channel of
// OutputLength(spec.Frames) samples per spectrogram channel.
//
// gains is either nil (unit gain) or a real tensor with the same layout and
// length as spec.Data; it scales real and imaginary parts alike, so phase is
// inherited from spec. spec itself is not modified.
func (s *Synthesizer) Reconstruct(spec *Spectrogram, gains []float64) ([][]float64, error) {
	if spec == nil || spec.Channels == 0 {
		return nil, ErrNoChannels
	}

	if spec.Bins > s.cfg.FullBins() || spec.Frames <= 0 ||
		len(spec.Data) != spec.Channels*spec.Bins*spec.Frames {
		return nil, fmt.Errorf("%w: spectrogram %dx%dx%d with %d values",
			ErrShapeMismatch, spec.Channels, spec.Bins, spec.Frames, len(spec.Data))
	}

	if gains != nil && len(gains) != len(spec.Data) {
		return nil, fmt.Errorf("%w: %d gains for %d bins", ErrShapeMismatch, len(gains), len(spec.Data))
	}

	hop := s.cfg.HopLength
	frames := spec.Frames

	env, err := window.OverlapAddEnvelope(s.window, hop, frames)
	if err != nil {
		return nil, fmt.Errorf("stft: envelope: %w", err)
	}

	if cap(s.half) < spec.Bins {
		s.half = make([]complex128, spec.Bins)
		s.gains = make([]float64, spec.Bins)
	}
	half := s.half[:spec.Bins]
	frameGains := s.gains[:spec.Bins]

	out := make([][]float64, spec.Channels)
	for c := range out {
		acc := make([]float64, s.cfg.OutputLength(frames))

		for t := 0; t < frames; t++ {
			for f := range half {
				idx := spec.Index(c, f, t)
				half[f] = spec.Data[idx]
				if gains != nil {
					frameGains[f] = gains[idx]
				}
			}

			if gains != nil {
				if err := spectrum.ApplyGains(half, frameGains); err != nil {
					return nil, fmt.Errorf("stft: gains: %w", err)
				}
			}

			if err := spectrum.ExpandHermitian(s.full, half); err != nil {
				return nil, fmt.Errorf("stft: expand: %w", err)
			}

			if err := s.plan.Inverse(s.time, s.full); err != nil {
				return nil, fmt.Errorf("stft: inverse FFT failed: %w", err)
			}

			off := t * hop
			for i, w := range s.window {
				acc[off+i] += real(s.time[i]) * w
			}
		}

		for i, e := range env {
			if e > envelopeFloor {
				acc[i] /= e
			}
		}

		out[c] = acc
	}

	return out, nil
}
