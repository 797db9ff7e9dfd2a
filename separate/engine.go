package separate

import (
	"context"
	"io"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/cwbudde/algo-stems/dsp/stft"
	"github.com/cwbudde/algo-stems/separate/frames"
	"github.com/cwbudde/algo-stems/separate/mask"
	"github.com/cwbudde/algo-stems/separate/pcm"
	"github.com/cwbudde/algo-stems/stats/level"
)

// State is the buffering state of an Engine.
type State int

const (
	// StateReady means no waveform is buffered.
	StateReady State = iota
	// StateLoaded means a waveform is buffered and Separate may run.
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Engine runs the separation pipeline over one buffered waveform.
//
// An Engine is not safe for concurrent use. Independent engines may run in
// parallel.
type Engine struct {
	cfg        Config
	estimators []Estimator
	analyzer   *stft.Analyzer
	synth      *stft.Synthesizer

	logger     log.Interface
	progress   ProgressFunc
	encodeOpts []pcm.EncodeOption

	wave   *pcm.Waveform
	closed bool
}

// New builds an engine with one estimator per configured source, in output
// order.
func New(cfg Config, estimators []Estimator, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, mark(err, ErrInitialization, "invalid engine config")
	}

	if len(estimators) != cfg.Sources {
		return nil, errors.Mark(
			errors.Newf("got %d estimators for %d sources", len(estimators), cfg.Sources),
			ErrInitialization)
	}
	for i, est := range estimators {
		if est == nil {
			return nil, errors.Mark(errors.Newf("estimator %d is nil", i), ErrInitialization)
		}
	}

	analyzer, err := stft.NewAnalyzer(cfg.STFT)
	if err != nil {
		return nil, mark(err, ErrInitialization, "failed to create analyzer")
	}

	synth, err := stft.NewSynthesizer(cfg.STFT)
	if err != nil {
		return nil, mark(err, ErrInitialization, "failed to create synthesizer")
	}

	e := &Engine{
		cfg:        cfg,
		estimators: append([]Estimator(nil), estimators...),
		analyzer:   analyzer,
		synth:      synth,
		logger:     log.Log,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// State reports whether a waveform is buffered.
func (e *Engine) State() State {
	if e.wave == nil {
		return StateReady
	}
	return StateLoaded
}

// Load decodes interleaved PCM in the configured format and replaces the
// buffered waveform. It returns the number of bytes accepted. On error the
// previous buffer is kept.
func (e *Engine) Load(data []byte) (int, error) {
	if e.closed {
		return 0, errors.Mark(errors.New("engine is closed"), ErrInitialization)
	}

	w, err := pcm.Decode(data, e.cfg.SignalInfo())
	if err != nil {
		return 0, mark(err, ErrInvalidInput, "failed to decode input")
	}

	e.wave = w

	return len(data), nil
}

// LoadWaveform replaces the buffered waveform with a copy of w.
func (e *Engine) LoadWaveform(w *pcm.Waveform) error {
	if e.closed {
		return errors.Mark(errors.New("engine is closed"), ErrInitialization)
	}

	if w == nil || len(w.Channels) != e.cfg.Channels {
		got := 0
		if w != nil {
			got = len(w.Channels)
		}
		return markf(pcm.ErrUnsupportedChannels, ErrInvalidInput, "got %d channels, want %d", got, e.cfg.Channels)
	}

	n := w.Len()
	owned := &pcm.Waveform{SampleRate: w.SampleRate, Channels: make([][]float64, len(w.Channels))}
	for c, ch := range w.Channels {
		if len(ch) != n {
			return markf(pcm.ErrRaggedChannels, ErrInvalidInput, "channel %d has %d samples, want %d", c, len(ch), n)
		}
		owned.Channels[c] = append([]float64(nil), ch...)
	}
	if owned.SampleRate == 0 {
		owned.SampleRate = e.cfg.SampleRate
	}

	e.wave = owned

	return nil
}

// Separate runs the pipeline on the buffered waveform and returns one PCM
// buffer per source, encoded like the input. The buffer stays loaded.
func (e *Engine) Separate(ctx context.Context) ([][]byte, error) {
	waves, err := e.SeparateWaveforms(ctx)
	if err != nil {
		return nil, err
	}

	out := make([][]byte, len(waves))
	for i, w := range waves {
		out[i], err = pcm.Encode(w, e.cfg.Format, e.encodeOpts...)
		if err != nil {
			return nil, markf(err, ErrInternal, "failed to encode source %d", i)
		}
	}

	return out, nil
}

// SeparateWaveforms is Separate without the final encoding. Every returned
// waveform is aligned with the input and has the same length.
func (e *Engine) SeparateWaveforms(ctx context.Context) ([]*pcm.Waveform, error) {
	if e.closed {
		return nil, errors.Mark(errors.New("engine is closed"), ErrInitialization)
	}
	if e.wave == nil {
		return nil, errors.Wrap(ErrNotLoaded, "separate called before load")
	}

	start := time.Now()
	logger := e.logger.WithFields(log.Fields{
		"run":      uuid.NewString(),
		"samples":  e.wave.Len(),
		"channels": len(e.wave.Channels),
		"sources":  len(e.estimators),
	})

	e.report(StageAnalyze, 0, 1)

	spec, mag, err := e.analyzer.Analyze(e.wave.Channels)
	if err != nil {
		return nil, mark(err, ErrInternal, "failed to analyze waveform")
	}

	batch, frameCount, err := frames.Partition(mag, e.cfg.Segment)
	if err != nil {
		return nil, mark(err, ErrInternal, "failed to partition magnitude")
	}

	e.report(StageAnalyze, 1, 1)
	logger.WithFields(log.Fields{
		"frames":     frameCount,
		"batch":      batch.Batch,
		"analyze_ms": time.Since(start).Milliseconds(),
	}).Debug("analyzed")

	masks, err := e.estimate(ctx, logger, batch)
	if err != nil {
		return nil, err
	}

	e.report(StageFuse, 0, 1)

	soft, err := mask.Fuse(masks)
	if err != nil {
		return nil, mark(err, ErrInternal, "failed to fuse masks")
	}

	e.report(StageFuse, 1, 1)

	lo, hi := mask.Coverage(soft)
	logger.WithFields(log.Fields{"coverage_min": lo, "coverage_max": hi}).Debug("fused")

	out := make([]*pcm.Waveform, len(soft))
	for i, s := range soft {
		gains, err := frames.Unpartition(s.Shape, s.Data, frameCount)
		if err != nil {
			return nil, markf(err, ErrInternal, "failed to unpartition mask %d", i)
		}

		raw, err := e.synth.Reconstruct(spec, gains)
		if err != nil {
			return nil, markf(err, ErrInternal, "failed to reconstruct source %d", i)
		}

		out[i] = &pcm.Waveform{
			SampleRate: e.wave.SampleRate,
			Channels:   e.cfg.STFT.TrimPadding(raw, e.wave.Len()),
		}
		e.report(StageSynthesize, i+1, len(soft))

		lvl := level.Channels(out[i].Channels)
		logger.WithFields(log.Fields{
			"source":          i,
			"rms_db":          lvl.RMS_dB,
			"peak_db":         lvl.Peak_dB,
			"over_full_scale": lvl.OverFullScale,
		}).Debug("synthesized")
	}

	logger.WithDuration(time.Since(start)).WithField("output_samples", out[0].Len()).Info("separation finished")

	return out, nil
}

func (e *Engine) estimate(ctx context.Context, logger *log.Entry, batch *frames.Batch) ([]*frames.Batch, error) {
	masks := make([]*frames.Batch, len(e.estimators))
	e.report(StageEstimate, 0, len(masks))

	for i, est := range e.estimators {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "separation cancelled")
		}

		began := time.Now()

		m, err := est.Estimate(ctx, batch)
		if err != nil {
			return nil, markf(err, ErrInitialization, "estimator %d failed", i)
		}

		if err := m.Validate(); err != nil {
			return nil, markf(err, ErrInitialization, "estimator %d returned a malformed mask", i)
		}
		if m.Shape != batch.Shape {
			return nil, errors.Mark(
				errors.Newf("estimator %d returned shape %v, want %v", i, m.Dims(), batch.Dims()),
				ErrInitialization)
		}

		masks[i] = m
		e.report(StageEstimate, i+1, len(masks))
		logger.WithFields(log.Fields{"source": i, "estimate_ms": time.Since(began).Milliseconds()}).Debug("estimated")
	}

	return masks, nil
}

func (e *Engine) report(stage Stage, done, total int) {
	if e.progress != nil {
		e.progress(stage, done, total)
	}
}

// Close drops the buffered waveform and closes every estimator that
// implements io.Closer. The engine cannot be used afterwards.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}

	e.closed = true
	e.wave = nil

	var errs error
	for i, est := range e.estimators {
		if c, ok := est.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = errors.CombineErrors(errs, errors.Wrapf(err, "failed to close estimator %d", i))
			}
		}
	}

	return errs
}
