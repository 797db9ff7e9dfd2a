package separate

import (
	"github.com/apex/log"

	"github.com/cwbudde/algo-stems/separate/pcm"
)

// Stage names a pipeline step reported to a ProgressFunc.
type Stage int

const (
	StageAnalyze Stage = iota
	StageEstimate
	StageFuse
	StageSynthesize
)

func (s Stage) String() string {
	switch s {
	case StageAnalyze:
		return "analyze"
	case StageEstimate:
		return "estimate"
	case StageFuse:
		return "fuse"
	case StageSynthesize:
		return "synthesize"
	default:
		return "unknown"
	}
}

// ProgressFunc receives done out of total steps of a stage. It is called
// synchronously from Separate.
type ProgressFunc func(stage Stage, done, total int)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is log.Log.
func WithLogger(l log.Interface) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// WithClipping clamps separated samples to [-1, 1] before encoding.
func WithClipping() Option {
	return func(e *Engine) {
		e.encodeOpts = append(e.encodeOpts, pcm.WithClipping())
	}
}
