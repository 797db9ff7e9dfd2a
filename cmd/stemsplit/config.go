package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-yaml"

	"github.com/cwbudde/algo-stems/dsp/stft"
	"github.com/cwbudde/algo-stems/separate"
	"github.com/cwbudde/algo-stems/separate/onnx"
	"github.com/cwbudde/algo-stems/separate/pcm"
)

// Config is the YAML configuration of the separate command.
//
// Example:
//
//	sample_rate: 44100
//	channels: 2
//	format: f32le
//	runtime: /usr/local/lib/libonnxruntime.so
//	models:
//	  - name: vocal
//	    path: models/vocal.onnx
//	  - name: bgm
//	    path: models/accompaniment.onnx
type Config struct {
	// SampleRate of raw PCM input. WAV input must match it.
	SampleRate int `yaml:"sample_rate,omitempty"`

	// Channels of raw PCM input.
	Channels int `yaml:"channels,omitempty"`

	// Format of raw PCM input and output (s16le or f32le).
	Format string `yaml:"format,omitempty"`

	// Runtime is the ONNX Runtime shared library path.
	Runtime string `yaml:"runtime,omitempty"`

	// Threads limits per-session intra-op threads.
	Threads int `yaml:"threads,omitempty"`

	// Clip clamps output samples to [-1, 1] before integer encoding.
	Clip bool `yaml:"clip,omitempty"`

	// Segment is the frame count per model batch entry.
	Segment int `yaml:"segment,omitempty"`

	// STFT overrides the transform geometry.
	STFT *STFTConfig `yaml:"stft,omitempty"`

	// Models lists one model per output stem, in output order.
	Models []ModelConfig `yaml:"models,omitempty"`
}

// STFTConfig mirrors stft.Config.
type STFTConfig struct {
	WinLength int `yaml:"win_length,omitempty"`
	HopLength int `yaml:"hop_length,omitempty"`
	Bins      int `yaml:"bins,omitempty"`
}

// ModelConfig describes one mask estimation model.
type ModelConfig struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
	Input  string `yaml:"input,omitempty"`
	Output string `yaml:"output,omitempty"`
}

// DefaultConfig mirrors separate.DefaultConfig with the stock model names.
func DefaultConfig() *Config {
	return &Config{
		SampleRate: separate.DefaultSampleRate,
		Channels:   separate.DefaultChannels,
		Format:     pcm.Float32.String(),
		Segment:    separate.DefaultSegment,
		Models: []ModelConfig{
			{Name: "vocal", Path: "models/vocal.onnx"},
			{Name: "bgm", Path: "models/accompaniment.onnx"},
		},
	}
}

// LoadConfig reads path over the defaults. Fields absent from the file keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}

	return cfg, nil
}

// Engine converts the file settings into an engine configuration.
func (c *Config) Engine() (separate.Config, error) {
	format, err := pcm.ParseFormat(c.Format)
	if err != nil {
		return separate.Config{}, err
	}

	if len(c.Models) == 0 {
		return separate.Config{}, errors.New("no models configured")
	}
	seen := make(map[string]bool, len(c.Models))
	for i, m := range c.Models {
		if m.Name == "" || m.Path == "" {
			return separate.Config{}, errors.Newf("model %d needs a name and a path", i)
		}
		if seen[m.Name] {
			return separate.Config{}, errors.Newf("duplicate model name %q", m.Name)
		}
		seen[m.Name] = true
	}

	geometry := stft.DefaultConfig()
	if c.STFT != nil {
		if c.STFT.WinLength > 0 {
			geometry.WinLength = c.STFT.WinLength
		}
		if c.STFT.HopLength > 0 {
			geometry.HopLength = c.STFT.HopLength
		}
		if c.STFT.Bins > 0 {
			geometry.Bins = c.STFT.Bins
		}
	}

	out := separate.Config{
		STFT:       geometry,
		Segment:    c.Segment,
		Channels:   c.Channels,
		Sources:    len(c.Models),
		SampleRate: c.SampleRate,
		Format:     format,
	}

	return out, out.Validate()
}

// OpenEstimators opens one ONNX session per model. On error every session
// opened so far is closed.
func (c *Config) OpenEstimators() ([]separate.Estimator, error) {
	out := make([]separate.Estimator, 0, len(c.Models))

	for _, m := range c.Models {
		est, err := onnx.Open(m.Path,
			onnx.WithInputName(m.Input),
			onnx.WithOutputName(m.Output),
			onnx.WithThreads(c.Threads))
		if err != nil {
			for _, opened := range out {
				_ = opened.(*onnx.Estimator).Close()
			}
			return nil, errors.Wrapf(err, "model %s", m.Name)
		}
		out = append(out, est)
	}

	return out, nil
}
