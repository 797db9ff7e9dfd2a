package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stems/separate"
	"github.com/cwbudde/algo-stems/separate/onnx"
	"github.com/cwbudde/algo-stems/separate/pcm"
	"github.com/cwbudde/algo-stems/stats/level"
)

type separateFlags struct {
	config   string
	outDir   string
	format   string
	rate     int
	channels int
	runtime  string
	threads  int
	clip     bool
	quiet    bool
	models   []string
}

func newSeparateCmd() *cobra.Command {
	var flags separateFlags

	cmd := &cobra.Command{
		Use:   "separate <input>",
		Short: "Split a recording into one file per model",
		Long: `Split a recording into one file per model.

Raw input (.pcm, .raw or any other extension) is read with the configured
layout. WAV input is decoded and must use the configured channel count; other
sample rates are converted to the model rate and stems are converted back.
Outputs keep the input container and sample rate.

Example config file (stemsplit.yaml):
  sample_rate: 44100
  format: f32le
  runtime: /usr/local/lib/libonnxruntime.so
  models:
    - name: vocal
      path: models/vocal.onnx
    - name: bgm
      path: models/accompaniment.onnx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(flags.config)
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			return runSeparate(cmd.Context(), cmd, cfg, args[0], flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.config, "config", "c", "", "YAML config file")
	f.StringVarP(&flags.outDir, "out", "o", ".", "output directory")
	f.StringVar(&flags.format, "format", "", "raw sample format: s16le or f32le")
	f.IntVar(&flags.rate, "rate", 0, "raw input sample rate")
	f.IntVar(&flags.channels, "channels", 0, "raw input channel count")
	f.StringVar(&flags.runtime, "runtime", "", "ONNX Runtime shared library path")
	f.IntVar(&flags.threads, "threads", 0, "intra-op threads per model")
	f.BoolVar(&flags.clip, "clip", false, "clamp output to [-1, 1] before integer encoding")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "hide the progress bar")
	f.StringArrayVarP(&flags.models, "model", "m", nil, "model as name=path, repeatable; replaces configured models")

	return cmd
}

// apply overrides cfg with every flag given on the command line.
func (s separateFlags) apply(cmd *cobra.Command, cfg *Config) error {
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = s.format
	}
	if changed("rate") {
		cfg.SampleRate = s.rate
	}
	if changed("channels") {
		cfg.Channels = s.channels
	}
	if changed("runtime") {
		cfg.Runtime = s.runtime
	}
	if changed("threads") {
		cfg.Threads = s.threads
	}
	if changed("clip") {
		cfg.Clip = s.clip
	}

	if len(s.models) > 0 {
		cfg.Models = cfg.Models[:0]
		for _, spec := range s.models {
			name, path, ok := strings.Cut(spec, "=")
			if !ok || name == "" || path == "" {
				return errors.Newf("invalid --model %q, want name=path", spec)
			}
			cfg.Models = append(cfg.Models, ModelConfig{Name: name, Path: path})
		}
	}

	return nil
}

func runSeparate(ctx context.Context, cmd *cobra.Command, cfg *Config, input string, flags separateFlags) error {
	engineCfg, err := cfg.Engine()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	if err := onnx.Init(cfg.Runtime); err != nil {
		return err
	}
	defer func() {
		if err := onnx.Shutdown(); err != nil {
			log.WithError(err).Warn("failed to shut down ONNX Runtime")
		}
	}()

	estimators, err := cfg.OpenEstimators()
	if err != nil {
		return err
	}

	opts := []separate.Option{separate.WithLogger(log.Log)}
	if cfg.Clip {
		opts = append(opts, separate.WithClipping())
	}

	var bar *progressBar
	if !flags.quiet {
		bar = newProgressBar(cmd.ErrOrStderr(), len(estimators))
		opts = append(opts, separate.WithProgress(bar.Update))
	}

	eng, err := separate.New(engineCfg, estimators, opts...)
	if err != nil {
		for _, est := range estimators {
			_ = est.(*onnx.Estimator).Close()
		}
		return err
	}
	defer eng.Close()

	kind := containerFor(input)
	duration, rate, err := load(eng, input, kind)
	if err != nil {
		return err
	}

	start := time.Now()
	stems, err := eng.SeparateWaveforms(ctx)
	if bar != nil {
		bar.Wait()
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	logger := log.WithFields(log.Fields{
		"input":     input,
		"audio":     duration.Round(time.Millisecond).String(),
		"inference": elapsed.Round(time.Millisecond).String(),
	})
	if elapsed > 0 {
		logger = logger.WithField("realtime", duration.Seconds()/elapsed.Seconds())
	}
	logger.Info("separated")

	if err := os.MkdirAll(flags.outDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", flags.outDir)
	}

	var encodeOpts []pcm.EncodeOption
	if cfg.Clip {
		encodeOpts = append(encodeOpts, pcm.WithClipping())
	}

	for i, stem := range stems {
		if stem, err = conform(stem, rate); err != nil {
			return err
		}

		path := filepath.Join(flags.outDir, cfg.Models[i].Name+kind.ext())
		if err := write(path, stem, kind, engineCfg.Format, encodeOpts); err != nil {
			return err
		}
		lvl := level.Channels(stem.Channels)
		entry := log.WithFields(log.Fields{
			"path":    path,
			"peak_db": roundDB(lvl.Peak_dB),
			"rms_db":  roundDB(lvl.RMS_dB),
		})
		entry.Info("wrote stem")
		if lvl.Clipped() && !cfg.Clip && (kind == containerWAV || engineCfg.Format == pcm.Int16) {
			entry.WithField("samples", lvl.OverFullScale).Warn("stem exceeds full scale and wrapped, rerun with --clip")
		}
	}

	return nil
}

// load buffers input in the engine and returns its playback duration and
// its sample rate.
func load(eng *separate.Engine, input string, kind container) (time.Duration, int, error) {
	cfg := eng.Config()

	if kind == containerWAV {
		w, err := readWAVFile(input)
		if err != nil {
			return 0, 0, err
		}
		duration := time.Duration(w.Len()) * time.Second / time.Duration(w.SampleRate)

		if w.SampleRate != cfg.SampleRate {
			log.WithFields(log.Fields{"from": w.SampleRate, "to": cfg.SampleRate}).Info("resampling input")
		}
		conformed, err := conform(w, cfg.SampleRate)
		if err != nil {
			return 0, 0, err
		}
		if err := eng.LoadWaveform(conformed); err != nil {
			return 0, 0, err
		}
		return duration, w.SampleRate, nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "failed to read %s", input)
	}
	if _, err := eng.Load(data); err != nil {
		return 0, 0, err
	}

	return cfg.SignalInfo().Duration(len(data)), cfg.SampleRate, nil
}

func write(path string, stem *pcm.Waveform, kind container, format pcm.Format, opts []pcm.EncodeOption) error {
	if kind == containerWAV {
		return writeWAVFile(path, stem, opts...)
	}

	data, err := pcm.Encode(stem, format, opts...)
	if err != nil {
		return err
	}

	return errors.Wrapf(os.WriteFile(path, data, 0o644), "failed to write %s", path)
}
