package main

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-stems/dsp/resample"
	"github.com/cwbudde/algo-stems/separate/pcm"
)

// container is the on-disk layout of input and output files.
type container int

const (
	containerRaw container = iota
	containerWAV
)

func containerFor(path string) container {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return containerWAV
	}
	return containerRaw
}

func (c container) ext() string {
	if c == containerWAV {
		return ".wav"
	}
	return ".pcm"
}

// readWAV decodes a PCM WAV stream into a planar waveform. Integer samples
// are scaled by the largest positive value of their bit depth, which for
// 16-bit files matches pcm.IntScale.
func readWAV(r io.ReadSeeker) (*pcm.Waveform, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("not a valid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read PCM buffer")
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, errors.Newf("WAV file declares %d channels", channels)
	}

	depth := buf.SourceBitDepth
	if depth <= 0 {
		depth = int(dec.BitDepth)
	}
	if depth <= 1 || depth > 32 {
		return nil, errors.Newf("unsupported WAV bit depth %d", depth)
	}
	scale := float64(int64(1)<<(depth-1) - 1)

	samples := len(buf.Data) / channels
	w := pcm.NewWaveform(buf.Format.SampleRate, channels, samples)
	for i := 0; i < samples; i++ {
		for c := range w.Channels {
			w.Channels[c][i] = float64(buf.Data[i*channels+c]) / scale
		}
	}

	return w, nil
}

// writeWAV encodes w as 16-bit PCM WAV. Conversion goes through the raw
// codec so that wrap-around and clipping behave as for .pcm output.
func writeWAV(ws io.WriteSeeker, w *pcm.Waveform, opts ...pcm.EncodeOption) error {
	raw, err := pcm.Encode(w, pcm.Int16, opts...)
	if err != nil {
		return err
	}

	data := make([]int, len(raw)/2)
	for i := range data {
		data[i] = int(int16(binary.LittleEndian.Uint16(raw[2*i:])))
	}

	enc := wav.NewEncoder(ws, w.SampleRate, 16, len(w.Channels), 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: len(w.Channels),
			SampleRate:  w.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "failed to write WAV samples")
	}

	return errors.Wrap(enc.Close(), "failed to finalize WAV file")
}

// conform returns w at the given sample rate. A waveform already at that
// rate is returned as is.
func conform(w *pcm.Waveform, rate int) (*pcm.Waveform, error) {
	if w.SampleRate == rate {
		return w, nil
	}

	channels, err := resample.Channels(w.Channels, w.SampleRate, rate, resample.WithQuality(resample.QualityBest))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resample %d Hz to %d Hz", w.SampleRate, rate)
	}

	return &pcm.Waveform{SampleRate: rate, Channels: channels}, nil
}

func writeWAVFile(path string, w *pcm.Waveform, opts ...pcm.EncodeOption) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", path)
		}
	}()

	return writeWAV(f, w, opts...)
}

func readWAVFile(path string) (*pcm.Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	w, err := readWAV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}

	return w, nil
}

// roundDB rounds a level to a tenth of a decibel for log output.
func roundDB(db float64) float64 {
	if math.IsInf(db, 0) {
		return db
	}
	return math.Round(db*10) / 10
}
