package pcm

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidLength       = errors.New("pcm: byte length is not a whole number of frames")
	ErrUnsupportedChannels = errors.New("pcm: unsupported channel count")
	ErrUnknownFormat       = errors.New("pcm: unknown sample format")
	ErrRaggedChannels      = errors.New("pcm: channels differ in length")
)

// Decode splits interleaved bytes into a planar waveform.
//
// Int16 samples are divided by IntScale, so -32768 decodes slightly below
// -1. Float32 samples are widened without clamping.
func Decode(data []byte, info SignalInfo) (*Waveform, error) {
	if info.Channels <= 0 {
		return nil, errors.Wrapf(ErrUnsupportedChannels, "%d channels", info.Channels)
	}

	width := info.Format.Width()
	if width == 0 {
		return nil, errors.Wrapf(ErrUnknownFormat, "format %d", int(info.Format))
	}

	stride := info.Stride()
	if len(data)%stride != 0 {
		return nil, errors.Wrapf(ErrInvalidLength, "%d bytes, stride %d", len(data), stride)
	}

	samples := len(data) / stride
	w := NewWaveform(info.SampleRate, info.Channels, samples)

	for i := 0; i < samples; i++ {
		frame := data[i*stride:]
		for c := range w.Channels {
			b := frame[c*width:]
			switch info.Format {
			case Int16:
				w.Channels[c][i] = float64(int16(binary.LittleEndian.Uint16(b))) / IntScale
			case Float32:
				w.Channels[c][i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
			}
		}
	}

	return w, nil
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeConfig)

type encodeConfig struct {
	clip bool
}

// WithClipping limits samples to [-1, 1] before integer conversion. Without
// it, out-of-range Int16 samples wrap around.
func WithClipping() EncodeOption {
	return func(c *encodeConfig) {
		c.clip = true
	}
}

// Encode interleaves w into little-endian bytes of the given format.
func Encode(w *Waveform, format Format, opts ...EncodeOption) ([]byte, error) {
	width := format.Width()
	if width == 0 {
		return nil, errors.Wrapf(ErrUnknownFormat, "format %d", int(format))
	}
	if w == nil || len(w.Channels) == 0 {
		return nil, errors.Wrap(ErrUnsupportedChannels, "no channels")
	}

	var cfg encodeConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	samples := w.Len()
	for c, ch := range w.Channels {
		if len(ch) != samples {
			return nil, errors.Wrapf(ErrRaggedChannels, "channel %d has %d samples, want %d", c, len(ch), samples)
		}
	}

	stride := width * len(w.Channels)
	out := make([]byte, samples*stride)

	for i := 0; i < samples; i++ {
		frame := out[i*stride:]
		for c, ch := range w.Channels {
			v := ch[i]
			if cfg.clip {
				v = math.Max(-1, math.Min(1, v))
			}

			b := frame[c*width:]
			switch format {
			case Int16:
				binary.LittleEndian.PutUint16(b, uint16(toInt16(v)))
			case Float32:
				binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
			}
		}
	}

	return out, nil
}

// toInt16 rounds v*IntScale and keeps the low 16 bits, so overflow wraps.
func toInt16(v float64) int16 {
	r := math.Round(v * IntScale)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return int16(int64(r))
}
