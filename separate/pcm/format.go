package pcm

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Format identifies the on-wire sample encoding. Values match the numeric
// codes used by host applications.
type Format int

const (
	Int16   Format = 0
	Float32 Format = 1
)

// IntScale maps full-scale float samples to 16-bit integers.
const IntScale = 32767

// Width returns the size in bytes of one sample, or 0 for unknown formats.
func (f Format) Width() int {
	switch f {
	case Int16:
		return 2
	case Float32:
		return 4
	default:
		return 0
	}
}

func (f Format) String() string {
	switch f {
	case Int16:
		return "s16le"
	case Float32:
		return "f32le"
	default:
		return "unknown"
	}
}

// ParseFormat accepts the String form or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s16le", "s16", "int16", "pcm16", "0":
		return Int16, nil
	case "f32le", "f32", "float32", "float", "1":
		return Float32, nil
	}

	return 0, errors.Wrapf(ErrUnknownFormat, "format %q", s)
}

// SignalInfo describes an interleaved PCM stream.
type SignalInfo struct {
	SampleRate int
	Channels   int
	Format     Format
}

// Stride returns the bytes per interleaved frame (one sample per channel).
func (i SignalInfo) Stride() int {
	return i.Channels * i.Format.Width()
}

// Duration returns the playback time of n bytes of audio.
func (i SignalInfo) Duration(n int) time.Duration {
	stride := i.Stride()
	if stride == 0 || i.SampleRate <= 0 {
		return 0
	}

	samples := n / stride
	return time.Duration(samples) * time.Second / time.Duration(i.SampleRate)
}
