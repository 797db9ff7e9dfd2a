package separate

import (
	"github.com/cockroachdb/errors"

	"github.com/cwbudde/algo-stems/dsp/stft"
	"github.com/cwbudde/algo-stems/separate/pcm"
)

const (
	// DefaultSegment is the frame count per estimator batch entry.
	DefaultSegment = 512
	// DefaultChannels is the stereo layout the models expect.
	DefaultChannels = 2
	// DefaultSources is a vocals and accompaniment split.
	DefaultSources = 2
	// DefaultSampleRate is the rate the models were trained at.
	DefaultSampleRate = 44100
)

// Config describes the engine geometry and the PCM layout it accepts and
// produces.
type Config struct {
	STFT       stft.Config
	Segment    int
	Channels   int
	Sources    int
	SampleRate int
	Format     pcm.Format
}

// DefaultConfig returns the stereo two-source setup with 16-bit PCM I/O.
func DefaultConfig() Config {
	return Config{
		STFT:       stft.DefaultConfig(),
		Segment:    DefaultSegment,
		Channels:   DefaultChannels,
		Sources:    DefaultSources,
		SampleRate: DefaultSampleRate,
		Format:     pcm.Int16,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := c.STFT.Validate(); err != nil {
		return errors.Wrap(err, "stft")
	}

	switch {
	case c.Segment <= 0:
		return errors.Newf("segment must be positive: %d", c.Segment)
	case c.Channels <= 0:
		return errors.Newf("channels must be positive: %d", c.Channels)
	case c.Sources <= 0:
		return errors.Newf("sources must be positive: %d", c.Sources)
	case c.SampleRate <= 0:
		return errors.Newf("sample rate must be positive: %d", c.SampleRate)
	case c.Format.Width() == 0:
		return errors.Wrapf(pcm.ErrUnknownFormat, "format %d", int(c.Format))
	}

	return nil
}

// SignalInfo returns the PCM layout Load expects.
func (c Config) SignalInfo() pcm.SignalInfo {
	return pcm.SignalInfo{SampleRate: c.SampleRate, Channels: c.Channels, Format: c.Format}
}
