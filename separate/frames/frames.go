// Package frames cuts a magnitude spectrogram into fixed-length segments for
// batched mask estimation, and undoes the cut afterwards.
//
// A magnitude tensor laid out channel, bin, frame with L frames becomes a
// batch of ceil(L/T) segments laid out batch, channel, frame, bin. The tail
// of the last segment is zero padded.
package frames

import (
	"github.com/cockroachdb/errors"

	"github.com/cwbudde/algo-stems/dsp/stft"
)

var (
	ErrInvalidSegment = errors.New("frames: segment length must be positive")
	ErrShape          = errors.New("frames: shape mismatch")
)

// Shape is the logical B x C x T x F extent of a batch.
type Shape struct {
	Batch    int
	Channels int
	Frames   int
	Bins     int
}

// Size returns the element count.
func (s Shape) Size() int {
	return s.Batch * s.Channels * s.Frames * s.Bins
}

// Index returns the flat offset of (batch, channel, frame, bin).
func (s Shape) Index(b, c, t, f int) int {
	return ((b*s.Channels+c)*s.Frames+t)*s.Bins + f
}

// Dims returns the shape as tensor dimensions.
func (s Shape) Dims() []int64 {
	return []int64{int64(s.Batch), int64(s.Channels), int64(s.Frames), int64(s.Bins)}
}

// Capacity is the number of frames the batch can hold, Batch*Frames.
func (s Shape) Capacity() int {
	return s.Batch * s.Frames
}

// Batch is a dense float32 tensor, the element type mask estimators consume.
type Batch struct {
	Shape
	Data []float32
}

// NewBatch allocates a zeroed batch.
func NewBatch(shape Shape) *Batch {
	return &Batch{Shape: shape, Data: make([]float32, shape.Size())}
}

// Validate checks that the data length agrees with the shape.
func (b *Batch) Validate() error {
	if b == nil {
		return errors.Wrap(ErrShape, "nil batch")
	}
	if b.Batch <= 0 || b.Channels <= 0 || b.Frames <= 0 || b.Bins <= 0 {
		return errors.Wrapf(ErrShape, "non-positive dimension in %v", b.Dims())
	}
	if len(b.Data) != b.Size() {
		return errors.Wrapf(ErrShape, "%d values for shape %v", len(b.Data), b.Dims())
	}
	return nil
}

// Partition reshapes m into segments of segment frames each and returns the
// batch together with the original frame count L.
func Partition(m *stft.Magnitude, segment int) (*Batch, int, error) {
	if segment <= 0 {
		return nil, 0, errors.Wrapf(ErrInvalidSegment, "segment %d", segment)
	}
	if m == nil || m.Frames <= 0 || m.Channels <= 0 || m.Bins <= 0 ||
		len(m.Data) != m.Channels*m.Bins*m.Frames {
		return nil, 0, errors.Wrap(ErrShape, "malformed magnitude tensor")
	}

	frames := m.Frames
	shape := Shape{
		Batch:    (frames + segment - 1) / segment,
		Channels: m.Channels,
		Frames:   segment,
		Bins:     m.Bins,
	}
	out := NewBatch(shape)

	for c := 0; c < m.Channels; c++ {
		for f := 0; f < m.Bins; f++ {
			row := m.Data[m.Index(c, f, 0) : m.Index(c, f, 0)+frames]
			for t, v := range row {
				out.Data[shape.Index(t/segment, c, t%segment, f)] = float32(v)
			}
		}
	}

	return out, frames, nil
}

// Unpartition reverses Partition for any tensor of the batch shape, dropping
// padding frames past frames. The result is laid out channel, bin, frame.
func Unpartition[E float32 | float64](shape Shape, data []E, frames int) ([]float64, error) {
	if len(data) != shape.Size() {
		return nil, errors.Wrapf(ErrShape, "%d values for shape %v", len(data), shape.Dims())
	}
	if frames <= 0 || frames > shape.Capacity() || frames <= shape.Capacity()-shape.Frames {
		return nil, errors.Wrapf(ErrShape, "%d frames do not fit %d segments of %d", frames, shape.Batch, shape.Frames)
	}

	out := make([]float64, shape.Channels*shape.Bins*frames)
	for c := 0; c < shape.Channels; c++ {
		for f := 0; f < shape.Bins; f++ {
			row := out[(c*shape.Bins+f)*frames:][:frames]
			for t := range row {
				row[t] = float64(data[shape.Index(t/shape.Frames, c, t%shape.Frames, f)])
			}
		}
	}

	return out, nil
}
