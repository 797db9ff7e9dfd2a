// Package mask turns raw per-source estimator outputs into soft ratio masks.
//
// For K sources and every time-frequency bin,
//
//	soft_i = (m_i² + Epsilon/K) / (Σ_j m_j² + Epsilon)
//
// so each soft_i lies in (0, 1) and the K masks sum to at most 1, reaching 1
// exactly when Epsilon is negligible against the bin energy. With K = 2 the
// numerator floor is Epsilon/2.
package mask

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/cwbudde/algo-stems/separate/frames"
)

// Epsilon keeps the ratio defined where every estimate is zero.
const Epsilon = 1e-10

var (
	ErrNoMasks = errors.New("mask: no source masks")
	ErrShape   = errors.New("mask: source masks differ in shape")
)

// Soft is a fused mask in batch layout, kept in float64.
type Soft struct {
	frames.Shape
	Data []float64
}

// Fuse normalises the per-source estimates. All masks must share one shape.
// Estimates may be negative or above one; only their squares are used.
func Fuse(masks []*frames.Batch) ([]*Soft, error) {
	if len(masks) == 0 {
		return nil, ErrNoMasks
	}

	shape := masks[0].Shape
	for i, m := range masks {
		if err := m.Validate(); err != nil {
			return nil, errors.Wrapf(err, "source %d", i)
		}
		if m.Shape != shape {
			return nil, errors.Wrapf(ErrShape, "source %d has shape %v, want %v", i, m.Dims(), shape.Dims())
		}
	}

	k := float64(len(masks))
	floor := Epsilon / k

	out := make([]*Soft, len(masks))
	for i := range out {
		out[i] = &Soft{Shape: shape, Data: make([]float64, shape.Size())}
	}

	for n := 0; n < shape.Size(); n++ {
		denom := Epsilon
		for _, m := range masks {
			v := float64(m.Data[n])
			denom += v * v
		}

		for i, m := range masks {
			v := float64(m.Data[n])
			out[i].Data[n] = (v*v + floor) / denom
		}
	}

	return out, nil
}

// Coverage returns the smallest and largest per-bin sum across the fused
// masks. Both are 0 when soft is empty.
func Coverage(soft []*Soft) (lo, hi float64) {
	if len(soft) == 0 {
		return 0, 0
	}

	lo, hi = math.Inf(1), math.Inf(-1)
	for n := range soft[0].Data {
		sum := 0.0
		for _, s := range soft {
			sum += s.Data[n]
		}
		lo = math.Min(lo, sum)
		hi = math.Max(hi, sum)
	}

	if len(soft[0].Data) == 0 {
		return 0, 0
	}

	return lo, hi
}
