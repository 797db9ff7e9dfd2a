package separate

import (
	"context"

	"github.com/cwbudde/algo-stems/separate/frames"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// Estimator predicts a mask for one source from a magnitude batch.
//
// The returned batch must have the input's shape. Values are unconstrained;
// the engine normalises them across sources. Implementations must not modify
// the input, which is shared by every source.
//
//counterfeiter:generate . Estimator
type Estimator interface {
	Estimate(ctx context.Context, in *frames.Batch) (*frames.Batch, error)
}

// EstimatorFunc adapts a function to Estimator.
type EstimatorFunc func(ctx context.Context, in *frames.Batch) (*frames.Batch, error)

// Estimate calls f.
func (f EstimatorFunc) Estimate(ctx context.Context, in *frames.Batch) (*frames.Batch, error) {
	return f(ctx, in)
}

// ConstantEstimator returns an Estimator that answers every batch with value
// in every bin. It is useful as a pass-through or mute stem.
func ConstantEstimator(value float32) Estimator {
	return EstimatorFunc(func(_ context.Context, in *frames.Batch) (*frames.Batch, error) {
		out := frames.NewBatch(in.Shape)
		for i := range out.Data {
			out.Data[i] = value
		}
		return out, nil
	})
}
