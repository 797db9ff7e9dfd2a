package onnx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/gomega"

	"github.com/cwbudde/algo-stems/separate"
	"github.com/cwbudde/algo-stems/separate/frames"
)

func TestOptionDefaults(t *testing.T) {
	g := NewWithT(t)

	o := applyOptions(nil)
	g.Expect(o.inputName).To(Equal("onnx::Pad_0"))
	g.Expect(o.outputName).To(Equal("379"))
	g.Expect(o.threads).To(BeZero())

	o = applyOptions([]Option{WithInputName("mix"), WithOutputName("mask"), WithThreads(4), WithInputName(""), nil})
	g.Expect(o.inputName).To(Equal("mix"))
	g.Expect(o.outputName).To(Equal("mask"))
	g.Expect(o.threads).To(Equal(4))
}

func TestOpenMissingModel(t *testing.T) {
	g := NewWithT(t)

	_, err := Open(filepath.Join(t.TempDir(), "vocals.onnx"))
	g.Expect(errors.Is(err, ErrModelNotFound)).To(BeTrue())
	g.Expect(errors.Is(err, separate.ErrInitialization)).To(BeTrue())
}

func TestEstimateWithoutSession(t *testing.T) {
	g := NewWithT(t)

	e := &Estimator{path: "vocals.onnx", bins: 1024}
	in := frames.NewBatch(frames.Shape{Batch: 1, Channels: 2, Frames: 4, Bins: 1024})

	_, err := e.Estimate(context.Background(), in)
	g.Expect(errors.Is(err, ErrClosed)).To(BeTrue())

	narrow := frames.NewBatch(frames.Shape{Batch: 1, Channels: 2, Frames: 4, Bins: 512})
	_, err = e.Estimate(context.Background(), narrow)
	g.Expect(errors.Is(err, ErrBins)).To(BeTrue())

	_, err = e.Estimate(context.Background(), &frames.Batch{Shape: in.Shape})
	g.Expect(errors.Is(err, frames.ErrShape)).To(BeTrue())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Estimate(ctx, in)
	g.Expect(errors.Is(err, context.Canceled)).To(BeTrue())

	g.Expect(e.Close()).To(Succeed())
	g.Expect(e.Path()).To(Equal("vocals.onnx"))
	g.Expect(e.Bins()).To(Equal(1024))
}
