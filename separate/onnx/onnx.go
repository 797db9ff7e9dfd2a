// Package onnx runs mask estimation models through ONNX Runtime.
//
// The runtime is a shared library loaded once per process with Init and
// released with Shutdown. Each Estimator owns one session; batch size is
// dynamic so a single session serves inputs of any length.
package onnx

import (
	"context"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/cwbudde/algo-stems/separate"
	"github.com/cwbudde/algo-stems/separate/frames"
)

// Tensor names of the exported two-stem models.
const (
	DefaultInputName  = "onnx::Pad_0"
	DefaultOutputName = "379"
)

var (
	ErrModelNotFound = errors.New("onnx: model file not found")
	ErrClosed        = errors.New("onnx: estimator is closed")
	ErrBins          = errors.New("onnx: batch bin count does not match the model")
)

// Init points the bindings at the runtime library and initialises the
// environment. An empty path keeps the platform default. Calling Init when
// the environment is already up is a no-op.
func Init(libraryPath string) error {
	if ort.IsInitialized() {
		return nil
	}

	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return errors.Wrap(err, "failed to initialize ONNX Runtime environment")
	}

	return nil
}

// Shutdown tears down the environment. Open estimators must be closed first.
func Shutdown() error {
	if !ort.IsInitialized() {
		return nil
	}
	return errors.Wrap(ort.DestroyEnvironment(), "failed to destroy ONNX Runtime environment")
}

// Option configures Open.
type Option func(*options)

type options struct {
	inputName  string
	outputName string
	threads    int
}

// WithInputName overrides the model input tensor name.
func WithInputName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.inputName = name
		}
	}
}

// WithOutputName overrides the model output tensor name.
func WithOutputName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.outputName = name
		}
	}
}

// WithThreads limits intra-op parallelism. Zero leaves the runtime default.
func WithThreads(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.threads = n
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{inputName: DefaultInputName, outputName: DefaultOutputName}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Estimator is a separate.Estimator backed by one ONNX Runtime session.
type Estimator struct {
	mu      sync.Mutex
	path    string
	opts    options
	bins    int
	session *ort.DynamicAdvancedSession
}

var _ separate.Estimator = (*Estimator)(nil)

// Open loads the model at modelPath. Init must have succeeded first. Every
// failure is marked separate.ErrInitialization.
func Open(modelPath string, opts ...Option) (*Estimator, error) {
	e, err := open(modelPath, opts)
	if err != nil {
		return nil, errors.Mark(err, separate.ErrInitialization)
	}
	return e, nil
}

func open(modelPath string, opts []Option) (*Estimator, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "model %s", modelPath), ErrModelNotFound)
	}

	o := applyOptions(opts)
	e := &Estimator{path: modelPath, opts: o}

	inputs, _, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to inspect model %s", modelPath)
	}
	for _, info := range inputs {
		if info.Name != o.inputName {
			continue
		}
		// Dimensions are B, C, T, F. Symbolic dimensions are reported as -1.
		if dims := info.Dimensions; len(dims) == 4 && dims[3] > 0 {
			e.bins = int(dims[3])
		}
	}

	var sessionOpts *ort.SessionOptions
	if o.threads > 0 {
		sessionOpts, err = ort.NewSessionOptions()
		if err != nil {
			return nil, errors.Wrap(err, "failed to create session options")
		}
		defer sessionOpts.Destroy()

		if err := sessionOpts.SetIntraOpNumThreads(o.threads); err != nil {
			return nil, errors.Wrap(err, "failed to set thread count")
		}
	}

	e.session, err = ort.NewDynamicAdvancedSession(modelPath,
		[]string{o.inputName}, []string{o.outputName}, sessionOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create session for %s", modelPath)
	}

	return e, nil
}

// Path returns the model file path.
func (e *Estimator) Path() string { return e.path }

// Bins returns the frequency width the model declares, or 0 if it is dynamic.
func (e *Estimator) Bins() int { return e.bins }

// Estimate runs the model on one magnitude batch.
func (e *Estimator) Estimate(ctx context.Context, in *frames.Batch) (*frames.Batch, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if e.bins > 0 && in.Bins != e.bins {
		return nil, errors.Wrapf(ErrBins, "batch has %d bins, model expects %d", in.Bins, e.bins)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return nil, ErrClosed
	}

	shape := ort.NewShape(in.Dims()...)

	input, err := ort.NewTensor(shape, in.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create input tensor")
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[float32](shape)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create output tensor")
	}
	defer output.Destroy()

	if err := e.session.Run([]ort.Value{input}, []ort.Value{output}); err != nil {
		return nil, errors.Wrapf(err, "inference failed for %s", e.path)
	}

	out := frames.NewBatch(in.Shape)
	copy(out.Data, output.GetData())

	return out, nil
}

// Close destroys the session. It is safe to call more than once.
func (e *Estimator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return nil
	}

	err := e.session.Destroy()
	e.session = nil

	return errors.Wrap(err, "failed to destroy session")
}
