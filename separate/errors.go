package separate

import "github.com/cockroachdb/errors"

// Error markers. Returned errors wrap a cause and are marked with one of these.
var (
	// ErrInitialization means an estimator could not be set up or failed while
	// running. The engine does not retry.
	ErrInitialization = errors.New("separate: initialization failure")
	// ErrInvalidInput means the input was rejected before any transform work.
	ErrInvalidInput = errors.New("separate: invalid input")
	// ErrInternal means two pipeline stages disagreed about a tensor shape.
	ErrInternal = errors.New("separate: internal inconsistency")
	// ErrNotLoaded means Separate was called with no waveform buffered.
	ErrNotLoaded = errors.New("separate: no waveform loaded")
)

func mark(err, marker error, msg string) error {
	return errors.Wrap(errors.Mark(err, marker), msg)
}

func markf(err, marker error, format string, args ...any) error {
	return errors.Wrapf(errors.Mark(err, marker), format, args...)
}
