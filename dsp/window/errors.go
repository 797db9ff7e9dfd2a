package window

import (
	"errors"
	"fmt"
)

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
	errMismatchedLength = errors.New("samples and coefficients must have same length")
)

// ErrInvalidHop is returned when an overlap-add hop is outside [1, len(coeffs)].
var ErrInvalidHop = errors.New("window: invalid hop size")

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func validateHop(size, hop int) error {
	if size <= 0 {
		return errEmptyCoeffs
	}
	if hop <= 0 || hop > size {
		return fmt.Errorf("%w: %d (window length %d)", ErrInvalidHop, hop, size)
	}
	return nil
}
