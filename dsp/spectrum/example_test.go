package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-stems/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleApplyGains() {
	bins := []complex128{2 + 2i, 4 - 2i}
	_ = spectrum.ApplyGains(bins, []float64{0.5, 0.25})
	fmt.Println(bins[0], bins[1])
	// Output:
	// (1+1i) (1-0.5i)
}
