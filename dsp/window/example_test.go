package window

import "fmt"

func ExampleGenerate() {
	w := Generate(TypeHann, 4)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}

func ExampleWithPeriodic() {
	w := Generate(TypeHann, 4, WithPeriodic())
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.50 1.00 0.50
}

func ExampleCOLA() {
	w := Generate(TypeHann, 4096, WithPeriodic())
	gain, ripple, _ := COLA(w, 1024)
	fmt.Printf("%.2f %v\n", gain, ripple < 1e-12)
	// Output:
	// 1.50 true
}
