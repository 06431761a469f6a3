package extrema_test

import (
	"fmt"

	"github.com/katalvlaran/ecgkit/extrema"
)

// ExampleFind picks R-peak candidates at least 4 samples apart.
func ExampleFind() {
	lead := []float64{0.0, 0.1, 1.2, 0.3, 0.9, 0.1, 0.0, 0.2, 1.1, 0.2, 0.0}
	opts := extrema.DefaultOptions()
	opts.MinSeparation = 4
	opts.UseThreshold = true
	opts.Threshold = 0.5

	seq, err := extrema.Find(lead, opts)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	for i := range seq.All() {
		fmt.Printf("peak at %d (%.1f)\n", i, lead[i])
	}
	// Output:
	// peak at 2 (1.2)
	// peak at 8 (1.1)
}
