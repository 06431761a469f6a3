package covering_test

import (
	"fmt"

	"github.com/katalvlaran/ecgkit/covering"
	"github.com/katalvlaran/ecgkit/interval"
)

// ExampleOptimalCovering covers a 10 s record with the fewest analysis windows.
func ExampleOptimalCovering() {
	windows := []interval.Interval{{Start: 0, End: 4}, {Start: 3, End: 8}, {Start: 2, End: 5}, {Start: 6, End: 10}}
	res, err := covering.OptimalCovering(interval.Interval{Start: 0, End: 10}, windows)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println(res.Indices, res.Intervals)
	// Output:
	// [0 1 3] [[0,4) [3,8) [6,10)]
}

// ExampleMaxDisjointCovering picks the most non-overlapping beat windows.
func ExampleMaxDisjointCovering() {
	windows := []interval.Interval{{Start: 1, End: 3}, {Start: 2, End: 4}, {Start: 3, End: 6}, {Start: 5, End: 7}}
	res, err := covering.MaxDisjointCovering(windows, covering.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println(res.Intervals)
	// Output:
	// [[1,3) [3,6)]
}
