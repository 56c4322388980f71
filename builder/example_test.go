// SPDX-License-Identifier: MIT

package builder_test

import (
	"fmt"

	"github.com/katalvlaran/kmst/builder"
)

// ExampleGrid builds a 3×3 lattice around the origin; the center point is
// the root and is not repeated among the candidates.
func ExampleGrid() {
	root, cands, err := builder.Build(builder.Grid(3, 3, 100))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("root:", root)
	fmt.Println("candidates:", len(cands))
	fmt.Println("first:", cands[0])
	// Output:
	// root: (0, 0)
	// candidates: 8
	// first: (-100, -100)
}
