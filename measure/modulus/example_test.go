package modulus_test

import (
	"fmt"

	"github.com/cwbudde/algo-modal/measure/modulus"
)

func ExampleCompute() {
	geom := modulus.Geometry{
		WidthM:      0.0255,
		ThicknessM:  0.0008,
		DensityKgM3: 7700,
	}

	e, err := modulus.Compute(12.34, 0.12, geom)
	if err != nil {
		panic(err)
	}

	fmt.Printf("E = %.2f GPa\n", e/1e9)
	// Output: E = 14.56 GPa
}
