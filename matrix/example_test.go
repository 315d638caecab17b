package matrix_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gatsp/matrix"
)

// ExampleValidateDistances shows the gate a distance table passes before a
// tour search consumes it.
func ExampleValidateDistances() {
	good, _ := matrix.NewDenseFromRows([][]float64{
		{0, 1, 3},
		{1, 0, 2},
		{3, 2, 0},
	})
	n, err := matrix.ValidateDistances(good)
	fmt.Println(n, err)

	bad, _ := matrix.NewDenseFromRows([][]float64{
		{0, -4},
		{4, 0},
	})
	_, err = matrix.ValidateDistances(bad)
	fmt.Println(errors.Is(err, matrix.ErrNegativeValue))
	// Output:
	// 3 <nil>
	// true
}
