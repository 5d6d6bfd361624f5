package jacobian

import (
	"fmt"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// DefaultStep is the perturbation step used for finite differences
// when the caller does not supply one.
const DefaultStep = 1e-6

// Func is a vector valued function: it stores f(x) into y.
// It must not modify x.
type Func func(y, x []float64)

// Compute fills dst with the Jacobian matrix of fn evaluated at x
// using the central finite difference formula:
//
//	J[:,i] ≈ (fn(x + step*e_i) - fn(x - step*e_i)) / (2*step)
//
// dst determines the target shape: its row count is the output
// dimension of fn and its column count must match the length of x.
// If step is not positive, DefaultStep is used.
// It returns error if dst is nil or if the shape of dst disagrees with x.
func Compute(dst *mat.Dense, fn Func, x mat.Vector, step float64) error {
	if dst == nil || dst.IsEmpty() {
		return fmt.Errorf("invalid jacobian destination matrix: %v", dst)
	}

	_, cols := dst.Dims()
	if x.Len() != cols {
		return fmt.Errorf("invalid jacobian point dimension: %d != %d", x.Len(), cols)
	}

	if step <= 0 {
		step = DefaultStep
	}

	fd.Jacobian(dst, fn, mat.Col(nil, 0, x), &fd.JacobianSettings{
		Formula:    fd.Central,
		Step:       step,
		Concurrent: true,
	})

	return nil
}
