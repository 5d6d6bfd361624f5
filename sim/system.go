package sim

import (
	"fmt"

	filter "github.com/statekit/go-filter"
	"gonum.org/v1/gonum/mat"
)

// System holds the state-space matrices of a linear truth model:
//
//	x' = A*x + B*u
//	y  = C*x + D*u
//
// B and D may be nil for uncontrolled or feedforward-free systems.
type System struct {
	// A is the state transition matrix
	A *mat.Dense
	// B is the control matrix
	B *mat.Dense
	// C is the output matrix
	C *mat.Dense
	// D is the feedforward matrix
	D *mat.Dense
}

// Discrete is a linear discrete-time truth model used to simulate the
// real system a filter estimates.
type Discrete struct {
	System
}

// NewDiscrete creates a new discrete-time truth model.
// It returns error if A or C is missing.
func NewDiscrete(A, B, C, D *mat.Dense) (*Discrete, error) {
	if A == nil {
		return nil, fmt.Errorf("system matrix must be defined for a model")
	}

	if C == nil {
		return nil, fmt.Errorf("output matrix must be defined for a model")
	}

	return &Discrete{System{A: A, B: B, C: C, D: D}}, nil
}

// Dims returns the system dimensions.
func (s *System) Dims() filter.Dims {
	nx, _ := s.A.Dims()
	nu := 0
	if s.B != nil {
		_, nu = s.B.Dims()
	}
	ny, _ := s.C.Dims()

	return filter.Dims{Nx: nx, Nu: nu, Ny: ny}
}

// Propagate returns the next truth state of the system given state x,
// control input u and an optional additive process disturbance wd.
func (d *Discrete) Propagate(x, u, wd mat.Vector) (mat.Vector, error) {
	dims := d.Dims()
	if x == nil || x.Len() != dims.Nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	if u != nil && u.Len() != dims.Nu {
		return nil, fmt.Errorf("invalid input vector")
	}

	out := new(mat.Dense)
	out.Mul(d.A, x)

	if u != nil && d.B != nil {
		outU := new(mat.Dense)
		outU.Mul(d.B, u)

		out.Add(out, outU)
	}

	if wd != nil && wd.Len() == dims.Nx {
		out.Add(out, wd)
	}

	return out.ColView(0), nil
}

// Observe returns the truth system output given state x, control input
// u and an optional additive measurement noise wn.
func (d *Discrete) Observe(x, u, wn mat.Vector) (mat.Vector, error) {
	dims := d.Dims()
	if x == nil || x.Len() != dims.Nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	if u != nil && u.Len() != dims.Nu {
		return nil, fmt.Errorf("invalid input vector")
	}

	out := new(mat.Dense)
	out.Mul(d.C, x)

	if u != nil && d.D != nil {
		outU := new(mat.Dense)
		outU.Mul(d.D, u)

		out.Add(out, outU)
	}

	if wn != nil && wn.Len() == dims.Ny {
		out.Add(out, wn)
	}

	return out.ColView(0), nil
}
