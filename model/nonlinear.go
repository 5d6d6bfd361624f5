package model

import (
	"fmt"

	filter "github.com/statekit/go-filter"
	"github.com/statekit/go-filter/jacobian"
	"gonum.org/v1/gonum/mat"
)

// StateFunc propagates state x under control input u to the next step.
type StateFunc func(x, u mat.Vector) (mat.Vector, error)

// StateJacFunc returns the derivative of a state propagation
// with respect to the state, evaluated at (x, u).
type StateJacFunc func(x, u mat.Vector) (mat.Matrix, error)

// ObserveFunc returns the expected observation of state x.
type ObserveFunc func(x mat.Vector) (mat.Vector, error)

// ObserveJacFunc returns the derivative of an observation
// with respect to the state, evaluated at x.
type ObserveJacFunc func(x mat.Vector) (mat.Matrix, error)

// NonlinearMotion is a motion model driven by an arbitrary
// differentiable propagation function. When no analytic Jacobian is
// supplied, the Jacobian is computed numerically by central finite
// differences at the evaluation point, at the cost of 2*Nx propagation
// calls per evaluation. F must therefore not fail in a small
// neighbourhood of any state the filter visits.
type NonlinearMotion struct {
	// F is the propagation function
	F StateFunc
	// FJac is an optional analytic Jacobian of F.
	// When nil the Jacobian is computed numerically.
	FJac StateJacFunc
	// Step is the finite difference perturbation.
	// jacobian.DefaultStep is used when Step is not positive.
	Step float64

	dims filter.Dims
}

// NewNonlinearMotion creates a nonlinear motion model with the given dimensions.
// It returns error if dims is invalid or f is nil.
func NewNonlinearMotion(dims filter.Dims, f StateFunc) (*NonlinearMotion, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	if f == nil {
		return nil, fmt.Errorf("propagation function must be defined")
	}

	return &NonlinearMotion{F: f, dims: dims}, nil
}

// Propagate returns the next state given state x and control input u.
// It returns error if either vector length disagrees with the model
// dimensions or if F fails or returns a vector of the wrong length.
func (m *NonlinearMotion) Propagate(x, u mat.Vector) (mat.Vector, error) {
	if x == nil || x.Len() != m.dims.Nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	if m.dims.Nu > 0 && (u == nil || u.Len() != m.dims.Nu) {
		return nil, fmt.Errorf("invalid control input vector")
	}

	xNext, err := m.F(x, u)
	if err != nil {
		return nil, err
	}

	if xNext.Len() != m.dims.Nx {
		return nil, fmt.Errorf("invalid propagated state dimension: %d != %d", xNext.Len(), m.dims.Nx)
	}

	return xNext, nil
}

// StateJacobian returns the derivative of the propagation with respect
// to the state at (x, u): the analytic Jacobian when one is supplied,
// a central finite difference approximation otherwise.
func (m *NonlinearMotion) StateJacobian(x, u mat.Vector) (mat.Matrix, error) {
	if x == nil || x.Len() != m.dims.Nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	if m.FJac != nil {
		jac, err := m.FJac(x, u)
		if err != nil {
			return nil, err
		}
		if r, c := jac.Dims(); r != m.dims.Nx || c != m.dims.Nx {
			return nil, &ShapeError{Matrix: StateTransitionMatrix, Rows: r, Cols: c, WantRows: m.dims.Nx, WantCols: m.dims.Nx}
		}

		return jac, nil
	}

	fn := func(y, xs []float64) {
		xv := mat.NewVecDense(len(xs), xs)
		xNext, err := m.F(xv, u)
		if err != nil {
			panic(err)
		}
		for i := range y {
			y[i] = xNext.AtVec(i)
		}
	}

	jac := mat.NewDense(m.dims.Nx, m.dims.Nx, nil)
	if err := jacobian.Compute(jac, fn, x, m.Step); err != nil {
		return nil, err
	}

	return jac, nil
}

// Dims returns the model dimensions.
func (m *NonlinearMotion) Dims() filter.Dims {
	return m.dims
}

// NonlinearObservation is an observation model driven by an arbitrary
// differentiable observation function, symmetric to NonlinearMotion.
type NonlinearObservation struct {
	// H is the observation function
	H ObserveFunc
	// HJac is an optional analytic Jacobian of H.
	// When nil the Jacobian is computed numerically.
	HJac ObserveJacFunc
	// Step is the finite difference perturbation.
	// jacobian.DefaultStep is used when Step is not positive.
	Step float64

	dims filter.Dims
}

// NewNonlinearObservation creates a nonlinear observation model with the given dimensions.
// It returns error if dims is invalid or h is nil.
func NewNonlinearObservation(dims filter.Dims, h ObserveFunc) (*NonlinearObservation, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	if h == nil {
		return nil, fmt.Errorf("observation function must be defined")
	}

	return &NonlinearObservation{H: h, dims: dims}, nil
}

// Observe returns the expected observation of state x.
// It returns error if the length of x disagrees with the model
// dimensions or if H fails or returns a vector of the wrong length.
func (m *NonlinearObservation) Observe(x mat.Vector) (mat.Vector, error) {
	if x == nil || x.Len() != m.dims.Nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	y, err := m.H(x)
	if err != nil {
		return nil, err
	}

	if y.Len() != m.dims.Ny {
		return nil, fmt.Errorf("invalid observation dimension: %d != %d", y.Len(), m.dims.Ny)
	}

	return y, nil
}

// ObservationJacobian returns the derivative of the observation with
// respect to the state at x: the analytic Jacobian when one is
// supplied, a central finite difference approximation otherwise.
func (m *NonlinearObservation) ObservationJacobian(x mat.Vector) (mat.Matrix, error) {
	if x == nil || x.Len() != m.dims.Nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	if m.HJac != nil {
		jac, err := m.HJac(x)
		if err != nil {
			return nil, err
		}
		if r, c := jac.Dims(); r != m.dims.Ny || c != m.dims.Nx {
			return nil, &ShapeError{Matrix: ObservationMatrix, Rows: r, Cols: c, WantRows: m.dims.Ny, WantCols: m.dims.Nx}
		}

		return jac, nil
	}

	fn := func(y, xs []float64) {
		xv := mat.NewVecDense(len(xs), xs)
		out, err := m.H(xv)
		if err != nil {
			panic(err)
		}
		for i := range y {
			y[i] = out.AtVec(i)
		}
	}

	jac := mat.NewDense(m.dims.Ny, m.dims.Nx, nil)
	if err := jacobian.Compute(jac, fn, x, m.Step); err != nil {
		return nil, err
	}

	return jac, nil
}

// Dims returns the model dimensions.
func (m *NonlinearObservation) Dims() filter.Dims {
	return m.dims
}
