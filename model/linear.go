package model

import (
	"fmt"

	filter "github.com/statekit/go-filter"
	"gonum.org/v1/gonum/mat"
)

// LinearMotion is a linear motion model:
//
//	x' = A*x + B*u
//
// Its Jacobian is the constant state transition matrix A.
type LinearMotion struct {
	// A is the state transition matrix
	A *mat.Dense
	// B is the control matrix; nil for uncontrolled systems
	B *mat.Dense

	dims filter.Dims
}

// NewLinearMotion creates a linear motion model with the given dimensions.
// B may be nil if dims.Nu is 0.
// It returns error if dims is invalid or if either matrix shape
// disagrees with dims.
func NewLinearMotion(dims filter.Dims, A, B *mat.Dense) (*LinearMotion, error) {
	m := &LinearMotion{A: A, B: B, dims: dims}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks the model matrices against the declared dimensions.
// It returns *ShapeError naming the offending matrix if a shape disagrees.
func (m *LinearMotion) Validate() error {
	if err := m.dims.Validate(); err != nil {
		return err
	}

	if m.A == nil {
		return fmt.Errorf("state transition matrix must be defined")
	}

	if r, c := m.A.Dims(); r != m.dims.Nx || c != m.dims.Nx {
		return &ShapeError{Matrix: StateTransitionMatrix, Rows: r, Cols: c, WantRows: m.dims.Nx, WantCols: m.dims.Nx}
	}

	if m.dims.Nu > 0 {
		if m.B == nil {
			return fmt.Errorf("control matrix must be defined for %d control inputs", m.dims.Nu)
		}
		if r, c := m.B.Dims(); r != m.dims.Nx || c != m.dims.Nu {
			return &ShapeError{Matrix: ControlMatrix, Rows: r, Cols: c, WantRows: m.dims.Nx, WantCols: m.dims.Nu}
		}
	}

	return nil
}

// Propagate returns the next state given state x and control input u.
// u may be nil for uncontrolled systems.
// It returns error if either vector length disagrees with the model dimensions.
func (m *LinearMotion) Propagate(x, u mat.Vector) (mat.Vector, error) {
	if x == nil || x.Len() != m.dims.Nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	if m.dims.Nu > 0 && (u == nil || u.Len() != m.dims.Nu) {
		return nil, fmt.Errorf("invalid control input vector")
	}

	out := new(mat.Dense)
	out.Mul(m.A, x)

	if m.dims.Nu > 0 {
		outU := new(mat.Dense)
		outU.Mul(m.B, u)

		out.Add(out, outU)
	}

	return out.ColView(0), nil
}

// StateJacobian returns the state transition matrix A: the model is
// linear so the Jacobian is constant in both x and u.
func (m *LinearMotion) StateJacobian(x, u mat.Vector) (mat.Matrix, error) {
	if x != nil && x.Len() != m.dims.Nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	jac := &mat.Dense{}
	jac.CloneFrom(m.A)

	return jac, nil
}

// Dims returns the model dimensions.
func (m *LinearMotion) Dims() filter.Dims {
	return m.dims
}

// LinearObservation is a linear observation model:
//
//	y = H*x
//
// Its Jacobian is the constant observation matrix H.
type LinearObservation struct {
	// H is the observation matrix
	H *mat.Dense

	dims filter.Dims
}

// NewLinearObservation creates a linear observation model with the given dimensions.
// It returns error if dims is invalid or if the shape of H disagrees with dims.
func NewLinearObservation(dims filter.Dims, H *mat.Dense) (*LinearObservation, error) {
	m := &LinearObservation{H: H, dims: dims}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks the observation matrix against the declared dimensions.
// It returns *ShapeError if its shape disagrees.
func (m *LinearObservation) Validate() error {
	if err := m.dims.Validate(); err != nil {
		return err
	}

	if m.H == nil {
		return fmt.Errorf("observation matrix must be defined")
	}

	if r, c := m.H.Dims(); r != m.dims.Ny || c != m.dims.Nx {
		return &ShapeError{Matrix: ObservationMatrix, Rows: r, Cols: c, WantRows: m.dims.Ny, WantCols: m.dims.Nx}
	}

	return nil
}

// Observe returns the expected observation of state x.
// It returns error if the length of x disagrees with the model dimensions.
func (m *LinearObservation) Observe(x mat.Vector) (mat.Vector, error) {
	if x == nil || x.Len() != m.dims.Nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	out := new(mat.Dense)
	out.Mul(m.H, x)

	return out.ColView(0), nil
}

// ObservationJacobian returns the observation matrix H.
func (m *LinearObservation) ObservationJacobian(x mat.Vector) (mat.Matrix, error) {
	if x != nil && x.Len() != m.dims.Nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	jac := &mat.Dense{}
	jac.CloneFrom(m.H)

	return jac, nil
}

// Dims returns the model dimensions.
func (m *LinearObservation) Dims() filter.Dims {
	return m.dims
}
