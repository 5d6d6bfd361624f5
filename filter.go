package filter

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dims describes the dimensions of an estimation problem:
// the sizes of the state, control input and observation vectors.
// Dims is immutable once created: build it once per problem setup
// and share it between the models of that problem.
type Dims struct {
	// Nx is the state vector size
	Nx int
	// Nu is the control input vector size; 0 for uncontrolled systems
	Nu int
	// Ny is the observation vector size
	Ny int
}

// Validate checks the dimensions are usable for filtering.
// It returns error if the state or observation size is not positive
// or if the control size is negative.
func (d Dims) Validate() error {
	if d.Nx <= 0 {
		return fmt.Errorf("invalid state dimension: %d", d.Nx)
	}
	if d.Nu < 0 {
		return fmt.Errorf("invalid control dimension: %d", d.Nu)
	}
	if d.Ny <= 0 {
		return fmt.Errorf("invalid observation dimension: %d", d.Ny)
	}
	return nil
}

// MotionModel propagates system state to the next time step.
type MotionModel interface {
	// Propagate returns the next state given state x and control input u.
	// u may be nil for uncontrolled systems.
	Propagate(x, u mat.Vector) (mat.Vector, error)
	// StateJacobian returns the derivative of the propagation
	// with respect to the state, evaluated at (x, u).
	StateJacobian(x, u mat.Vector) (mat.Matrix, error)
	// Dims returns the model dimensions
	Dims() Dims
}

// ObservationModel maps system state to the expected observation.
type ObservationModel interface {
	// Observe returns the expected observation of state x.
	Observe(x mat.Vector) (mat.Vector, error)
	// ObservationJacobian returns the derivative of the observation
	// with respect to the state, evaluated at x.
	ObservationJacobian(x mat.Vector) (mat.Matrix, error)
	// Dims returns the model dimensions
	Dims() Dims
}

// Estimate is a dynamical system filter estimate.
type Estimate interface {
	// Val returns the estimate value
	Val() mat.Vector
	// Cov returns the estimate covariance
	Cov() mat.Symmetric
}

// Noise is dynamical system noise.
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
	// Reset resets the noise
	Reset() error
}

// InitCond is the initial state condition of a filter.
type InitCond interface {
	// State returns initial filter state
	State() mat.Vector
	// Cov returns initial state covariance
	Cov() mat.Symmetric
}

// Predictor propagates an estimate to the next time step.
type Predictor interface {
	// Predict returns the estimate propagated under control input u.
	Predict(est Estimate, u mat.Vector) (Estimate, error)
}

// Updater corrects a predicted estimate with a measurement.
type Updater interface {
	// Update returns the estimate corrected by measurement z.
	Update(est Estimate, z mat.Vector) (Estimate, error)
}

// Filter runs the full predict-update recursion of a dynamical system filter.
type Filter interface {
	// Predict advances the running estimate under control input u
	Predict(u mat.Vector) (Estimate, error)
	// Update corrects the running estimate with measurement z
	Update(z mat.Vector) (Estimate, error)
	// Run performs one full predict-update step
	Run(u, z mat.Vector) (Estimate, error)
}
