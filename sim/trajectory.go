package sim

import (
	"fmt"
	"math/rand"

	"github.com/statekit/go-filter/matrix"
	"github.com/statekit/go-filter/rnd"
	"gonum.org/v1/gonum/mat"
)

// Trajectory is a simulated run of a truth model: per step it stores
// the truth state, the noiseless output and the noisy measurement,
// one row per step.
type Trajectory struct {
	// States stores the truth states
	States *mat.Dense
	// Outputs stores the noiseless outputs
	Outputs *mat.Dense
	// Measurements stores the outputs with measurement noise injected
	Measurements *mat.Dense
}

// Generate simulates sys for the given number of steps starting from
// state x0 under constant control input u. Process and measurement
// noise samples are drawn from zero mean Gaussians with covariances
// qCov and rCov; either may be nil for a noiseless run. Samples are
// drawn from src when it is given, so seeded callers generate
// reproducible trajectories.
func Generate(sys *Discrete, x0, u mat.Vector, steps int, qCov, rCov mat.Symmetric, src *rand.Rand) (*Trajectory, error) {
	if sys == nil {
		return nil, fmt.Errorf("system must be defined")
	}

	if steps <= 0 {
		return nil, fmt.Errorf("invalid number of steps: %d", steps)
	}

	dims := sys.Dims()
	if x0 == nil || x0.Len() != dims.Nx {
		return nil, fmt.Errorf("invalid initial state vector")
	}

	var wd, wn *mat.Dense
	var err error

	if qCov != nil {
		wd, err = rnd.WithCovN(qCov, steps, src)
		if err != nil {
			return nil, fmt.Errorf("failed to draw process noise: %v", err)
		}
	}

	if rCov != nil {
		wn, err = rnd.WithCovN(rCov, steps, src)
		if err != nil {
			return nil, fmt.Errorf("failed to draw measurement noise: %v", err)
		}
	}

	states := mat.NewDense(steps, dims.Nx, nil)
	outputs := mat.NewDense(steps, dims.Ny, nil)
	measurements := mat.NewDense(steps, dims.Ny, nil)

	x := &mat.VecDense{}
	x.CloneFromVec(x0)

	for i := 0; i < steps; i++ {
		var q, r mat.Vector
		if wd != nil {
			q = wd.ColView(i)
		}
		if wn != nil {
			r = wn.ColView(i)
		}

		xNext, err := sys.Propagate(x, u, q)
		if err != nil {
			return nil, fmt.Errorf("truth propagation failed at step %d: %v", i, err)
		}
		x.CloneFromVec(xNext)

		y, err := sys.Observe(x, u, nil)
		if err != nil {
			return nil, fmt.Errorf("truth observation failed at step %d: %v", i, err)
		}

		z, err := sys.Observe(x, u, r)
		if err != nil {
			return nil, fmt.Errorf("truth measurement failed at step %d: %v", i, err)
		}

		for j := 0; j < dims.Nx; j++ {
			states.Set(i, j, x.AtVec(j))
		}
		for j := 0; j < dims.Ny; j++ {
			outputs.Set(i, j, y.AtVec(j))
			measurements.Set(i, j, z.AtVec(j))
		}
	}

	return &Trajectory{
		States:       states,
		Outputs:      outputs,
		Measurements: measurements,
	}, nil
}

// MeasurementMeans returns the per-axis means of the measurements.
func (t *Trajectory) MeasurementMeans() []float64 {
	return matrix.ColMeans(t.Measurements)
}
