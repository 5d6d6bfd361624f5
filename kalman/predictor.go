package kalman

import (
	"fmt"

	filter "github.com/statekit/go-filter"
	"github.com/statekit/go-filter/estimate"
	"github.com/statekit/go-filter/noise"
	"gonum.org/v1/gonum/mat"
)

// Predictor implements the prediction half of the Kalman recursion.
// It combines a motion model with process noise Q:
//
//	x' = f(x, u)
//	P' = A*P*A' + Q
//
// where A is the motion model Jacobian at (x, u). Prediction never
// shrinks uncertainty: it grows or redistributes it through the local
// linearization plus the additive process noise, so Q must reflect the
// unmodeled dynamics or the filter becomes overconfident.
type Predictor struct {
	// m is the motion model
	m filter.MotionModel
	// q is process noise
	q filter.Noise
}

// NewPredictor creates a predictor from motion model m and process noise q.
// A nil q means no process noise.
// It returns error if the model dimensions are invalid or if the noise
// covariance dimension disagrees with the state dimension.
func NewPredictor(m filter.MotionModel, q filter.Noise) (*Predictor, error) {
	if m == nil {
		return nil, fmt.Errorf("motion model must be defined")
	}

	dims := m.Dims()
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	if q != nil {
		if _, ok := q.(*noise.None); !ok && q.Cov().SymmetricDim() != dims.Nx {
			return nil, fmt.Errorf("invalid process noise dimension: %d != %d", q.Cov().SymmetricDim(), dims.Nx)
		}
	} else {
		q, _ = noise.NewNone()
	}

	return &Predictor{
		m: m,
		q: q,
	}, nil
}

// Predict propagates estimate est under control input u and returns
// the predicted estimate. It is a pure function of its inputs: est is
// not modified. It returns error if the state propagation or its
// Jacobian fails.
func (p *Predictor) Predict(est filter.Estimate, u mat.Vector) (filter.Estimate, error) {
	x := est.Val()

	xNext, err := p.m.Propagate(x, u)
	if err != nil {
		return nil, fmt.Errorf("system state propagation failed: %v", err)
	}

	a, err := p.m.StateJacobian(x, u)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate propagation Jacobian: %v", err)
	}

	// P' = A*P*A' + Q
	cov := &mat.Dense{}
	cov.Mul(a, est.Cov())
	cov.Mul(cov, a.T())

	if _, ok := p.q.(*noise.None); !ok {
		cov.Add(cov, p.q.Cov())
	}

	nx := p.m.Dims().Nx
	pNext := mat.NewSymDense(nx, nil)
	for i := 0; i < nx; i++ {
		for j := i; j < nx; j++ {
			pNext.SetSym(i, j, cov.At(i, j))
		}
	}

	return estimate.NewBaseWithCov(xNext, pNext)
}

// Model returns the predictor motion model.
func (p *Predictor) Model() filter.MotionModel {
	return p.m
}

// Noise returns the predictor process noise.
func (p *Predictor) Noise() filter.Noise {
	return p.q
}
