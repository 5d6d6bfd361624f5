package kalman

import (
	"fmt"

	filter "github.com/statekit/go-filter"
	"github.com/statekit/go-filter/estimate"
	"gonum.org/v1/gonum/mat"
)

// Filter composes one predictor and one updater into the full
// predict-update Kalman recursion and owns the running estimate.
//
// Filter is the stateful shape of the recursion: each Predict, Update
// or Run call replaces the running estimate and returns it. For the
// stateless shape, call Predictor.Predict and Updater.Update directly
// and thread the estimate through yourself.
//
// The predict-before-update ordering within one step is a caller
// contract: the filter does not enforce it. Repeated Predict calls
// without an intervening Update are permitted and simply compound
// uncertainty growth (dead reckoning between sparse observations).
type Filter struct {
	// p is the filter predictor
	p *Predictor
	// u is the filter updater
	u *Updater
	// est is the running estimate
	est filter.Estimate
}

// New creates a filter from initial condition init, predictor p and
// updater u. It returns error if either half is missing, if their
// model dimensions disagree, or if init does not match the state size.
func New(init filter.InitCond, p *Predictor, u *Updater) (*Filter, error) {
	if p == nil || u == nil {
		return nil, fmt.Errorf("both predictor and updater must be defined")
	}

	if p.m.Dims() != u.m.Dims() {
		return nil, fmt.Errorf("predictor and updater dimensions disagree: %v != %v", p.m.Dims(), u.m.Dims())
	}

	if init == nil {
		return nil, fmt.Errorf("initial condition must be defined")
	}

	if init.State().Len() != p.m.Dims().Nx {
		return nil, fmt.Errorf("invalid initial state dimension: %d != %d", init.State().Len(), p.m.Dims().Nx)
	}

	est, err := estimate.NewBaseWithCov(init.State(), init.Cov())
	if err != nil {
		return nil, err
	}

	return &Filter{
		p:   p,
		u:   u,
		est: est,
	}, nil
}

// Predict advances the running estimate under control input u and
// returns the new estimate.
func (f *Filter) Predict(u mat.Vector) (filter.Estimate, error) {
	est, err := f.p.Predict(f.est, u)
	if err != nil {
		return nil, err
	}
	f.est = est

	return est, nil
}

// Update corrects the running estimate with measurement z and returns
// the new estimate.
func (f *Filter) Update(z mat.Vector) (filter.Estimate, error) {
	est, err := f.u.Update(f.est, z)
	if err != nil {
		return nil, err
	}
	f.est = est

	return est, nil
}

// Run performs one full predict-update step: it advances the running
// estimate under control input u and corrects it with measurement z.
// If the correction fails the running estimate keeps the predicted
// value.
func (f *Filter) Run(u, z mat.Vector) (filter.Estimate, error) {
	if _, err := f.Predict(u); err != nil {
		return nil, err
	}

	return f.Update(z)
}

// Estimate returns the running estimate.
func (f *Filter) Estimate() filter.Estimate {
	return f.est
}

// Predictor returns the filter predictor.
func (f *Filter) Predictor() *Predictor {
	return f.p
}

// Updater returns the filter updater.
func (f *Filter) Updater() *Updater {
	return f.u
}
