package kalman

import (
	"fmt"

	"github.com/milosgajdos/matrix"
	filter "github.com/statekit/go-filter"
	"github.com/statekit/go-filter/estimate"
	"github.com/statekit/go-filter/noise"
	"gonum.org/v1/gonum/mat"
)

// Updater implements the correction half of the Kalman recursion.
// It combines an observation model with observation noise R:
//
//	S = H*P'*H' + R
//	K = P'*H'*inv(S)
//	x = x' + K*(z - h(x'))
//	P = (I - K*H)*P'*(I - K*H)' + K*R*K'
//
// where H is the observation model Jacobian at x'. The Joseph form of
// the covariance correction keeps P symmetric by construction.
//
// The updater performs no regularization: when R is zero and H does
// not have full row rank for the given P', the innovation covariance S
// is singular and Update returns the inversion error. Callers must
// supply a positive definite R to stay clear of this edge.
type Updater struct {
	// m is the observation model
	m filter.ObservationModel
	// r is observation noise
	r filter.Noise
	// eye is the identity matrix used by the covariance correction;
	// built lazily on first update and cached
	eye *mat.Dense
	// inn is the last innovation vector
	inn *mat.VecDense
	// k is the last Kalman gain
	k *mat.Dense
}

// NewUpdater creates an updater from observation model m and
// observation noise r. A nil r means no observation noise.
// It returns error if the model dimensions are invalid or if the noise
// covariance dimension disagrees with the observation dimension.
func NewUpdater(m filter.ObservationModel, r filter.Noise) (*Updater, error) {
	if m == nil {
		return nil, fmt.Errorf("observation model must be defined")
	}

	dims := m.Dims()
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	if r != nil {
		if _, ok := r.(*noise.None); !ok && r.Cov().SymmetricDim() != dims.Ny {
			return nil, fmt.Errorf("invalid observation noise dimension: %d != %d", r.Cov().SymmetricDim(), dims.Ny)
		}
	} else {
		r, _ = noise.NewNone()
	}

	return &Updater{
		m:   m,
		r:   r,
		inn: mat.NewVecDense(dims.Ny, nil),
		k:   mat.NewDense(dims.Nx, dims.Ny, nil),
	}, nil
}

// Update corrects the predicted estimate est with measurement z and
// returns the corrected estimate. It is a pure function of its inputs:
// est is not modified. It returns error if the measurement dimension
// disagrees with the model, if the observation or its Jacobian fails,
// or if the innovation covariance is singular.
func (u *Updater) Update(est filter.Estimate, z mat.Vector) (filter.Estimate, error) {
	dims := u.m.Dims()

	if z == nil || z.Len() != dims.Ny {
		return nil, fmt.Errorf("invalid measurement supplied: %v", z)
	}

	x := &mat.VecDense{}
	x.CloneFromVec(est.Val())

	y, err := u.m.Observe(x)
	if err != nil {
		return nil, fmt.Errorf("failed to observe system output: %v", err)
	}

	h, err := u.m.ObservationJacobian(x)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate observation Jacobian: %v", err)
	}

	pxy := mat.NewDense(dims.Nx, dims.Ny, nil)
	pyy := mat.NewDense(dims.Ny, dims.Ny, nil)

	// P'*H'
	pxy.Mul(est.Cov(), h.T())

	// S = H*P'*H' + R; pxy = P'*H' is reused here
	pyy.Mul(h, pxy)
	if _, ok := u.r.(*noise.None); !ok {
		pyy.Add(pyy, u.r.Cov())
	}

	// K = P'*H'*inv(S)
	pyyInv := &mat.Dense{}
	if err := pyyInv.Inverse(pyy); err != nil {
		return nil, fmt.Errorf("failed to invert innovation covariance: %v", err)
	}
	gain := &mat.Dense{}
	gain.Mul(pxy, pyyInv)

	// innovation vector
	inn := &mat.VecDense{}
	inn.SubVec(z, y)

	// x = x' + K*inn
	corr := &mat.Dense{}
	corr.Mul(gain, inn)
	x.AddVec(x, corr.ColView(0))

	if u.eye == nil {
		eye, err := matrix.NewDenseValIdentity(dims.Nx, 1.0)
		if err != nil {
			return nil, fmt.Errorf("failed to create identity matrix: %v", err)
		}
		u.eye = eye
	}

	// Joseph form update
	a := &mat.Dense{}
	// K*H
	a.Mul(gain, h)
	// I - K*H
	a.Sub(u.eye, a)

	ap := &mat.Dense{}
	ap.Mul(a, est.Cov())
	pCorr := &mat.Dense{}
	pCorr.Mul(ap, a.T())

	// K*R*K'
	if _, ok := u.r.(*noise.None); !ok {
		kr := &mat.Dense{}
		kr.Mul(gain, u.r.Cov())
		krk := &mat.Dense{}
		krk.Mul(kr, gain.T())
		pCorr.Add(pCorr, krk)
	}

	// cache innovation and gain
	u.inn.CopyVec(inn)
	u.k.Copy(gain)

	p := mat.NewSymDense(dims.Nx, nil)
	for i := 0; i < dims.Nx; i++ {
		for j := i; j < dims.Nx; j++ {
			p.SetSym(i, j, pCorr.At(i, j))
		}
	}

	return estimate.NewBaseWithCov(x, p)
}

// Model returns the updater observation model.
func (u *Updater) Model() filter.ObservationModel {
	return u.m
}

// Noise returns the updater observation noise.
func (u *Updater) Noise() filter.Noise {
	return u.r
}

// Gain returns the Kalman gain of the last update.
func (u *Updater) Gain() mat.Matrix {
	gain := &mat.Dense{}
	gain.CloneFrom(u.k)

	return gain
}

// Innovation returns the innovation vector of the last update.
func (u *Updater) Innovation() mat.Vector {
	inn := &mat.VecDense{}
	inn.CloneFromVec(u.inn)

	return inn
}
