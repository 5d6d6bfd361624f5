package kalman

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	filter "github.com/statekit/go-filter"
	"github.com/statekit/go-filter/estimate"
	"github.com/statekit/go-filter/matrix"
	"github.com/statekit/go-filter/model"
	"github.com/statekit/go-filter/noise"
	"gonum.org/v1/gonum/mat"
)

var (
	dims   = filter.Dims{Nx: 2, Nu: 1, Ny: 1}
	motion *model.LinearMotion
	obsrv  *model.LinearObservation
	q      filter.Noise
	r      filter.Noise
	u      *mat.VecDense
	z      *mat.VecDense
	ic     *estimate.Base
)

func setup() {
	A := mat.NewDense(2, 2, []float64{1.0, 1.0, 0.0, 1.0})
	B := mat.NewDense(2, 1, []float64{0.5, 1.0})
	H := mat.NewDense(1, 2, []float64{1.0, 0.0})

	motion, _ = model.NewLinearMotion(dims, A, B)
	obsrv, _ = model.NewLinearObservation(dims, H)

	q, _ = noise.NewGaussian([]float64{0, 0}, mat.NewSymDense(2, []float64{0.05, 0, 0, 0.05}))
	r, _ = noise.NewGaussian([]float64{0}, mat.NewSymDense(1, []float64{0.25}))

	u = mat.NewVecDense(1, []float64{-1.0})
	z = mat.NewVecDense(1, []float64{-1.5})

	ic, _ = estimate.NewBaseWithCov(
		mat.NewVecDense(2, []float64{1.0, 3.0}),
		mat.NewSymDense(2, []float64{0.25, 0, 0, 0.25}),
	)
}

func TestMain(m *testing.M) {
	setup()
	os.Exit(m.Run())
}

func TestNewPredictor(t *testing.T) {
	assert := assert.New(t)

	p, err := NewPredictor(motion, q)
	assert.NotNil(p)
	assert.NoError(err)
	assert.NotNil(p.Model())
	assert.NotNil(p.Noise())

	// missing model
	p, err = NewPredictor(nil, q)
	assert.Nil(p)
	assert.Error(err)

	// process noise dimension disagrees with state dimension
	badQ, _ := noise.NewZero(5)
	p, err = NewPredictor(motion, badQ)
	assert.Nil(p)
	assert.Error(err)

	// nil noise means no process noise
	p, err = NewPredictor(motion, nil)
	assert.NotNil(p)
	assert.NoError(err)
}

func TestPredict(t *testing.T) {
	assert := assert.New(t)

	p, err := NewPredictor(motion, q)
	assert.NoError(err)

	pred, err := p.Predict(ic, u)
	assert.NotNil(pred)
	assert.NoError(err)

	// x' = A*x + B*u
	assert.InDelta(3.5, pred.Val().AtVec(0), 1e-12)
	assert.InDelta(2.0, pred.Val().AtVec(1), 1e-12)

	// P' = A*P*A' + Q
	cov := pred.Cov()
	assert.InDelta(0.55, cov.At(0, 0), 1e-12)
	assert.InDelta(0.25, cov.At(0, 1), 1e-12)
	assert.InDelta(0.25, cov.At(1, 0), 1e-12)
	assert.InDelta(0.30, cov.At(1, 1), 1e-12)

	// the input estimate is not modified
	assert.Equal(1.0, ic.Val().AtVec(0))
	assert.Equal(0.25, ic.Cov().At(0, 0))

	// invalid control input vector
	_, err = p.Predict(ic, mat.NewVecDense(3, nil))
	assert.Error(err)
}

func TestPredictUncertaintyGrowth(t *testing.T) {
	assert := assert.New(t)

	p, err := NewPredictor(motion, q)
	assert.NoError(err)

	// repeated prediction without updates never decreases the
	// covariance trace and keeps the covariance symmetric
	est := filter.Estimate(ic)
	tr := matrix.Trace(est.Cov())

	for i := 0; i < 20; i++ {
		est, err = p.Predict(est, u)
		assert.NoError(err)

		cov := est.Cov()
		n := cov.SymmetricDim()
		for r := 0; r < n; r++ {
			for c := r + 1; c < n; c++ {
				assert.InDelta(cov.At(r, c), cov.At(c, r), 1e-12)
			}
		}

		trNext := matrix.Trace(cov)
		assert.GreaterOrEqual(trNext, tr)
		tr = trNext
	}
}
