package jacobian

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestCompute(t *testing.T) {
	assert := assert.New(t)

	// f(x) = [x0, x1^2, x2] has Jacobian diag(1, 2*x1, 1)
	fn := func(y, x []float64) {
		y[0] = x[0]
		y[1] = x[1] * x[1]
		y[2] = x[2]
	}

	x := mat.NewVecDense(3, []float64{1.0, 2.0, 3.0})
	jac := mat.NewDense(3, 3, nil)

	err := Compute(jac, fn, x, 0)
	assert.NoError(err)

	want := mat.NewDense(3, 3, []float64{
		1.0, 0.0, 0.0,
		0.0, 4.0, 0.0,
		0.0, 0.0, 1.0,
	})

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(want.At(i, j), jac.At(i, j), 1e-6)
		}
	}
}

func TestComputeNonSquare(t *testing.T) {
	assert := assert.New(t)

	// range measurement from the origin: f(x) = [sqrt(x0^2 + x1^2)]
	fn := func(y, x []float64) {
		y[0] = math.Hypot(x[0], x[1])
	}

	x := mat.NewVecDense(2, []float64{3.0, 4.0})
	jac := mat.NewDense(1, 2, nil)

	err := Compute(jac, fn, x, DefaultStep)
	assert.NoError(err)

	assert.InDelta(3.0/5.0, jac.At(0, 0), 1e-6)
	assert.InDelta(4.0/5.0, jac.At(0, 1), 1e-6)
}

func TestComputeInvalid(t *testing.T) {
	assert := assert.New(t)

	fn := func(y, x []float64) { y[0] = x[0] }

	// nil destination
	err := Compute(nil, fn, mat.NewVecDense(1, nil), 0)
	assert.Error(err)

	// empty destination
	err = Compute(&mat.Dense{}, fn, mat.NewVecDense(1, nil), 0)
	assert.Error(err)

	// point dimension disagrees with destination columns
	jac := mat.NewDense(1, 2, nil)
	err = Compute(jac, fn, mat.NewVecDense(3, nil), 0)
	assert.Error(err)
}
