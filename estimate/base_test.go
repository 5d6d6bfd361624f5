package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewBase(t *testing.T) {
	assert := assert.New(t)

	state := mat.NewVecDense(2, []float64{1.0, 1.0})
	cov := mat.NewSymDense(2, []float64{1.0, 0.0, 0.0, 1.0})

	b, err := NewBase(state)
	assert.NotNil(b)
	assert.NoError(err)

	b, err = NewBaseWithCov(state, cov)
	assert.NotNil(b)
	assert.NoError(err)

	// covariance dimension disagrees with value dimension
	b, err = NewBaseWithCov(state, mat.NewSymDense(1, []float64{1.0}))
	assert.Nil(b)
	assert.Error(err)

	// nil and empty values are rejected with an error, not a panic
	assert.NotPanics(func() {
		b, err = NewBase(nil)
		assert.Nil(b)
		assert.Error(err)

		b, err = NewBase(&mat.VecDense{})
		assert.Nil(b)
		assert.Error(err)

		b, err = NewBaseWithCov(nil, cov)
		assert.Nil(b)
		assert.Error(err)

		b, err = NewBaseWithCov(state, nil)
		assert.Nil(b)
		assert.Error(err)
	})
}

func TestValCov(t *testing.T) {
	assert := assert.New(t)

	state := mat.NewVecDense(2, []float64{1.0, 2.0})
	cov := mat.NewSymDense(2, []float64{1.0, 2.0, 2.0, 4.0})

	b, err := NewBaseWithCov(state, cov)
	assert.NotNil(b)
	assert.NoError(err)

	v := b.Val()
	for i := 0; i < state.Len(); i++ {
		assert.Equal(state.AtVec(i), v.AtVec(i))
	}

	c := b.Cov()
	r, _ := c.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			assert.Equal(cov.At(i, j), c.At(i, j))
		}
	}

	// accessors return copies: mutating the returned value
	// must not leak back into the estimate
	v.(*mat.VecDense).SetVec(0, 100.0)
	assert.Equal(1.0, b.Val().AtVec(0))
}
