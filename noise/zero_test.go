package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewZero(t *testing.T) {
	assert := assert.New(t)

	z, err := NewZero(2)
	assert.NotNil(z)
	assert.NoError(err)

	z, err = NewZero(-2)
	assert.Nil(z)
	assert.Error(err)

	// zero size is rejected with an error, not a panic
	assert.NotPanics(func() {
		z, err = NewZero(0)
		assert.Nil(z)
		assert.Error(err)
	})
}

func TestZeroMeanCovSample(t *testing.T) {
	assert := assert.New(t)

	z, err := NewZero(2)
	assert.NotNil(z)
	assert.NoError(err)

	mean := z.Mean()
	assert.EqualValues([]float64{0, 0}, mean)

	cov := z.Cov()
	assert.Equal(2, cov.SymmetricDim())
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.Equal(0.0, cov.At(i, j))
		}
	}

	sample := z.Sample()
	assert.Equal(2, sample.Len())
	for i := 0; i < 2; i++ {
		assert.Equal(0.0, sample.AtVec(i))
	}

	assert.NoError(z.Reset())
}
