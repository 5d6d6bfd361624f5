package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBestLagMSE(t *testing.T) {
	assert := assert.New(t)

	a := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	// b is a delayed by two steps
	b := []float64{0, 0, 0, 1, 2, 3, 4, 5}

	mse, lag, err := BestLagMSE(a, b, 3)
	assert.NoError(err)
	assert.Equal(2, lag)
	assert.InDelta(0.0, mse, 1e-12)

	// identical signals align at zero lag
	mse, lag, err = BestLagMSE(a, a, 3)
	assert.NoError(err)
	assert.Equal(0, lag)
	assert.InDelta(0.0, mse, 1e-12)

	// invalid inputs
	_, _, err = BestLagMSE(nil, nil, 1)
	assert.Error(err)
	_, _, err = BestLagMSE(a, b[:4], 1)
	assert.Error(err)
	_, _, err = BestLagMSE(a, b, len(a))
	assert.Error(err)
	_, _, err = BestLagMSE(a, b, -1)
	assert.Error(err)
}
