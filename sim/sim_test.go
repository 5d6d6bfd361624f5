package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestInitCond(t *testing.T) {
	assert := assert.New(t)

	state := mat.NewVecDense(2, []float64{1.0, 3.0})
	cov := mat.NewSymDense(2, []float64{0.25, 0, 0, 0.25})

	ic := NewInitCond(state, cov)
	assert.NotNil(ic)

	s := ic.State()
	assert.Equal(state.Len(), s.Len())
	for i := 0; i < state.Len(); i++ {
		assert.Equal(state.AtVec(i), s.AtVec(i))
	}

	c := ic.Cov()
	assert.Equal(cov.SymmetricDim(), c.SymmetricDim())

	// accessors return copies
	s.(*mat.VecDense).SetVec(0, 100.0)
	assert.Equal(1.0, ic.State().AtVec(0))
}
