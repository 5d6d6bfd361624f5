package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNone(t *testing.T) {
	assert := assert.New(t)

	n, err := NewNone()
	assert.NotNil(n)
	assert.NoError(err)

	assert.Nil(n.Mean())
	assert.Equal(0, n.Cov().SymmetricDim())
	assert.Equal(0, n.Sample().Len())
	assert.NoError(n.Reset())
}
