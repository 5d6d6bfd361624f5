package matrix

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RowSums returns a slice containing m row sums.
// It panics if m is nil.
func RowSums(m *mat.Dense) []float64 {
	rows, _ := m.Dims()
	sum := make([]float64, rows)

	for i := 0; i < rows; i++ {
		sum[i] = floats.Sum(m.RawRowView(i))
	}

	return sum
}

// ColSums returns a slice containing m column sums.
// It panics if m is nil.
func ColSums(m *mat.Dense) []float64 {
	_, cols := m.Dims()
	sum := make([]float64, cols)

	for i := 0; i < cols; i++ {
		sum[i] = mat.Sum(m.ColView(i))
	}

	return sum
}

// ColMeans returns a slice containing m column means.
// It panics if m is nil or has no rows.
func ColMeans(m *mat.Dense) []float64 {
	rows, _ := m.Dims()
	means := ColSums(m)
	floats.Scale(1.0/float64(rows), means)

	return means
}

// Trace returns the sum of the diagonal elements of the square matrix m.
// It panics if m is not square.
func Trace(m mat.Matrix) float64 {
	r, c := m.Dims()
	if r != c {
		panic("matrix: trace of a non-square matrix")
	}

	var tr float64
	for i := 0; i < r; i++ {
		tr += m.At(i, i)
	}

	return tr
}
