package model

import "fmt"

// Matrix names used in shape validation errors.
const (
	StateTransitionMatrix = "state-transition"
	ControlMatrix         = "control"
	ObservationMatrix     = "observation"
)

// ShapeError describes a model matrix whose shape disagrees with the
// declared problem dimensions.
type ShapeError struct {
	// Matrix names the offending matrix
	Matrix string
	// Rows and Cols are the actual matrix dimensions
	Rows, Cols int
	// WantRows and WantCols are the expected dimensions
	WantRows, WantCols int
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid %s matrix dimensions: [%d x %d], want [%d x %d]",
		e.Matrix, e.Rows, e.Cols, e.WantRows, e.WantCols)
}
