package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	filter "github.com/statekit/go-filter"
)

// CSVExporter writes filter estimates to a CSV stream. For every state
// component it emits the estimated value together with the upper and
// lower 2-sigma bounds derived from the estimate covariance diagonal.
type CSVExporter struct {
	w    *csv.Writer
	cols int
}

// NewCSVExporter creates an exporter writing to w, with one header
// triple per given state name. It returns error if no state names are
// given or the header fails to be written.
func NewCSVExporter(w io.Writer, states []string) (*CSVExporter, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("no state names given")
	}

	cw := csv.NewWriter(w)

	hdr := make([]string, 0, len(states)*3)
	for _, s := range states {
		hdr = append(hdr, s, s+"_2sigma", s+"_-2sigma")
	}
	if err := cw.Write(hdr); err != nil {
		return nil, err
	}

	return &CSVExporter{w: cw, cols: len(states)}, nil
}

// Write appends one estimate row.
// It returns error if the estimate dimension disagrees with the header.
func (e *CSVExporter) Write(est filter.Estimate) error {
	val, cov := est.Val(), est.Cov()
	if val.Len() != e.cols {
		return fmt.Errorf("invalid estimate dimension: %d != %d", val.Len(), e.cols)
	}

	rec := make([]string, 0, e.cols*3)
	for i := 0; i < e.cols; i++ {
		bound := 2 * math.Sqrt(cov.At(i, i))
		rec = append(rec,
			strconv.FormatFloat(val.AtVec(i), 'f', -1, 64),
			strconv.FormatFloat(bound, 'f', -1, 64),
			strconv.FormatFloat(-bound, 'f', -1, 64),
		)
	}

	return e.w.Write(rec)
}

// Flush flushes buffered rows to the underlying writer and returns any
// error encountered during writing.
func (e *CSVExporter) Flush() error {
	e.w.Flush()

	return e.w.Error()
}
