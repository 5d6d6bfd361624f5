package sim

import (
	"fmt"
	"math"
)

// BestLagMSE returns the smallest mean squared deviation between
// signals a and b over integer lags in [-maxLag, maxLag], together
// with the lag at which it is attained: b is shifted by the lag
// against a before the residuals are accumulated over the overlap.
// Lag alignment makes the score insensitive to the constant delay a
// filter introduces, which is what regression bounds on tracking error
// care about.
// It fails with error if the signal lengths differ or are zero, or if
// maxLag leaves no overlap.
func BestLagMSE(a, b []float64, maxLag int) (float64, int, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, 0, fmt.Errorf("invalid signal lengths: %d, %d", len(a), len(b))
	}

	if maxLag < 0 || maxLag >= len(a) {
		return 0, 0, fmt.Errorf("invalid max lag: %d", maxLag)
	}

	best := math.Inf(1)
	bestLag := 0

	for lag := -maxLag; lag <= maxLag; lag++ {
		var sq float64
		var n int

		for i := 0; i < len(a); i++ {
			j := i + lag
			if j < 0 || j >= len(b) {
				continue
			}
			d := a[i] - b[j]
			sq += d * d
			n++
		}

		if n == 0 {
			continue
		}

		if mse := sq / float64(n); mse < best {
			best = mse
			bestLag = lag
		}
	}

	return best, bestLag, nil
}
