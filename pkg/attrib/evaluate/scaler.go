package evaluate

import (
	"fmt"

	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

// MinMaxScaler maps each feature column to [0,1] using the minimum and
// maximum seen at Fit. Constant columns map to zero. Rows transformed after
// fitting may fall outside [0,1].
type MinMaxScaler struct {
	min   []float64
	scale []float64
}

// Fit learns per-column bounds from X.
func (s *MinMaxScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("%w: cannot fit scaler on zero rows", internalerr.ErrInvalidInput)
	}
	d := len(X[0])
	lo := append([]float64(nil), X[0]...)
	hi := append([]float64(nil), X[0]...)
	for _, row := range X[1:] {
		if len(row) != d {
			return fmt.Errorf("%w: row has %d features, want %d", internalerr.ErrFeatureDimension, len(row), d)
		}
		for j, v := range row {
			if v < lo[j] {
				lo[j] = v
			}
			if v > hi[j] {
				hi[j] = v
			}
		}
	}

	s.min = lo
	s.scale = make([]float64, d)
	for j := range s.scale {
		r := hi[j] - lo[j]
		if r == 0 {
			r = 1
		}
		s.scale[j] = 1 / r
	}
	return nil
}

// Transform returns a scaled copy of X.
func (s *MinMaxScaler) Transform(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.min[j]) * s.scale[j]
		}
		out[i] = scaled
	}
	return out
}
