package evaluate

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

// Classifier is a supervised model over dense feature rows.
type Classifier interface {
	Fit(X [][]float64, y []string) error
	Predict(X [][]float64) ([]string, error)
}

// LinearSVC is a one-vs-rest linear support vector classifier trained with
// dual coordinate descent on the L2-regularized squared hinge loss. A bias
// feature of 1 is appended to every row.
type LinearSVC struct {
	C       float64
	Tol     float64
	MaxIter int
	Seed    int64

	classes []string
	weights [][]float64
}

// NewLinearSVC returns a classifier with C=1, tol=1e-4 and 1000 iterations.
func NewLinearSVC(seed int64) *LinearSVC {
	return &LinearSVC{C: 1, Tol: 1e-4, MaxIter: 1000, Seed: seed}
}

// Classes returns the labels seen during Fit, sorted.
func (s *LinearSVC) Classes() []string {
	return append([]string(nil), s.classes...)
}

func (s *LinearSVC) Fit(X [][]float64, y []string) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("%w: %d rows and %d labels", internalerr.ErrInvalidInput, len(X), len(y))
	}

	seen := make(map[string]struct{})
	for _, label := range y {
		seen[label] = struct{}{}
	}
	classes := make([]string, 0, len(seen))
	for label := range seen {
		classes = append(classes, label)
	}
	sort.Strings(classes)
	s.classes = classes
	s.weights = nil

	if len(classes) == 1 {
		return nil
	}

	rows := withBias(X)
	rng := rand.New(rand.NewSource(s.Seed))

	// two classes share one separator with classes[1] as the positive side
	positives := classes[1:]
	if len(classes) > 2 {
		positives = classes
	}
	for _, pos := range positives {
		signs := make([]float64, len(y))
		for i, label := range y {
			if label == pos {
				signs[i] = 1
			} else {
				signs[i] = -1
			}
		}
		s.weights = append(s.weights, s.solve(rows, signs, rng))
	}
	return nil
}

// solve runs dual coordinate descent for one binary problem.
func (s *LinearSVC) solve(rows [][]float64, y []float64, rng *rand.Rand) []float64 {
	n, d := len(rows), len(rows[0])
	c := s.C
	if c <= 0 {
		c = 1
	}
	maxIter := s.MaxIter
	if maxIter <= 0 {
		maxIter = 1000
	}
	diag := 0.5 / c

	w := make([]float64, d)
	alpha := make([]float64, n)
	qd := make([]float64, n)
	for i, row := range rows {
		qd[i] = diag + dot(row, row)
	}

	for iter := 0; iter < maxIter; iter++ {
		pgMax, pgMin := math.Inf(-1), math.Inf(1)
		for _, i := range rng.Perm(n) {
			g := y[i]*dot(w, rows[i]) - 1 + diag*alpha[i]

			pg := g
			if alpha[i] == 0 && g > 0 {
				pg = 0
			}
			pgMax = math.Max(pgMax, pg)
			pgMin = math.Min(pgMin, pg)

			if math.Abs(pg) > 1e-12 {
				old := alpha[i]
				alpha[i] = math.Max(alpha[i]-g/qd[i], 0)
				delta := (alpha[i] - old) * y[i]
				for j, v := range rows[i] {
					w[j] += delta * v
				}
			}
		}
		if pgMax-pgMin <= s.Tol {
			break
		}
	}
	return w
}

// Decision returns the raw separator scores of one row, one per model.
func (s *LinearSVC) Decision(row []float64) []float64 {
	x := append(append(make([]float64, 0, len(row)+1), row...), 1)
	out := make([]float64, len(s.weights))
	for k, w := range s.weights {
		out[k] = dot(w, x)
	}
	return out
}

func (s *LinearSVC) Predict(X [][]float64) ([]string, error) {
	if len(s.classes) == 0 {
		return nil, fmt.Errorf("%w: classifier is not fitted", internalerr.ErrNotPrepared)
	}
	out := make([]string, len(X))
	for i, row := range X {
		if len(s.weights) > 0 && len(row)+1 != len(s.weights[0]) {
			return nil, fmt.Errorf("%w: row %d has %d features, model expects %d",
				internalerr.ErrFeatureDimension, i, len(row), len(s.weights[0])-1)
		}
		switch len(s.classes) {
		case 1:
			out[i] = s.classes[0]
		case 2:
			if s.Decision(row)[0] > 0 {
				out[i] = s.classes[1]
			} else {
				out[i] = s.classes[0]
			}
		default:
			scores := s.Decision(row)
			best := 0
			for k := 1; k < len(scores); k++ {
				if scores[k] > scores[best] {
					best = k
				}
			}
			out[i] = s.classes[best]
		}
	}
	return out, nil
}

func withBias(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = append(append(make([]float64, 0, len(row)+1), row...), 1)
	}
	return out
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
