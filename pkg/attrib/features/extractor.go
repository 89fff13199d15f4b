package features

import (
	"fmt"
	"strings"

	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

// Extractor turns a sample into a fixed-length numeric vector.
//
// Prepare is called once per evaluation run with every sample, before any
// Extract call. Extractors fitted on the corpus calibrate there and return
// ErrNotPrepared from Extract until they have been prepared; stateless
// extractors treat Prepare as a no-op. Extract must not mutate state.
type Extractor interface {
	Name() string
	Prepare(samples []string) error
	Extract(sample string) ([]float64, error)
}

// Pipeline applies extractors in order and concatenates their outputs.
type Pipeline struct {
	extractors []Extractor
	prepared   bool
}

// NewPipeline creates a pipeline over the given extractors.
func NewPipeline(extractors ...Extractor) *Pipeline {
	return &Pipeline{extractors: extractors}
}

// Name describes the extractor set, e.g. "[SentenceCount, AlphabetFrequency]".
func (p *Pipeline) Name() string {
	names := make([]string, len(p.extractors))
	for i, ex := range p.extractors {
		names[i] = ex.Name()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Len returns the number of extractors.
func (p *Pipeline) Len() int { return len(p.extractors) }

// Prepare fits every extractor against the full sample population.
func (p *Pipeline) Prepare(samples []string) error {
	if len(p.extractors) == 0 {
		return fmt.Errorf("%w: pipeline has no extractors", internalerr.ErrInvalidInput)
	}
	for _, ex := range p.extractors {
		if err := ex.Prepare(samples); err != nil {
			return fmt.Errorf("prepare %s: %w", ex.Name(), err)
		}
	}
	p.prepared = true
	return nil
}

// Extract returns the concatenated feature vector for one sample.
func (p *Pipeline) Extract(sample string) ([]float64, error) {
	if !p.prepared {
		return nil, fmt.Errorf("pipeline %s: %w", p.Name(), internalerr.ErrNotPrepared)
	}
	var out []float64
	for _, ex := range p.extractors {
		vec, err := ex.Extract(sample)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", ex.Name(), err)
		}
		out = append(out, vec...)
	}
	return out, nil
}

// Matrix extracts one row per sample. Rows of differing length fail with
// ErrFeatureDimension.
func (p *Pipeline) Matrix(samples []string) ([][]float64, error) {
	rows := make([][]float64, len(samples))
	for i, s := range samples {
		row, err := p.Extract(s)
		if err != nil {
			return nil, err
		}
		if i > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: sample %d has %d features, sample 0 has %d",
				internalerr.ErrFeatureDimension, i, len(row), len(rows[0]))
		}
		rows[i] = row
	}
	return rows, nil
}
