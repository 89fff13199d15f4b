package features

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

// varying returns a vector whose length depends on the sample.
type varying struct{}

func (varying) Name() string { return "varying" }
func (varying) Prepare([]string) error { return nil }
func (varying) Extract(s string) ([]float64, error) {
	return make([]float64, len(s)), nil
}

type failing struct{ err error }

func (failing) Name() string { return "failing" }
func (failing) Prepare([]string) error { return nil }
func (f failing) Extract(string) ([]float64, error) { return nil, f.err }

func TestPipelineConcatenatesInOrder(t *testing.T) {
	p := NewPipeline(SentenceCount{}, AlphabetFrequency{})
	require.NoError(t, p.Prepare([]string{"Ab. c."}))

	vec, err := p.Extract("Ab. c.")
	require.NoError(t, err)
	require.Len(t, vec, 27)

	assert.Equal(t, 2.0, vec[0], "sentence count first")
	assert.Equal(t, 1.0, vec[1], "a")
	assert.Equal(t, 1.0, vec[2], "b")
	assert.Equal(t, 1.0, vec[3], "c")
	assert.Equal(t, "[SentenceCount, AlphabetFrequency]", p.Name())
}

func TestPipelineRequiresPrepare(t *testing.T) {
	p := NewPipeline(SentenceCount{})
	_, err := p.Extract("text.")
	assert.ErrorIs(t, err, internalerr.ErrNotPrepared)
}

func TestPipelineEmpty(t *testing.T) {
	err := NewPipeline().Prepare([]string{"x"})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func TestPipelineMatrixDimensionMismatch(t *testing.T) {
	p := NewPipeline(varying{})
	require.NoError(t, p.Prepare(nil))

	_, err := p.Matrix([]string{"ab", "abc"})
	assert.ErrorIs(t, err, internalerr.ErrFeatureDimension)
}

func TestPipelineMatrixUniformLength(t *testing.T) {
	samples := []string{"De zee.", "Het schip voer naar Troje.", ""}
	fw, err := NewFrequentWords(5, false, nil)
	require.NoError(t, err)
	ng, err := NewCharacterNGrams(2, 7)
	require.NoError(t, err)

	p := NewPipeline(SentenceCount{}, fw, ng)
	require.NoError(t, p.Prepare(samples))

	rows, err := p.Matrix(samples)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Len(t, row, 1+5+7)
	}
}

func TestPipelineEqualSamplesEqualVectors(t *testing.T) {
	fw, err := NewFrequentWords(3, false, nil)
	require.NoError(t, err)
	p := NewPipeline(fw, AlphabetFrequency{})
	require.NoError(t, p.Prepare([]string{"arma virumque cano", "arma cano"}))

	a, err := p.Extract("arma virumque cano")
	require.NoError(t, err)
	b, err := p.Extract("arma virumque cano")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPipelinePropagatesExtractorErrors(t *testing.T) {
	boom := errors.New("model unavailable")
	p := NewPipeline(failing{err: boom})
	require.NoError(t, p.Prepare(nil))

	_, err := p.Extract("x")
	assert.ErrorIs(t, err, boom)
}
