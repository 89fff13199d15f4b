package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/attrib/pkg/attrib/ingest"
	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

func TestRegistryBuildsBuiltins(t *testing.T) {
	r := NewRegistry(Resources{
		Tokenizer: ingest.NewTokenizer([]string{"de"}),
		Taxonomy:  NewTaxonomy(),
		Tagger:    NewLexiconTagger(nil, ""),
	})

	assert.Equal(t, []string{
		"alphabet_frequency", "char_ngrams", "frequent_words",
		"pos_frequency", "semantic_keywords", "sentence_count",
	}, r.Types())

	p, err := r.Pipeline([]Spec{
		{Type: "sentence_count"},
		{Type: "frequent_words", K: 100, ExcludeStopwords: true},
		{Type: "char_ngrams", N: 3, K: 50},
		{Type: "pos_frequency", Tags: []string{"N"}},
		{Type: "semantic_keywords"},
		{Type: "alphabet_frequency"},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, p.Len())
	assert.Equal(t,
		"[SentenceCount, FrequentWords(100, exclude_stopwords), CharacterNGrams(3, 50), POSFrequency(N), SemanticKeywords, AlphabetFrequency]",
		p.Name())
}

func TestRegistryFreshInstances(t *testing.T) {
	r := NewRegistry(Resources{})
	specs := []Spec{{Type: "frequent_words", K: 2}}

	a, err := r.Pipeline(specs)
	require.NoError(t, err)
	require.NoError(t, a.Prepare([]string{"x y"}))

	b, err := r.Pipeline(specs)
	require.NoError(t, err)
	_, err = b.Extract("x")
	assert.ErrorIs(t, err, internalerr.ErrNotPrepared)
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry(Resources{})

	_, err := r.Build(Spec{Type: "embedding"})
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)

	_, err = r.Build(Spec{Type: "char_ngrams"})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)

	_, err = r.Build(Spec{Type: "pos_frequency"})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput, "pos needs a tagger")

	_, err = r.Pipeline(nil)
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestRegistryCustomFactory(t *testing.T) {
	r := NewRegistry(Resources{})
	r.Register("constant", func(Spec, Resources) (Extractor, error) { return SentenceCount{}, nil })

	ex, err := r.Build(Spec{Type: "constant"})
	require.NoError(t, err)
	assert.Equal(t, "SentenceCount", ex.Name())
}
