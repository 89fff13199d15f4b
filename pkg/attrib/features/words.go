package features

import (
	"fmt"

	"github.com/cognicore/attrib/pkg/attrib/ingest"
	"github.com/cognicore/attrib/pkg/attrib/internalerr"
	"github.com/cognicore/attrib/pkg/attrib/vocab"
)

// FrequentWords measures the relative frequency of the k most frequent words
// of the sample population.
type FrequentWords struct {
	k                int
	excludeStopwords bool
	tokenizer        *ingest.Tokenizer

	index map[string]int
}

// NewFrequentWords creates the extractor. With excludeStopwords the
// tokenizer's stoplist is removed before counting.
func NewFrequentWords(k int, excludeStopwords bool, tokenizer *ingest.Tokenizer) (*FrequentWords, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: frequent words needs k > 0, got %d", internalerr.ErrInvalidInput, k)
	}
	if tokenizer == nil {
		tokenizer = ingest.NewTokenizer(nil)
	}
	return &FrequentWords{k: k, excludeStopwords: excludeStopwords, tokenizer: tokenizer}, nil
}

func (f *FrequentWords) Name() string {
	if f.excludeStopwords {
		return fmt.Sprintf("FrequentWords(%d, exclude_stopwords)", f.k)
	}
	return fmt.Sprintf("FrequentWords(%d)", f.k)
}

func (f *FrequentWords) words(sample string) []string {
	if f.excludeStopwords {
		return f.tokenizer.Tokenize(sample)
	}
	return f.tokenizer.Words(sample)
}

// Prepare fits the vocabulary. Fewer than k distinct words leave trailing
// features at zero so the vector length stays k.
func (f *FrequentWords) Prepare(samples []string) error {
	counter := vocab.NewCounter()
	for _, s := range samples {
		counter.AddDocument(f.words(s))
	}
	f.index = counter.Index(f.k)
	return nil
}

func (f *FrequentWords) Extract(sample string) ([]float64, error) {
	if f.index == nil {
		return nil, internalerr.ErrNotPrepared
	}
	return relativeFrequencies(f.words(sample), f.index, f.k), nil
}

// relativeFrequencies counts terms found in index and divides by the total
// number of terms. An empty term list yields zeros.
func relativeFrequencies(terms []string, index map[string]int, size int) []float64 {
	out := make([]float64, size)
	if len(terms) == 0 {
		return out
	}
	for _, t := range terms {
		if i, ok := index[t]; ok {
			out[i]++
		}
	}
	total := float64(len(terms))
	for i := range out {
		out[i] /= total
	}
	return out
}
