package features

import (
	"fmt"
	"strings"

	"github.com/cognicore/attrib/pkg/attrib/internalerr"
	"github.com/cognicore/attrib/pkg/attrib/vocab"
)

// CharacterNGrams measures the relative frequency of the k most frequent
// character n-grams of the sample population. Samples are lowercased and
// runs of whitespace collapse to a single space.
type CharacterNGrams struct {
	n, k  int
	index map[string]int
}

// NewCharacterNGrams creates the extractor.
func NewCharacterNGrams(n, k int) (*CharacterNGrams, error) {
	if n <= 0 || k <= 0 {
		return nil, fmt.Errorf("%w: character n-grams need n > 0 and k > 0, got n=%d k=%d",
			internalerr.ErrInvalidInput, n, k)
	}
	return &CharacterNGrams{n: n, k: k}, nil
}

func (c *CharacterNGrams) Name() string {
	return fmt.Sprintf("CharacterNGrams(%d, %d)", c.n, c.k)
}

func (c *CharacterNGrams) grams(sample string) []string {
	runes := []rune(strings.Join(strings.Fields(strings.ToLower(sample)), " "))
	if len(runes) < c.n {
		return nil
	}
	out := make([]string, 0, len(runes)-c.n+1)
	for i := 0; i+c.n <= len(runes); i++ {
		out = append(out, string(runes[i:i+c.n]))
	}
	return out
}

func (c *CharacterNGrams) Prepare(samples []string) error {
	counter := vocab.NewCounter()
	for _, s := range samples {
		counter.AddDocument(c.grams(s))
	}
	c.index = counter.Index(c.k)
	return nil
}

func (c *CharacterNGrams) Extract(sample string) ([]float64, error) {
	if c.index == nil {
		return nil, internalerr.ErrNotPrepared
	}
	return relativeFrequencies(c.grams(sample), c.index, c.k), nil
}
