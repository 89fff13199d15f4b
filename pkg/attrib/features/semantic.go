package features

import (
	"sort"
	"strings"

	"github.com/cognicore/attrib/pkg/attrib/ingest"
)

// Taxonomy groups keywords into semantic categories.
type Taxonomy struct {
	categories map[string]map[string]struct{} // category → keywords (lowercase)
}

// NewTaxonomy creates an empty taxonomy.
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{categories: make(map[string]map[string]struct{})}
}

// AddCategory adds a category with its keywords, merging with any keywords
// already present.
func (t *Taxonomy) AddCategory(name string, keywords []string) {
	set := t.categories[name]
	if set == nil {
		set = make(map[string]struct{}, len(keywords))
		t.categories[name] = set
	}
	for _, kw := range keywords {
		set[strings.ToLower(kw)] = struct{}{}
	}
}

// Categories returns the category names in sorted order.
func (t *Taxonomy) Categories() []string {
	names := make([]string, 0, len(t.categories))
	for name := range t.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns, per sorted category, how many tokens are keywords of it.
func (t *Taxonomy) Count(tokens []string) []float64 {
	names := t.Categories()
	out := make([]float64, len(names))
	for i, name := range names {
		kws := t.categories[name]
		for _, tok := range tokens {
			if _, ok := kws[strings.ToLower(tok)]; ok {
				out[i]++
			}
		}
	}
	return out
}

// SemanticKeywords counts keyword hits per taxonomy category. It is the
// semantic baseline: content words that identify the work rather than the
// translator.
type SemanticKeywords struct {
	taxonomy  *Taxonomy
	tokenizer *ingest.Tokenizer
}

// NewSemanticKeywords creates the extractor. A nil taxonomy yields an empty
// vector for every sample.
func NewSemanticKeywords(taxonomy *Taxonomy) *SemanticKeywords {
	if taxonomy == nil {
		taxonomy = NewTaxonomy()
	}
	return &SemanticKeywords{taxonomy: taxonomy, tokenizer: ingest.NewTokenizer(nil)}
}

func (s *SemanticKeywords) Name() string { return "SemanticKeywords" }

func (s *SemanticKeywords) Prepare([]string) error { return nil }

func (s *SemanticKeywords) Extract(sample string) ([]float64, error) {
	return s.taxonomy.Count(s.tokenizer.Words(sample)), nil
}
