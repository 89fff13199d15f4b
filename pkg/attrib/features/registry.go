package features

import (
	"fmt"
	"sort"

	"github.com/cognicore/attrib/pkg/attrib/ingest"
	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

// Spec describes one extractor in an experiment configuration.
type Spec struct {
	Type             string   `yaml:"type" json:"type"`
	K                int      `yaml:"k,omitempty" json:"k,omitempty"`
	N                int      `yaml:"n,omitempty" json:"n,omitempty"`
	ExcludeStopwords bool     `yaml:"exclude_stopwords,omitempty" json:"exclude_stopwords,omitempty"`
	Tags             []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Resources are the shared inputs extractors may be built from.
type Resources struct {
	Tokenizer *ingest.Tokenizer
	Taxonomy  *Taxonomy
	Tagger    Tagger
}

// Factory builds a fresh extractor for a spec.
type Factory func(spec Spec, res Resources) (Extractor, error)

// Registry maps extractor type names to factories.
type Registry struct {
	factories map[string]Factory
	res       Resources
}

// NewRegistry creates a registry with the built-in extractors registered.
func NewRegistry(res Resources) *Registry {
	r := &Registry{factories: make(map[string]Factory), res: res}
	r.Register("sentence_count", func(Spec, Resources) (Extractor, error) {
		return SentenceCount{}, nil
	})
	r.Register("alphabet_frequency", func(Spec, Resources) (Extractor, error) {
		return AlphabetFrequency{}, nil
	})
	r.Register("frequent_words", func(s Spec, res Resources) (Extractor, error) {
		return NewFrequentWords(s.K, s.ExcludeStopwords, res.Tokenizer)
	})
	r.Register("char_ngrams", func(s Spec, _ Resources) (Extractor, error) {
		return NewCharacterNGrams(s.N, s.K)
	})
	r.Register("pos_frequency", func(s Spec, res Resources) (Extractor, error) {
		return NewPOSFrequency(res.Tagger, s.Tags)
	})
	r.Register("semantic_keywords", func(_ Spec, res Resources) (Extractor, error) {
		return NewSemanticKeywords(res.Taxonomy), nil
	})
	return r
}

// Register adds or replaces a factory.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Build creates a single extractor.
func (r *Registry) Build(spec Spec) (Extractor, error) {
	f, ok := r.factories[spec.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unknown extractor type %q", internalerr.ErrInvalidConfig, spec.Type)
	}
	ex, err := f(spec, r.res)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", spec.Type, err)
	}
	return ex, nil
}

// Pipeline builds a fresh pipeline for a list of specs. Every call returns
// new extractor instances so no fitted state leaks between runs.
func (r *Registry) Pipeline(specs []Spec) (*Pipeline, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: empty extractor set", internalerr.ErrInvalidConfig)
	}
	extractors := make([]Extractor, 0, len(specs))
	for _, s := range specs {
		ex, err := r.Build(s)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, ex)
	}
	return NewPipeline(extractors...), nil
}
