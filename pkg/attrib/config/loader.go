package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/attrib/pkg/attrib/evaluate"
	"github.com/cognicore/attrib/pkg/attrib/experiment"
	"github.com/cognicore/attrib/pkg/attrib/features"
	"github.com/cognicore/attrib/pkg/attrib/ingest"
)

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	var sl Stoplist
	if err := readYAML(path, &sl); err != nil {
		return nil, err
	}
	return &sl, nil
}

// Taxonomy maps semantic category names to keyword lists.
type Taxonomy struct {
	Categories map[string][]string `yaml:"categories"`
}

// LoadTaxonomy loads taxonomy from a YAML file
func LoadTaxonomy(path string) (*Taxonomy, error) {
	var tax Taxonomy
	if err := readYAML(path, &tax); err != nil {
		return nil, err
	}
	return &tax, nil
}

// Lexicon is a word → part-of-speech tag table.
type Lexicon struct {
	Fallback string            `yaml:"fallback"`
	Tags     map[string]string `yaml:"tags"`
}

// LoadLexicon loads a POS lexicon from a YAML file
func LoadLexicon(path string) (*Lexicon, error) {
	var lex Lexicon
	if err := readYAML(path, &lex); err != nil {
		return nil, err
	}
	return &lex, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// Loader loads all resource files and constructs components
type Loader struct {
	StoplistPath string
	TaxonomyPath string
	LexiconPath  string
}

// NewLoader returns a Loader for the resource paths of an experiment.
func NewLoader(exp *Experiment) Loader {
	return Loader{
		StoplistPath: exp.Stoplist,
		TaxonomyPath: exp.Taxonomy,
		LexiconPath:  exp.POSLexicon,
	}
}

// Load reads all resource files and returns the shared extractor resources.
// Missing paths yield empty components; Tagger stays nil without a lexicon.
func (l Loader) Load() (features.Resources, error) {
	var res features.Resources

	if l.StoplistPath != "" {
		stoplist, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return res, fmt.Errorf("load stoplist: %w", err)
		}
		res.Tokenizer = ingest.NewTokenizer(stoplist.Terms)
	} else {
		res.Tokenizer = ingest.NewTokenizer([]string{})
	}

	res.Taxonomy = features.NewTaxonomy()
	if l.TaxonomyPath != "" {
		tax, err := LoadTaxonomy(l.TaxonomyPath)
		if err != nil {
			return res, fmt.Errorf("load taxonomy: %w", err)
		}
		for name, keywords := range tax.Categories {
			res.Taxonomy.AddCategory(name, keywords)
		}
	}

	if l.LexiconPath != "" {
		lex, err := LoadLexicon(l.LexiconPath)
		if err != nil {
			return res, fmt.Errorf("load pos lexicon: %w", err)
		}
		res.Tagger = features.NewLexiconTagger(lex.Tags, lex.Fallback)
	}

	return res, nil
}

// Sets turns the configured extractor sets into runner sets. Each Build call
// produces a fresh pipeline from the registry.
func (e *Experiment) Sets(reg *features.Registry) []experiment.Set {
	sets := make([]experiment.Set, 0, len(e.Experiments))
	for _, cfg := range e.Experiments {
		specs := cfg.Extractors
		sets = append(sets, experiment.Set{
			Name: cfg.Name,
			Build: func() (evaluate.FeaturePipeline, error) {
				return reg.Pipeline(specs)
			},
		})
	}
	return sets
}
