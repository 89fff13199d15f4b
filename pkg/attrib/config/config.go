package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/attrib/pkg/attrib/corpus"
	"github.com/cognicore/attrib/pkg/attrib/evaluate"
	"github.com/cognicore/attrib/pkg/attrib/features"
	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

// Experiment is the top-level experiment file.
type Experiment struct {
	Corpus      Corpus         `yaml:"corpus"`
	Evaluation  Evaluation     `yaml:"evaluation"`
	Stoplist    string         `yaml:"stoplist"`
	Taxonomy    string         `yaml:"taxonomy"`
	POSLexicon  string         `yaml:"pos_lexicon"`
	DB          string         `yaml:"db"`
	Experiments []ExtractorSet `yaml:"experiments"`
}

// Corpus locates the source texts.
type Corpus struct {
	Folder            string   `yaml:"folder"`
	Works             []string `yaml:"works"`
	Translators       []string `yaml:"translators"`
	MinWords          *int     `yaml:"min_words"` // nil means corpus.DefaultMinWords
	DropTrailingEmpty bool     `yaml:"drop_trailing_empty"`
}

// Evaluation holds the cross-validation parameters.
type Evaluation struct {
	Splits  int   `yaml:"splits"`
	Repeats int   `yaml:"repeats"`
	Seed    int64 `yaml:"seed"`
	Workers int   `yaml:"workers"`
}

// ExtractorSet is one named feature configuration.
type ExtractorSet struct {
	Name       string          `yaml:"name"`
	Extractors []features.Spec `yaml:"extractors"`
}

// Load reads an experiment file, applies environment overrides and defaults,
// and validates the result.
func Load(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes an experiment from YAML bytes.
func Parse(data []byte) (*Experiment, error) {
	var exp Experiment
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}

	// Env vars override YAML values
	envOverride(&exp.Corpus.Folder, "ATTRIB_CORPUS_FOLDER")
	envOverride(&exp.DB, "ATTRIB_DB")
	if err := envOverrideIntPtr(&exp.Corpus.MinWords, "ATTRIB_MIN_WORDS"); err != nil {
		return nil, err
	}
	if err := envOverrideInt64(&exp.Evaluation.Seed, "ATTRIB_SEED"); err != nil {
		return nil, err
	}

	exp.applyDefaults()
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return &exp, nil
}

func (e *Experiment) applyDefaults() {
	if e.Corpus.MinWords == nil {
		n := corpus.DefaultMinWords
		e.Corpus.MinWords = &n
	}
	if e.Evaluation.Splits == 0 {
		e.Evaluation.Splits = evaluate.DefaultSplits
	}
	if e.Evaluation.Repeats == 0 {
		e.Evaluation.Repeats = evaluate.DefaultRepeats
	}
	if e.Evaluation.Seed == 0 {
		e.Evaluation.Seed = evaluate.DefaultSeed
	}
}

// Validate checks required fields and value ranges.
func (e *Experiment) Validate() error {
	switch {
	case e.Corpus.Folder == "":
		return invalid("corpus.folder is required")
	case len(e.Corpus.Works) == 0:
		return invalid("corpus.works must not be empty")
	case len(e.Corpus.Translators) == 0:
		return invalid("corpus.translators must not be empty")
	case e.Corpus.MinWords != nil && *e.Corpus.MinWords < 0:
		return invalid("corpus.min_words must be >= 0, got %d", *e.Corpus.MinWords)
	case e.Evaluation.Splits < 2:
		return invalid("evaluation.splits must be >= 2, got %d", e.Evaluation.Splits)
	case e.Evaluation.Repeats < 1:
		return invalid("evaluation.repeats must be >= 1, got %d", e.Evaluation.Repeats)
	case e.Evaluation.Workers < 0:
		return invalid("evaluation.workers must be >= 0, got %d", e.Evaluation.Workers)
	case len(e.Experiments) == 0:
		return invalid("at least one experiment is required")
	}

	seen := make(map[string]bool, len(e.Experiments))
	for i, set := range e.Experiments {
		if set.Name == "" {
			return invalid("experiments[%d].name is required", i)
		}
		if seen[set.Name] {
			return invalid("duplicate experiment name %q", set.Name)
		}
		seen[set.Name] = true
		if len(set.Extractors) == 0 {
			return invalid("experiment %q has no extractors", set.Name)
		}
		for _, s := range set.Extractors {
			if s.Type == "" {
				return invalid("experiment %q: extractor type is required", set.Name)
			}
		}
	}
	return nil
}

// CorpusOptions returns the corpus load options for this experiment.
func (e *Experiment) CorpusOptions() []corpus.Option {
	return []corpus.Option{
		corpus.WithMinWords(e.MinWords()),
		corpus.WithDropTrailingEmpty(e.Corpus.DropTrailingEmpty),
	}
}

// MinWords returns the segmentation threshold, falling back to the default
// when none is configured.
func (e *Experiment) MinWords() int {
	if e.Corpus.MinWords == nil {
		return corpus.DefaultMinWords
	}
	return *e.Corpus.MinWords
}

// EvaluatorOptions returns the cross-validation options for this experiment.
func (e *Experiment) EvaluatorOptions() []evaluate.Option {
	opts := []evaluate.Option{
		evaluate.WithSplits(e.Evaluation.Splits),
		evaluate.WithRepeats(e.Evaluation.Repeats),
		evaluate.WithSeed(e.Evaluation.Seed),
	}
	if e.Evaluation.Workers > 0 {
		opts = append(opts, evaluate.WithWorkers(e.Evaluation.Workers))
	}
	return opts
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", internalerr.ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideIntPtr(field **int, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return invalid("%s: %v", envKey, err)
		}
		*field = &parsed
	}
	return nil
}

func envOverrideInt64(field *int64, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return invalid("%s: %v", envKey, err)
		}
		*field = parsed
	}
	return nil
}
