package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

type key struct {
	work       string
	translator string
}

// Corpus holds one text per (work, translator) pair, loaded from
// <folder>/<work>/<translator>.txt.
type Corpus struct {
	folder        string
	works         []string
	translators   []string
	texts         map[key]string
	minWords      int
	dropEmptyTail bool
}

// Option configures a Corpus.
type Option func(*Corpus)

// WithMinWords sets the segmentation threshold. Values below zero are ignored.
func WithMinWords(n int) Option {
	return func(c *Corpus) {
		if n >= 0 {
			c.minWords = n
		}
	}
}

// WithDropTrailingEmpty suppresses the empty remainder sample that
// segmentation otherwise emits after a threshold crossing on the last line.
func WithDropTrailingEmpty(drop bool) Option {
	return func(c *Corpus) {
		c.dropEmptyTail = drop
	}
}

// TextPath returns the location of the text for a (work, translator) pair.
func TextPath(folder, work, translator string) string {
	return filepath.Join(folder, work, translator+".txt")
}

// Load verifies that every (work, translator) text exists and then reads them.
// Missing files fail the load with ErrDataIntegrity before any file is read.
func Load(folder string, works, translators []string, opts ...Option) (*Corpus, error) {
	if len(works) == 0 || len(translators) == 0 {
		return nil, fmt.Errorf("%w: corpus needs at least one work and one translator", internalerr.ErrInvalidInput)
	}

	c := &Corpus{
		folder:      folder,
		works:       append([]string(nil), works...),
		translators: append([]string(nil), translators...),
		texts:       make(map[key]string, len(works)*len(translators)),
		minWords:    DefaultMinWords,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.verify(); err != nil {
		return nil, err
	}

	for _, w := range c.works {
		for _, t := range c.translators {
			data, err := os.ReadFile(TextPath(folder, w, t))
			if err != nil {
				return nil, fmt.Errorf("read %s/%s: %w", w, t, err)
			}
			c.texts[key{w, t}] = string(data)
		}
	}

	return c, nil
}

func (c *Corpus) verify() error {
	var missing []string
	for _, w := range c.works {
		for _, t := range c.translators {
			path := TextPath(c.folder, w, t)
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				missing = append(missing, path)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: data invalid for %v, %v: missing %s",
			internalerr.ErrDataIntegrity, c.works, c.translators, strings.Join(missing, ", "))
	}
	return nil
}

// Folder returns the corpus root directory.
func (c *Corpus) Folder() string { return c.folder }

// Works returns the configured work identifiers in order.
func (c *Corpus) Works() []string { return append([]string(nil), c.works...) }

// Translators returns the configured translator identifiers in order.
func (c *Corpus) Translators() []string { return append([]string(nil), c.translators...) }

// MinWords returns the segmentation threshold.
func (c *Corpus) MinWords() int { return c.minWords }

// Text returns the raw text for a (work, translator) pair.
func (c *Corpus) Text(work, translator string) (string, bool) {
	text, ok := c.texts[key{work, translator}]
	return text, ok
}

// Samples segments every text and returns the labeled dataset. Order is works,
// then translators, then samples in file order. The result depends only on the
// loaded texts and the threshold.
func (c *Corpus) Samples(dim Dimension) (Dataset, error) {
	if !dim.Valid() {
		return Dataset{}, fmt.Errorf("%w: unknown label dimension %q", internalerr.ErrInvalidInput, dim)
	}

	ds := Dataset{
		Dim:         dim,
		works:       c.Works(),
		translators: c.Translators(),
	}
	for _, w := range c.works {
		for _, t := range c.translators {
			for _, text := range segment(c.texts[key{w, t}], c.minWords, !c.dropEmptyTail) {
				ds.Samples = append(ds.Samples, Sample{Text: text, Work: w, Translator: t})
				ds.WorkLabels = append(ds.WorkLabels, w)
				ds.TranslatorLabels = append(ds.TranslatorLabels, t)
			}
		}
	}
	return ds, nil
}

// TextStats summarises the segmentation of one text.
type TextStats struct {
	Work       string
	Translator string
	Samples    int
	Words      int
	TailWords  int
}

// Stats reports per-text sample and word counts under the current threshold.
func (c *Corpus) Stats() []TextStats {
	var out []TextStats
	for _, w := range c.works {
		for _, t := range c.translators {
			samples := segment(c.texts[key{w, t}], c.minWords, !c.dropEmptyTail)
			st := TextStats{Work: w, Translator: t, Samples: len(samples)}
			for i, s := range samples {
				n := 0
				for _, line := range Lines(s) {
					n += CountWords(line)
				}
				st.Words += n
				if i == len(samples)-1 {
					st.TailWords = n
				}
			}
			out = append(out, st)
		}
	}
	return out
}
