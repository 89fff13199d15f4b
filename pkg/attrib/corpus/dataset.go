package corpus

import (
	"fmt"
	"strings"

	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

// Dimension selects which label a sample is classified by.
type Dimension string

const (
	ByWork       Dimension = "work"
	ByTranslator Dimension = "translator"
)

// Dimensions lists every label dimension in reporting order.
var Dimensions = []Dimension{ByWork, ByTranslator}

// ParseDimension accepts "work" (or its aliases "text" and "author") and "translator".
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "work", "text", "author":
		return ByWork, nil
	case "translator":
		return ByTranslator, nil
	}
	return "", fmt.Errorf("%w: unknown label dimension %q", internalerr.ErrInvalidInput, s)
}

// Valid reports whether d is a known dimension.
func (d Dimension) Valid() bool {
	return d == ByWork || d == ByTranslator
}

// Sample is one excerpt of a translated text together with both of its labels.
type Sample struct {
	Text       string
	Work       string
	Translator string
}

// Label returns the sample's label for dim.
func (s Sample) Label(dim Dimension) string {
	if dim == ByTranslator {
		return s.Translator
	}
	return s.Work
}

// Dataset is the ordered sample sequence of a corpus with index-aligned labels.
type Dataset struct {
	Dim              Dimension
	Samples          []Sample
	WorkLabels       []string
	TranslatorLabels []string

	works       []string
	translators []string
}

// Len returns the number of samples.
func (d Dataset) Len() int { return len(d.Samples) }

// Texts returns the sample texts in dataset order.
func (d Dataset) Texts() []string {
	out := make([]string, len(d.Samples))
	for i, s := range d.Samples {
		out[i] = s.Text
	}
	return out
}

// Labels returns the label sequence for dim.
func (d Dataset) Labels(dim Dimension) []string {
	if dim == ByTranslator {
		return d.TranslatorLabels
	}
	return d.WorkLabels
}

// Classes returns the configured label values for dim, in corpus order.
func (d Dataset) Classes(dim Dimension) []string {
	if dim == ByTranslator {
		return append([]string(nil), d.translators...)
	}
	return append([]string(nil), d.works...)
}

// NewDataset builds a dataset from samples, deriving the label sequences from
// each sample. works and translators give the class order; labels absent
// from them are still scored.
func NewDataset(dim Dimension, samples []Sample, works, translators []string) Dataset {
	ds := Dataset{
		Dim:              dim,
		Samples:          append([]Sample(nil), samples...),
		WorkLabels:       make([]string, len(samples)),
		TranslatorLabels: make([]string, len(samples)),
		works:            append([]string(nil), works...),
		translators:      append([]string(nil), translators...),
	}
	for i, s := range samples {
		ds.WorkLabels[i] = s.Work
		ds.TranslatorLabels[i] = s.Translator
	}
	return ds
}
