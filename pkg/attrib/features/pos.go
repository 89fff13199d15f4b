package features

import (
	"fmt"
	"strings"

	"github.com/cognicore/attrib/pkg/attrib/ingest"
	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

// TaggedToken is a token labeled by a part-of-speech tagger.
type TaggedToken struct {
	Text string
	Tag  string
}

// Tagger assigns part-of-speech tags to the tokens of a text.
type Tagger interface {
	Tag(text string) ([]TaggedToken, error)
}

// DutchTags is the Lassy Small coarse tag set.
var DutchTags = []string{"ADJ", "BW", "LET", "LID", "N", "O", "SPEC", "TSW", "TW", "VG", "VNW", "VZ", "WW"}

// POSFrequency counts, per tag, the tokens whose tag contains it. The tagger
// is owned by the extractor and reused across Extract calls.
type POSFrequency struct {
	tagger Tagger
	tags   []string
}

// NewPOSFrequency creates the extractor. An empty tag list selects DutchTags;
// any other tag must be a member of DutchTags.
func NewPOSFrequency(tagger Tagger, tags []string) (*POSFrequency, error) {
	if tagger == nil {
		return nil, fmt.Errorf("%w: pos frequency needs a tagger", internalerr.ErrInvalidInput)
	}
	if len(tags) == 0 {
		tags = DutchTags
	}
	known := make(map[string]struct{}, len(DutchTags))
	for _, t := range DutchTags {
		known[t] = struct{}{}
	}
	for _, t := range tags {
		if _, ok := known[t]; !ok {
			return nil, fmt.Errorf("%w: unknown pos tag %q", internalerr.ErrInvalidInput, t)
		}
	}
	return &POSFrequency{tagger: tagger, tags: append([]string(nil), tags...)}, nil
}

func (p *POSFrequency) Name() string {
	if len(p.tags) == len(DutchTags) {
		return "POSFrequency"
	}
	return "POSFrequency(" + strings.Join(p.tags, ", ") + ")"
}

func (p *POSFrequency) Prepare([]string) error { return nil }

func (p *POSFrequency) Extract(sample string) ([]float64, error) {
	tokens, err := p.tagger.Tag(sample)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(p.tags))
	for i, tag := range p.tags {
		for _, tok := range tokens {
			if strings.Contains(tok.Tag, tag) {
				out[i]++
			}
		}
	}
	return out, nil
}

// LexiconTagger tags words by dictionary lookup. Unknown words get the
// fallback tag, or are skipped when the fallback is empty.
type LexiconTagger struct {
	tokenizer *ingest.Tokenizer
	lexicon   map[string]string
	fallback  string
}

// NewLexiconTagger builds a tagger from a word → tag map. Words are matched
// case-insensitively.
func NewLexiconTagger(lexicon map[string]string, fallback string) *LexiconTagger {
	lex := make(map[string]string, len(lexicon))
	for w, tag := range lexicon {
		lex[strings.ToLower(w)] = tag
	}
	return &LexiconTagger{tokenizer: ingest.NewTokenizer(nil), lexicon: lex, fallback: fallback}
}

func (l *LexiconTagger) Tag(text string) ([]TaggedToken, error) {
	words := l.tokenizer.Words(text)
	out := make([]TaggedToken, 0, len(words))
	for _, w := range words {
		tag, ok := l.lexicon[w]
		if !ok {
			if l.fallback == "" {
				continue
			}
			tag = l.fallback
		}
		out = append(out, TaggedToken{Text: w, Tag: tag})
	}
	return out, nil
}
