package ingest

import (
	"strings"
	"unicode"
)

// Tokenizer splits text into lowercase word tokens and filters stopwords.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a new tokenizer with the given stopword list
func NewTokenizer(stopwords []string) *Tokenizer {
	t := &Tokenizer{stopwords: make(map[string]struct{}, len(stopwords))}
	for _, w := range stopwords {
		t.AddStopword(w)
	}
	return t
}

// Tokenize splits text into normalized tokens, removing stopwords.
// Letters, digits, hyphens and inner apostrophes ("'s", "zo'n") belong to a token.
func (t *Tokenizer) Tokenize(text string) []string {
	return t.tokenize(text, true)
}

// Words splits text like Tokenize but keeps stopwords.
func (t *Tokenizer) Words(text string) []string {
	return t.tokenize(text, false)
}

func (t *Tokenizer) tokenize(text string, filter bool) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := t.processToken(current.String(), filter); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'' || r == '’' {
			if r == '’' {
				r = '\''
			}
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// processToken applies cleaning and stopword filtering.
func (t *Tokenizer) processToken(token string, filter bool) string {
	word := t.cleanToken(token)
	if word == "" {
		return ""
	}

	// Pure-numeric tokens (page and verse numbers) carry no style.
	if isNumericOnly(word) {
		return ""
	}

	if filter && t.IsStopword(word) {
		return ""
	}

	return word
}

// cleanToken strips leading/trailing hyphens and quotes and normalizes consecutive hyphens
func (t *Tokenizer) cleanToken(token string) string {
	token = strings.Trim(token, "-")

	// a leading apostrophe is kept for Dutch clitics such as 's and 't
	if strings.HasPrefix(token, "'") && len(strings.Trim(token, "'")) > 2 {
		token = strings.TrimLeft(token, "'")
	}
	token = strings.TrimRight(token, "'")

	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}

	return token
}

// isNumericOnly returns true if the token contains only digits and hyphens.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

// IsStopword reports whether word is on the stopword list.
func (t *Tokenizer) IsStopword(word string) bool {
	_, ok := t.stopwords[strings.ToLower(word)]
	return ok
}

// AddStopword adds a word to the stopword list
func (t *Tokenizer) AddStopword(word string) {
	t.stopwords[strings.ToLower(word)] = struct{}{}
}

// Stopwords returns the number of stopwords configured.
func (t *Tokenizer) Stopwords() int {
	return len(t.stopwords)
}
