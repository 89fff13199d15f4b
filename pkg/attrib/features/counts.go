package features

import "strings"

// SentenceCount counts full stops in a sample.
type SentenceCount struct{}

func (SentenceCount) Name() string { return "SentenceCount" }

func (SentenceCount) Prepare([]string) error { return nil }

func (SentenceCount) Extract(sample string) ([]float64, error) {
	return []float64{float64(strings.Count(sample, "."))}, nil
}

// AlphabetFrequency counts each letter a..z in the lowercased sample.
type AlphabetFrequency struct{}

func (AlphabetFrequency) Name() string { return "AlphabetFrequency" }

func (AlphabetFrequency) Prepare([]string) error { return nil }

func (AlphabetFrequency) Extract(sample string) ([]float64, error) {
	out := make([]float64, 26)
	for _, r := range strings.ToLower(sample) {
		if r >= 'a' && r <= 'z' {
			out[r-'a']++
		}
	}
	return out, nil
}
