package corpus

import "strings"

// DefaultMinWords is the word threshold a sample must exceed before it is emitted.
const DefaultMinWords = 500

// CountWords returns the number of single-space separated fields in line.
// Consecutive or surrounding spaces yield empty fields that still count, so
// "a  b" has three words.
func CountWords(line string) int {
	return len(strings.Split(line, " "))
}

// Segment splits text into samples of non-empty lines. Lines accumulate until
// the running word count is strictly greater than minWords; the accumulated
// sample, including the line that crossed the threshold, is emitted and the
// counters reset. The remainder is always emitted last, even when empty.
func Segment(text string, minWords int) []string {
	return segment(text, minWords, true)
}

func segment(text string, minWords int, keepEmptyTail bool) []string {
	var (
		samples []string
		sample  strings.Builder
		wc      int
	)

	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		sample.WriteString(line)
		sample.WriteByte('\n')
		wc += CountWords(line)

		if wc > minWords {
			samples = append(samples, sample.String())
			sample.Reset()
			wc = 0
		}
	}

	if sample.Len() > 0 || keepEmptyTail {
		samples = append(samples, sample.String())
	}
	return samples
}

// Lines returns the non-empty lines of a sample in order.
func Lines(sample string) []string {
	var lines []string
	for _, line := range strings.Split(sample, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
