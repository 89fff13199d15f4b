package vocab

import "sort"

// Counter maintains term and document frequencies over a sample population.
type Counter struct {
	N  int64            // total number of documents
	TF map[string]int64 // occurrences per term across all documents
	DF map[string]int64 // documents containing each term
}

// Entry is a term with its frequencies.
type Entry struct {
	Term string
	TF   int64
	DF   int64
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{
		TF: make(map[string]int64),
		DF: make(map[string]int64),
	}
}

// AddDocument updates counts for one document's terms, duplicates included.
func (c *Counter) AddDocument(terms []string) {
	c.N++

	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		c.TF[t]++
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		c.DF[t]++
	}
}

// TotalDocs returns the total number of documents processed
func (c *Counter) TotalDocs() int64 {
	return c.N
}

// UniqueTerms returns the number of distinct terms.
func (c *Counter) UniqueTerms() int {
	return len(c.TF)
}

// Top returns the k most frequent terms, ordered by total count, then by
// document frequency, then lexically. k <= 0 returns every term.
func (c *Counter) Top(k int) []Entry {
	entries := make([]Entry, 0, len(c.TF))
	for term, tf := range c.TF {
		entries = append(entries, Entry{Term: term, TF: tf, DF: c.DF[term]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TF != entries[j].TF {
			return entries[i].TF > entries[j].TF
		}
		if entries[i].DF != entries[j].DF {
			return entries[i].DF > entries[j].DF
		}
		return entries[i].Term < entries[j].Term
	})
	if k > 0 && len(entries) > k {
		entries = entries[:k]
	}
	return entries
}

// Index maps each of the top k terms to its position in the ranking.
func (c *Counter) Index(k int) map[string]int {
	top := c.Top(k)
	idx := make(map[string]int, len(top))
	for i, e := range top {
		idx[e.Term] = i
	}
	return idx
}
