package evaluate

// Scores holds macro-averaged classification metrics.
type Scores struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// MacroScores averages per-label precision, recall and F1 uniformly over
// labels. A label with no predictions, no true members, or both, contributes
// zero for the undefined metric instead of being skipped.
func MacroScores(yTrue, yPred, labels []string) Scores {
	if len(labels) == 0 {
		return Scores{}
	}

	type counts struct{ tp, fp, fn float64 }
	per := make(map[string]*counts, len(labels))
	for _, l := range labels {
		per[l] = &counts{}
	}

	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		if t == p {
			if c, ok := per[t]; ok {
				c.tp++
			}
			continue
		}
		if c, ok := per[p]; ok {
			c.fp++
		}
		if c, ok := per[t]; ok {
			c.fn++
		}
	}

	var s Scores
	for _, l := range labels {
		c := per[l]
		s.Precision += safeDiv(c.tp, c.tp+c.fp)
		s.Recall += safeDiv(c.tp, c.tp+c.fn)
		s.F1 += safeDiv(2*c.tp, 2*c.tp+c.fp+c.fn)
	}
	n := float64(len(labels))
	s.Precision /= n
	s.Recall /= n
	s.F1 /= n
	return s
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
