package evaluate

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

// Fold is one train/test partition of a cross-validation run.
type Fold struct {
	Repeat int
	Index  int
	Train  []int
	Test   []int
}

// RepeatedStratifiedKFold repeats a stratified k-fold split with a fresh
// shuffle per repetition. The sequence of folds is fully determined by Seed.
type RepeatedStratifiedKFold struct {
	Splits  int
	Repeats int
	Seed    int64
}

// Split partitions sample indices so each fold's test set holds roughly
// 1/Splits of every class. Classes with fewer members than Splits are spread
// over fewer folds; if every class is that small the split fails.
func (k RepeatedStratifiedKFold) Split(labels []string) ([]Fold, error) {
	if k.Splits < 2 {
		return nil, fmt.Errorf("%w: need at least 2 splits, got %d", internalerr.ErrInvalidInput, k.Splits)
	}
	if k.Repeats < 1 {
		return nil, fmt.Errorf("%w: need at least 1 repeat, got %d", internalerr.ErrInvalidInput, k.Repeats)
	}

	members := make(map[string][]int)
	for i, label := range labels {
		members[label] = append(members[label], i)
	}
	if len(members) < 2 {
		return nil, fmt.Errorf("%w: stratification needs at least 2 classes, got %d",
			internalerr.ErrInsufficientClasses, len(members))
	}

	classes := make([]string, 0, len(members))
	largest := 0
	for label, idx := range members {
		classes = append(classes, label)
		if len(idx) > largest {
			largest = len(idx)
		}
	}
	sort.Strings(classes)
	if largest < k.Splits {
		return nil, fmt.Errorf("%w: %d splits exceed the size of every class (largest has %d)",
			internalerr.ErrInvalidInput, k.Splits, largest)
	}

	rng := rand.New(rand.NewSource(k.Seed))
	folds := make([]Fold, 0, k.Splits*k.Repeats)
	assign := make([]int, len(labels))

	for r := 0; r < k.Repeats; r++ {
		offset := 0
		for _, label := range classes {
			idx := append([]int(nil), members[label]...)
			rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
			for j, i := range idx {
				assign[i] = (offset + j) % k.Splits
			}
			offset = (offset + len(idx)) % k.Splits
		}

		for f := 0; f < k.Splits; f++ {
			fold := Fold{Repeat: r, Index: f}
			for i, a := range assign {
				if a == f {
					fold.Test = append(fold.Test, i)
				} else {
					fold.Train = append(fold.Train, i)
				}
			}
			folds = append(folds, fold)
		}
	}
	return folds, nil
}
