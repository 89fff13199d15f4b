package evaluate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

func labelsOf(counts map[string]int) []string {
	var out []string
	for _, l := range []string{"a", "b", "c"} {
		for i := 0; i < counts[l]; i++ {
			out = append(out, l)
		}
	}
	return out
}

func TestStratifiedKFoldPartitions(t *testing.T) {
	labels := labelsOf(map[string]int{"a": 20, "b": 10, "c": 7})
	cv := RepeatedStratifiedKFold{Splits: 5, Repeats: 3, Seed: 1337}

	folds, err := cv.Split(labels)
	require.NoError(t, err)
	require.Len(t, folds, 15)

	for r := 0; r < 3; r++ {
		seen := make(map[int]int)
		for _, f := range folds[r*5 : r*5+5] {
			assert.Equal(t, r, f.Repeat)
			assert.Equal(t, len(labels), len(f.Train)+len(f.Test))
			for _, i := range f.Test {
				seen[i]++
			}

			perClass := map[string]int{}
			for _, i := range f.Test {
				perClass[labels[i]]++
			}
			assert.Equal(t, 4, perClass["a"], "fold %d/%d", r, f.Index)
			assert.Equal(t, 2, perClass["b"], "fold %d/%d", r, f.Index)
			assert.GreaterOrEqual(t, perClass["c"], 1)
			assert.LessOrEqual(t, perClass["c"], 2)
		}
		assert.Len(t, seen, len(labels), "every sample is tested once per repeat")
		for i, n := range seen {
			assert.Equal(t, 1, n, "sample %d", i)
		}
	}
}

func TestStratifiedKFoldDeterministic(t *testing.T) {
	labels := labelsOf(map[string]int{"a": 12, "b": 9})
	cv := RepeatedStratifiedKFold{Splits: 3, Repeats: 4, Seed: 7}

	first, err := cv.Split(labels)
	require.NoError(t, err)
	second, err := cv.Split(labels)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := RepeatedStratifiedKFold{Splits: 3, Repeats: 4, Seed: 8}.Split(labels)
	require.NoError(t, err)
	assert.NotEqual(t, fmt.Sprint(first), fmt.Sprint(other))
}

func TestStratifiedKFoldSmallClass(t *testing.T) {
	labels := labelsOf(map[string]int{"a": 10, "b": 2})
	folds, err := RepeatedStratifiedKFold{Splits: 5, Repeats: 1, Seed: 1}.Split(labels)
	require.NoError(t, err)
	for _, f := range folds {
		assert.NotEmpty(t, f.Test)
	}
}

func TestStratifiedKFoldErrors(t *testing.T) {
	_, err := RepeatedStratifiedKFold{Splits: 5, Repeats: 1}.Split([]string{"a", "a", "a", "a", "a"})
	assert.ErrorIs(t, err, internalerr.ErrInsufficientClasses)

	_, err = RepeatedStratifiedKFold{Splits: 5, Repeats: 1}.Split(labelsOf(map[string]int{"a": 3, "b": 4}))
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)

	_, err = RepeatedStratifiedKFold{Splits: 1, Repeats: 1}.Split([]string{"a", "b"})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)

	_, err = RepeatedStratifiedKFold{Splits: 2, Repeats: 0}.Split([]string{"a", "b"})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}
