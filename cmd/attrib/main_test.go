package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixture creates a two-work, two-translator corpus where every line is
// its own sample, plus an experiment file pointing at it.
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	folder := filepath.Join(dir, "corpus")

	texts := map[string]string{
		"gk":   "Hij zag de zee. En de golven.",
		"mdhs": "Zij sprak tot de goden en zweeg",
	}
	for _, work := range []string{"aeneis", "oresteia"} {
		require.NoError(t, os.MkdirAll(filepath.Join(folder, work), 0o755))
		for tr, line := range texts {
			var b strings.Builder
			for i := 0; i < 6; i++ {
				fmt.Fprintf(&b, "%s %s %d\n", line, work, i)
			}
			require.NoError(t, os.WriteFile(filepath.Join(folder, work, tr+".txt"), []byte(b.String()), 0o644))
		}
	}

	cfg := fmt.Sprintf(`corpus:
  folder: %s
  works: [aeneis, oresteia]
  translators: [gk, mdhs]
  min_words: 0
  drop_trailing_empty: true
evaluation:
  splits: 2
  repeats: 1
  workers: 1
experiments:
  - name: counts
    extractors:
      - type: sentence_count
      - type: alphabet_frequency
`, folder)
	path := filepath.Join(dir, "exp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

// execute runs the root command. Flag values persist between calls, so
// tests pass every flag they depend on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSamplesCommand(t *testing.T) {
	cfg := writeFixture(t)

	out, err := execute(t, "samples", "--config", cfg, "--db", "")
	require.NoError(t, err)
	assert.Contains(t, out, "min words: 0")
	assert.Contains(t, out, "corpus: ")
	assert.Contains(t, out, "aeneis")
	assert.Contains(t, out, "total")
	assert.Contains(t, out, "over 24 samples, 0 stopwords configured")
}

func TestRunCommandJSON(t *testing.T) {
	cfg := writeFixture(t)
	db := filepath.Join(t.TempDir(), "results.db")

	out, err := execute(t, "run", "--config", cfg, "--db", db, "--format", "json", "--out", "", "--dims", "work,translator", "--only", "")
	require.NoError(t, err)

	var decoded struct {
		RunID   string `json:"run_id"`
		Results []struct {
			Set       string  `json:"set"`
			Dimension string  `json:"dimension"`
			F1        float64 `json:"f1"`
			Samples   int     `json:"samples"`
			Error     string  `json:"error"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "work", decoded.Results[0].Dimension)
	assert.Equal(t, "translator", decoded.Results[1].Dimension)
	for _, r := range decoded.Results {
		assert.Empty(t, r.Error)
		assert.Equal(t, 24, r.Samples)
	}

	hist, err := execute(t, "history", "--config", cfg, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, hist, decoded.RunID)

	detail, err := execute(t, "history", decoded.RunID, "--config", cfg, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, detail, "translator")
}

func TestRunCommandWritesHTMLFile(t *testing.T) {
	cfg := writeFixture(t)
	path := filepath.Join(t.TempDir(), "report.html")

	_, err := execute(t, "run", "--config", cfg, "--db", "", "--format", "html", "--out", path, "--dims", "work", "--only", "counts")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<table>")
}

func TestRunCommandErrors(t *testing.T) {
	cfg := writeFixture(t)

	_, err := execute(t, "run", "--config", cfg, "--db", "", "--format", "text", "--out", "", "--dims", "genre", "--only", "")
	assert.Error(t, err)

	_, err = execute(t, "run", "--config", cfg, "--db", "", "--format", "text", "--out", "", "--dims", "work", "--only", "missing")
	assert.Error(t, err)

	_, err = execute(t, "run", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "--db", "", "--format", "text", "--out", "", "--dims", "work", "--only", "")
	assert.Error(t, err)
}
