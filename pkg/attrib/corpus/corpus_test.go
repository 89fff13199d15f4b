package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

func writeText(t *testing.T, folder, work, translator, text string) {
	t.Helper()
	dir := filepath.Join(folder, work)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, translator+".txt"), []byte(text), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"one two three", 3},
		{"single", 1},
		{"", 1},
		{"a  b", 3},
		{" leading", 2},
		{"trailing ", 2},
		{"tab\tseparated", 1},
	}
	for _, tt := range tests {
		if got := CountWords(tt.line); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestSegmentThresholdCrossing(t *testing.T) {
	text := "one two three four five six\nseven eight nine ten eleven\n"
	got := Segment(text, 10)
	want := []string{"one two three four five six\nseven eight nine ten eleven\n", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Segment = %q, want %q", got, want)
	}
}

func TestSegmentStrictGreaterThan(t *testing.T) {
	// exactly 10 words never crosses a threshold of 10
	got := Segment("a b c d e\nf g h i j\n", 10)
	if len(got) != 1 {
		t.Fatalf("expected one sample, got %d: %q", len(got), got)
	}
	if got[0] != "a b c d e\nf g h i j\n" {
		t.Errorf("unexpected sample %q", got[0])
	}
}

func TestSegmentDropsEmptyLines(t *testing.T) {
	got := Segment("\n\nalpha beta\n\n\ngamma\n", 100)
	want := []string{"alpha beta\ngamma\n"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Segment = %q, want %q", got, want)
	}
}

func TestSegmentEmptyText(t *testing.T) {
	got := Segment("", 5)
	if !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("Segment(\"\") = %q, want a single empty sample", got)
	}
}

func TestSegmentRoundTrip(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString(strings.Repeat("word ", i%17))
		b.WriteString("end\n")
		if i%5 == 0 {
			b.WriteString("\n")
		}
	}
	text := b.String()

	for _, threshold := range []int{0, 1, 7, 50, 500, 10000} {
		samples := Segment(text, threshold)

		var joined []string
		for i, s := range samples {
			lines := Lines(s)
			joined = append(joined, lines...)

			if i < len(samples)-1 {
				wc := 0
				for _, l := range lines {
					wc += CountWords(l)
				}
				if wc <= threshold {
					t.Errorf("threshold %d: sample %d has %d words, want > threshold", threshold, i, wc)
				}
			}
		}

		if !reflect.DeepEqual(joined, Lines(text)) {
			t.Errorf("threshold %d: joined lines do not reconstruct the text", threshold)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	folder := t.TempDir()
	writeText(t, folder, "A", "x", "hello\n")

	_, err := Load(folder, []string{"A", "B"}, []string{"x"})
	if err == nil {
		t.Fatal("expected error for missing B/x.txt")
	}
	if !errors.Is(err, internalerr.ErrDataIntegrity) {
		t.Errorf("expected ErrDataIntegrity, got %v", err)
	}
	if !strings.Contains(err.Error(), filepath.Join("B", "x.txt")) {
		t.Errorf("error should name the missing file: %v", err)
	}
}

func TestLoadRejectsEmptyIdentifiers(t *testing.T) {
	_, err := Load(t.TempDir(), nil, []string{"x"})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSamplesExample(t *testing.T) {
	folder := t.TempDir()
	writeText(t, folder, "A", "x", "one two three four five six\nseven eight nine ten eleven\n")
	writeText(t, folder, "B", "x", "short text\n")

	c, err := Load(folder, []string{"A", "B"}, []string{"x"}, WithMinWords(10))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	ds, err := c.Samples(ByWork)
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}

	if ds.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", ds.Len())
	}
	if ds.Samples[1].Text != "" || ds.Samples[1].Work != "A" {
		t.Errorf("second sample should be the empty tail of A/x, got %+v", ds.Samples[1])
	}
	if got := ds.Labels(ByWork); !reflect.DeepEqual(got, []string{"A", "A", "B"}) {
		t.Errorf("work labels = %v", got)
	}
	if got := ds.Labels(ByTranslator); !reflect.DeepEqual(got, []string{"x", "x", "x"}) {
		t.Errorf("translator labels = %v", got)
	}
	if len(ds.WorkLabels) != ds.Len() || len(ds.TranslatorLabels) != ds.Len() {
		t.Error("label sequences must align with samples")
	}
}

func TestSamplesOrderAndDeterminism(t *testing.T) {
	folder := t.TempDir()
	for _, w := range []string{"w1", "w2"} {
		for _, tr := range []string{"t1", "t2", "t3"} {
			writeText(t, folder, w, tr, strings.Repeat(w+" "+tr+" line\n", 12))
		}
	}

	c, err := Load(folder, []string{"w1", "w2"}, []string{"t1", "t2", "t3"}, WithMinWords(5))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	first, err := c.Samples(ByTranslator)
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}
	second, _ := c.Samples(ByTranslator)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("Samples should be deterministic")
	}

	var order []string
	for _, s := range first.Samples {
		p := s.Work + "/" + s.Translator
		if len(order) == 0 || order[len(order)-1] != p {
			order = append(order, p)
		}
	}
	want := []string{"w1/t1", "w1/t2", "w1/t3", "w2/t1", "w2/t2", "w2/t3"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	if got := first.Classes(ByTranslator); !reflect.DeepEqual(got, []string{"t1", "t2", "t3"}) {
		t.Errorf("classes = %v", got)
	}
}

func TestSamplesDropTrailingEmpty(t *testing.T) {
	folder := t.TempDir()
	writeText(t, folder, "A", "x", "one two three four five six\nseven eight nine ten eleven\n")

	c, err := Load(folder, []string{"A"}, []string{"x"}, WithMinWords(10), WithDropTrailingEmpty(true))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ds, _ := c.Samples(ByWork)
	if ds.Len() != 1 {
		t.Fatalf("expected the empty tail to be dropped, got %d samples", ds.Len())
	}
}

func TestSamplesUnknownDimension(t *testing.T) {
	folder := t.TempDir()
	writeText(t, folder, "A", "x", "text\n")
	c, err := Load(folder, []string{"A"}, []string{"x"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := c.Samples(Dimension("genre")); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseDimension(t *testing.T) {
	for in, want := range map[string]Dimension{
		"work": ByWork, "Text": ByWork, "author": ByWork, "translator": ByTranslator,
	} {
		got, err := ParseDimension(in)
		if err != nil || got != want {
			t.Errorf("ParseDimension(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseDimension("genre"); err == nil {
		t.Error("expected error for unknown dimension")
	}
}

func TestStats(t *testing.T) {
	folder := t.TempDir()
	writeText(t, folder, "A", "x", "one two three four five six\nseven eight nine ten eleven\nlast words\n")

	c, err := Load(folder, []string{"A"}, []string{"x"}, WithMinWords(10))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	stats := c.Stats()
	if len(stats) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(stats))
	}
	st := stats[0]
	if st.Samples != 2 || st.Words != 13 || st.TailWords != 2 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestNewDataset(t *testing.T) {
	ds := NewDataset(ByTranslator, []Sample{
		{Text: "a", Work: "A", Translator: "x"},
		{Text: "b", Work: "B", Translator: "y"},
	}, []string{"A", "B"}, []string{"x", "y"})

	if !reflect.DeepEqual(ds.Labels(ByTranslator), []string{"x", "y"}) {
		t.Errorf("translator labels = %v", ds.Labels(ByTranslator))
	}
	if !reflect.DeepEqual(ds.Texts(), []string{"a", "b"}) {
		t.Errorf("texts = %v", ds.Texts())
	}
	if ds.Samples[1].Label(ByWork) != "B" {
		t.Errorf("Label(ByWork) = %q", ds.Samples[1].Label(ByWork))
	}
}
