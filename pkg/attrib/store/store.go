package store

import (
	"context"
	"time"
)

// Store persists experiment runs and their outcomes.
type Store interface {
	Close() error

	// Runs
	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	RecentRuns(ctx context.Context, k int) ([]Run, error)

	// Outcomes
	SaveOutcome(ctx context.Context, o Outcome) error
	Outcomes(ctx context.Context, runID string) ([]Outcome, error)
}

// Run describes one batch of experiments over a corpus.
type Run struct {
	ID          string
	StartedAt   time.Time
	Folder      string
	Works       []string
	Translators []string
	MinWords    int
	Splits      int
	Repeats     int
	Seed        int64
}

// Outcome is the result of one (extractor set, dimension) evaluation. A failed
// evaluation has Err set and zero metrics.
type Outcome struct {
	RunID     string
	Seq       int
	Set       string
	Dimension string
	Precision float64
	Recall    float64
	F1        float64
	Samples   int
	Features  int
	Folds     int
	Err       string
}

// Failed reports whether the evaluation did not complete.
func (o Outcome) Failed() bool { return o.Err != "" }
