package experiment

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/attrib/pkg/attrib/corpus"
	"github.com/cognicore/attrib/pkg/attrib/evaluate"
	"github.com/cognicore/attrib/pkg/attrib/store"
)

// Source produces the labeled dataset for a dimension.
type Source interface {
	Samples(dim corpus.Dimension) (corpus.Dataset, error)
}

// CrossValidator scores one pipeline against one label dimension.
type CrossValidator interface {
	CrossValidate(ctx context.Context, ds corpus.Dataset, p evaluate.FeaturePipeline, dim corpus.Dimension) (evaluate.Result, error)
}

// Set is a named extractor-set configuration. Build must return a fresh
// pipeline on every call.
type Set struct {
	Name  string
	Build func() (evaluate.FeaturePipeline, error)
}

// Outcome is the result of one (set, dimension) evaluation. Exactly one of
// Result and Err is set.
type Outcome struct {
	Seq    int
	Set    string
	Dim    corpus.Dimension
	Result *evaluate.Result
	Err    error
}

// Report collects the outcomes of one run in evaluation order.
type Report struct {
	RunID     string
	StartedAt time.Time
	Outcomes  []Outcome
}

// Lookup returns the outcome for a set name and dimension.
func (r Report) Lookup(set string, dim corpus.Dimension) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Set == set && o.Dim == dim {
			return o, true
		}
	}
	return Outcome{}, false
}

// Failed returns the outcomes that did not complete.
func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Options configures a Runner
type Options struct {
	Source    Source
	Evaluator CrossValidator
	Store     store.Store  // optional
	Logger    *slog.Logger // optional
	Run       store.Run    // metadata recorded with each run; ID and StartedAt are filled in
	Now       func() time.Time
}

// Runner evaluates every extractor set against every label dimension.
type Runner struct {
	source    Source
	evaluator CrossValidator
	store     store.Store
	logger    *slog.Logger
	meta      store.Run
	now       func() time.Time
	entropy   *ulid.MonotonicEntropy
}

// New creates a Runner with the given dependencies
func New(opts Options) *Runner {
	r := &Runner{
		source:    opts.Source,
		evaluator: opts.Evaluator,
		store:     opts.Store,
		logger:    opts.Logger,
		meta:      opts.Run,
		now:       opts.Now,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.evaluator == nil {
		r.evaluator = evaluate.New(evaluate.WithLogger(r.logger))
	}
	return r
}

// Run evaluates sets × dims. A failing combination is recorded in the report
// and the batch continues; only context cancellation or a store failure stops
// the run early.
func (r *Runner) Run(ctx context.Context, sets []Set, dims []corpus.Dimension) (Report, error) {
	started := r.now()
	id, err := ulid.New(ulid.Timestamp(started), r.entropy)
	if err != nil {
		return Report{}, fmt.Errorf("run id: %w", err)
	}
	report := Report{RunID: id.String(), StartedAt: started}

	if r.store != nil {
		meta := r.meta
		meta.ID = report.RunID
		meta.StartedAt = started
		if err := r.store.SaveRun(ctx, meta); err != nil {
			return report, fmt.Errorf("save run: %w", err)
		}
	}

	datasets := make(map[corpus.Dimension]corpus.Dataset)
	dsErrs := make(map[corpus.Dimension]error)
	dataset := func(dim corpus.Dimension) (corpus.Dataset, error) {
		if err, ok := dsErrs[dim]; ok {
			return corpus.Dataset{}, err
		}
		if ds, ok := datasets[dim]; ok {
			return ds, nil
		}
		ds, err := r.source.Samples(dim)
		if err != nil {
			dsErrs[dim] = err
			return corpus.Dataset{}, err
		}
		datasets[dim] = ds
		return ds, nil
	}

	for i, set := range sets {
		for _, dim := range dims {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			out := r.evaluate(ctx, i, set, dim, dataset)
			out.Seq = len(report.Outcomes)
			report.Outcomes = append(report.Outcomes, out)

			if out.Err != nil {
				r.logger.Warn("evaluation failed", "set", out.Set, "dimension", dim, "error", out.Err)
			} else {
				r.logger.Info("evaluated", "set", out.Set, "dimension", dim,
					"precision", out.Result.Precision, "recall", out.Result.Recall, "f1", out.Result.F1)
			}

			if r.store != nil {
				if err := r.store.SaveOutcome(ctx, toRecord(report.RunID, out)); err != nil {
					return report, fmt.Errorf("save outcome: %w", err)
				}
			}
		}
	}
	return report, nil
}

func (r *Runner) evaluate(ctx context.Context, i int, set Set, dim corpus.Dimension, dataset func(corpus.Dimension) (corpus.Dataset, error)) Outcome {
	out := Outcome{Set: set.Name, Dim: dim}
	if out.Set == "" {
		out.Set = fmt.Sprintf("set %d", i+1)
	}
	if set.Build == nil {
		out.Err = fmt.Errorf("%s: no pipeline builder", out.Set)
		return out
	}

	p, err := set.Build()
	if err != nil {
		out.Err = fmt.Errorf("build %s: %w", out.Set, err)
		return out
	}
	if set.Name == "" {
		out.Set = p.Name()
	}

	ds, err := dataset(dim)
	if err != nil {
		out.Err = fmt.Errorf("samples %s: %w", dim, err)
		return out
	}

	res, err := r.evaluator.CrossValidate(ctx, ds, p, dim)
	if err != nil {
		out.Err = err
		return out
	}
	out.Result = &res
	return out
}

func toRecord(runID string, o Outcome) store.Outcome {
	rec := store.Outcome{
		RunID:     runID,
		Seq:       o.Seq,
		Set:       o.Set,
		Dimension: string(o.Dim),
	}
	if o.Err != nil {
		rec.Err = o.Err.Error()
		return rec
	}
	rec.Precision = o.Result.Precision
	rec.Recall = o.Result.Recall
	rec.F1 = o.Result.F1
	rec.Samples = o.Result.Samples
	rec.Features = o.Result.Features
	rec.Folds = len(o.Result.Folds)
	return rec
}
