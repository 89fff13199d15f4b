package evaluate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/attrib/pkg/attrib/corpus"
	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

// Defaults match a 5-fold split repeated 10 times with a fixed seed.
const (
	DefaultSplits  = 5
	DefaultRepeats = 10
	DefaultSeed    = 1337
)

// FeaturePipeline is the feature side of an evaluation: fitted once on every
// sample, then applied to each sample.
type FeaturePipeline interface {
	Name() string
	Prepare(samples []string) error
	Matrix(samples []string) ([][]float64, error)
}

// Result is the cross-validated outcome for one extractor set and label dimension.
type Result struct {
	Set       string           `json:"set"`
	Dim       corpus.Dimension `json:"dimension"`
	Precision float64          `json:"precision"`
	Recall    float64          `json:"recall"`
	F1        float64          `json:"f1"`
	Samples   int              `json:"samples"`
	Features  int              `json:"features"`
	Classes   []string         `json:"classes"`
	Folds     []Scores         `json:"folds,omitempty"`
}

// Scores returns the mean metrics.
func (r Result) Scores() Scores {
	return Scores{Precision: r.Precision, Recall: r.Recall, F1: r.F1}
}

// Rounded returns a copy with the mean metrics rounded to places decimals.
func (r Result) Rounded(places int) Result {
	p := math.Pow10(places)
	round := func(v float64) float64 { return math.Round(v*p) / p }
	r.Precision = round(r.Precision)
	r.Recall = round(r.Recall)
	r.F1 = round(r.F1)
	return r
}

// Evaluator scores feature pipelines with a min-max scaled linear classifier
// under repeated stratified k-fold cross-validation.
type Evaluator struct {
	cv            RepeatedStratifiedKFold
	workers       int
	newClassifier func(seed int64) Classifier
	logger        *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithSplits sets the number of folds per repetition.
func WithSplits(n int) Option { return func(e *Evaluator) { e.cv.Splits = n } }

// WithRepeats sets the number of repetitions.
func WithRepeats(n int) Option { return func(e *Evaluator) { e.cv.Repeats = n } }

// WithSeed sets the seed for fold shuffling and classifier training.
func WithSeed(seed int64) Option { return func(e *Evaluator) { e.cv.Seed = seed } }

// WithWorkers bounds how many folds are fitted concurrently. n <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option { return func(e *Evaluator) { e.workers = n } }

// WithClassifier replaces the default LinearSVC.
func WithClassifier(f func(seed int64) Classifier) Option {
	return func(e *Evaluator) { e.newClassifier = f }
}

// WithLogger sets the progress logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an evaluator with the default cross-validation settings.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		cv: RepeatedStratifiedKFold{Splits: DefaultSplits, Repeats: DefaultRepeats, Seed: DefaultSeed},
		newClassifier: func(seed int64) Classifier {
			return NewLinearSVC(seed)
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CrossValidate prepares the pipeline on every sample of ds, extracts the
// feature matrix and scores it against the labels of dim. Within each fold the
// scaler is fitted on the training rows only. Metrics are macro averages over
// every label present in ds, so a label missing from a fold scores zero there.
// The returned means keep full precision.
func (e *Evaluator) CrossValidate(ctx context.Context, ds corpus.Dataset, p FeaturePipeline, dim corpus.Dimension) (Result, error) {
	if !dim.Valid() {
		return Result{}, fmt.Errorf("%w: unknown label dimension %q", internalerr.ErrInvalidInput, dim)
	}
	labels := ds.Labels(dim)
	classes := presentClasses(ds.Classes(dim), labels)
	if len(classes) < 2 {
		return Result{}, fmt.Errorf("%w: %s has %d distinct label(s)", internalerr.ErrInsufficientClasses, dim, len(classes))
	}

	folds, err := e.cv.Split(labels)
	if err != nil {
		return Result{}, err
	}

	texts := ds.Texts()
	e.logger.Info("extracting features", "set", p.Name(), "dimension", dim, "samples", len(texts))
	if err := p.Prepare(texts); err != nil {
		return Result{}, err
	}
	X, err := p.Matrix(texts)
	if err != nil {
		return Result{}, err
	}

	e.logger.Info("cross validating", "set", p.Name(), "dimension", dim, "folds", len(folds))
	scores := make([]Scores, len(folds))

	workers := e.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range folds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := e.scoreFold(X, labels, classes, f, e.cv.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("fold %d/%d: %w", f.Repeat, f.Index, err)
			}
			scores[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{
		Set:     p.Name(),
		Dim:     dim,
		Samples: len(texts),
		Classes: classes,
		Folds:   scores,
	}
	if len(X) > 0 {
		res.Features = len(X[0])
	}
	for _, s := range scores {
		res.Precision += s.Precision
		res.Recall += s.Recall
		res.F1 += s.F1
	}
	n := float64(len(scores))
	res.Precision /= n
	res.Recall /= n
	res.F1 /= n

	e.logger.Info("done", "set", p.Name(), "dimension", dim, "f1", res.F1)
	return res, nil
}

func (e *Evaluator) scoreFold(X [][]float64, labels, classes []string, f Fold, seed int64) (Scores, error) {
	trainX, trainY := pick(X, labels, f.Train)
	testX, testY := pick(X, labels, f.Test)

	var scaler MinMaxScaler
	if err := scaler.Fit(trainX); err != nil {
		return Scores{}, err
	}

	clf := e.newClassifier(seed)
	if err := clf.Fit(scaler.Transform(trainX), trainY); err != nil {
		return Scores{}, err
	}
	pred, err := clf.Predict(scaler.Transform(testX))
	if err != nil {
		return Scores{}, err
	}
	return MacroScores(testY, pred, classes), nil
}

func pick(X [][]float64, labels []string, idx []int) ([][]float64, []string) {
	rows := make([][]float64, len(idx))
	ys := make([]string, len(idx))
	for i, j := range idx {
		rows[i] = X[j]
		ys[i] = labels[j]
	}
	return rows, ys
}

// presentClasses keeps the configured classes that occur in labels, in
// configured order, followed by any unconfigured labels sorted.
func presentClasses(configured, labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	var out []string
	for _, c := range configured {
		if _, ok := seen[c]; ok {
			out = append(out, c)
			delete(seen, c)
		}
	}
	var rest []string
	for l := range seen {
		rest = append(rest, l)
	}
	sort.Strings(rest)
	return append(out, rest...)
}
