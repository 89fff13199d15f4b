package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/attrib/pkg/attrib/config"
	"github.com/cognicore/attrib/pkg/attrib/corpus"
	"github.com/cognicore/attrib/pkg/attrib/evaluate"
	"github.com/cognicore/attrib/pkg/attrib/experiment"
	"github.com/cognicore/attrib/pkg/attrib/features"
	"github.com/cognicore/attrib/pkg/attrib/report"
	"github.com/cognicore/attrib/pkg/attrib/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Cross-validate every configured extractor set",
	RunE:  runExperiments,
}

func init() {
	runCmd.Flags().StringP("format", "f", "text", "Output format: text, json or html")
	runCmd.Flags().StringP("out", "o", "", "Write the report to a file instead of stdout")
	runCmd.Flags().String("dims", "work,translator", "Comma-separated label dimensions to evaluate")
	runCmd.Flags().String("only", "", "Comma-separated experiment names to run (default all)")
}

func runExperiments(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	exp, err := loadExperiment(cmd)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	dimNames, _ := cmd.Flags().GetString("dims")
	dims, err := parseDimensions(splitList(dimNames))
	if err != nil {
		return err
	}
	onlyNames, _ := cmd.Flags().GetString("only")
	only := splitList(onlyNames)

	c, err := corpus.Load(exp.Corpus.Folder, exp.Corpus.Works, exp.Corpus.Translators, exp.CorpusOptions()...)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	res, err := config.NewLoader(exp).Load()
	if err != nil {
		return err
	}
	sets := filterSets(exp.Sets(features.NewRegistry(res)), only)
	if len(sets) == 0 {
		return fmt.Errorf("no experiments match %v", only)
	}

	st, err := openStore(ctx, exp.DB)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	logger := newLogger(cmd)
	evaluator := evaluate.New(append(exp.EvaluatorOptions(), evaluate.WithLogger(logger))...)
	runner := experiment.New(experiment.Options{
		Source:    c,
		Evaluator: evaluator,
		Store:     st,
		Logger:    logger,
		Run: store.Run{
			Folder:      exp.Corpus.Folder,
			Works:       exp.Corpus.Works,
			Translators: exp.Corpus.Translators,
			MinWords:    exp.MinWords(),
			Splits:      exp.Evaluation.Splits,
			Repeats:     exp.Evaluation.Repeats,
			Seed:        exp.Evaluation.Seed,
		},
	})

	rep, err := runner.Run(ctx, sets, dims)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}
	if err := report.Write(w, rep, report.Format(format)); err != nil {
		return err
	}

	if failed := rep.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d evaluations failed", len(failed), len(rep.Outcomes))
	}
	return nil
}

func parseDimensions(names []string) ([]corpus.Dimension, error) {
	dims := make([]corpus.Dimension, 0, len(names))
	for _, n := range names {
		d, err := corpus.ParseDimension(n)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return dims, nil
}

func filterSets(sets []experiment.Set, only []string) []experiment.Set {
	if len(only) == 0 {
		return sets
	}
	want := make(map[string]bool, len(only))
	for _, name := range only {
		want[name] = true
	}
	var out []experiment.Set
	for _, s := range sets {
		if want[s.Name] {
			out = append(out, s)
		}
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
