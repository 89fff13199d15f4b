package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cognicore/attrib/pkg/attrib/config"
	"github.com/cognicore/attrib/pkg/attrib/corpus"
	"github.com/cognicore/attrib/pkg/attrib/vocab"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Show how each text segments under the configured threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := loadExperiment(cmd)
		if err != nil {
			return err
		}
		c, err := corpus.Load(exp.Corpus.Folder, exp.Corpus.Works, exp.Corpus.Translators, exp.CorpusOptions()...)
		if err != nil {
			return fmt.Errorf("load corpus: %w", err)
		}
		res, err := config.NewLoader(exp).Load()
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "corpus: %s\nmin words: %d\n\n", c.Folder(), c.MinWords())
		fmt.Fprintln(tw, "WORK\tTRANSLATOR\tSAMPLES\tWORDS\tLAST SAMPLE")
		total := 0
		for _, st := range c.Stats() {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", st.Work, st.Translator, st.Samples, st.Words, st.TailWords)
			total += st.Samples
		}
		fmt.Fprintf(tw, "total\t\t%d\t\t\n", total)
		if err := tw.Flush(); err != nil {
			return err
		}

		ds, err := c.Samples(corpus.ByWork)
		if err != nil {
			return err
		}
		counter := vocab.NewCounter()
		for _, text := range ds.Texts() {
			counter.AddDocument(res.Tokenizer.Words(text))
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "\nvocabulary: %d distinct words over %d samples, %d stopwords configured\n",
			counter.UniqueTerms(), counter.TotalDocs(), res.Tokenizer.Stopwords())
		return err
	},
}
