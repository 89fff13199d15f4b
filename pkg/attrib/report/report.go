package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cognicore/attrib/pkg/attrib/experiment"
	"github.com/cognicore/attrib/pkg/attrib/internalerr"
)

// Places is the number of decimals metrics are rounded to for display.
const Places = 3

// Row is one display line of a report.
type Row struct {
	Set       string  `json:"set"`
	Dimension string  `json:"dimension"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Samples   int     `json:"samples"`
	Features  int     `json:"features"`
	Error     string  `json:"error,omitempty"`
}

// Rows flattens a report into rounded display rows.
func Rows(r experiment.Report) []Row {
	rows := make([]Row, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		row := Row{Set: o.Set, Dimension: string(o.Dim)}
		if o.Err != nil {
			row.Error = o.Err.Error()
		} else {
			res := o.Result.Rounded(Places)
			row.Precision = res.Precision
			row.Recall = res.Recall
			row.F1 = res.F1
			row.Samples = res.Samples
			row.Features = res.Features
		}
		rows = append(rows, row)
	}
	return rows
}

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// Write renders r in the given format.
func Write(w io.Writer, r experiment.Report, f Format) error {
	switch f {
	case FormatText, "":
		return Text(w, r)
	case FormatJSON:
		return JSON(w, r)
	case FormatHTML:
		return HTML(w, r)
	}
	return fmt.Errorf("%w: unknown report format %q", internalerr.ErrInvalidInput, f)
}

// Text writes an aligned plain-text table.
func Text(w io.Writer, r experiment.Report) error {
	if _, err := fmt.Fprintf(w, "run %s\n\n", r.RunID); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SET\tDIMENSION\tPRECISION\tRECALL\tF1\tSAMPLES")
	for _, row := range Rows(r) {
		if row.Error != "" {
			fmt.Fprintf(tw, "%s\t%s\terror: %s\t\t\t\n", row.Set, row.Dimension, row.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", row.Set, row.Dimension,
			metric(row.Precision), metric(row.Recall), metric(row.F1), row.Samples)
	}
	return tw.Flush()
}

type jsonReport struct {
	RunID     string `json:"run_id"`
	StartedAt string `json:"started_at"`
	Results   []Row  `json:"results"`
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, r experiment.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		RunID:     r.RunID,
		StartedAt: r.StartedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Results:   Rows(r),
	})
}

// HTML writes a standalone HTML document with one table row per outcome.
func HTML(w io.Writer, r experiment.Report) error {
	table := element(atom.Table, nil)
	header := element(atom.Tr, nil)
	for _, h := range []string{"Set", "Dimension", "Precision", "Recall", "F1", "Samples"} {
		header.AppendChild(element(atom.Th, nil, text(h)))
	}
	table.AppendChild(element(atom.Thead, nil, header))

	body := element(atom.Tbody, nil)
	for _, row := range Rows(r) {
		tr := element(atom.Tr, nil,
			element(atom.Td, nil, text(row.Set)),
			element(atom.Td, nil, text(row.Dimension)),
		)
		if row.Error != "" {
			tr.Attr = append(tr.Attr, html.Attribute{Key: "class", Val: "failed"})
			tr.AppendChild(element(atom.Td, []html.Attribute{{Key: "colspan", Val: "4"}}, text(row.Error)))
		} else {
			tr.AppendChild(element(atom.Td, nil, text(metric(row.Precision))))
			tr.AppendChild(element(atom.Td, nil, text(metric(row.Recall))))
			tr.AppendChild(element(atom.Td, nil, text(metric(row.F1))))
			tr.AppendChild(element(atom.Td, nil, text(strconv.Itoa(row.Samples))))
		}
		body.AppendChild(tr)
	}
	table.AppendChild(body)

	title := "Attribution results " + r.RunID
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(element(atom.Html, nil,
		element(atom.Head, nil,
			element(atom.Meta, []html.Attribute{{Key: "charset", Val: "utf-8"}}),
			element(atom.Title, nil, text(title)),
		),
		element(atom.Body, nil,
			element(atom.H1, nil, text(title)),
			table,
		),
	))
	return html.Render(w, doc)
}

func element(a atom.Atom, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func metric(v float64) string {
	return strconv.FormatFloat(v, 'f', Places, 64)
}
