package model

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"jobmail/internal/core/label"
)

// LabelScores are one row of a classification report
type LabelScores struct {
	Label     label.Label `json:"label"`
	Precision float64     `json:"precision"`
	Recall    float64     `json:"recall"`
	F1        float64     `json:"f1"`
	Support   int         `json:"support"`
}

// Evaluation scores predictions against truth over the canonical label set
type Evaluation struct {
	Accuracy  float64       `json:"accuracy"`
	PerLabel  []LabelScores `json:"per_label"`
	Confusion [][]int       `json:"confusion"` // rows are truth, columns are predictions
	Total     int           `json:"total"`
}

// Evaluate compares yPred with yTrue; both must be the same length
func Evaluate(yTrue, yPred []label.Label) Evaluation {
	labels := label.All()
	k := len(labels)
	ev := Evaluation{Confusion: make([][]int, k), Total: len(yTrue)}
	for i := range ev.Confusion {
		ev.Confusion[i] = make([]int, k)
	}
	correct := 0
	for i := range yTrue {
		t, p := label.Index(yTrue[i]), label.Index(yPred[i])
		if t < 0 || p < 0 {
			continue
		}
		ev.Confusion[t][p]++
		if t == p {
			correct++
		}
	}
	if len(yTrue) > 0 {
		ev.Accuracy = float64(correct) / float64(len(yTrue))
	}

	for j, l := range labels {
		tp := ev.Confusion[j][j]
		support, predicted := 0, 0
		for x := range k {
			support += ev.Confusion[j][x]
			predicted += ev.Confusion[x][j]
		}
		s := LabelScores{Label: l, Support: support}
		if predicted > 0 {
			s.Precision = float64(tp) / float64(predicted)
		}
		if support > 0 {
			s.Recall = float64(tp) / float64(support)
		}
		if s.Precision+s.Recall > 0 {
			s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
		}
		ev.PerLabel = append(ev.PerLabel, s)
	}
	return ev
}

// MacroF1 averages F1 over labels that have support
func (ev Evaluation) MacroF1() float64 {
	sum, n := 0.0, 0
	for _, s := range ev.PerLabel {
		if s.Support > 0 {
			sum += s.F1
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Report is the diagnostic summary of one training run
type Report struct {
	TrainRows  int        `json:"train_rows"`
	TestRows   int        `json:"test_rows"`
	TrainDist  []int      `json:"train_dist"`
	TestDist   []int      `json:"test_dist"`
	Train      Evaluation `json:"train"`
	Test       Evaluation `json:"test"`
	Vocabulary int        `json:"vocabulary"`
	Iterations int        `json:"iterations"`
}

// WriteText renders the report as aligned plain text
func (r Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	labels := label.All()

	fmt.Fprintf(tw, "rows\ttrain=%d\ttest=%d\n", r.TrainRows, r.TestRows)
	fmt.Fprintf(tw, "vocabulary\t%d\n", r.Vocabulary)
	fmt.Fprintf(tw, "iterations\t%d\n", r.Iterations)
	if len(r.TrainDist) == len(labels) && len(r.TestDist) == len(labels) {
		fmt.Fprintln(tw, "\nlabel dist\ttrain\ttest")
		for i, l := range labels {
			fmt.Fprintf(tw, "%s\t%d\t%d\n", l, r.TrainDist[i], r.TestDist[i])
		}
	}

	if len(r.Test.Confusion) == len(labels) {
		fmt.Fprintln(tw, "\nconfusion (test)\t"+strings.Join(labelStrings(labels), "\t"))
		for i, l := range labels {
			cells := make([]string, len(labels))
			for j := range labels {
				cells[j] = fmt.Sprint(r.Test.Confusion[i][j])
			}
			fmt.Fprintf(tw, "%s\t%s\n", l, strings.Join(cells, "\t"))
		}
	}

	for _, sec := range []struct {
		name string
		ev   Evaluation
	}{{"train", r.Train}, {"test", r.Test}} {
		fmt.Fprintf(tw, "\n=== %s ===\taccuracy %.4f\n", strings.ToUpper(sec.name), sec.ev.Accuracy)
		fmt.Fprintln(tw, "label\tprecision\trecall\tf1\tsupport")
		for _, s := range sec.ev.PerLabel {
			fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%d\n", s.Label, s.Precision, s.Recall, s.F1, s.Support)
		}
		fmt.Fprintf(tw, "macro f1\t%.4f\n", sec.ev.MacroF1())
	}
	return tw.Flush()
}

// String renders the report, ignoring write errors
func (r Report) String() string {
	var b strings.Builder
	_ = r.WriteText(&b)
	return b.String()
}

// Distribution counts labels in canonical order
func Distribution(ys []label.Label) []int {
	out := make([]int, len(label.All()))
	for _, y := range ys {
		if i := label.Index(y); i >= 0 {
			out[i]++
		}
	}
	return out
}

func labelStrings(ls []label.Label) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = string(l)
	}
	return out
}
