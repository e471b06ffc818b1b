// Package metrics implements evaluation metrics for binary classifiers:
// accuracy, the confusion matrix, per-class precision/recall/F1 with
// supports, macro and weighted averages, and ROC AUC. The conventions follow
// scikit-learn: ill-defined metrics become 0 and emit an
// UndefinedMetricWarning instead of failing.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/pkg/errors"
)

// validateLabels checks that both vectors are non-empty, equally long and
// binary.
func validateLabels(op string, yTrue, yPred *mat.VecDense) error {
	n := yTrue.Len()
	if n == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if yPred.Len() != n {
		return errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	for i := 0; i < n; i++ {
		for _, v := range []float64{yTrue.AtVec(i), yPred.AtVec(i)} {
			if v != 0 && v != 1 {
				return errors.Wrapf(errors.ErrNotBinary, "%s: found label %v", op, v)
			}
		}
	}
	return nil
}

// Accuracy returns the fraction of predictions matching the true labels.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := validateLabels("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < yTrue.Len(); i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(yTrue.Len()), nil
}

// ConfusionCounts holds the four cells of a binary confusion matrix, with
// class 1 as the positive class.
type ConfusionCounts struct {
	TP int
	FP int
	TN int
	FN int
}

// ConfusionMatrix tallies the confusion counts of binary predictions.
func ConfusionMatrix(yTrue, yPred *mat.VecDense) (*ConfusionCounts, error) {
	if err := validateLabels("ConfusionMatrix", yTrue, yPred); err != nil {
		return nil, err
	}

	var c ConfusionCounts
	for i := 0; i < yTrue.Len(); i++ {
		actual, predicted := yTrue.AtVec(i), yPred.AtVec(i)
		switch {
		case actual == 1 && predicted == 1:
			c.TP++
		case actual == 0 && predicted == 1:
			c.FP++
		case actual == 0 && predicted == 0:
			c.TN++
		default:
			c.FN++
		}
	}
	return &c, nil
}

// Precision returns TP / (TP + FP) for the positive class. When no positive
// predictions exist the metric is ill-defined: it becomes 0 and an
// UndefinedMetricWarning is emitted.
func Precision(yTrue, yPred *mat.VecDense) (float64, error) {
	c, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return precisionFor(float64(c.TP), float64(c.FP)), nil
}

// Recall returns TP / (TP + FN) for the positive class. When no positive
// labels exist the metric is ill-defined: it becomes 0 and an
// UndefinedMetricWarning is emitted.
func Recall(yTrue, yPred *mat.VecDense) (float64, error) {
	c, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return recallFor(float64(c.TP), float64(c.FN)), nil
}

// F1Score returns the harmonic mean of precision and recall for the positive
// class, or 0 when both are 0.
func F1Score(yTrue, yPred *mat.VecDense) (float64, error) {
	c, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	p := precisionFor(float64(c.TP), float64(c.FP))
	r := recallFor(float64(c.TP), float64(c.FN))
	return errors.SafeDivide(2*p*r, p+r), nil
}

func precisionFor(tp, fp float64) float64 {
	if tp+fp == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted samples", 0))
		return 0
	}
	return tp / (tp + fp)
}

func recallFor(tp, fn float64) float64 {
	if tp+fn == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("recall", "no true samples", 0))
		return 0
	}
	return tp / (tp + fn)
}

// ClassMetrics holds the per-class row of a classification report.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report is a full classification report over both classes.
type Report struct {
	PerClass    map[int]ClassMetrics
	Accuracy    float64
	MacroAvg    ClassMetrics
	WeightedAvg ClassMetrics
	Total       int
}

// ClassificationReport computes per-class precision, recall, F1 and support
// plus accuracy, macro and support-weighted averages. Per-class rows treat
// that class as the positive one, so the class 0 row describes how well the
// negatives are recovered.
func ClassificationReport(yTrue, yPred *mat.VecDense) (*Report, error) {
	c, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return nil, err
	}

	n := yTrue.Len()
	report := &Report{
		PerClass: make(map[int]ClassMetrics, 2),
		Total:    n,
	}
	report.Accuracy = float64(c.TP+c.TN) / float64(n)

	// Class 1 uses the counts as-is; class 0 swaps the roles of the cells.
	cells := map[int][3]float64{
		1: {float64(c.TP), float64(c.FP), float64(c.FN)},
		0: {float64(c.TN), float64(c.FN), float64(c.FP)},
	}
	for class, cell := range cells {
		tp, fp, fn := cell[0], cell[1], cell[2]
		p := precisionFor(tp, fp)
		r := recallFor(tp, fn)
		report.PerClass[class] = ClassMetrics{
			Precision: p,
			Recall:    r,
			F1:        errors.SafeDivide(2*p*r, p+r),
			Support:   int(tp + fn),
		}
	}

	for _, m := range report.PerClass {
		w := float64(m.Support) / float64(n)
		report.MacroAvg.Precision += m.Precision / 2
		report.MacroAvg.Recall += m.Recall / 2
		report.MacroAvg.F1 += m.F1 / 2
		report.WeightedAvg.Precision += w * m.Precision
		report.WeightedAvg.Recall += w * m.Recall
		report.WeightedAvg.F1 += w * m.F1
	}
	report.MacroAvg.Support = n
	report.WeightedAvg.Support = n

	return report, nil
}

// String renders the report in the layout of scikit-learn's
// classification_report, with four decimal places.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%14s %9s %9s %9s %9s\n", "", "precision", "recall", "f1-score", "support")
	b.WriteString("\n")

	classes := make([]int, 0, len(r.PerClass))
	for class := range r.PerClass {
		classes = append(classes, class)
	}
	sort.Ints(classes)
	for _, class := range classes {
		m := r.PerClass[class]
		fmt.Fprintf(&b, "%14d %9.4f %9.4f %9.4f %9d\n", class, m.Precision, m.Recall, m.F1, m.Support)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%14s %9s %9s %9.4f %9d\n", "accuracy", "", "", r.Accuracy, r.Total)
	fmt.Fprintf(&b, "%14s %9.4f %9.4f %9.4f %9d\n", "macro avg", r.MacroAvg.Precision, r.MacroAvg.Recall, r.MacroAvg.F1, r.MacroAvg.Support)
	fmt.Fprintf(&b, "%14s %9.4f %9.4f %9.4f %9d\n", "weighted avg", r.WeightedAvg.Precision, r.WeightedAvg.Recall, r.WeightedAvg.F1, r.WeightedAvg.Support)
	return b.String()
}

// ROCAUC computes the area under the ROC curve from positive-class scores,
// using the rank-sum formulation with average ranks for tied scores.
func ROCAUC(yTrue, scores *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewModelError("ROCAUC", "empty data", errors.ErrEmptyData)
	}
	if scores.Len() != n {
		return 0, errors.NewDimensionError("ROCAUC", n, scores.Len(), 0)
	}

	nPos, nNeg := 0, 0
	for i := 0; i < n; i++ {
		switch yTrue.AtVec(i) {
		case 1:
			nPos++
		case 0:
			nNeg++
		default:
			return 0, errors.Wrapf(errors.ErrNotBinary, "ROCAUC: found label %v", yTrue.AtVec(i))
		}
	}
	if nPos == 0 || nNeg == 0 {
		return 0, errors.NewValueError("ROCAUC", "both classes must be present")
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return scores.AtVec(order[a]) < scores.AtVec(order[b])
	})

	// Average ranks over ties, then sum the ranks of the positives.
	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && scores.AtVec(order[j]) == scores.AtVec(order[i]) {
			j++
		}
		avgRank := float64(i+j+1) / 2 // ranks are 1-based
		for k := i; k < j; k++ {
			ranks[order[k]] = avgRank
		}
		i = j
	}

	rankSum := 0.0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 1 {
			rankSum += ranks[i]
		}
	}

	u := rankSum - float64(nPos)*float64(nPos+1)/2
	return u / (float64(nPos) * float64(nNeg)), nil
}
