// Package imbalance provides tools for learning from class-imbalanced
// datasets in Go, with a scikit-learn / imbalanced-learn inspired API.
//
// The library covers the full workflow of an imbalanced binary
// classification study: loading a delimited dataset, seeded train/test
// splitting, one-hot encoding and scaling fitted on the training
// partition only, resampling the training set with one of several
// strategies, fitting a logistic-regression classifier, and reporting
// per-class precision, recall, F1 and support on an untouched test
// partition.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/skylearn/imbalance/linear"
//	    "github.com/skylearn/imbalance/metrics"
//	    "github.com/skylearn/imbalance/resample"
//	)
//
//	func main() {
//	    // X, y: training features and binary labels.
//	    sampler := resample.NewRandomUnderSampler(resample.WithUnderSeed(42))
//	    XRes, yRes, err := sampler.FitResample(X, y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    clf := linear.NewLogisticRegression(linear.WithLRMaxIter(1000))
//	    if err := clf.Fit(XRes, yRes); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    yPred, _ := clf.Predict(XTest)
//	    report, _ := metrics.ClassificationReport(yTest, yPred)
//	    fmt.Println(report)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - dataset: delimited-file loading and column-level summaries
//   - preprocessing: train/test split, one-hot encoding, scaling
//   - resample: RandomUnderSampler, RandomOverSampler, SMOTE, ENN, SMOTEENN
//   - linear: binary logistic regression with optional class weighting
//   - metrics: classification metrics and reports
//   - experiment: strategy comparison harness used by the CLI
package imbalance
