//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package metric defines the metric scores and their aggregation.
package metric

// Metric name constants.
const (
	MetricContextRelevancy   = "context_relevancy"
	MetricAnswerCompleteness = "answer_completeness"
	MetricFaithfulness       = "faithfulness"
	MetricPrecisionAtK       = "precision_at_k"
)

// Names lists the four sub-metric names.
func Names() []string {
	return []string{
		MetricContextRelevancy,
		MetricAnswerCompleteness,
		MetricFaithfulness,
		MetricPrecisionAtK,
	}
}

// Scores holds the sub-metric scores and the aggregated overall score for
// one transaction. All fields lie in [0,1]; Overall is always derived from
// the other four and never set independently.
type Scores struct {
	// Relevancy is the fraction of retrieved content relevant to the question.
	Relevancy float64 `json:"relevancy"`
	// Completeness is the fraction of question facets covered by the answer.
	Completeness float64 `json:"completeness"`
	// Faithfulness is the fraction of answer claims entailed by the snippets.
	Faithfulness float64 `json:"faithfulness"`
	// PrecisionAtK is the fraction of the top-K snippets judged relevant.
	PrecisionAtK float64 `json:"precision_at_k"`
	// Overall is the weighted sum of the other four.
	Overall float64 `json:"overall"`
}

// Get returns the sub-score for a metric name. Unknown names return 0.
func (s Scores) Get(name string) float64 {
	switch name {
	case MetricContextRelevancy:
		return s.Relevancy
	case MetricAnswerCompleteness:
		return s.Completeness
	case MetricFaithfulness:
		return s.Faithfulness
	case MetricPrecisionAtK:
		return s.PrecisionAtK
	default:
		return 0
	}
}

// Set assigns the sub-score for a metric name. Unknown names are ignored.
func (s *Scores) Set(name string, score float64) {
	switch name {
	case MetricContextRelevancy:
		s.Relevancy = score
	case MetricAnswerCompleteness:
		s.Completeness = score
	case MetricFaithfulness:
		s.Faithfulness = score
	case MetricPrecisionAtK:
		s.PrecisionAtK = score
	}
}

// Clamp01 clamps v to [0,1]. NaN clamps to 0.
func Clamp01(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
