//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package metric

import (
	"fmt"
	"math"
)

// weightSumTolerance is the floating point tolerance for the sum invariant.
const weightSumTolerance = 1e-9

// Weights holds the aggregation weights for the four sub-metrics.
// They must sum to exactly 1.0; they are never renormalized.
type Weights struct {
	Relevancy    float64 `json:"relevancy" koanf:"relevancy"`
	Completeness float64 `json:"completeness" koanf:"completeness"`
	Faithfulness float64 `json:"faithfulness" koanf:"faithfulness"`
	PrecisionAtK float64 `json:"precision_at_k" koanf:"precision_at_k"`
}

// DefaultWeights returns the fixed default weighting.
func DefaultWeights() Weights {
	return Weights{
		Relevancy:    0.25,
		Completeness: 0.35,
		Faithfulness: 0.20,
		PrecisionAtK: 0.20,
	}
}

// Validate checks the weight invariants: every weight non-negative and the
// sum equal to 1.0 within floating point tolerance.
func (w Weights) Validate() error {
	for name, weight := range map[string]float64{
		MetricContextRelevancy:   w.Relevancy,
		MetricAnswerCompleteness: w.Completeness,
		MetricFaithfulness:       w.Faithfulness,
		MetricPrecisionAtK:       w.PrecisionAtK,
	} {
		if weight < 0 {
			return fmt.Errorf("weight for %s must not be negative: %f", name, weight)
		}
	}
	sum := w.Relevancy + w.Completeness + w.Faithfulness + w.PrecisionAtK
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %f", sum)
	}
	return nil
}

// Aggregator combines sub-metric scores into one overall score.
type Aggregator struct {
	weights Weights
}

// NewAggregator creates an aggregator after validating the weights.
func NewAggregator(weights Weights) (*Aggregator, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid aggregation weights: %w", err)
	}
	return &Aggregator{weights: weights}, nil
}

// Weights returns the configured weights.
func (a *Aggregator) Weights() Weights {
	return a.weights
}

// Aggregate computes the weighted overall score. Sub-scores are clamped to
// [0,1] first in case an evaluator misbehaved, and the clamped values are
// written back so the scores invariant holds for consumers.
func (a *Aggregator) Aggregate(scores *Scores) {
	scores.Relevancy = Clamp01(scores.Relevancy)
	scores.Completeness = Clamp01(scores.Completeness)
	scores.Faithfulness = Clamp01(scores.Faithfulness)
	scores.PrecisionAtK = Clamp01(scores.PrecisionAtK)
	scores.Overall = Clamp01(a.weights.Relevancy*scores.Relevancy +
		a.weights.Completeness*scores.Completeness +
		a.weights.Faithfulness*scores.Faithfulness +
		a.weights.PrecisionAtK*scores.PrecisionAtK)
}
