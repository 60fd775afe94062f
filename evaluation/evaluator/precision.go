//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package evaluator

import (
	"context"
	"fmt"

	"trpc.group/trpc-go/kbeval/evaluation/metric"
	"trpc.group/trpc-go/kbeval/evaluation/transaction"
	"trpc.group/trpc-go/kbeval/judge"
	telemetry "trpc.group/trpc-go/kbeval/telemetry/metric"
)

// Verify interface compliance.
var _ Evaluator = (*PrecisionAtK)(nil)

// DefaultK is the default precision window.
const DefaultK = 3

// PrecisionAtK scores the fraction of the top-K snippets relevant to the
// question, independent of the generated answer. The denominator is always
// the configured K: retrieving fewer than K snippets is penalized, missing
// slots count as irrelevant.
type PrecisionAtK struct {
	judge judge.Judge
	k     int
}

// NewPrecisionAtK creates the precision evaluator. K must be positive.
func NewPrecisionAtK(j judge.Judge, k int) (*PrecisionAtK, error) {
	if k <= 0 {
		return nil, fmt.Errorf("precision window K must be greater than 0, got %d", k)
	}
	return &PrecisionAtK{judge: j, k: k}, nil
}

// Name implements the Evaluator interface.
func (e *PrecisionAtK) Name() string {
	return metric.MetricPrecisionAtK
}

// K returns the configured precision window.
func (e *PrecisionAtK) K() int {
	return e.k
}

// Evaluate implements the Evaluator interface.
func (e *PrecisionAtK) Evaluate(ctx context.Context, tx *transaction.Transaction) (float64, error) {
	relevant := 0
	for _, snippet := range tx.TopK(e.k) {
		telemetry.IncOracleRequest(ctx, e.Name())
		ok, err := e.judge.SnippetRelevant(ctx, tx.Question, snippet.Text)
		if err != nil {
			// Fail closed: an unjudgeable snippet counts as irrelevant.
			if err := absorb(ctx, e.Name(), err); err != nil {
				return 0.0, err
			}
			continue
		}
		if ok {
			relevant++
		}
	}
	return metric.Clamp01(float64(relevant) / float64(e.k)), nil
}
