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

	"trpc.group/trpc-go/kbeval/evaluation/metric"
	"trpc.group/trpc-go/kbeval/evaluation/transaction"
	"trpc.group/trpc-go/kbeval/judge"
	telemetry "trpc.group/trpc-go/kbeval/telemetry/metric"
)

// Verify interface compliance.
var _ Evaluator = (*Relevancy)(nil)

// Relevancy scores the fraction of retrieved sentences relevant to the
// question. Absence of context is a quality failure, not a system failure:
// zero snippets score 0.0.
type Relevancy struct {
	judge judge.Judge
}

// NewRelevancy creates the relevancy evaluator.
func NewRelevancy(j judge.Judge) *Relevancy {
	return &Relevancy{judge: j}
}

// Name implements the Evaluator interface.
func (e *Relevancy) Name() string {
	return metric.MetricContextRelevancy
}

// Evaluate implements the Evaluator interface.
func (e *Relevancy) Evaluate(ctx context.Context, tx *transaction.Transaction) (float64, error) {
	if len(tx.Snippets) == 0 {
		return 0.0, nil
	}
	var sentences []string
	for _, snippet := range tx.Snippets {
		sentences = append(sentences, splitSentences(snippet.Text)...)
	}
	if len(sentences) == 0 {
		return 0.0, nil
	}

	telemetry.IncOracleRequest(ctx, e.Name())
	relevant, err := e.judge.RelevantSentences(ctx, tx.Question, sentences)
	if err != nil {
		// Conservative fallback: no sentence counts as relevant.
		return 0.0, absorb(ctx, e.Name(), err)
	}
	count := 0
	for _, r := range relevant {
		if r {
			count++
		}
	}
	return metric.Clamp01(float64(count) / float64(len(sentences))), nil
}
