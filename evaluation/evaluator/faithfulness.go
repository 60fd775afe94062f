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
var _ Evaluator = (*Faithfulness)(nil)

// Faithfulness scores whether the answer's claims are entailed by the
// retrieved snippets. An empty answer scores 0.0: vacuous truth is rejected,
// a degenerate answer is a quality failure. An answer without snippets also
// scores 0.0 because there is nothing to be faithful to.
type Faithfulness struct {
	judge judge.Judge
}

// NewFaithfulness creates the faithfulness evaluator.
func NewFaithfulness(j judge.Judge) *Faithfulness {
	return &Faithfulness{judge: j}
}

// Name implements the Evaluator interface.
func (e *Faithfulness) Name() string {
	return metric.MetricFaithfulness
}

// Evaluate implements the Evaluator interface.
func (e *Faithfulness) Evaluate(ctx context.Context, tx *transaction.Transaction) (float64, error) {
	claims := splitSentences(tx.Answer)
	if len(claims) == 0 {
		return 0.0, nil
	}
	if len(tx.Snippets) == 0 {
		return 0.0, nil
	}
	contextText := tx.ContextText()

	entailed := 0
	for _, claim := range claims {
		telemetry.IncOracleRequest(ctx, e.Name())
		ok, err := e.judge.Entailed(ctx, claim, contextText)
		if err != nil {
			// Fail closed: an unjudgeable claim counts as not entailed.
			if err := absorb(ctx, e.Name(), err); err != nil {
				return 0.0, err
			}
			continue
		}
		if ok {
			entailed++
		}
	}
	return metric.Clamp01(float64(entailed) / float64(len(claims))), nil
}
