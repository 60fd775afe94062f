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
	"trpc.group/trpc-go/kbeval/log"
	telemetry "trpc.group/trpc-go/kbeval/telemetry/metric"
)

// Verify interface compliance.
var _ Evaluator = (*Completeness)(nil)

// subQuestion is the ephemeral unit of completeness scoring. It never
// outlives one Evaluate call.
type subQuestion struct {
	text     string
	coverage judge.Coverage
}

// Completeness decomposes the question into sub-questions and scores how
// fully the answer covers each of them.
type Completeness struct {
	judge      judge.Judge
	decomposer judge.Decomposer
}

// CompletenessOption configures the Completeness evaluator.
type CompletenessOption func(*Completeness)

// WithDecomposer overrides the sub-question decomposition strategy.
// Decomposition is the dominant source of run-to-run variance, so tests
// plug in a deterministic strategy here.
func WithDecomposer(d judge.Decomposer) CompletenessOption {
	return func(e *Completeness) {
		e.decomposer = d
	}
}

// NewCompleteness creates the completeness evaluator. If no decomposer is
// supplied and the judge implements judge.Decomposer, the judge is used.
func NewCompleteness(j judge.Judge, opts ...CompletenessOption) *Completeness {
	e := &Completeness{judge: j}
	if d, ok := j.(judge.Decomposer); ok {
		e.decomposer = d
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements the Evaluator interface.
func (e *Completeness) Name() string {
	return metric.MetricAnswerCompleteness
}

// Evaluate implements the Evaluator interface.
func (e *Completeness) Evaluate(ctx context.Context, tx *transaction.Transaction) (float64, error) {
	subQuestions, err := e.decompose(ctx, tx.Question)
	if err != nil {
		return 0.0, err
	}
	// The exact sub-questions are logged for reproducibility: decomposition
	// is where identical runs diverge.
	log.Infof("completeness decomposition for transaction %s: %q", tx.ID, texts(subQuestions))

	var total float64
	for i := range subQuestions {
		telemetry.IncOracleRequest(ctx, e.Name())
		coverage, err := e.judge.Coverage(ctx, subQuestions[i].text, tx.Answer)
		if err != nil {
			// Fail closed: an unjudgeable sub-question is not answered.
			if err := absorb(ctx, e.Name(), err); err != nil {
				return 0.0, err
			}
			coverage = judge.CoverageNotAnswered
		}
		subQuestions[i].coverage = coverage
		total += coverage.Weight()
	}
	return metric.Clamp01(total / float64(len(subQuestions))), nil
}

// decompose produces the sub-questions, falling back to the whole question
// when decomposition fails or yields nothing.
func (e *Completeness) decompose(ctx context.Context, question string) ([]subQuestion, error) {
	var raw []string
	if e.decomposer != nil {
		telemetry.IncOracleRequest(ctx, e.Name())
		var err error
		raw, err = e.decomposer.Decompose(ctx, question)
		if err != nil {
			if err := absorb(ctx, e.Name(), err); err != nil {
				return nil, err
			}
			raw = nil
		}
	}
	if len(raw) == 0 {
		raw = []string{question}
	}
	subQuestions := make([]subQuestion, len(raw))
	for i, text := range raw {
		subQuestions[i] = subQuestion{text: text}
	}
	return subQuestions, nil
}

func texts(subQuestions []subQuestion) []string {
	out := make([]string, len(subQuestions))
	for i, sq := range subQuestions {
		out[i] = sq.text
	}
	return out
}
