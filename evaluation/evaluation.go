//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package evaluation orchestrates the scoring of question-answer
// transactions: retrieve, generate, fan out the four metric evaluators and
// aggregate their scores.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"trpc.group/trpc-go/kbeval/evaluation/evaluator"
	"trpc.group/trpc-go/kbeval/evaluation/metric"
	"trpc.group/trpc-go/kbeval/evaluation/transaction"
	"trpc.group/trpc-go/kbeval/judge"
	"trpc.group/trpc-go/kbeval/knowledge/retriever"
	"trpc.group/trpc-go/kbeval/log"
	"trpc.group/trpc-go/kbeval/model"
	telemetry "trpc.group/trpc-go/kbeval/telemetry/metric"
)

// Engine evaluates question-answer transactions. It carries no per-request
// state; one engine serves any number of concurrent transactions.
type Engine struct {
	retriever        retriever.Retriever
	generator        model.Model
	aggregator       *metric.Aggregator
	registry         *evaluator.Registry
	topK             int
	parallelism      int
	generatorTimeout time.Duration
}

// New creates an evaluation engine. Configuration invariant violations
// (weights not summing to 1.0, K <= 0) are reported here, never at request
// time.
func New(opt ...Option) (*Engine, error) {
	opts := newOptions(opt...)
	if opts.topK <= 0 {
		return nil, fmt.Errorf("top K must be greater than 0, got %d", opts.topK)
	}
	if opts.parallelism <= 0 {
		return nil, fmt.Errorf("parallelism must be greater than 0, got %d", opts.parallelism)
	}
	aggregator, err := metric.NewAggregator(opts.weights)
	if err != nil {
		return nil, err
	}
	if opts.judge == nil {
		log.Info("no judgment oracle configured, using deterministic lexical judge")
		opts.judge = judge.NewLexical()
	}

	registry := evaluator.NewRegistry()
	precision, err := evaluator.NewPrecisionAtK(opts.judge, opts.topK)
	if err != nil {
		return nil, err
	}
	var completenessOpts []evaluator.CompletenessOption
	if opts.decomposer != nil {
		completenessOpts = append(completenessOpts, evaluator.WithDecomposer(opts.decomposer))
	}
	for _, e := range []evaluator.Evaluator{
		evaluator.NewRelevancy(opts.judge),
		evaluator.NewCompleteness(opts.judge, completenessOpts...),
		evaluator.NewFaithfulness(opts.judge),
		precision,
	} {
		if err := registry.Register(e); err != nil {
			return nil, err
		}
	}

	return &Engine{
		retriever:        opts.retriever,
		generator:        opts.generator,
		aggregator:       aggregator,
		registry:         registry,
		topK:             opts.topK,
		parallelism:      opts.parallelism,
		generatorTimeout: opts.generatorTimeout,
	}, nil
}

// EvaluateQuestion runs one full cycle for a question: retrieve snippets,
// generate an answer and score the resulting transaction.
func (e *Engine) EvaluateQuestion(ctx context.Context, question string) (*transaction.Transaction, error) {
	snippets, err := e.retrieve(ctx, question)
	if err != nil {
		return nil, err
	}
	answer := e.generate(ctx, question, snippets)
	tx := transaction.New(question, snippets, answer)
	if err := e.Score(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Score runs the four evaluators concurrently against the transaction and
// finalizes it with the aggregated scores. On cancellation no partial
// scores are surfaced: the transaction stays unfinalized.
func (e *Engine) Score(ctx context.Context, tx *transaction.Transaction) error {
	if tx == nil {
		return errors.New("transaction is nil")
	}
	if tx.Finalized() {
		return transaction.ErrFinalized
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	var scores metric.Scores
	group, groupCtx := errgroup.WithContext(ctx)
	for _, name := range metric.Names() {
		ev, err := e.registry.Get(name)
		if err != nil {
			return err
		}
		group.Go(func() error {
			score, err := ev.Evaluate(groupCtx, tx)
			if err != nil {
				return fmt.Errorf("%s: %w", ev.Name(), err)
			}
			// Each goroutine writes a distinct field; no lock needed.
			scores.Set(ev.Name(), score)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return fmt.Errorf("evaluation aborted: %w", err)
	}

	e.aggregator.Aggregate(&scores)
	if err := tx.Finalize(scores); err != nil {
		return err
	}
	telemetry.RecordEvaluationDuration(ctx, time.Since(start).Seconds())
	log.Infof("transaction %s scored: relevancy=%.3f completeness=%.3f faithfulness=%.3f precision@%d=%.3f overall=%.3f",
		tx.ID, scores.Relevancy, scores.Completeness, scores.Faithfulness, e.topK, scores.PrecisionAtK, scores.Overall)
	return nil
}

// retrieve fetches the top-K snippets for the question. A missing retriever
// or an empty index yields zero snippets, which is a scored quality failure
// rather than an error.
func (e *Engine) retrieve(ctx context.Context, question string) ([]transaction.RetrievedSnippet, error) {
	if e.retriever == nil {
		return nil, nil
	}
	result, err := e.retriever.Retrieve(ctx, &retriever.Query{Text: question, Limit: e.topK})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warnf("retrieval failed, scoring without context: %v", err)
		return nil, nil
	}
	snippets := make([]transaction.RetrievedSnippet, 0, len(result.Documents))
	for _, doc := range result.Documents {
		snippets = append(snippets, transaction.RetrievedSnippet{
			Text:       doc.Document.Content,
			SourceID:   doc.Document.ID,
			Similarity: metric.Clamp01(doc.Score),
		})
	}
	return snippets, nil
}

// generate produces the answer for the question from the snippets. Failures
// degrade to an empty answer, which the evaluators score as degenerate.
func (e *Engine) generate(ctx context.Context, question string, snippets []transaction.RetrievedSnippet) string {
	if e.generator == nil {
		return ""
	}
	genCtx, cancel := context.WithTimeout(ctx, e.generatorTimeout)
	defer cancel()
	request := &model.Request{
		Messages: []model.Message{model.NewUserMessage(answerPrompt(question, snippets))},
	}
	response, err := e.generator.GenerateContent(genCtx, request)
	if err != nil && model.IsTransient(err) && ctx.Err() == nil {
		// Single bounded retry, mirroring the oracle policy.
		response, err = e.generator.GenerateContent(genCtx, request)
	}
	if err != nil {
		log.Warnf("answer generation failed, scoring empty answer: %v", err)
		return ""
	}
	return response.Content
}
