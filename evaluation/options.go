//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package evaluation

import (
	"time"

	"trpc.group/trpc-go/kbeval/evaluation/metric"
	"trpc.group/trpc-go/kbeval/judge"
	"trpc.group/trpc-go/kbeval/knowledge/retriever"
	"trpc.group/trpc-go/kbeval/model"
)

const (
	// DefaultTopK is the default retrieval and precision window.
	DefaultTopK = 3
	// DefaultParallelism bounds concurrent transactions in batch runs.
	DefaultParallelism = 4
	// DefaultGeneratorTimeout bounds one answer-generation call.
	DefaultGeneratorTimeout = 60 * time.Second
)

// options holds the configuration for the evaluation engine.
type options struct {
	retriever        retriever.Retriever
	generator        model.Model
	judge            judge.Judge
	decomposer       judge.Decomposer
	weights          metric.Weights
	topK             int
	parallelism      int
	generatorTimeout time.Duration
}

// Option configures the evaluation engine.
type Option func(*options)

func newOptions(opt ...Option) options {
	opts := options{
		weights:          metric.DefaultWeights(),
		topK:             DefaultTopK,
		parallelism:      DefaultParallelism,
		generatorTimeout: DefaultGeneratorTimeout,
	}
	for _, o := range opt {
		o(&opts)
	}
	return opts
}

// WithRetriever sets the snippet retriever.
func WithRetriever(r retriever.Retriever) Option {
	return func(o *options) {
		o.retriever = r
	}
}

// WithGenerator sets the answer generator. Without one, transactions carry
// an empty answer and score accordingly.
func WithGenerator(m model.Model) Option {
	return func(o *options) {
		o.generator = m
	}
}

// WithJudge sets the judgment oracle. Without one, the deterministic
// lexical judge is used.
func WithJudge(j judge.Judge) Option {
	return func(o *options) {
		o.judge = j
	}
}

// WithDecomposer overrides the sub-question decomposition strategy used by
// the completeness evaluator.
func WithDecomposer(d judge.Decomposer) Option {
	return func(o *options) {
		o.decomposer = d
	}
}

// WithWeights sets the aggregation weights. They must sum to 1.0.
func WithWeights(w metric.Weights) Option {
	return func(o *options) {
		o.weights = w
	}
}

// WithTopK sets the retrieval and precision window.
func WithTopK(k int) Option {
	return func(o *options) {
		o.topK = k
	}
}

// WithParallelism bounds concurrent transactions in batch runs.
func WithParallelism(parallelism int) Option {
	return func(o *options) {
		o.parallelism = parallelism
	}
}

// WithGeneratorTimeout bounds one answer-generation call.
func WithGeneratorTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.generatorTimeout = timeout
	}
}
