//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package evaluator provides the metric evaluators.
//
// Each evaluator scores one aspect of a transaction in [0,1]. Evaluators are
// pure with respect to the transaction and safe to run concurrently. Oracle
// failures degrade to conservative judgments; only cancellation of the
// enclosing context aborts an evaluation.
package evaluator

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"trpc.group/trpc-go/kbeval/evaluation/transaction"
	"trpc.group/trpc-go/kbeval/log"
	"trpc.group/trpc-go/kbeval/telemetry/metric"
)

// Evaluator scores one aspect of a transaction.
type Evaluator interface {
	// Name returns the metric name this evaluator produces.
	Name() string
	// Evaluate returns a score in [0,1] for the transaction. The returned
	// error is non-nil only when the context was cancelled; oracle failures
	// are absorbed as conservative judgments.
	Evaluate(ctx context.Context, tx *transaction.Transaction) (float64, error)
}

// Registry manages the registration and retrieval of evaluators.
type Registry struct {
	mu         sync.RWMutex
	evaluators map[string]Evaluator
}

// NewRegistry creates a new evaluator registry.
func NewRegistry() *Registry {
	return &Registry{evaluators: make(map[string]Evaluator)}
}

// Register adds an evaluator to the registry.
func (r *Registry) Register(e Evaluator) error {
	if e == nil {
		return fmt.Errorf("evaluator is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.evaluators[e.Name()]; ok {
		return fmt.Errorf("evaluator %s already registered", e.Name())
	}
	r.evaluators[e.Name()] = e
	return nil
}

// Get retrieves an evaluator by metric name.
func (r *Registry) Get(name string) (Evaluator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.evaluators[name]
	if !ok {
		return nil, fmt.Errorf("no evaluator registered for metric %s", name)
	}
	return e, nil
}

// List returns all registered metric names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.evaluators))
	for name := range r.evaluators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unregister removes an evaluator from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.evaluators, name)
}

// absorb handles a judge failure inside an evaluator. Cancellation of the
// enclosing context is propagated; any other failure is logged, counted and
// absorbed so the metric falls back to its conservative judgment.
func absorb(ctx context.Context, metricName string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	log.Warnf("oracle failure in %s, applying conservative fallback: %v", metricName, err)
	metric.IncOracleFallback(ctx, metricName)
	return nil
}
