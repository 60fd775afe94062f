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
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/kbeval/evaluation/transaction"
)

type batchParam struct {
	idx      int
	ctx      context.Context
	question string
	engine   *Engine
	results  []*transaction.Transaction
	errs     []error
	wg       *sync.WaitGroup
}

func (p *batchParam) reset() {
	p.idx = 0
	p.ctx = nil
	p.question = ""
	p.engine = nil
	p.results = nil
	p.errs = nil
	p.wg = nil
}

var batchParamPool = &sync.Pool{
	New: func() any { return new(batchParam) },
}

func newBatchPool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*batchParam)
		if !ok {
			panic("batch pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			batchParamPool.Put(param)
		}()
		tx, err := param.engine.EvaluateQuestion(param.ctx, param.question)
		param.results[param.idx] = tx
		param.errs[param.idx] = err
	})
	if err != nil {
		return nil, fmt.Errorf("create batch pool: %w", err)
	}
	return pool, nil
}

// EvaluateBatch evaluates many questions concurrently, bounded by the
// engine's parallelism. The returned slice is index-aligned with questions;
// entries for failed questions are nil and their errors are joined.
func (e *Engine) EvaluateBatch(ctx context.Context, questions []string) ([]*transaction.Transaction, error) {
	if len(questions) == 0 {
		return nil, nil
	}
	pool, err := newBatchPool(e.parallelism)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	results := make([]*transaction.Transaction, len(questions))
	errs := make([]error, len(questions))
	var wg sync.WaitGroup
	for i, question := range questions {
		wg.Add(1)
		param := batchParamPool.Get().(*batchParam)
		param.idx = i
		param.ctx = ctx
		param.question = question
		param.engine = e
		param.results = results
		param.errs = errs
		param.wg = &wg
		if err := pool.Invoke(param); err != nil {
			wg.Done()
			param.reset()
			batchParamPool.Put(param)
			errs[i] = fmt.Errorf("submit question %d: %w", i, err)
		}
	}
	wg.Wait()

	return results, errors.Join(errs...)
}
