//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package lexical provides a deterministic hashing embedder. It maps token
// counts into a fixed number of buckets, which is enough for offline runs
// and tests where no embedding service is available.
package lexical

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"trpc.group/trpc-go/kbeval/knowledge/embedder"
)

// Verify that Embedder implements the embedder.Embedder interface.
var _ embedder.Embedder = (*Embedder)(nil)

// DefaultDimensions is the default number of hash buckets.
const DefaultDimensions = 256

// Embedder is a deterministic bag-of-words hashing embedder.
type Embedder struct {
	dimensions int
}

// Option configures the Embedder.
type Option func(*Embedder)

// WithDimensions sets the number of hash buckets.
func WithDimensions(dimensions int) Option {
	return func(e *Embedder) {
		if dimensions > 0 {
			e.dimensions = dimensions
		}
	}
}

// New creates a hashing embedder.
func New(opts ...Option) *Embedder {
	e := &Embedder{dimensions: DefaultDimensions}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetEmbedding implements the embedder.Embedder interface.
func (e *Embedder) GetEmbedding(_ context.Context, text string) ([]float64, error) {
	vector := make([]float64, e.dimensions)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vector[int(h.Sum32())%e.dimensions]++
	}
	// L2-normalize so cosine similarity behaves like the real embedders.
	var norm float64
	for _, v := range vector {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vector {
			vector[i] /= norm
		}
	}
	return vector, nil
}

// GetDimensions implements the embedder.Embedder interface.
func (e *Embedder) GetDimensions() int {
	return e.dimensions
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
