//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package embedder defines the embedding contract used by the retriever.
package embedder

import "context"

// Embedder converts text into a dense vector.
type Embedder interface {
	// GetEmbedding generates an embedding vector for the given text.
	GetEmbedding(ctx context.Context, text string) ([]float64, error)
	// GetDimensions returns the dimensionality of the produced vectors.
	GetDimensions() int
}
