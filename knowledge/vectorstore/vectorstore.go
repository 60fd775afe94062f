//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package vectorstore defines the vector storage contract used by the
// retriever. External backends (qdrant, pgvector, ...) can be plugged in by
// implementing VectorStore; the bundled implementation is in-memory.
package vectorstore

import (
	"context"

	"trpc.group/trpc-go/kbeval/knowledge/document"
)

// SearchQuery is a vector similarity query.
type SearchQuery struct {
	// Vector is the query embedding.
	Vector []float64
	// Limit caps the number of results.
	Limit int
	// MinScore filters out results below this similarity.
	MinScore float64
}

// ScoredDocument pairs a document with its similarity score.
type ScoredDocument struct {
	// Document is the matched document.
	Document *document.Document
	// Score is the similarity in [0,1], higher is closer.
	Score float64
}

// SearchResult holds search results ordered by descending score.
// Ties keep the original insertion order.
type SearchResult struct {
	Results []*ScoredDocument
}

// VectorStore is the interface for vector storage backends.
type VectorStore interface {
	// Add stores a document with its embedding.
	Add(ctx context.Context, doc *document.Document, embedding []float64) error
	// Search performs a similarity search.
	Search(ctx context.Context, query *SearchQuery) (*SearchResult, error)
	// Delete removes a document by ID.
	Delete(ctx context.Context, id string) error
	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)
	// Close releases resources owned by the store.
	Close() error
}
