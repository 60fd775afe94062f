//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package retriever turns a question into ranked knowledge-base snippets.
package retriever

import (
	"context"
	"errors"
	"fmt"

	"trpc.group/trpc-go/kbeval/knowledge/document"
	"trpc.group/trpc-go/kbeval/knowledge/embedder"
	"trpc.group/trpc-go/kbeval/knowledge/source"
	"trpc.group/trpc-go/kbeval/knowledge/vectorstore"
	"trpc.group/trpc-go/kbeval/log"
)

// Query is a retrieval request.
type Query struct {
	// Text is the question text.
	Text string
	// Limit caps the number of returned documents.
	Limit int
	// MinScore filters out weak matches.
	MinScore float64
}

// RelevantDocument pairs a document with its retrieval score.
type RelevantDocument struct {
	Document *document.Document
	// Score is the similarity in [0,1].
	Score float64
}

// Result holds retrieved documents ordered by descending score.
type Result struct {
	Documents []*RelevantDocument
}

// Retriever retrieves relevant documents for a query.
type Retriever interface {
	// Retrieve returns documents relevant to the query.
	Retrieve(ctx context.Context, query *Query) (*Result, error)
	// Close releases owned resources.
	Close() error
}

// Default is the default retriever built from an embedder and a vector store.
type Default struct {
	embedder    embedder.Embedder
	vectorStore vectorstore.VectorStore
}

// Verify that Default implements the Retriever interface.
var _ Retriever = (*Default)(nil)

// Option configures the default retriever.
type Option func(*Default)

// WithEmbedder sets the embedder.
func WithEmbedder(e embedder.Embedder) Option {
	return func(r *Default) {
		r.embedder = e
	}
}

// WithVectorStore sets the vector store.
func WithVectorStore(vs vectorstore.VectorStore) Option {
	return func(r *Default) {
		r.vectorStore = vs
	}
}

// New creates a default retriever.
func New(opts ...Option) *Default {
	r := &Default{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Index embeds and stores all documents produced by src.
func (r *Default) Index(ctx context.Context, src source.Source) error {
	if r.embedder == nil || r.vectorStore == nil {
		return errors.New("retriever requires an embedder and a vector store")
	}
	docs, err := src.ReadDocuments(ctx)
	if err != nil {
		return fmt.Errorf("read documents from %s: %w", src.Name(), err)
	}
	for _, doc := range docs {
		embedding, err := r.embedder.GetEmbedding(ctx, doc.Content)
		if err != nil {
			return fmt.Errorf("embed document %s: %w", doc.ID, err)
		}
		if err := r.vectorStore.Add(ctx, doc, embedding); err != nil {
			return fmt.Errorf("store document %s: %w", doc.ID, err)
		}
	}
	log.Infof("indexed %d documents from source %s", len(docs), src.Name())
	return nil
}

// Retrieve implements the Retriever interface.
func (r *Default) Retrieve(ctx context.Context, query *Query) (*Result, error) {
	if query == nil || query.Text == "" {
		return nil, errors.New("query text is empty")
	}
	if r.embedder == nil || r.vectorStore == nil {
		return nil, errors.New("retriever requires an embedder and a vector store")
	}
	embedding, err := r.embedder.GetEmbedding(ctx, query.Text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	searchResult, err := r.vectorStore.Search(ctx, &vectorstore.SearchQuery{
		Vector:   embedding,
		Limit:    query.Limit,
		MinScore: query.MinScore,
	})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	result := &Result{Documents: make([]*RelevantDocument, 0, len(searchResult.Results))}
	for _, scored := range searchResult.Results {
		result.Documents = append(result.Documents, &RelevantDocument{
			Document: scored.Document,
			Score:    scored.Score,
		})
	}
	return result, nil
}

// Close implements the Retriever interface.
func (r *Default) Close() error {
	if r.vectorStore != nil {
		return r.vectorStore.Close()
	}
	return nil
}
