//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory vector store implementation.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"trpc.group/trpc-go/kbeval/knowledge/document"
	"trpc.group/trpc-go/kbeval/knowledge/vectorstore"
)

// Verify that Store implements the vectorstore.VectorStore interface.
var _ vectorstore.VectorStore = (*Store)(nil)

type entry struct {
	doc       *document.Document
	embedding []float64
	seq       int
}

// Store is a thread-safe in-memory vector store using cosine similarity.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	nextSeq int
}

// New creates an empty in-memory vector store.
func New() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Add implements the vectorstore.VectorStore interface.
func (s *Store) Add(_ context.Context, doc *document.Document, embedding []float64) error {
	if doc == nil || doc.ID == "" {
		return errors.New("document must have an ID")
	}
	if len(embedding) == 0 {
		return fmt.Errorf("document %s has an empty embedding", doc.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[doc.ID]; ok {
		// Updates keep the original insertion order for tie-breaking.
		existing.doc = doc.Clone()
		existing.embedding = append([]float64(nil), embedding...)
		return nil
	}
	s.entries[doc.ID] = &entry{
		doc:       doc.Clone(),
		embedding: append([]float64(nil), embedding...),
		seq:       s.nextSeq,
	}
	s.nextSeq++
	return nil
}

// Search implements the vectorstore.VectorStore interface. Results are
// ordered by descending similarity; ties keep insertion order (stable).
func (s *Store) Search(_ context.Context, query *vectorstore.SearchQuery) (*vectorstore.SearchResult, error) {
	if query == nil || len(query.Vector) == 0 {
		return nil, errors.New("search query must have a vector")
	}
	s.mu.RLock()
	scored := make([]*scoredEntry, 0, len(s.entries))
	for _, e := range s.entries {
		score := cosineSimilarity(query.Vector, e.embedding)
		if score < query.MinScore {
			continue
		}
		scored = append(scored, &scoredEntry{entry: e, score: score})
	}
	s.mu.RUnlock()

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].entry.seq < scored[j].entry.seq
	})
	if query.Limit > 0 && len(scored) > query.Limit {
		scored = scored[:query.Limit]
	}

	result := &vectorstore.SearchResult{Results: make([]*vectorstore.ScoredDocument, 0, len(scored))}
	for _, se := range scored {
		result.Results = append(result.Results, &vectorstore.ScoredDocument{
			Document: se.entry.doc.Clone(),
			Score:    se.score,
		})
	}
	return result, nil
}

// Delete implements the vectorstore.VectorStore interface.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("document %s not found", id)
	}
	delete(s.entries, id)
	return nil
}

// Count implements the vectorstore.VectorStore interface.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Close implements the vectorstore.VectorStore interface.
func (s *Store) Close() error {
	return nil
}

type scoredEntry struct {
	entry *entry
	score float64
}

// cosineSimilarity returns the cosine similarity of a and b mapped to [0,1].
// Mismatched lengths or zero vectors score 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cosine := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Map [-1,1] to [0,1] so downstream similarity stays in range.
	return (cosine + 1) / 2
}
