//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package transaction defines the immutable record of one question-answer
// evaluation: the question, the retrieved snippets, the generated answer and,
// once scoring completes, the metric scores.
package transaction

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"trpc.group/trpc-go/kbeval/evaluation/metric"
)

// RetrievedSnippet is one retrieved unit of source text with its similarity
// score in [0,1]. Snippets are ordered by descending similarity.
type RetrievedSnippet struct {
	// Text is the snippet content.
	Text string `json:"text"`
	// SourceID identifies the document the snippet came from.
	SourceID string `json:"source_id"`
	// Similarity is the retrieval similarity in [0,1].
	Similarity float64 `json:"similarity"`
}

// Transaction is one question-answer-evaluation unit. It is read-only for
// evaluators and immutable once Finalize has been called.
type Transaction struct {
	// ID uniquely identifies the transaction.
	ID string `json:"id"`
	// Question is the user question.
	Question string `json:"question"`
	// Snippets are the retrieved snippets, ordered by descending similarity.
	Snippets []RetrievedSnippet `json:"snippets"`
	// Answer is the generated answer.
	Answer string `json:"answer"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
	// Scores holds the metric scores once the transaction is finalized.
	Scores *metric.Scores `json:"scores,omitempty"`
}

// ErrFinalized is returned when Finalize is called twice.
var ErrFinalized = errors.New("transaction already finalized")

// New creates a transaction for one question.
func New(question string, snippets []RetrievedSnippet, answer string) *Transaction {
	return &Transaction{
		ID:        uuid.NewString(),
		Question:  question,
		Snippets:  append([]RetrievedSnippet(nil), snippets...),
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
}

// Finalize writes the scores exactly once. A finalized transaction rejects
// further writes.
func (t *Transaction) Finalize(scores metric.Scores) error {
	if t.Scores != nil {
		return ErrFinalized
	}
	s := scores
	t.Scores = &s
	return nil
}

// Finalized reports whether the transaction carries final scores.
func (t *Transaction) Finalized() bool {
	return t.Scores != nil
}

// TopK returns the first k snippets, or all of them when fewer exist.
func (t *Transaction) TopK(k int) []RetrievedSnippet {
	if k <= 0 || k >= len(t.Snippets) {
		return t.Snippets
	}
	return t.Snippets[:k]
}

// ContextText returns the union of all snippet text, in retrieval order.
func (t *Transaction) ContextText() string {
	texts := make([]string, 0, len(t.Snippets))
	for _, s := range t.Snippets {
		texts = append(texts, s.Text)
	}
	return strings.Join(texts, "\n\n")
}
