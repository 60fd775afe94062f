//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package judge provides the judgment oracle used by the metric evaluators.
//
// A Judge answers small constrained questions: is this sentence relevant, is
// this claim entailed, how well does the answer cover this sub-question. The
// default implementation delegates to a model.Model; NewLexical returns a
// deterministic token-overlap implementation for offline use and tests.
package judge

import "context"

// Coverage classifies how well an answer covers a sub-question.
type Coverage int

const (
	// CoverageNotAnswered means the answer does not address the sub-question.
	CoverageNotAnswered Coverage = iota
	// CoveragePartial means the answer addresses the sub-question incompletely.
	CoveragePartial
	// CoverageAnswered means the answer fully addresses the sub-question.
	CoverageAnswered
)

// String returns the string representation of the coverage label.
func (c Coverage) String() string {
	switch c {
	case CoverageAnswered:
		return "ANSWERED"
	case CoveragePartial:
		return "PARTIAL"
	default:
		return "NOT_ANSWERED"
	}
}

// Weight returns the scoring weight of the coverage label.
func (c Coverage) Weight() float64 {
	switch c {
	case CoverageAnswered:
		return 1.0
	case CoveragePartial:
		return 0.5
	default:
		return 0.0
	}
}

// Judge issues relevance, entailment and coverage judgments.
//
// All methods fail closed on their own parsing: an unparseable oracle reply
// maps to the conservative outcome. Transport errors are returned to the
// caller, which applies the conservative fallback and keeps scoring.
type Judge interface {
	// RelevantSentences judges, per sentence, whether it is relevant to the
	// question. The returned slice has the same length as sentences.
	RelevantSentences(ctx context.Context, question string, sentences []string) ([]bool, error)
	// SnippetRelevant judges whether a whole snippet is relevant to the question.
	SnippetRelevant(ctx context.Context, question, snippet string) (bool, error)
	// Entailed judges whether a claim is entailed by the given context text.
	Entailed(ctx context.Context, claim, contextText string) (bool, error)
	// Coverage judges how well the answer covers a single sub-question.
	Coverage(ctx context.Context, subQuestion, answer string) (Coverage, error)
}

// Decomposer breaks a question into sub-questions. It is a separate,
// pluggable strategy because decomposition is the dominant source of
// run-to-run variance in completeness scoring.
type Decomposer interface {
	// Decompose returns 3-5 sub-questions for the given question. An empty
	// result is valid; the caller falls back to the whole question.
	Decompose(ctx context.Context, question string) ([]string, error)
}
