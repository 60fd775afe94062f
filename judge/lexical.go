//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package judge

import (
	"context"
	"strings"
	"unicode"
)

// Verify that Lexical implements Judge and Decomposer.
var (
	_ Judge      = (*Lexical)(nil)
	_ Decomposer = (*Lexical)(nil)
)

// Default overlap thresholds for the lexical judge.
const (
	defaultRelevanceThreshold  = 0.3
	defaultEntailmentThreshold = 0.7
	defaultCoverageThreshold   = 0.6
)

// stopwords are excluded from overlap computation.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "do": {}, "does": {}, "for": {}, "from": {}, "how": {},
	"i": {}, "if": {}, "in": {}, "is": {}, "it": {}, "my": {}, "not": {},
	"of": {}, "on": {}, "or": {}, "should": {}, "that": {}, "the": {},
	"this": {}, "to": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"why": {}, "will": {}, "with": {}, "you": {}, "your": {},
}

// Lexical is a deterministic Judge based on token overlap. It needs no
// network and always produces the same judgment for the same input, which
// makes scoring idempotent when no live oracle is configured.
type Lexical struct {
	relevanceThreshold  float64
	entailmentThreshold float64
	coverageThreshold   float64
}

// LexicalOption configures the lexical judge.
type LexicalOption func(*Lexical)

// WithRelevanceThreshold sets the minimum question-token overlap for a
// sentence or snippet to count as relevant.
func WithRelevanceThreshold(threshold float64) LexicalOption {
	return func(l *Lexical) {
		l.relevanceThreshold = threshold
	}
}

// WithEntailmentThreshold sets the minimum claim-token overlap for a claim
// to count as entailed.
func WithEntailmentThreshold(threshold float64) LexicalOption {
	return func(l *Lexical) {
		l.entailmentThreshold = threshold
	}
}

// WithCoverageThreshold sets the minimum sub-question-token overlap for a
// sub-question to count as fully answered. Half the threshold counts as
// partially answered.
func WithCoverageThreshold(threshold float64) LexicalOption {
	return func(l *Lexical) {
		l.coverageThreshold = threshold
	}
}

// NewLexical creates a deterministic token-overlap judge.
func NewLexical(opt ...LexicalOption) *Lexical {
	l := &Lexical{
		relevanceThreshold:  defaultRelevanceThreshold,
		entailmentThreshold: defaultEntailmentThreshold,
		coverageThreshold:   defaultCoverageThreshold,
	}
	for _, o := range opt {
		o(l)
	}
	return l
}

// RelevantSentences implements the Judge interface.
func (l *Lexical) RelevantSentences(_ context.Context, question string, sentences []string) ([]bool, error) {
	questionTokens := tokenize(question)
	relevant := make([]bool, len(sentences))
	for i, sentence := range sentences {
		relevant[i] = overlap(questionTokens, tokenize(sentence)) >= l.relevanceThreshold
	}
	return relevant, nil
}

// SnippetRelevant implements the Judge interface.
func (l *Lexical) SnippetRelevant(_ context.Context, question, snippet string) (bool, error) {
	return overlap(tokenize(question), tokenize(snippet)) >= l.relevanceThreshold, nil
}

// Entailed implements the Judge interface.
func (l *Lexical) Entailed(_ context.Context, claim, contextText string) (bool, error) {
	return overlap(tokenize(claim), tokenize(contextText)) >= l.entailmentThreshold, nil
}

// Coverage implements the Judge interface.
func (l *Lexical) Coverage(_ context.Context, subQuestion, answer string) (Coverage, error) {
	ratio := overlap(tokenize(subQuestion), tokenize(answer))
	switch {
	case ratio >= l.coverageThreshold:
		return CoverageAnswered, nil
	case ratio >= l.coverageThreshold/2:
		return CoveragePartial, nil
	default:
		return CoverageNotAnswered, nil
	}
}

// Decompose implements the Decomposer interface. It splits the question on
// question marks and coordinating conjunctions; short fragments are dropped.
func (l *Lexical) Decompose(_ context.Context, question string) ([]string, error) {
	var subQuestions []string
	for _, clause := range strings.Split(question, "?") {
		for _, part := range strings.Split(clause, " and ") {
			part = strings.TrimSpace(part)
			if len(tokenize(part)) < 3 {
				continue
			}
			subQuestions = append(subQuestions, part)
			if len(subQuestions) == maxSubQuestions {
				return subQuestions, nil
			}
		}
	}
	return subQuestions, nil
}

// tokenize lowercases, strips punctuation and drops stopwords.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, ok := stopwords[field]; ok {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// overlap returns the fraction of tokens in a that also occur in b.
func overlap(a, b []string) float64 {
	if len(a) == 0 {
		return 0
	}
	present := make(map[string]struct{}, len(b))
	for _, token := range b {
		present[token] = struct{}{}
	}
	matched := 0
	for _, token := range a {
		if _, ok := present[token]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(a))
}
