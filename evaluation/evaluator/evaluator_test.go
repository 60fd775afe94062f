//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package evaluator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/kbeval/evaluation/metric"
	"trpc.group/trpc-go/kbeval/evaluation/transaction"
	"trpc.group/trpc-go/kbeval/judge"
)

// fakeJudge returns scripted judgments. A non-nil err makes every call fail.
type fakeJudge struct {
	relevantMask    []bool
	snippetRelevant map[string]bool
	entailed        map[string]bool
	coverage        map[string]judge.Coverage
	subQuestions    []string
	err             error
}

func (f *fakeJudge) RelevantSentences(_ context.Context, _ string, sentences []string) ([]bool, error) {
	if f.err != nil {
		return nil, f.err
	}
	mask := make([]bool, len(sentences))
	copy(mask, f.relevantMask)
	return mask, nil
}

func (f *fakeJudge) SnippetRelevant(_ context.Context, _, snippet string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.snippetRelevant[snippet], nil
}

func (f *fakeJudge) Entailed(_ context.Context, claim, _ string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.entailed[claim], nil
}

func (f *fakeJudge) Coverage(_ context.Context, subQuestion, _ string) (judge.Coverage, error) {
	if f.err != nil {
		return judge.CoverageNotAnswered, f.err
	}
	return f.coverage[subQuestion], nil
}

func (f *fakeJudge) Decompose(_ context.Context, question string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.subQuestions, nil
}

func newTx(question string, snippetTexts []string, answer string) *transaction.Transaction {
	snippets := make([]transaction.RetrievedSnippet, len(snippetTexts))
	for i, text := range snippetTexts {
		snippets[i] = transaction.RetrievedSnippet{
			Text:       text,
			SourceID:   "doc",
			Similarity: 1.0 - float64(i)*0.1,
		}
	}
	return transaction.New(question, snippets, answer)
}

func TestRelevancyScore(t *testing.T) {
	j := &fakeJudge{relevantMask: []bool{true, false, true}}
	e := NewRelevancy(j)
	assert.Equal(t, metric.MetricContextRelevancy, e.Name())

	tx := newTx("q", []string{"One. Two.", "Three."}, "a")
	score, err := e.Evaluate(context.Background(), tx)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, score, 1e-9)
}

func TestRelevancyZeroSnippets(t *testing.T) {
	e := NewRelevancy(&fakeJudge{})
	score, err := e.Evaluate(context.Background(), newTx("q", nil, "a"))
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestRelevancyOracleFailureScoresZero(t *testing.T) {
	e := NewRelevancy(&fakeJudge{err: errors.New("oracle down")})
	score, err := e.Evaluate(context.Background(), newTx("q", []string{"One."}, "a"))
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestRelevancyCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewRelevancy(&fakeJudge{err: context.Canceled})
	_, err := e.Evaluate(ctx, newTx("q", []string{"One."}, "a"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompletenessAllAnswered(t *testing.T) {
	j := &fakeJudge{
		subQuestions: []string{"a", "b", "c"},
		coverage: map[string]judge.Coverage{
			"a": judge.CoverageAnswered,
			"b": judge.CoverageAnswered,
			"c": judge.CoverageAnswered,
		},
	}
	e := NewCompleteness(j)
	score, err := e.Evaluate(context.Background(), newTx("q", nil, "answer"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestCompletenessMonotonic(t *testing.T) {
	coverages := []judge.Coverage{judge.CoverageAnswered, judge.CoveragePartial, judge.CoverageNotAnswered}
	want := []float64{1.0, 0.5, 0.0}
	for i, c := range coverages {
		j := &fakeJudge{
			subQuestions: []string{"a", "b"},
			coverage:     map[string]judge.Coverage{"a": c, "b": c},
		}
		e := NewCompleteness(j)
		score, err := e.Evaluate(context.Background(), newTx("q", nil, "answer"))
		require.NoError(t, err)
		assert.Equal(t, want[i], score)
	}
}

func TestCompletenessDecompositionFailureFallsBackToQuestion(t *testing.T) {
	// Decomposition fails but coverage succeeds: the whole question becomes
	// the single sub-question.
	j := &coverageOnlyJudge{
		decomposeErr: errors.New("oracle down"),
		coverage:     judge.CoveragePartial,
	}
	e := NewCompleteness(j)
	score, err := e.Evaluate(context.Background(), newTx("the question", nil, "answer"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, score)
	assert.Equal(t, []string{"the question"}, j.coverageCalls)
}

func TestCompletenessCoverageFailureFailsClosed(t *testing.T) {
	j := &coverageOnlyJudge{
		subQuestions: []string{"a", "b"},
		coverageErr:  errors.New("oracle down"),
	}
	e := NewCompleteness(j)
	score, err := e.Evaluate(context.Background(), newTx("q", nil, "answer"))
	require.NoError(t, err)
	assert.Zero(t, score)
}

// coverageOnlyJudge lets decomposition and coverage fail independently.
type coverageOnlyJudge struct {
	fakeJudge
	subQuestions  []string
	decomposeErr  error
	coverageErr   error
	coverage      judge.Coverage
	coverageCalls []string
}

func (f *coverageOnlyJudge) Decompose(_ context.Context, _ string) ([]string, error) {
	if f.decomposeErr != nil {
		return nil, f.decomposeErr
	}
	return f.subQuestions, nil
}

func (f *coverageOnlyJudge) Coverage(_ context.Context, subQuestion, _ string) (judge.Coverage, error) {
	f.coverageCalls = append(f.coverageCalls, subQuestion)
	if f.coverageErr != nil {
		return judge.CoverageNotAnswered, f.coverageErr
	}
	return f.coverage, nil
}

func TestFaithfulnessScore(t *testing.T) {
	j := &fakeJudge{entailed: map[string]bool{
		"Claim one": true,
		"Claim two": false,
	}}
	e := NewFaithfulness(j)
	assert.Equal(t, metric.MetricFaithfulness, e.Name())

	tx := newTx("q", []string{"context"}, "Claim one. Claim two.")
	score, err := e.Evaluate(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, 0.5, score)
}

func TestFaithfulnessEmptyAnswer(t *testing.T) {
	e := NewFaithfulness(&fakeJudge{})
	score, err := e.Evaluate(context.Background(), newTx("q", []string{"context"}, "   "))
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestFaithfulnessNoSnippets(t *testing.T) {
	e := NewFaithfulness(&fakeJudge{entailed: map[string]bool{"Claim": true}})
	score, err := e.Evaluate(context.Background(), newTx("q", nil, "Claim."))
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestFaithfulnessOracleFailureFailsClosed(t *testing.T) {
	e := NewFaithfulness(&fakeJudge{err: errors.New("oracle down")})
	score, err := e.Evaluate(context.Background(), newTx("q", []string{"context"}, "Claim one. Claim two."))
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestPrecisionDenominatorIsAlwaysK(t *testing.T) {
	j := &fakeJudge{snippetRelevant: map[string]bool{"s1": true}}
	e, err := NewPrecisionAtK(j, 3)
	require.NoError(t, err)
	assert.Equal(t, metric.MetricPrecisionAtK, e.Name())
	assert.Equal(t, 3, e.K())

	// Only one snippet retrieved: the two missing slots count against the
	// score.
	score, err := e.Evaluate(context.Background(), newTx("q", []string{"s1"}, "a"))
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, score, 1e-9)
}

func TestPrecisionFullWindow(t *testing.T) {
	j := &fakeJudge{snippetRelevant: map[string]bool{"s1": true, "s2": true, "s3": false}}
	e, err := NewPrecisionAtK(j, 3)
	require.NoError(t, err)

	score, err := e.Evaluate(context.Background(), newTx("q", []string{"s1", "s2", "s3", "s4"}, "a"))
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, score, 1e-9)
}

func TestPrecisionRequiresPositiveK(t *testing.T) {
	_, err := NewPrecisionAtK(&fakeJudge{}, 0)
	assert.Error(t, err)
}

func TestPrecisionOracleFailureCountsIrrelevant(t *testing.T) {
	e, err := NewPrecisionAtK(&fakeJudge{err: errors.New("oracle down")}, 2)
	require.NoError(t, err)

	score, err := e.Evaluate(context.Background(), newTx("q", []string{"s1", "s2"}, "a"))
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewRelevancy(&fakeJudge{})))
	require.NoError(t, r.Register(NewFaithfulness(&fakeJudge{})))

	assert.Error(t, r.Register(NewRelevancy(&fakeJudge{})))

	e, err := r.Get(metric.MetricFaithfulness)
	require.NoError(t, err)
	assert.Equal(t, metric.MetricFaithfulness, e.Name())

	assert.Equal(t, []string{metric.MetricContextRelevancy, metric.MetricFaithfulness}, r.List())

	r.Unregister(metric.MetricFaithfulness)
	_, err = r.Get(metric.MetricFaithfulness)
	assert.Error(t, err)
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "terminators",
			text: "One. Two! Three?",
			want: []string{"One", "Two", "Three"},
		},
		{
			name: "newlines",
			text: "- first\n- second",
			want: []string{"- first", "- second"},
		},
		{
			name: "blank",
			text: "  \n ",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSentences(tt.text))
		})
	}
}
