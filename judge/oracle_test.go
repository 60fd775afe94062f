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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/kbeval/model"
)

// fakeModel replays a script of replies and errors, one per call.
type fakeModel struct {
	replies []string
	errs    []error
	calls   int
}

func (m *fakeModel) GenerateContent(ctx context.Context, _ *model.Request) (*model.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i := m.calls
	m.calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	reply := ""
	if i < len(m.replies) {
		reply = m.replies[i]
	}
	return &model.Response{Content: reply}, nil
}

func (m *fakeModel) Info() model.Info {
	return model.Info{Name: "fake"}
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&fakeModel{}, WithTimeout(0))
	assert.Error(t, err)

	_, err = New(&fakeModel{}, WithMaxRetries(-1))
	assert.Error(t, err)
}

func TestModelJudgeRelevantSentences(t *testing.T) {
	m := &fakeModel{replies: []string{"1, 3"}}
	j, err := New(m)
	require.NoError(t, err)

	relevant, err := j.RelevantSentences(context.Background(), "q", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, relevant)
	assert.Equal(t, 1, m.calls)
}

func TestModelJudgeRelevantSentencesEmpty(t *testing.T) {
	m := &fakeModel{}
	j, err := New(m)
	require.NoError(t, err)

	relevant, err := j.RelevantSentences(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Empty(t, relevant)
	assert.Zero(t, m.calls)
}

func TestModelJudgeRetriesTransient(t *testing.T) {
	m := &fakeModel{
		errs:    []error{model.NewTransientError(errors.New("rate limited")), nil},
		replies: []string{"", "ENTAILED"},
	}
	j, err := New(m, WithRetryDelay(time.Millisecond))
	require.NoError(t, err)

	entailed, err := j.Entailed(context.Background(), "claim", "context")
	require.NoError(t, err)
	assert.True(t, entailed)
	assert.Equal(t, 2, m.calls)
}

func TestModelJudgeNoRetryOnPermanentError(t *testing.T) {
	m := &fakeModel{errs: []error{errors.New("bad request")}}
	j, err := New(m, WithRetryDelay(time.Millisecond))
	require.NoError(t, err)

	_, err = j.Entailed(context.Background(), "claim", "context")
	assert.Error(t, err)
	assert.Equal(t, 1, m.calls)
}

func TestModelJudgeRetryBudgetExhausted(t *testing.T) {
	transient := model.NewTransientError(errors.New("unavailable"))
	m := &fakeModel{errs: []error{transient, transient, transient}}
	j, err := New(m, WithMaxRetries(1), WithRetryDelay(time.Millisecond))
	require.NoError(t, err)

	_, err = j.SnippetRelevant(context.Background(), "q", "snippet")
	assert.Error(t, err)
	assert.Equal(t, 2, m.calls)
}

func TestModelJudgeCoverageErrorDefaultsNotAnswered(t *testing.T) {
	m := &fakeModel{errs: []error{errors.New("boom")}}
	j, err := New(m)
	require.NoError(t, err)

	coverage, err := j.Coverage(context.Background(), "sub", "answer")
	assert.Error(t, err)
	assert.Equal(t, CoverageNotAnswered, coverage)
}

func TestModelJudgeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := &fakeModel{replies: []string{"ENTAILED"}}
	j, err := New(m)
	require.NoError(t, err)

	_, err = j.Entailed(ctx, "claim", "context")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestModelJudgeDecompose(t *testing.T) {
	m := &fakeModel{replies: []string{"1. Why is the link down?\n2. Is the switch port disabled?"}}
	j, err := New(m)
	require.NoError(t, err)

	subQuestions, err := j.Decompose(context.Background(), "Why is the link down and is the port disabled?")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Why is the link down?",
		"Is the switch port disabled?",
	}, subQuestions)
}
