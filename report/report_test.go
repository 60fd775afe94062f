//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/kbeval/evaluation/metric"
	"trpc.group/trpc-go/kbeval/evaluation/transaction"
)

func scoredTx(t *testing.T, question string, overall float64, createdAt time.Time) *transaction.Transaction {
	t.Helper()
	tx := transaction.New(question, nil, "answer")
	tx.CreatedAt = createdAt
	require.NoError(t, tx.Finalize(metric.Scores{
		Relevancy:    overall,
		Completeness: overall,
		Faithfulness: overall,
		PrecisionAtK: overall,
		Overall:      overall,
	}))
	return tx
}

func TestBuildSummaryAverages(t *testing.T) {
	now := time.Now().UTC()
	txs := []*transaction.Transaction{
		scoredTx(t, "a", 0.2, now),
		scoredTx(t, "b", 0.4, now.Add(time.Second)),
		scoredTx(t, "c", 0.9, now.Add(2*time.Second)),
	}

	summary, err := BuildSummary(txs, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.NumTransactions)
	assert.InDelta(t, 0.5, summary.AvgMetrics.Overall, 1e-9)
	assert.InDelta(t, 0.5, summary.AvgMetrics.Relevancy, 1e-9)

	require.Len(t, summary.WorstQuestions, 2)
	assert.Equal(t, "a", summary.WorstQuestions[0].Question)
	assert.Equal(t, "b", summary.WorstQuestions[1].Question)
}

func TestBuildSummaryTieBreakByEarliestCreation(t *testing.T) {
	now := time.Now().UTC()
	later := scoredTx(t, "later", 0.3, now.Add(time.Minute))
	earlier := scoredTx(t, "earlier", 0.3, now)

	summary, err := BuildSummary([]*transaction.Transaction{later, earlier}, 1)
	require.NoError(t, err)
	require.Len(t, summary.WorstQuestions, 1)
	assert.Equal(t, "earlier", summary.WorstQuestions[0].Question)
}

func TestBuildSummaryEmpty(t *testing.T) {
	summary, err := BuildSummary(nil, 3)
	require.NoError(t, err)
	assert.Zero(t, summary.NumTransactions)
	assert.Empty(t, summary.WorstQuestions)
}

func TestBuildSummaryRejectsUnfinalized(t *testing.T) {
	_, err := BuildSummary([]*transaction.Transaction{transaction.New("q", nil, "a")}, 3)
	assert.Error(t, err)
}

func TestWriterRejectsUnfinalized(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})
	assert.Error(t, w.WriteTransaction(transaction.New("q", nil, "a")))
	assert.Error(t, w.WriteTransaction(nil))
}

func TestWriteReport(t *testing.T) {
	now := time.Now().UTC()
	txs := []*transaction.Transaction{
		scoredTx(t, "a", 0.2, now),
		nil,
		scoredTx(t, "b", 0.8, now.Add(time.Second)),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, WithWorstCount(1))
	require.NoError(t, w.WriteReport(txs))

	var lines []map[string]any
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var obj map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &obj))
		lines = append(lines, obj)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, lines, 3)

	assert.Equal(t, "a", lines[0]["question"])
	assert.Equal(t, "b", lines[1]["question"])

	summary := lines[2]
	assert.EqualValues(t, 2, summary["num_transactions"])
	worst, ok := summary["worst_questions"].([]any)
	require.True(t, ok)
	require.Len(t, worst, 1)
	assert.Equal(t, "a", worst[0].(map[string]any)["question"])
}
