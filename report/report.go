//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package report serializes scored transactions for downstream consumers:
// one JSON object per transaction plus a summary with average metrics and
// the worst-scoring questions.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"trpc.group/trpc-go/kbeval/evaluation/metric"
	"trpc.group/trpc-go/kbeval/evaluation/transaction"
)

// DefaultWorstCount is the default number of worst questions in a summary.
const DefaultWorstCount = 3

// WorstQuestion identifies a low-scoring question, a candidate KB gap.
type WorstQuestion struct {
	Question  string    `json:"question"`
	Overall   float64   `json:"overall"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary aggregates a batch of scored transactions.
type Summary struct {
	// NumTransactions is the number of summarized transactions.
	NumTransactions int `json:"num_transactions"`
	// AvgMetrics holds the mean of each metric across transactions.
	AvgMetrics metric.Scores `json:"avg_metrics"`
	// WorstQuestions lists the lowest-overall questions, worst first.
	// Ties are broken by earliest creation time.
	WorstQuestions []WorstQuestion `json:"worst_questions"`
}

// BuildSummary computes the summary over finalized transactions. Unfinalized
// transactions are rejected: partial scores must never reach consumers.
func BuildSummary(txs []*transaction.Transaction, worstCount int) (*Summary, error) {
	if worstCount <= 0 {
		worstCount = DefaultWorstCount
	}
	summary := &Summary{NumTransactions: len(txs)}
	if len(txs) == 0 {
		return summary, nil
	}
	for _, tx := range txs {
		if tx == nil || !tx.Finalized() {
			return nil, errors.New("summary requires finalized transactions")
		}
		summary.AvgMetrics.Relevancy += tx.Scores.Relevancy
		summary.AvgMetrics.Completeness += tx.Scores.Completeness
		summary.AvgMetrics.Faithfulness += tx.Scores.Faithfulness
		summary.AvgMetrics.PrecisionAtK += tx.Scores.PrecisionAtK
		summary.AvgMetrics.Overall += tx.Scores.Overall
	}
	n := float64(len(txs))
	summary.AvgMetrics.Relevancy /= n
	summary.AvgMetrics.Completeness /= n
	summary.AvgMetrics.Faithfulness /= n
	summary.AvgMetrics.PrecisionAtK /= n
	summary.AvgMetrics.Overall /= n

	sorted := append([]*transaction.Transaction(nil), txs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Scores.Overall != sorted[j].Scores.Overall {
			return sorted[i].Scores.Overall < sorted[j].Scores.Overall
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	if len(sorted) > worstCount {
		sorted = sorted[:worstCount]
	}
	for _, tx := range sorted {
		summary.WorstQuestions = append(summary.WorstQuestions, WorstQuestion{
			Question:  tx.Question,
			Overall:   tx.Scores.Overall,
			CreatedAt: tx.CreatedAt,
		})
	}
	return summary, nil
}

// Writer emits transactions as JSON lines to an underlying writer.
type Writer struct {
	w          io.Writer
	encoder    *json.Encoder
	worstCount int
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWorstCount sets how many worst questions the summary lists.
func WithWorstCount(count int) WriterOption {
	return func(w *Writer) {
		if count > 0 {
			w.worstCount = count
		}
	}
}

// NewWriter creates a report writer.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	writer := &Writer{w: w, encoder: json.NewEncoder(w), worstCount: DefaultWorstCount}
	for _, opt := range opts {
		opt(writer)
	}
	return writer
}

// WriteTransaction writes one finalized transaction as a JSON line.
func (w *Writer) WriteTransaction(tx *transaction.Transaction) error {
	if tx == nil || !tx.Finalized() {
		return errors.New("report requires a finalized transaction")
	}
	if err := w.encoder.Encode(tx); err != nil {
		return fmt.Errorf("encode transaction %s: %w", tx.ID, err)
	}
	return nil
}

// WriteReport writes every transaction followed by the summary object.
func (w *Writer) WriteReport(txs []*transaction.Transaction) error {
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		if err := w.WriteTransaction(tx); err != nil {
			return err
		}
	}
	live := make([]*transaction.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx != nil {
			live = append(live, tx)
		}
	}
	summary, err := BuildSummary(live, w.worstCount)
	if err != nil {
		return err
	}
	if err := w.encoder.Encode(summary); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}
