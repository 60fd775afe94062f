//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package metric provides metrics collection for kbeval.
// It integrates with OpenTelemetry; without a configured meter provider the
// instruments are no-ops.
package metric

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"trpc.group/trpc-go/kbeval/log"
)

const meterName = "trpc.group/trpc-go/kbeval"

var (
	initOnce sync.Once

	oracleRequestCnt   metric.Int64Counter
	oracleFallbackCnt  metric.Int64Counter
	evaluationDuration metric.Float64Histogram
)

func instruments() {
	initOnce.Do(func() {
		meter := otel.Meter(meterName)
		var err error
		if oracleRequestCnt, err = meter.Int64Counter(
			"kbeval_oracle_request_total",
			metric.WithDescription("Total number of judgment oracle requests"),
			metric.WithUnit("1"),
		); err != nil {
			log.Errorf("create oracle request counter: %v", err)
		}
		if oracleFallbackCnt, err = meter.Int64Counter(
			"kbeval_oracle_fallback_total",
			metric.WithDescription("Total number of conservative fallbacks applied after oracle failures"),
			metric.WithUnit("1"),
		); err != nil {
			log.Errorf("create oracle fallback counter: %v", err)
		}
		if evaluationDuration, err = meter.Float64Histogram(
			"kbeval_evaluation_duration_seconds",
			metric.WithDescription("Duration of a full transaction evaluation"),
			metric.WithUnit("s"),
		); err != nil {
			log.Errorf("create evaluation duration histogram: %v", err)
		}
	})
}

// IncOracleRequest counts one judgment oracle request for the given metric.
func IncOracleRequest(ctx context.Context, metricName string) {
	instruments()
	if oracleRequestCnt == nil {
		return
	}
	oracleRequestCnt.Add(ctx, 1, metric.WithAttributes(attribute.String("metric", metricName)))
}

// IncOracleFallback counts one conservative fallback for the given metric.
func IncOracleFallback(ctx context.Context, metricName string) {
	instruments()
	if oracleFallbackCnt == nil {
		return
	}
	oracleFallbackCnt.Add(ctx, 1, metric.WithAttributes(attribute.String("metric", metricName)))
}

// RecordEvaluationDuration records the latency of one transaction evaluation.
func RecordEvaluationDuration(ctx context.Context, seconds float64) {
	instruments()
	if evaluationDuration == nil {
		return
	}
	evaluationDuration.Record(ctx, seconds)
}
