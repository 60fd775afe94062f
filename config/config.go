//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package config defines process configuration and its loading.
package config

import (
	"fmt"
	"time"

	"trpc.group/trpc-go/kbeval/evaluation/metric"
)

// OracleConfig bounds judgment oracle calls.
type OracleConfig struct {
	// TimeoutSeconds bounds a single oracle call.
	TimeoutSeconds int `koanf:"timeout_seconds"`
	// MaxRetries is the retry budget for transient failures.
	MaxRetries int `koanf:"max_retries"`
}

// Timeout returns the oracle timeout as a duration.
func (c OracleConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ModelConfig selects the completion and embedding backends. An empty Name
// switches the engine to the deterministic offline judges.
type ModelConfig struct {
	// Name is the chat model, e.g. "llama3.2" or "gpt-4o-mini".
	Name string `koanf:"name"`
	// BaseURL points at an OpenAI-compatible endpoint.
	BaseURL string `koanf:"base_url"`
	// APIKey authenticates against the endpoint.
	APIKey string `koanf:"api_key"`
	// EmbeddingModel is the embedding model name.
	EmbeddingModel string `koanf:"embedding_model"`
	// EmbeddingDimensions is the embedding vector size.
	EmbeddingDimensions int `koanf:"embedding_dimensions"`
}

// ReportConfig shapes the emitted report.
type ReportConfig struct {
	// WorstCount is the number of worst questions listed in the summary.
	WorstCount int `koanf:"worst_count"`
	// Path is the report output file; empty means stdout.
	Path string `koanf:"path"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// KBPath is the directory of knowledge-base articles to index.
	KBPath string `koanf:"kb_path"`

	// TopK is the retrieval and precision window.
	TopK int `koanf:"top_k"`

	// Parallelism bounds concurrent transactions in batch runs.
	Parallelism int `koanf:"parallelism"`

	// Weights are the aggregation weights; they must sum to 1.0.
	Weights metric.Weights `koanf:"weights"`

	// Oracle bounds judgment oracle calls.
	Oracle OracleConfig `koanf:"oracle"`

	// Model selects the completion and embedding backends.
	Model ModelConfig `koanf:"model"`

	// Report shapes the emitted report.
	Report ReportConfig `koanf:"report"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		TopK:        3,
		Parallelism: 4,
		Weights:     metric.DefaultWeights(),
		Oracle: OracleConfig{
			TimeoutSeconds: 30,
			MaxRetries:     1,
		},
		Model: ModelConfig{
			EmbeddingModel:      "text-embedding-3-small",
			EmbeddingDimensions: 1536,
		},
		Report: ReportConfig{
			WorstCount: 3,
		},
	}
}

// Validate checks the configuration invariants. Violations are fatal at
// startup, never at request time.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be greater than 0, got %d", c.TopK)
	}
	if c.Parallelism <= 0 {
		return fmt.Errorf("parallelism must be greater than 0, got %d", c.Parallelism)
	}
	if c.Oracle.TimeoutSeconds <= 0 {
		return fmt.Errorf("oracle.timeout_seconds must be greater than 0, got %d", c.Oracle.TimeoutSeconds)
	}
	if c.Oracle.MaxRetries < 0 {
		return fmt.Errorf("oracle.max_retries must not be negative, got %d", c.Oracle.MaxRetries)
	}
	if c.Report.WorstCount <= 0 {
		return fmt.Errorf("report.worst_count must be greater than 0, got %d", c.Report.WorstCount)
	}
	return nil
}
