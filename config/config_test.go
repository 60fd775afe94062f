//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, 30*time.Second, cfg.Oracle.Timeout())
	assert.Equal(t, 1, cfg.Oracle.MaxRetries)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero top k", mutate: func(c *Config) { c.TopK = 0 }},
		{name: "negative parallelism", mutate: func(c *Config) { c.Parallelism = -1 }},
		{name: "zero oracle timeout", mutate: func(c *Config) { c.Oracle.TimeoutSeconds = 0 }},
		{name: "negative retries", mutate: func(c *Config) { c.Oracle.MaxRetries = -1 }},
		{name: "zero worst count", mutate: func(c *Config) { c.Report.WorstCount = 0 }},
		{name: "weights not summing to one", mutate: func(c *Config) { c.Weights.Relevancy = 0.9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, *New(), *cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kbeval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
top_k: 5
oracle:
  timeout_seconds: 10
weights:
  relevancy: 0.4
  completeness: 0.3
  faithfulness: 0.2
  precision_at_k: 0.1
`), 0o644))
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 10, cfg.Oracle.TimeoutSeconds)
	assert.Equal(t, 0.4, cfg.Weights.Relevancy)
	// Untouched fields keep their defaults.
	assert.Equal(t, 4, cfg.Parallelism)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kbeval.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_k: 5\n"), 0o644))
	t.Setenv(EnvConfigPath, path)
	t.Setenv("KBEVAL_TOP_K", "7")
	t.Setenv("KBEVAL_ORACLE__MAX_RETRIES", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.TopK)
	assert.Equal(t, 2, cfg.Oracle.MaxRetries)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("KBEVAL_TOP_K", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
