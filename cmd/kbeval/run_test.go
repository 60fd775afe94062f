//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/kbeval/config"
)

func TestReadQuestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	require.NoError(t, os.WriteFile(path, []byte(`
# troubleshooting set
Why does the VPN disconnect?

How do I reset the printer?
`), 0o644))

	questions, err := readQuestions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Why does the VPN disconnect?",
		"How do I reset the printer?",
	}, questions)
}

func TestReadQuestionsMissingFile(t *testing.T) {
	_, err := readQuestions(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")

	cfg, err := loadConfig(&runFlags{kbPath: "./kb", topK: 7, model: "gpt-4o-mini", debug: true})
	require.NoError(t, err)
	assert.Equal(t, "./kb", cfg.KBPath)
	assert.Equal(t, 7, cfg.TopK)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigRejectsInvalidOverride(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("KBEVAL_PARALLELISM", "0")

	_, err := loadConfig(&runFlags{})
	assert.Error(t, err)
}
