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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicalRelevantSentences(t *testing.T) {
	j := NewLexical()
	question := "Why does the VPN tunnel disconnect every hour?"
	sentences := []string{
		"The VPN tunnel disconnects when the DHCP lease expires every hour.",
		"Our cafeteria menu changes on Fridays.",
	}
	relevant, err := j.RelevantSentences(context.Background(), question, sentences)
	require.NoError(t, err)
	require.Len(t, relevant, 2)
	assert.True(t, relevant[0])
	assert.False(t, relevant[1])
}

func TestLexicalDeterministic(t *testing.T) {
	j := NewLexical()
	ctx := context.Background()
	first, err := j.Entailed(ctx, "the lease expires hourly", "the DHCP lease expires hourly on this subnet")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, err := j.Entailed(ctx, "the lease expires hourly", "the DHCP lease expires hourly on this subnet")
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestLexicalCoverage(t *testing.T) {
	j := NewLexical()
	ctx := context.Background()

	full, err := j.Coverage(ctx, "Why does the tunnel disconnect?", "The tunnel can disconnect when the lease expires.")
	require.NoError(t, err)
	assert.Equal(t, CoverageAnswered, full)

	none, err := j.Coverage(ctx, "Why does the tunnel disconnect?", "Restart your printer.")
	require.NoError(t, err)
	assert.Equal(t, CoverageNotAnswered, none)
}

func TestLexicalDecompose(t *testing.T) {
	j := NewLexical()
	subQuestions, err := j.Decompose(context.Background(),
		"Why does the VPN disconnect every hour and how can I extend the DHCP lease?")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Why does the VPN disconnect every hour",
		"how can I extend the DHCP lease",
	}, subQuestions)
}

func TestLexicalDecomposeDropsShortFragments(t *testing.T) {
	j := NewLexical()
	subQuestions, err := j.Decompose(context.Background(), "VPN down? and me too")
	require.NoError(t, err)
	assert.Empty(t, subQuestions)
}

func TestLexicalThresholdOptions(t *testing.T) {
	j := NewLexical(WithEntailmentThreshold(0.1))
	entailed, err := j.Entailed(context.Background(),
		"the gateway drops idle sessions quickly",
		"sessions are dropped")
	require.NoError(t, err)
	assert.True(t, entailed)
}
