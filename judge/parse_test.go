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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSentenceNumbers(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		total int
		want  []bool
	}{
		{
			name:  "comma separated",
			reply: "1, 3, 5",
			total: 5,
			want:  []bool{true, false, true, false, true},
		},
		{
			name:  "none",
			reply: "NONE",
			total: 3,
			want:  []bool{false, false, false},
		},
		{
			name:  "empty reply",
			reply: "   ",
			total: 2,
			want:  []bool{false, false},
		},
		{
			name:  "out of range dropped",
			reply: "2, 7, 0",
			total: 3,
			want:  []bool{false, true, false},
		},
		{
			name:  "verbose reply",
			reply: "The relevant sentences are 1 and 2.",
			total: 3,
			want:  []bool{true, true, false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSentenceNumbers(tt.reply, tt.total))
		})
	}
}

func TestParseBinaryVerdict(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{name: "positive", reply: "RELEVANT", want: true},
		{name: "negative", reply: "NOT_RELEVANT", want: false},
		{name: "negative with space", reply: "not_relevant", want: false},
		{name: "lowercase positive", reply: "relevant", want: true},
		{name: "verbose positive", reply: "The snippet is RELEVANT to the question.", want: true},
		{name: "unparseable fails closed", reply: "maybe", want: false},
		{name: "empty fails closed", reply: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseBinaryVerdict(tt.reply, "RELEVANT", "NOT_RELEVANT"))
		})
	}
}

func TestParseCoverage(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  Coverage
	}{
		{name: "answered", reply: "ANSWERED", want: CoverageAnswered},
		{name: "partial", reply: "PARTIAL", want: CoveragePartial},
		{name: "not answered underscore", reply: "NOT_ANSWERED", want: CoverageNotAnswered},
		{name: "not answered space", reply: "not answered", want: CoverageNotAnswered},
		{name: "unparseable fails closed", reply: "I cannot tell", want: CoverageNotAnswered},
		{name: "empty fails closed", reply: "", want: CoverageNotAnswered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCoverage(tt.reply))
		})
	}
}

func TestParseSubQuestions(t *testing.T) {
	reply := `1. Why does the VPN disconnect?
2) Is the disconnect periodic?
- Does it affect all users?
not a list item
3. [What changed recently?]`
	got := parseSubQuestions(reply, 5)
	assert.Equal(t, []string{
		"Why does the VPN disconnect?",
		"Is the disconnect periodic?",
		"Does it affect all users?",
		"What changed recently?",
	}, got)
}

func TestParseSubQuestionsCapped(t *testing.T) {
	reply := "1. a?\n2. b?\n3. c?\n4. d?"
	assert.Len(t, parseSubQuestions(reply, 2), 2)
}

func TestCoverageWeight(t *testing.T) {
	assert.Equal(t, 1.0, CoverageAnswered.Weight())
	assert.Equal(t, 0.5, CoveragePartial.Weight())
	assert.Equal(t, 0.0, CoverageNotAnswered.Weight())
}
