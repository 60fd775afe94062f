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
	"regexp"
	"strconv"
	"strings"

	"trpc.group/trpc-go/kbeval/log"
)

var (
	numberPattern   = regexp.MustCompile(`\d+`)
	listItemPattern = regexp.MustCompile(`(?m)^\s*(?:\d+[.)]|[-*])\s*(.+?)\s*$`)
)

// parseSentenceNumbers parses a "1, 3, 5" style reply into a relevance mask
// over total sentences. Numbers out of range are dropped. NONE or an empty
// reply yields an all-false mask.
func parseSentenceNumbers(reply string, total int) []bool {
	relevant := make([]bool, total)
	reply = strings.TrimSpace(reply)
	if reply == "" || strings.EqualFold(reply, "NONE") {
		return relevant
	}
	for _, raw := range numberPattern.FindAllString(reply, -1) {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > total {
			continue
		}
		relevant[n-1] = true
	}
	return relevant
}

// parseBinaryVerdict parses a single-word verdict. The negative label is
// checked first because it usually contains the positive label as a
// substring (NOT_RELEVANT contains RELEVANT). Unparseable replies fail
// closed to false.
func parseBinaryVerdict(reply, positive, negative string) bool {
	verdict := strings.ToUpper(strings.TrimSpace(reply))
	if verdict == "" {
		return false
	}
	if strings.Contains(verdict, negative) {
		return false
	}
	if strings.Contains(verdict, positive) {
		return true
	}
	log.Debugf("unparseable binary verdict %q, failing closed", reply)
	return false
}

// parseCoverage parses an ANSWERED/PARTIAL/NOT_ANSWERED verdict. Unparseable
// replies fail closed to NOT_ANSWERED so a confused oracle can never inflate
// the completeness score.
func parseCoverage(reply string) Coverage {
	verdict := strings.ToUpper(strings.TrimSpace(reply))
	switch {
	case strings.Contains(verdict, "NOT_ANSWERED"), strings.Contains(verdict, "NOT ANSWERED"):
		return CoverageNotAnswered
	case strings.Contains(verdict, "PARTIAL"):
		return CoveragePartial
	case strings.Contains(verdict, "ANSWERED"):
		return CoverageAnswered
	default:
		log.Debugf("unparseable coverage verdict %q, failing closed", reply)
		return CoverageNotAnswered
	}
}

// parseSubQuestions parses a numbered or bulleted list of sub-questions.
func parseSubQuestions(reply string, maxItems int) []string {
	var subQuestions []string
	for _, match := range listItemPattern.FindAllStringSubmatch(reply, -1) {
		text := strings.TrimSpace(strings.Trim(match[1], "[]"))
		if text == "" {
			continue
		}
		subQuestions = append(subQuestions, text)
		if len(subQuestions) == maxItems {
			break
		}
	}
	return subQuestions
}
