//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package evaluator

import "strings"

// sentenceTerminators end a sentence.
const sentenceTerminators = ".!?"

// splitSentences splits text into trimmed, non-empty sentences. Terminators
// are dropped; newlines also act as boundaries so bullet lists split cleanly.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}
	for _, r := range text {
		if strings.ContainsRune(sentenceTerminators, r) || r == '\n' {
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()
	return sentences
}
