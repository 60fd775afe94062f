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
	"fmt"
	"strings"
)

// relevantSentencesPrompt asks the oracle to list the numbers of the
// sentences relevant to the question, or NONE.
func relevantSentencesPrompt(question string, sentences []string) string {
	var sb strings.Builder
	sb.WriteString("Given this question and numbered sentences from retrieved documents, ")
	sb.WriteString("identify which sentences are relevant to answering the question.\n\n")
	sb.WriteString("QUESTION: ")
	sb.WriteString(question)
	sb.WriteString("\n\nSENTENCES:\n")
	for i, sentence := range sentences {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, sentence)
	}
	sb.WriteString("\nTASK: List ONLY the sentence numbers that are relevant to answering the question.\n\n")
	sb.WriteString("Format: Just list numbers like: 1, 3, 5\n")
	sb.WriteString("If nothing is relevant, respond with: NONE\n")
	return sb.String()
}

// snippetRelevantPrompt asks for a single-word relevance verdict on one snippet.
func snippetRelevantPrompt(question, snippet string) string {
	var sb strings.Builder
	sb.WriteString("Is this KB document relevant for answering the user's question?\n\n")
	sb.WriteString("QUESTION: ")
	sb.WriteString(question)
	sb.WriteString("\n\nKB DOCUMENT:\n")
	sb.WriteString(snippet)
	sb.WriteString("\n\nRespond with ONLY one word: RELEVANT or NOT_RELEVANT\n")
	return sb.String()
}

// entailedPrompt asks for a single-word entailment verdict on one claim.
func entailedPrompt(claim, contextText string) string {
	var sb strings.Builder
	sb.WriteString("You are checking if a claim from an AI answer is supported by source documents.\n\n")
	sb.WriteString("CLAIM:\n")
	sb.WriteString(claim)
	sb.WriteString("\n\nSOURCE DOCUMENTS:\n")
	sb.WriteString(contextText)
	sb.WriteString("\n\nRespond with ONLY one word: ENTAILED or NOT_ENTAILED\n")
	return sb.String()
}

// coveragePrompt asks for a single-word coverage verdict on one sub-question.
func coveragePrompt(subQuestion, answer string) string {
	var sb strings.Builder
	sb.WriteString("You are evaluating if an answer addresses a sub-question.\n\n")
	sb.WriteString("SUB-QUESTION: ")
	sb.WriteString(subQuestion)
	sb.WriteString("\n\nANSWER:\n")
	sb.WriteString(answer)
	sb.WriteString("\n\nRespond with ONLY one word: ANSWERED, PARTIAL or NOT_ANSWERED\n")
	return sb.String()
}

// decomposePrompt asks the oracle to break a question into sub-questions.
func decomposePrompt(question string) string {
	var sb strings.Builder
	sb.WriteString("Break the following question into 3-5 sub-questions that need to be answered ")
	sb.WriteString("for a complete response.\n\n")
	sb.WriteString("QUESTION: ")
	sb.WriteString(question)
	sb.WriteString("\n\nFormat your response EXACTLY like this:\n")
	sb.WriteString("1. [sub-question]\n")
	sb.WriteString("2. [sub-question]\n")
	sb.WriteString("3. [sub-question]\n")
	return sb.String()
}
