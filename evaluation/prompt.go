//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package evaluation

import (
	"fmt"
	"strings"

	"trpc.group/trpc-go/kbeval/evaluation/transaction"
)

// answerPrompt builds the answer-generation prompt from the question and
// the retrieved snippets, numbered with their similarity scores.
func answerPrompt(question string, snippets []transaction.RetrievedSnippet) string {
	var sb strings.Builder
	sb.WriteString("You are a knowledge base assistant for IT infrastructure troubleshooting.\n")
	sb.WriteString("Answer the user's question using ONLY the retrieved KB articles below.\n\n")
	sb.WriteString("USER QUESTION:\n")
	sb.WriteString(question)
	sb.WriteString("\n\nRETRIEVED KB ARTICLES:\n")
	for i, snippet := range snippets {
		fmt.Fprintf(&sb, "[Snippet %d] (Score: %.3f)\n%s\n\n", i+1, snippet.Similarity, snippet.Text)
	}
	sb.WriteString("If the articles do not contain the needed information, say so explicitly.\n")
	return sb.String()
}
