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
	"errors"
	"fmt"
	"time"

	"trpc.group/trpc-go/kbeval/log"
	"trpc.group/trpc-go/kbeval/model"
)

// Verify that ModelJudge implements Judge and Decomposer.
var (
	_ Judge      = (*ModelJudge)(nil)
	_ Decomposer = (*ModelJudge)(nil)
)

// maxSubQuestions caps decomposition output.
const maxSubQuestions = 5

// ModelJudge implements Judge and Decomposer on top of a model.Model.
// Every oracle call is bounded by a timeout and retried once on transient
// failure; the caller decides what a persistent failure means for the score.
type ModelJudge struct {
	model       model.Model
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
	temperature *float64
	maxTokens   *int
}

// New creates a ModelJudge backed by m.
func New(m model.Model, opt ...Option) (*ModelJudge, error) {
	if m == nil {
		return nil, errors.New("model is nil")
	}
	opts := newOptions(opt...)
	if opts.timeout <= 0 {
		return nil, errors.New("timeout must be greater than 0")
	}
	if opts.maxRetries < 0 {
		return nil, errors.New("max retries must not be negative")
	}
	return &ModelJudge{
		model:       m,
		timeout:     opts.timeout,
		maxRetries:  opts.maxRetries,
		retryDelay:  opts.retryDelay,
		temperature: opts.temperature,
		maxTokens:   opts.maxTokens,
	}, nil
}

// RelevantSentences implements the Judge interface.
func (j *ModelJudge) RelevantSentences(ctx context.Context, question string, sentences []string) ([]bool, error) {
	if len(sentences) == 0 {
		return nil, nil
	}
	reply, err := j.complete(ctx, relevantSentencesPrompt(question, sentences))
	if err != nil {
		return nil, err
	}
	return parseSentenceNumbers(reply, len(sentences)), nil
}

// SnippetRelevant implements the Judge interface.
func (j *ModelJudge) SnippetRelevant(ctx context.Context, question, snippet string) (bool, error) {
	reply, err := j.complete(ctx, snippetRelevantPrompt(question, snippet))
	if err != nil {
		return false, err
	}
	return parseBinaryVerdict(reply, "RELEVANT", "NOT_RELEVANT"), nil
}

// Entailed implements the Judge interface.
func (j *ModelJudge) Entailed(ctx context.Context, claim, contextText string) (bool, error) {
	reply, err := j.complete(ctx, entailedPrompt(claim, contextText))
	if err != nil {
		return false, err
	}
	return parseBinaryVerdict(reply, "ENTAILED", "NOT_ENTAILED"), nil
}

// Coverage implements the Judge interface.
func (j *ModelJudge) Coverage(ctx context.Context, subQuestion, answer string) (Coverage, error) {
	reply, err := j.complete(ctx, coveragePrompt(subQuestion, answer))
	if err != nil {
		return CoverageNotAnswered, err
	}
	return parseCoverage(reply), nil
}

// Decompose implements the Decomposer interface.
func (j *ModelJudge) Decompose(ctx context.Context, question string) ([]string, error) {
	reply, err := j.complete(ctx, decomposePrompt(question))
	if err != nil {
		return nil, err
	}
	return parseSubQuestions(reply, maxSubQuestions), nil
}

// complete issues one oracle call with timeout and bounded retry.
func (j *ModelJudge) complete(ctx context.Context, prompt string) (string, error) {
	request := &model.Request{
		Messages:    []model.Message{model.NewUserMessage(prompt)},
		Temperature: j.temperature,
		MaxTokens:   j.maxTokens,
	}
	var lastErr error
	for attempt := 0; attempt <= j.maxRetries; attempt++ {
		reply, err := j.completeOnce(ctx, request)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		if !model.IsTransient(err) || attempt >= j.maxRetries {
			break
		}
		log.Infof("oracle call failed, retrying in %v (attempt %d/%d): %v",
			j.retryDelay, attempt+1, j.maxRetries, err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(j.retryDelay):
		}
	}
	return "", fmt.Errorf("oracle call failed: %w", lastErr)
}

func (j *ModelJudge) completeOnce(ctx context.Context, request *model.Request) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()
	response, err := j.model.GenerateContent(callCtx, request)
	if err != nil {
		return "", err
	}
	return response.Content, nil
}
