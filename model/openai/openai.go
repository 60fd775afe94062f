//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package openai provides an OpenAI-compatible model implementation.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"trpc.group/trpc-go/kbeval/model"
)

// Verify that Model implements the model.Model interface.
var _ model.Model = (*Model)(nil)

// Model is an OpenAI-compatible chat-completion backend. It works with any
// endpoint speaking the OpenAI chat protocol (OpenAI, Ollama, vLLM, ...).
type Model struct {
	client  openai.Client
	name    string
	apiKey  string
	baseURL string
}

// New creates a new OpenAI-like model.
func New(name string, opts ...Option) *Model {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}

	var clientOpts []openaiopt.RequestOption
	if o.APIKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(o.APIKey))
	}
	if o.BaseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(o.BaseURL))
	}
	// Retries are owned by the judge layer, not the SDK.
	clientOpts = append(clientOpts, openaiopt.WithMaxRetries(0))
	clientOpts = append(clientOpts, o.OpenAIOptions...)

	return &Model{
		client:  openai.NewClient(clientOpts...),
		name:    name,
		apiKey:  o.APIKey,
		baseURL: o.BaseURL,
	}
}

// Info implements the model.Model interface.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.name}
}

// GenerateContent implements the model.Model interface.
func (m *Model) GenerateContent(ctx context.Context, request *model.Request) (*model.Response, error) {
	if request == nil {
		return nil, errors.New("request cannot be nil")
	}
	chatRequest := m.buildChatRequest(request)
	chatCompletion, err := m.client.Chat.Completions.New(ctx, chatRequest)
	if err != nil {
		return nil, classifyError(err)
	}
	if len(chatCompletion.Choices) == 0 {
		return nil, fmt.Errorf("model %s returned no choices", m.name)
	}

	response := &model.Response{
		ID:      chatCompletion.ID,
		Model:   chatCompletion.Model,
		Content: chatCompletion.Choices[0].Message.Content,
	}
	if chatCompletion.Usage.PromptTokens > 0 || chatCompletion.Usage.CompletionTokens > 0 {
		response.Usage = &model.Usage{
			PromptTokens:     int(chatCompletion.Usage.PromptTokens),
			CompletionTokens: int(chatCompletion.Usage.CompletionTokens),
			TotalTokens:      int(chatCompletion.Usage.TotalTokens),
		}
	}
	return response, nil
}

// buildChatRequest converts a model.Request to OpenAI chat parameters.
func (m *Model) buildChatRequest(request *model.Request) openai.ChatCompletionNewParams {
	chatRequest := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(m.name),
		Messages: convertMessages(request.Messages),
	}
	// MaxTokens is deprecated and not compatible with o-series models.
	// Use MaxCompletionTokens instead.
	if request.MaxTokens != nil {
		chatRequest.MaxCompletionTokens = openai.Int(int64(*request.MaxTokens))
	}
	if request.Temperature != nil {
		chatRequest.Temperature = openai.Float(*request.Temperature)
	}
	return chatRequest
}

// convertMessages converts internal messages to OpenAI message parameters.
func convertMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case model.RoleSystem:
			converted = append(converted, openai.SystemMessage(msg.Content))
		case model.RoleAssistant:
			converted = append(converted, openai.AssistantMessage(msg.Content))
		default:
			converted = append(converted, openai.UserMessage(msg.Content))
		}
	}
	return converted
}

// classifyError wraps retryable provider failures as model.TransientError so
// the judge layer can apply its bounded retry policy.
func classifyError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return model.NewTransientError(err)
		case apiErr.StatusCode >= http.StatusInternalServerError:
			return model.NewTransientError(err)
		default:
			return fmt.Errorf("chat completion failed: %w", err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return model.NewTransientError(err)
	}
	// Connection-level failures (no HTTP status) are treated as transient.
	return model.NewTransientError(err)
}
