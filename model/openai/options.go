//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package openai

import (
	openaiopt "github.com/openai/openai-go/option"
)

// options contains configuration options for creating a Model.
type options struct {
	// APIKey for the OpenAI client.
	APIKey string
	// BaseURL for the OpenAI client. It is optional for OpenAI-compatible APIs.
	BaseURL string
	// OpenAIOptions are raw request options forwarded to the OpenAI client.
	OpenAIOptions []openaiopt.RequestOption
}

var defaultOptions = options{}

// Option configures the Model.
type Option func(*options)

// WithAPIKey sets the API key.
// If not provided, the OPENAI_API_KEY environment variable is used.
func WithAPIKey(apiKey string) Option {
	return func(o *options) {
		o.APIKey = apiKey
	}
}

// WithBaseURL sets the base URL for OpenAI-compatible APIs.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.BaseURL = baseURL
	}
}

// WithOpenAIOptions appends raw request options for the OpenAI client.
func WithOpenAIOptions(opts ...openaiopt.RequestOption) Option {
	return func(o *options) {
		o.OpenAIOptions = append(o.OpenAIOptions, opts...)
	}
}
