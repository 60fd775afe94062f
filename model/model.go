//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package model provides the text-completion facade consumed by the answer
// generator and the judgment oracle.
package model

import "context"

// Role represents the role of a message author.
type Role string

// Role constants for message authors.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Message represents a single message in a conversation.
type Message struct {
	// Role is the role of the message author.
	Role Role `json:"role"`
	// Content is the message content.
	Content string `json:"content,omitempty"`
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Request is a completion request.
type Request struct {
	// Messages is the conversation so far, usually a single user message.
	Messages []Message `json:"messages"`
	// Temperature overrides the provider default when non-nil.
	Temperature *float64 `json:"temperature,omitempty"`
	// MaxTokens caps the completion length when non-nil.
	MaxTokens *int `json:"max_tokens,omitempty"`
}

// Usage records token consumption for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a completion response.
type Response struct {
	// ID is the provider-assigned response identifier.
	ID string `json:"id,omitempty"`
	// Model is the model that produced the completion.
	Model string `json:"model,omitempty"`
	// Content is the completion text of the first choice.
	Content string `json:"content"`
	// Usage reports token consumption when the provider returns it.
	Usage *Usage `json:"usage,omitempty"`
}

// Info describes a model implementation.
type Info struct {
	// Name is the model name.
	Name string `json:"name"`
}

// Model is the interface for text-completion backends. It is used both to
// generate answers and as the judgment oracle for metric evaluators.
type Model interface {
	// GenerateContent requests a single non-streaming completion.
	GenerateContent(ctx context.Context, request *Request) (*Response, error)
	// Info returns basic information about the model.
	Info() Info
}
