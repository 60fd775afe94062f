//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package judge

import "time"

const (
	// DefaultTimeout bounds a single oracle call.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRetries is the retry budget for transient failures.
	DefaultMaxRetries = 1
	// DefaultRetryDelay is the pause before the retry attempt.
	DefaultRetryDelay = 200 * time.Millisecond
)

// options holds the configuration for a ModelJudge.
type options struct {
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
	temperature *float64
	maxTokens   *int
}

// Option configures a ModelJudge.
type Option func(*options)

func newOptions(opt ...Option) options {
	opts := options{
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
	for _, o := range opt {
		o(&opts)
	}
	return opts
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithMaxRetries sets the retry budget for transient failures.
func WithMaxRetries(maxRetries int) Option {
	return func(o *options) {
		o.maxRetries = maxRetries
	}
}

// WithRetryDelay sets the pause before a retry attempt.
func WithRetryDelay(delay time.Duration) Option {
	return func(o *options) {
		o.retryDelay = delay
	}
}

// WithTemperature sets the sampling temperature for oracle calls.
// Judgments benefit from low temperatures.
func WithTemperature(temperature float64) Option {
	return func(o *options) {
		o.temperature = &temperature
	}
}

// WithMaxTokens caps the oracle reply length.
func WithMaxTokens(maxTokens int) Option {
	return func(o *options) {
		o.maxTokens = &maxTokens
	}
}
