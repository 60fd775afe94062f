//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package model

import (
	"errors"
	"fmt"
)

// TransientError wraps a failure that may succeed on retry, such as a
// rate limit, a timeout, or a 5xx response from the provider.
type TransientError struct {
	Err error
}

// Error implements the error interface.
func (e *TransientError) Error() string {
	return fmt.Sprintf("transient model error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError wraps err as transient.
func NewTransientError(err error) *TransientError {
	return &TransientError{Err: err}
}

// IsTransient reports whether err is a transient model failure that the
// caller may retry.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
