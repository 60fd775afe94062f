//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package source defines the interface for knowledge sources.
package source

import (
	"context"

	"trpc.group/trpc-go/kbeval/knowledge/document"
)

// Metadata keys
const (
	MetaSource   = "kbeval_source"
	MetaFilePath = "kbeval_file_path"
	MetaChunk    = "kbeval_chunk"
)

// Source represents a knowledge source that can provide documents.
type Source interface {
	// ReadDocuments reads and returns documents representing the source.
	ReadDocuments(ctx context.Context) ([]*document.Document, error)

	// Name returns a human-readable name for this source.
	Name() string
}
