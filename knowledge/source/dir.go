//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trpc.group/trpc-go/kbeval/knowledge/document"
	"trpc.group/trpc-go/kbeval/log"
)

// Verify that DirSource implements the Source interface.
var _ Source = (*DirSource)(nil)

// DefaultChunkSize is the target chunk size in characters. Paragraphs are
// merged until a chunk would exceed it.
const DefaultChunkSize = 1200

// defaultExtensions are the file extensions read by a DirSource.
var defaultExtensions = map[string]struct{}{
	".md":  {},
	".txt": {},
}

// DirSource reads knowledge-base articles from a directory tree and splits
// them into paragraph chunks.
type DirSource struct {
	path      string
	chunkSize int
}

// DirOption configures a DirSource.
type DirOption func(*DirSource)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) DirOption {
	return func(s *DirSource) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// NewDirSource creates a source reading .md and .txt files under path.
func NewDirSource(path string, opts ...DirOption) *DirSource {
	s := &DirSource{path: path, chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements the Source interface.
func (s *DirSource) Name() string {
	return filepath.Base(s.path)
}

// ReadDocuments implements the Source interface.
func (s *DirSource) ReadDocuments(ctx context.Context) ([]*document.Document, error) {
	var docs []*document.Document
	err := filepath.WalkDir(s.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := defaultExtensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		chunks := splitParagraphs(string(content), s.chunkSize)
		for i, chunk := range chunks {
			docs = append(docs, &document.Document{
				ID:      fmt.Sprintf("%s#%d", filepath.Base(path), i),
				Name:    filepath.Base(path),
				Content: chunk,
				Metadata: map[string]any{
					MetaSource:   s.Name(),
					MetaFilePath: path,
					MetaChunk:    i,
				},
				CreatedAt: time.Now(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.path, err)
	}
	log.Infof("loaded %d chunks from %s", len(docs), s.path)
	return docs, nil
}

// splitParagraphs splits text on blank lines and merges paragraphs into
// chunks of at most chunkSize characters. Oversized single paragraphs are
// kept whole.
func splitParagraphs(text string, chunkSize int) []string {
	var chunks []string
	var current strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(para)+2 > chunkSize {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
