//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"trpc.group/trpc-go/kbeval/config"
	"trpc.group/trpc-go/kbeval/evaluation"
	"trpc.group/trpc-go/kbeval/evaluation/transaction"
	"trpc.group/trpc-go/kbeval/judge"
	"trpc.group/trpc-go/kbeval/knowledge/embedder"
	lexicalembedder "trpc.group/trpc-go/kbeval/knowledge/embedder/lexical"
	openaiembedder "trpc.group/trpc-go/kbeval/knowledge/embedder/openai"
	"trpc.group/trpc-go/kbeval/knowledge/retriever"
	"trpc.group/trpc-go/kbeval/knowledge/source"
	"trpc.group/trpc-go/kbeval/knowledge/vectorstore/inmemory"
	"trpc.group/trpc-go/kbeval/log"
	openaimodel "trpc.group/trpc-go/kbeval/model/openai"
	"trpc.group/trpc-go/kbeval/report"
)

// runAsk evaluates a single question and writes its transaction line plus a
// one-transaction summary.
func runAsk(ctx context.Context, cfg *config.Config, question string) error {
	engine, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	tx, err := engine.EvaluateQuestion(ctx, question)
	if err != nil {
		return err
	}
	return writeReport(cfg, tx)
}

// runBatch evaluates every non-empty line of the questions file.
func runBatch(ctx context.Context, cfg *config.Config, path string) error {
	questions, err := readQuestions(path)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions found in %s", path)
	}

	engine, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	txs, err := engine.EvaluateBatch(ctx, questions)
	if err != nil {
		log.Warnf("batch completed with errors: %v", err)
	}
	return writeReport(cfg, txs...)
}

// buildEngine wires retrieval, generation and judgment from configuration.
// With no model configured it falls back to the deterministic lexical stack,
// which needs no network access.
func buildEngine(ctx context.Context, cfg *config.Config) (*evaluation.Engine, func(), error) {
	cleanup := func() {}

	opts := []evaluation.Option{
		evaluation.WithWeights(cfg.Weights),
		evaluation.WithTopK(cfg.TopK),
		evaluation.WithParallelism(cfg.Parallelism),
	}

	if cfg.Model.Name != "" {
		modelOpts := []openaimodel.Option{}
		if cfg.Model.APIKey != "" {
			modelOpts = append(modelOpts, openaimodel.WithAPIKey(cfg.Model.APIKey))
		}
		if cfg.Model.BaseURL != "" {
			modelOpts = append(modelOpts, openaimodel.WithBaseURL(cfg.Model.BaseURL))
		}
		m := openaimodel.New(cfg.Model.Name, modelOpts...)

		j, err := judge.New(m,
			judge.WithTimeout(cfg.Oracle.Timeout()),
			judge.WithMaxRetries(cfg.Oracle.MaxRetries),
		)
		if err != nil {
			return nil, cleanup, err
		}
		opts = append(opts, evaluation.WithGenerator(m), evaluation.WithJudge(j))
	} else {
		log.Info("no model configured, using the offline lexical judge")
		opts = append(opts, evaluation.WithJudge(judge.NewLexical()))
	}

	if cfg.KBPath != "" {
		r, err := buildRetriever(ctx, cfg)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() {
			if err := r.Close(); err != nil {
				log.Warnf("close retriever: %v", err)
			}
		}
		opts = append(opts, evaluation.WithRetriever(r))
	} else {
		log.Warn("no knowledge base path configured, evaluating without retrieval")
	}

	engine, err := evaluation.New(opts...)
	if err != nil {
		return nil, cleanup, err
	}
	return engine, cleanup, nil
}

// buildRetriever indexes the knowledge base directory into an in-memory
// vector store.
func buildRetriever(ctx context.Context, cfg *config.Config) (*retriever.Default, error) {
	var emb embedder.Embedder
	if cfg.Model.Name != "" && cfg.Model.APIKey != "" {
		embOpts := []openaiembedder.Option{
			openaiembedder.WithModel(cfg.Model.EmbeddingModel),
			openaiembedder.WithDimensions(cfg.Model.EmbeddingDimensions),
			openaiembedder.WithAPIKey(cfg.Model.APIKey),
		}
		if cfg.Model.BaseURL != "" {
			embOpts = append(embOpts, openaiembedder.WithBaseURL(cfg.Model.BaseURL))
		}
		emb = openaiembedder.New(embOpts...)
	} else {
		emb = lexicalembedder.New()
	}

	r := retriever.New(
		retriever.WithEmbedder(emb),
		retriever.WithVectorStore(inmemory.New()),
	)
	if err := r.Index(ctx, source.NewDirSource(cfg.KBPath)); err != nil {
		return nil, fmt.Errorf("index knowledge base %s: %w", cfg.KBPath, err)
	}
	return r, nil
}

// readQuestions reads one question per line, skipping blanks and # comments.
func readQuestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var questions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		questions = append(questions, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return questions, nil
}

// writeReport writes transaction lines and the summary to the configured
// destination.
func writeReport(cfg *config.Config, txs ...*transaction.Transaction) error {
	var out io.Writer = os.Stdout
	if cfg.Report.Path != "" {
		f, err := os.Create(cfg.Report.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	w := report.NewWriter(out, report.WithWorstCount(cfg.Report.WorstCount))
	return w.WriteReport(txs)
}
