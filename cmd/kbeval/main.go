//
// Tencent is pleased to support the open source community by making kbeval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// kbeval is licensed under the Apache License Version 2.0.
//
//

// Package main provides the kbeval command line interface.
//
// kbeval evaluates retrieval-augmented answers over a knowledge base and
// reports per-question quality scores.
//
// Basic usage:
//
//	kbeval ask "Why does the VPN disconnect every hour?" --kb ./kb
//	kbeval batch questions.txt --kb ./kb --out report.jsonl
//
// Configuration is layered from defaults, an optional YAML file pointed at by
// KBEVAL_CONFIG, and KBEVAL_-prefixed environment variables.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trpc.group/trpc-go/kbeval/config"
	"trpc.group/trpc-go/kbeval/log"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildRootCmd creates the root command with all subcommands attached.
func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "kbeval",
		Short:        "kbeval - answer quality evaluation for knowledge base assistants",
		Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		buildAskCmd(),
		buildBatchCmd(),
		buildVersionCmd(),
	)
	return rootCmd
}

// buildVersionCmd creates the "version" command.
func buildVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the kbeval version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kbeval %s (commit: %s)\n", version, commit)
		},
	}
}

// buildAskCmd creates the "ask" command that evaluates a single question.
func buildAskCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Evaluate a single question against the knowledge base",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			return runAsk(cmd.Context(), cfg, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

// buildBatchCmd creates the "batch" command that evaluates a question file,
// one question per line.
func buildBatchCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "batch <questions-file>",
		Short: "Evaluate a file of questions and emit a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			return runBatch(cmd.Context(), cfg, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

// runFlags are the flags shared by ask and batch. A set flag overrides the
// corresponding config value.
type runFlags struct {
	kbPath     string
	topK       int
	model      string
	reportPath string
	debug      bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kbPath, "kb", "", "Directory of knowledge base articles (.md, .txt)")
	cmd.Flags().IntVar(&f.topK, "top-k", 0, "Number of snippets to retrieve per question")
	cmd.Flags().StringVar(&f.model, "model", "", "Chat model for generation and judgment; empty uses the offline lexical judge")
	cmd.Flags().StringVar(&f.reportPath, "out", "", "Report output file; empty writes to stdout")
	cmd.Flags().BoolVarP(&f.debug, "debug", "d", false, "Enable debug logging")
}

// loadConfig layers flag overrides on top of the loaded configuration and
// revalidates. Configuration violations abort startup.
func loadConfig(flags *runFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flags.kbPath != "" {
		cfg.KBPath = flags.kbPath
	}
	if flags.topK > 0 {
		cfg.TopK = flags.topK
	}
	if flags.model != "" {
		cfg.Model.Name = flags.model
	}
	if flags.reportPath != "" {
		cfg.Report.Path = flags.reportPath
	}
	if flags.debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.SetLevel(cfg.LogLevel)
	return cfg, nil
}
