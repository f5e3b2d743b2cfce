package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/nsb/internal/batch"
	"github.com/jackzampolin/nsb/internal/config"
	"github.com/jackzampolin/nsb/internal/home"
	"github.com/jackzampolin/nsb/internal/output"
	"github.com/jackzampolin/nsb/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool
)

// errDefects makes the process exit non-zero after the report is printed.
var errDefects = errors.New("question defects found")

var rootCmd = &cobra.Command{
	Use:   "nsb",
	Short: "Format and lint Science Bowl question tables",
	Long: `nsb normalizes Science Bowl question cells in a question table.

Each question cell is parsed into its header, stem, choices and answer:
  - Shorthand headers (TU B MC) are expanded to full words
  - Spacing and choice layout are rewritten in the canonical form
  - Mislabeled or out-of-order choices are relabeled W, X, Y, Z
  - Cells that cannot be parsed are left alone and highlighted`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.nsb/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "nsb home directory (default: ~/.nsb)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", string(output.Default), "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.AddCommand(versionCmd)
}

// newLogger writes structured logs to stderr so stdout stays parseable.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
}

// loadConfig resolves the home directory and loads configuration from it.
func loadConfig() (*config.Manager, *home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, err
	}
	cm, err := config.NewManager(cfgFile, h.Path())
	if err != nil {
		return nil, nil, err
	}
	return cm, h, nil
}

func batchOptions(cfg *config.Config, logger *slog.Logger) batch.Options {
	return batch.Options{
		QuestionColumn:   cfg.QuestionColumn,
		TUBColumn:        cfg.TUBColumn,
		SubjectColumn:    cfg.SubjectColumn,
		QuesColumn:       cfg.QuesColumn,
		LODColumn:        cfg.LODColumn,
		NormalizeColumns: cfg.NormalizeColumns,
		Workers:          cfg.Workers,
		Colors:           cfg.LintColors(),
		Logger:           logger,
	}
}
