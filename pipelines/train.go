// Package pipelines sequences the corpus, trainer and artifact stages into
// complete runs: build a word-frequency table, fit a trainer, persist the
// results. Pipelines own no state; everything flows through explicit values.
package pipelines

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/subwordlab/subword/config"
	"github.com/subwordlab/subword/corpus"
	"github.com/subwordlab/subword/trainers/api"
	"github.com/subwordlab/subword/trainers/bpe"
)

// TrainTokenizer runs the full tokenizer training pipeline: extract word
// frequencies from the configured corpus, fit a BPE trainer, checkpoint and
// save artifacts, and return the training statistics.
//
// A missing output directory is not an error: training results are computed
// and reported, only persistence is skipped (with a warning).
func TrainTokenizer(ctx context.Context, cfg config.Config) (api.Statistics, error) {
	runID := uuid.NewString()
	klog.Infof("[run %s] starting tokenizer training pipeline", runID)

	words, err := buildWordFreq(ctx, cfg)
	if err != nil {
		return api.Statistics{}, err
	}

	if cfg.CheckpointWordCounts && cfg.OutputDir != "" {
		if err := WriteWordCounts(cfg.OutputDir, words); err != nil {
			// Checkpoints are a convenience; training proceeds without them.
			klog.Warningf("[run %s] failed to checkpoint word counts: %v", runID, err)
		}
	}

	trainer := bpe.New(cfg.NumMerges)
	if _, err := trainer.Fit(words); err != nil {
		return api.Statistics{}, errors.WithMessage(err, "training failed")
	}

	if cfg.OutputDir == "" {
		klog.Warningf("[run %s] output_dir is not set, skipping artifact save", runID)
	} else if err := trainer.SaveArtifacts(cfg.OutputDir); err != nil {
		return api.Statistics{}, errors.WithMessagef(err, "saving artifacts to %q", cfg.OutputDir)
	}

	trainer.LogStatistics()
	stats, err := trainer.Statistics()
	if err != nil {
		return api.Statistics{}, err
	}

	klog.Infof("[run %s] tokenizer training pipeline complete", runID)
	return stats, nil
}

func buildWordFreq(ctx context.Context, cfg config.Config) (*corpus.WordFreq, error) {
	words, err := corpus.BuildWordFreq(ctx, cfg.InputDir, corpus.BuildOptions{
		Mode:      corpus.LoadMode(cfg.LoadMode),
		Lowercase: cfg.Lowercase,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "building word frequency table")
	}
	return words, nil
}
