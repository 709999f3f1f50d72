package pipelines

import (
	"context"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/subwordlab/subword/config"
	"github.com/subwordlab/subword/corpus"
)

// Preprocess runs the corpus preprocessing pipeline: it extracts the
// word-frequency table from the configured input directory, checkpoints it
// when an output directory is configured, and returns it.
func Preprocess(ctx context.Context, cfg config.Config) (*corpus.WordFreq, error) {
	runID := uuid.NewString()
	klog.Infof("[run %s] starting preprocessing pipeline", runID)

	words, err := buildWordFreq(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.OutputDir != "" {
		if err := WriteWordCounts(cfg.OutputDir, words); err != nil {
			return nil, err
		}
	}

	klog.Infof("[run %s] preprocessing complete: %d unique words, %d occurrences",
		runID, words.Len(), words.Total())
	return words, nil
}
