package bpe

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/subwordlab/subword/corpus"
	"github.com/subwordlab/subword/trainers/api"
)

// DefaultNumMerges is the merge budget used when none is configured.
const DefaultNumMerges = 10000

// ErrNotFitted is returned when results are requested before Fit has run.
var ErrNotFitted = errors.New("no vocabulary: trainer has not been fitted")

// Trainer learns BPE merge rules from word frequencies.
// It owns the working vocabulary and the merge history for the duration of a
// training run; both are handed out read-only afterwards. A Trainer is not
// safe for concurrent use.
type Trainer struct {
	numMerges int
	vocab     *Vocab
	merges    []api.MergeRule
	fitted    bool
}

// Compile time assert that Trainer implements the api.Trainer interface.
var _ api.Trainer = &Trainer{}

// New returns a Trainer with the given merge budget. A non-positive budget
// falls back to DefaultNumMerges.
func New(numMerges int) *Trainer {
	if numMerges <= 0 {
		numMerges = DefaultNumMerges
	}
	return &Trainer{numMerges: numMerges}
}

// Fit runs the BPE training loop:
//
//  1. Symbolize the word frequencies into the starting vocabulary.
//  2. Count adjacent symbol pairs, weighted by word frequency.
//  3. Merge the most frequent pair everywhere, record it, and repeat.
//
// The loop stops when no pairs remain (converged) or when the merge budget is
// exhausted. It returns the learned merge rules in order.
func (t *Trainer) Fit(words *corpus.WordFreq) ([]api.MergeRule, error) {
	t.vocab = Symbolize(words)
	t.merges = nil
	t.fitted = true
	klog.Infof("starting BPE training: %d vocabulary entries, merge budget %d", t.vocab.Len(), t.numMerges)

	for i := 0; i < t.numMerges; i++ {
		counts := CountPairs(t.vocab)
		if len(counts) == 0 {
			klog.Infof("no more symbol pairs left after %d merges", i)
			break
		}

		best, err := SelectBest(counts)
		if err != nil {
			return nil, errors.WithMessagef(err, "selecting merge %d", i)
		}

		t.vocab = Apply(best, t.vocab)
		t.merges = append(t.merges, api.MergeRule{Left: best.Left, Right: best.Right})

		if i%100 == 0 || i == t.numMerges-1 {
			klog.V(1).Infof("merge %d/%d: (%s, %s) -> %s [count %d]",
				i+1, t.numMerges, best.Left, best.Right, best.Left+best.Right, counts[best])
		}
	}

	klog.Infof("training complete: learned %d merge operations", len(t.merges))
	return t.merges, nil
}

// Vocab returns the current vocabulary. Nil before Fit.
func (t *Trainer) Vocab() *Vocab {
	return t.vocab
}

// Merges returns the merge rules learned so far, in learned order.
func (t *Trainer) Merges() []api.MergeRule {
	return t.merges
}

// Statistics reports vocabulary compression metrics for the last Fit.
// It returns ErrNotFitted if called before any training; a fitted-but-empty
// vocabulary is not an error and reports zeroes.
func (t *Trainer) Statistics() (api.Statistics, error) {
	if !t.fitted {
		return api.Statistics{}, ErrNotFitted
	}

	stats := api.Statistics{
		Entries: t.vocab.Len(),
		Merges:  len(t.merges),
	}
	if total := t.vocab.TotalFreq(); total > 0 {
		stats.AvgSymbolsPerWord = float64(t.vocab.WeightedSymbols()) / float64(total)
	}
	return stats, nil
}

// LogStatistics logs the statistics for the last Fit, or a warning when the
// trainer has not been fitted yet.
func (t *Trainer) LogStatistics() {
	stats, err := t.Statistics()
	if err != nil {
		klog.Warningf("no vocabulary found, run Fit first: %v", err)
		return
	}
	klog.Infof("BPE merge statistics:")
	klog.Infof("  unique symbolized words in final vocab: %d", stats.Entries)
	klog.Infof("  merge operations learned: %d", stats.Merges)
	klog.Infof("  avg symbols per word (weighted): %.2f", stats.AvgSymbolsPerWord)
}
