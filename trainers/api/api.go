// Package api defines the Trainer capability interface shared by all subword
// vocabulary trainers, and the types they exchange. Keeping it in its own
// package lets users import a concrete trainer without pulling in its
// siblings.
package api

import "github.com/subwordlab/subword/corpus"

// MergeRule records one learned merge: the two symbols that were joined.
// Rules are ordered; an encoder replaying them must apply them in the same
// order they were learned.
type MergeRule struct {
	Left  string
	Right string
}

// Statistics summarizes a finished training run.
type Statistics struct {
	// Entries is the number of distinct symbolized words in the final
	// vocabulary.
	Entries int
	// Merges is the number of merge operations learned.
	Merges int
	// AvgSymbolsPerWord is the frequency-weighted mean sequence length,
	// sum(len(seq) * freq) / sum(freq). Zero when the total frequency is zero.
	AvgSymbolsPerWord float64
}

// Trainer learns a subword vocabulary from a word-frequency table.
// BPE is the implementation available today; WordPiece and Unigram trainers
// would be further implementations of this same interface.
type Trainer interface {
	// Fit learns merge rules from the given word frequencies and returns
	// them in learned order.
	Fit(words *corpus.WordFreq) ([]MergeRule, error)

	// SaveArtifacts writes the learned vocabulary and merge rules under
	// outputDir, creating it if needed.
	SaveArtifacts(outputDir string) error

	// LogStatistics logs trainer-specific statistics for the last Fit.
	LogStatistics()
}
