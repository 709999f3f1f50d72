package bpe

import "github.com/pkg/errors"

// Pair is an ordered pair of adjacent symbols.
type Pair struct {
	Left  string
	Right string
}

// ErrNoPairs is returned by SelectBest when there are no pairs to choose
// from. The training loop checks for empty counts before selecting, so it is
// a precondition violation for other callers, not a loop condition.
var ErrNoPairs = errors.New("no symbol pairs to select from")

// CountPairs computes frequency-weighted counts of every adjacent symbol pair
// in the vocabulary. Each occurrence counts the full frequency of its word,
// not 1: that weighting is what makes training corpus-frequency-driven.
// Sequences of length 1 contribute nothing; an empty result signals that no
// merge is possible.
func CountPairs(v *Vocab) map[Pair]int {
	counts := make(map[Pair]int)
	v.Each(func(seq Sequence, freq int) {
		for i := 0; i+1 < len(seq); i++ {
			counts[Pair{Left: seq[i], Right: seq[i+1]}] += freq
		}
	})
	return counts
}

// SelectBest returns the pair with the maximum weighted count.
//
// Ties are broken lexicographically on (Left, Right). This is a deliberate,
// documented divergence from map-iteration-order tie-breaking: Go map order
// is randomized, and a content-based secondary key is the only way to keep
// repeated runs identical. Results differ from an insertion-order tie-break
// only when two pairs have exactly equal weighted counts.
func SelectBest(counts map[Pair]int) (Pair, error) {
	if len(counts) == 0 {
		return Pair{}, ErrNoPairs
	}
	var best Pair
	bestCount := -1
	for p, c := range counts {
		if c > bestCount || (c == bestCount && p.less(best)) {
			best = p
			bestCount = c
		}
	}
	return best, nil
}

func (p Pair) less(o Pair) bool {
	if p.Left != o.Left {
		return p.Left < o.Left
	}
	return p.Right < o.Right
}
