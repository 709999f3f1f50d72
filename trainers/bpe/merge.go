package bpe

// Apply rewrites every vocabulary entry, replacing each occurrence of pair
// with the single symbol formed by concatenating its two halves. It returns a
// wholly new vocabulary; the input is not mutated.
//
// Matching is index-based over the symbol slice, never over a delimiter-joined
// string: a match must span exactly two whole symbols, so a learned symbol
// whose text happens to contain another symbol's text (or any would-be
// delimiter) can never be mis-split. Scanning is left to right and
// non-overlapping: after a merge the scan resumes past the new symbol, so the
// merged symbol cannot participate in another match within the same pass.
func Apply(pair Pair, v *Vocab) *Vocab {
	merged := pair.Left + pair.Right
	out := NewVocab()
	v.Each(func(seq Sequence, freq int) {
		out.Add(mergeSequence(seq, pair, merged), freq)
	})
	return out
}

func mergeSequence(seq Sequence, pair Pair, merged string) Sequence {
	// Most sequences don't contain the pair; copy those through untouched.
	found := false
	for i := 0; i+1 < len(seq); i++ {
		if seq[i] == pair.Left && seq[i+1] == pair.Right {
			found = true
			break
		}
	}
	if !found {
		return seq
	}

	out := make(Sequence, 0, len(seq)-1)
	for i := 0; i < len(seq); {
		if i+1 < len(seq) && seq[i] == pair.Left && seq[i+1] == pair.Right {
			out = append(out, merged)
			i += 2
			continue
		}
		out = append(out, seq[i])
		i++
	}
	return out
}
