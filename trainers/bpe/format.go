package bpe

import "strings"

// Two on-disk representations exist for BPE vocabularies. The paper-faithful
// form keeps the end-of-word marker as a standalone final symbol:
//
//	("v", "i", "l", "l", "a", "</w>")
//
// The compact (Sennrich reference implementation) form folds it onto the last
// symbol:
//
//	("v", "i", "l", "l", "a</w>")
//
// ToCompact and ToExpanded convert between them losslessly. Both are pure:
// they return new vocabularies and pass through sequences already in the
// target form unchanged, so each is idempotent.

// ToCompact converts a vocabulary from the paper-faithful form to the compact
// form, dropping the standalone marker and appending its text to the new last
// symbol.
func ToCompact(v *Vocab) *Vocab {
	out := NewVocab()
	v.Each(func(seq Sequence, freq int) {
		n := len(seq)
		if n < 2 || seq[n-1] != EndOfWord {
			out.Add(seq, freq)
			return
		}
		compact := make(Sequence, n-1)
		copy(compact, seq[:n-2])
		compact[n-2] = seq[n-2] + EndOfWord
		out.Add(compact, freq)
	})
	return out
}

// ToExpanded converts a vocabulary from the compact form back to the
// paper-faithful form, splitting a trailing "<sym></w>" into the base symbol
// and a standalone marker. It is the inverse of ToCompact for any vocabulary
// the symbolizer can produce.
func ToExpanded(v *Vocab) *Vocab {
	out := NewVocab()
	v.Each(func(seq Sequence, freq int) {
		n := len(seq)
		if n == 0 {
			out.Add(seq, freq)
			return
		}
		last := seq[n-1]
		// A bare "</w>" means the sequence is already expanded.
		if last == EndOfWord || !strings.HasSuffix(last, EndOfWord) {
			out.Add(seq, freq)
			return
		}
		expanded := make(Sequence, n+1)
		copy(expanded, seq[:n-1])
		expanded[n-1] = strings.TrimSuffix(last, EndOfWord)
		expanded[n] = EndOfWord
		out.Add(expanded, freq)
	})
	return out
}
