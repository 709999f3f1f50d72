// Package bpe implements a Byte-Pair-Encoding subword vocabulary trainer,
// following "Neural Machine Translation of Rare Words with Subword Units"
// (Sennrich et al., 2016). Each word starts as a sequence of characters plus
// an end-of-word marker; training repeatedly merges the most frequent
// adjacent symbol pair across the whole corpus.
package bpe

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/subwordlab/subword/corpus"
)

// EndOfWord is the reserved symbol appended to every word's initial
// decomposition. It is multi-character, so it can never collide with a
// single-rune symbol.
const EndOfWord = "</w>"

// Sequence is one word's current decomposition into symbols. A symbol starts
// as a single character (or the end-of-word marker) and may become a merged
// multi-character unit.
type Sequence []string

// key returns a collision-free map key for the sequence. Symbols are
// length-prefixed rather than delimiter-joined so that a symbol's text can
// never be confused with a separator.
func (s Sequence) key() string {
	var b strings.Builder
	for _, sym := range s {
		b.WriteString(strconv.Itoa(len(sym)))
		b.WriteByte(':')
		b.WriteString(sym)
	}
	return b.String()
}

// Entry is one vocabulary entry: a symbol sequence and the frequency of the
// word it decomposes.
type Entry struct {
	Seq  Sequence
	Freq int
}

// Vocab is the trainer's working set of word decompositions. Entries keep
// their insertion order so that iteration, and therefore training, is
// deterministic. Sequences stored in a Vocab are treated as immutable.
type Vocab struct {
	entries []Entry
	index   map[string]int
}

// NewVocab returns an empty vocabulary.
func NewVocab() *Vocab {
	return &Vocab{index: make(map[string]int)}
}

// Add records seq with the given frequency, accumulating if an identical
// sequence is already present.
func (v *Vocab) Add(seq Sequence, freq int) {
	k := seq.key()
	if i, ok := v.index[k]; ok {
		v.entries[i].Freq += freq
		return
	}
	v.index[k] = len(v.entries)
	v.entries = append(v.entries, Entry{Seq: seq, Freq: freq})
}

// Len returns the number of distinct sequences.
func (v *Vocab) Len() int {
	return len(v.entries)
}

// Each calls fn for every entry in insertion order.
func (v *Vocab) Each(fn func(seq Sequence, freq int)) {
	for _, e := range v.entries {
		fn(e.Seq, e.Freq)
	}
}

// Entries returns a copy of the entry list in insertion order. The sequences
// are shared and must not be modified.
func (v *Vocab) Entries() []Entry {
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return out
}

// TotalFreq returns the sum of all entry frequencies. Merging rewrites
// decompositions but never creates or destroys word occurrences, so this sum
// is invariant across training.
func (v *Vocab) TotalFreq() int {
	var total int
	for _, e := range v.entries {
		total += e.Freq
	}
	return total
}

// WeightedSymbols returns sum(len(seq) * freq) over all entries. Every merge
// strictly reduces it by the weighted count of the merged pair.
func (v *Vocab) WeightedSymbols() int {
	var total int
	for _, e := range v.entries {
		total += len(e.Seq) * e.Freq
	}
	return total
}

// Symbolize builds the initial vocabulary from a word-frequency table: each
// word becomes its characters in order followed by the end-of-word marker,
// carrying the word's frequency unchanged. An empty table yields an empty
// vocabulary.
func Symbolize(words *corpus.WordFreq) *Vocab {
	v := NewVocab()
	if words == nil {
		return v
	}
	words.Each(func(word string, freq int) {
		seq := make(Sequence, 0, utf8.RuneCountInString(word)+1)
		for _, r := range word {
			seq = append(seq, string(r))
		}
		seq = append(seq, EndOfWord)
		v.Add(seq, freq)
	})
	return v
}
