package bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleEntryVocab(seq Sequence, freq int) *Vocab {
	v := NewVocab()
	v.Add(seq, freq)
	return v
}

func firstSeq(t *testing.T, v *Vocab) Sequence {
	t.Helper()
	entries := v.Entries()
	require.NotEmpty(t, entries)
	return entries[0].Seq
}

func TestApplyMergesAllOccurrences(t *testing.T) {
	v := singleEntryVocab(Sequence{"a", "b", "c", "a", "b"}, 3)
	out := Apply(Pair{"a", "b"}, v)
	assert.Equal(t, Sequence{"ab", "c", "ab"}, firstSeq(t, out))
	assert.Equal(t, 3, out.Entries()[0].Freq)
}

func TestApplyLeavesNonAdjacentAlone(t *testing.T) {
	// "a" and "b" both occur, but never adjacently.
	v := singleEntryVocab(Sequence{"a", "x", "b"}, 1)
	out := Apply(Pair{"a", "b"}, v)
	assert.Equal(t, Sequence{"a", "x", "b"}, firstSeq(t, out))
}

func TestApplyIsBoundaryAligned(t *testing.T) {
	// "bc" shares a prefix with "b", and "ab" ends in the text of "b";
	// neither may match the pair ("a", "b") because a match must span two
	// whole symbols.
	v := singleEntryVocab(Sequence{"a", "bc", "ab", "b"}, 1)
	out := Apply(Pair{"a", "b"}, v)
	assert.Equal(t, Sequence{"a", "bc", "ab", "b"}, firstSeq(t, out))
}

func TestApplySymbolContainingDelimiterText(t *testing.T) {
	// Symbols whose text contains spaces or regex metacharacters must be
	// matched as whole symbols, never re-parsed.
	v := singleEntryVocab(Sequence{"a b", "c.d", "a", "b"}, 2)
	out := Apply(Pair{"a b", "c.d"}, v)
	assert.Equal(t, Sequence{"a bc.d", "a", "b"}, firstSeq(t, out))
}

func TestApplyNonOverlapping(t *testing.T) {
	// Left-to-right, non-overlapping: "aaa" merges to ("aa", "a"), and the
	// new "aa" symbol does not immediately re-match.
	v := singleEntryVocab(Sequence{"a", "a", "a"}, 1)
	out := Apply(Pair{"a", "a"}, v)
	assert.Equal(t, Sequence{"aa", "a"}, firstSeq(t, out))

	v = singleEntryVocab(Sequence{"a", "a", "a", "a"}, 1)
	out = Apply(Pair{"a", "a"}, v)
	assert.Equal(t, Sequence{"aa", "aa"}, firstSeq(t, out))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	v := NewVocab()
	v.Add(Sequence{"a", "b"}, 4)
	v.Add(Sequence{"a", "c"}, 1)

	out := Apply(Pair{"a", "b"}, v)

	assert.Equal(t, Sequence{"a", "b"}, v.Entries()[0].Seq, "input vocabulary must be unchanged")
	assert.Equal(t, Sequence{"ab"}, out.Entries()[0].Seq)
	assert.Equal(t, Sequence{"a", "c"}, out.Entries()[1].Seq)
	assert.Equal(t, v.TotalFreq(), out.TotalFreq())
}

func TestApplyPreservesEntryOrder(t *testing.T) {
	v := NewVocab()
	v.Add(Sequence{"x", "y", EndOfWord}, 1)
	v.Add(Sequence{"y", "x", EndOfWord}, 2)
	v.Add(Sequence{"x", "x", EndOfWord}, 3)

	out := Apply(Pair{"x", "y"}, v)
	entries := out.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, Sequence{"xy", EndOfWord}, entries[0].Seq)
	assert.Equal(t, Sequence{"y", "x", EndOfWord}, entries[1].Seq)
	assert.Equal(t, Sequence{"x", "x", EndOfWord}, entries[2].Seq)
}
