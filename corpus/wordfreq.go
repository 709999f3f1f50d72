// Package corpus builds word-frequency tables from raw text corpora.
// It covers everything upstream of the subword trainers: loading text files
// with a configurable strategy, extracting alphabetic words, and counting
// occurrences into an ordered table.
package corpus

// WordFreq maps words to occurrence counts while preserving the order in
// which words were first added. The order matters downstream: the trainers
// symbolize entries in table order, which keeps training deterministic.
type WordFreq struct {
	words  []string
	counts map[string]int
}

// NewWordFreq returns an empty word-frequency table.
func NewWordFreq() *WordFreq {
	return &WordFreq{counts: make(map[string]int)}
}

// Add increments the count for word by n. Words are remembered in first-seen
// order.
func (w *WordFreq) Add(word string, n int) {
	if _, ok := w.counts[word]; !ok {
		w.words = append(w.words, word)
	}
	w.counts[word] += n
}

// Count returns the occurrence count for word, or 0 if absent.
func (w *WordFreq) Count(word string) int {
	return w.counts[word]
}

// Len returns the number of distinct words.
func (w *WordFreq) Len() int {
	return len(w.words)
}

// Total returns the sum of all counts.
func (w *WordFreq) Total() int {
	var total int
	for _, c := range w.counts {
		total += c
	}
	return total
}

// Each calls fn for every (word, count) entry in first-seen order.
func (w *WordFreq) Each(fn func(word string, count int)) {
	for _, word := range w.words {
		fn(word, w.counts[word])
	}
}

// Words returns the distinct words in first-seen order.
func (w *WordFreq) Words() []string {
	out := make([]string, len(w.words))
	copy(out, w.words)
	return out
}

// Merge adds every entry of other into w, keeping w's ordering for words it
// already contains.
func (w *WordFreq) Merge(other *WordFreq) {
	other.Each(func(word string, count int) {
		w.Add(word, count)
	})
}
