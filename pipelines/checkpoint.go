package pipelines

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/subwordlab/subword/corpus"
)

// Word-count checkpoint file names. Both hold the same table, sorted by
// descending count; the parquet copy is for columnar consumers.
const (
	WordCountsJSONName    = "wordcounts.json"
	WordCountsParquetName = "wordcounts.parquet"
)

// WordCount is one row of a word-frequency checkpoint.
type WordCount struct {
	Word  string `json:"word" parquet:"word"`
	Count int    `json:"count" parquet:"count"`
}

// WriteWordCounts checkpoints the word-frequency table under dir as JSON and
// parquet, written concurrently. The table itself is not modified.
func WriteWordCounts(dir string, words *corpus.WordFreq) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create checkpoint directory %q", dir)
	}

	rows := make([]WordCount, 0, words.Len())
	words.Each(func(word string, count int) {
		rows = append(rows, WordCount{Word: word, Count: count})
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	var g errgroup.Group
	g.Go(func() error {
		return writeWordCountsJSON(filepath.Join(dir, WordCountsJSONName), rows)
	})
	g.Go(func() error {
		return writeWordCountsParquet(filepath.Join(dir, WordCountsParquetName), rows)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	klog.Infof("checkpointed %d word counts to %s", len(rows), dir)
	return nil
}

func writeWordCountsJSON(path string, rows []WordCount) error {
	buf, err := json.MarshalIndent(rows, "", " ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal word counts")
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %q", path)
	}
	return nil
}

func writeWordCountsParquet(path string, rows []WordCount) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", path)
	}

	w := parquet.NewGenericWriter[WordCount](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to write parquet rows to %q", path)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to close parquet writer for %q", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %q", path)
	}
	return nil
}

// ReadWordCounts loads a JSON word-count checkpoint back into a table,
// preserving the checkpoint's row order.
func ReadWordCounts(path string) (*corpus.WordFreq, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %q", path)
	}
	var rows []WordCount
	if err := json.Unmarshal(buf, &rows); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %q", path)
	}
	wf := corpus.NewWordFreq()
	for _, row := range rows {
		wf.Add(row.Word, row.Count)
	}
	return wf, nil
}
