package corpus

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
	"k8s.io/klog/v2"
)

// SplitWords extracts the alphabetic words from a line of text. Runs of
// letters form words; digits, punctuation and whitespace separate them. The
// text is NFC-normalized first so that composed and decomposed forms of the
// same word count together.
func SplitWords(line string, lowercase bool) []string {
	line = norm.NFC.String(line)

	var words []string
	var current strings.Builder
	for _, r := range line {
		if unicode.IsLetter(r) {
			if lowercase {
				r = unicode.ToLower(r)
			}
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

// BuildOptions configures BuildWordFreq.
type BuildOptions struct {
	// Mode selects the file loading strategy. Defaults to ModeLine.
	Mode LoadMode
	// Lowercase folds extracted words to lower case before counting.
	Lowercase bool
	// ChunkSize overrides the block size for ModeChunk and ModeMmap.
	ChunkSize int
	// Concurrency bounds the number of files counted in parallel.
	// Defaults to 4.
	Concurrency int
}

// BuildWordFreq scans every .txt file in inputDir and counts the words it
// contains. Files are counted concurrently (word counts are sums, so per-file
// tables merge associatively) and merged in file-name order, which keeps the
// resulting table order deterministic.
func BuildWordFreq(ctx context.Context, inputDir string, opts BuildOptions) (*WordFreq, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan input directory %q", inputDir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		files = append(files, entry.Name())
	}
	klog.Infof("scanning %d text files in %s", len(files), inputDir)

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	loader := &Loader{Mode: opts.Mode, ChunkSize: opts.ChunkSize}
	results := make([]*WordFreq, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			wf := NewWordFreq()
			path := filepath.Join(inputDir, name)
			err := loader.Load(path, func(text string) error {
				for _, word := range SplitWords(text, opts.Lowercase) {
					wf.Add(word, 1)
				}
				return nil
			})
			if err != nil {
				return errors.WithMessagef(err, "counting words in %q", path)
			}
			results[i] = wf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in file-name order (os.ReadDir sorts by name).
	merged := NewWordFreq()
	for _, wf := range results {
		merged.Merge(wf)
	}

	klog.Infof("word frequency table built: %d unique words, %d occurrences", merged.Len(), merged.Total())
	return merged, nil
}
