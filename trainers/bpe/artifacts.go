package bpe

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const (
	// VocabFileName holds one "<word> <frequency>" line per vocabulary entry,
	// with the end-of-word marker stripped.
	VocabFileName = "vocab.txt"

	// MergesFileName holds one "<left> <right>" line per learned merge, in
	// learned order. The order is semantically meaningful: an encoder must
	// replay the rules in exactly this order.
	MergesFileName = "merges.txt"

	// DefaultDirCreationPerm is used when creating artifact directories.
	DefaultDirCreationPerm = os.FileMode(0755)

	lockFileName = ".subword.lock"
)

// SaveArtifacts writes the learned vocabulary and merge rules under dir,
// creating it if needed. The directory is file-locked for the duration of the
// save so concurrent runs targeting the same directory cannot interleave, and
// each record is written to a temporary file and renamed into place, so a
// failure on one never corrupts the other. The training results held in
// memory are unaffected by I/O failures.
func (t *Trainer) SaveArtifacts(dir string) error {
	if !t.fitted {
		return ErrNotFitted
	}

	if err := os.MkdirAll(dir, DefaultDirCreationPerm); err != nil {
		return errors.Wrapf(err, "failed to create artifact directory %q", dir)
	}

	lock := flock.New(filepath.Join(dir, lockFileName))
	if err := lock.Lock(); err != nil {
		return errors.Wrapf(err, "failed to lock artifact directory %q", dir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			klog.Warningf("error unlocking artifact directory %q: %v", dir, err)
		}
	}()

	vocabPath := filepath.Join(dir, VocabFileName)
	if err := writeFileAtomic(vocabPath, t.renderVocab()); err != nil {
		return errors.WithMessage(err, "writing vocabulary record")
	}
	klog.Infof("saved vocab to %s", vocabPath)

	mergesPath := filepath.Join(dir, MergesFileName)
	if err := writeFileAtomic(mergesPath, t.renderMerges()); err != nil {
		return errors.WithMessage(err, "writing merges record")
	}
	klog.Infof("saved merges to %s", mergesPath)

	return nil
}

func (t *Trainer) renderVocab() []byte {
	var b strings.Builder
	t.vocab.Each(func(seq Sequence, freq int) {
		word := strings.ReplaceAll(strings.Join(seq, ""), EndOfWord, "")
		b.WriteString(word)
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(freq))
		b.WriteByte('\n')
	})
	return []byte(b.String())
}

func (t *Trainer) renderMerges() []byte {
	var b strings.Builder
	for _, m := range t.merges {
		b.WriteString(m.Left)
		b.WriteByte(' ')
		b.WriteString(m.Right)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// writeFileAtomic writes data to path via a temporary file and rename, so
// readers never observe a partially written record.
func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write temporary file %q", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			klog.Warningf("failed removing temporary file %q: %v", tmpPath, rmErr)
		}
		return errors.Wrapf(err, "failed to move %q to %q", tmpPath, path)
	}
	return nil
}
