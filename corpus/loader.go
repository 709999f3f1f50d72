package corpus

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/mmap"
	"k8s.io/klog/v2"
)

// LoadMode selects the strategy used to read a text file.
type LoadMode string

const (
	// ModeLine yields the file one trimmed line at a time. This is the
	// default and the right choice for word-level preprocessing.
	ModeLine LoadMode = "line"

	// ModeChunk yields fixed-size blocks of raw text. Chunk boundaries can
	// split words, so it is not recommended when building word frequencies.
	ModeChunk LoadMode = "chunk"

	// ModeMmap memory-maps the file and yields fixed-size blocks. Useful for
	// corpora too large to stream comfortably through the page cache.
	ModeMmap LoadMode = "mmap"
)

// ErrUnsupportedMode is returned when a Loader is configured with a LoadMode
// it does not know. Callers can test for it with errors.Is.
var ErrUnsupportedMode = errors.New("unsupported load mode")

// DefaultChunkSize is the block size used by ModeChunk and ModeMmap when the
// Loader does not specify one.
const DefaultChunkSize = 8192

// Loader reads text files using a configurable strategy.
// The zero value reads line by line.
type Loader struct {
	Mode      LoadMode
	ChunkSize int
}

// Load reads the file at path and calls fn once per unit of text (a line or
// a chunk, depending on Mode). Returning an error from fn aborts the read.
func (l *Loader) Load(path string, fn func(text string) error) error {
	switch l.Mode {
	case "", ModeLine:
		return l.readLines(path, fn)
	case ModeChunk:
		klog.Warningf("chunk mode may split words across chunk boundaries; not recommended for word-level preprocessing")
		return l.readChunks(path, fn)
	case ModeMmap:
		return l.readMmap(path, fn)
	default:
		return errors.Wrapf(ErrUnsupportedMode, "%q (use %q, %q or %q)", l.Mode, ModeLine, ModeChunk, ModeMmap)
	}
}

func (l *Loader) chunkSize() int {
	if l.ChunkSize > 0 {
		return l.ChunkSize
	}
	return DefaultChunkSize
}

func (l *Loader) readLines(path string, fn func(text string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %q", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := fn(strings.TrimSpace(scanner.Text())); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "failed reading lines from %q", path)
	}
	return nil
}

func (l *Loader) readChunks(path string, fn func(text string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %q", path)
	}
	defer f.Close()

	buf := make([]byte, l.chunkSize())
	for {
		n, err := f.Read(buf)
		if n > 0 {
			if fnErr := fn(string(buf[:n])); fnErr != nil {
				return fnErr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "failed reading chunk from %q", path)
		}
	}
}

func (l *Loader) readMmap(path string, fn func(text string) error) error {
	reader, err := mmap.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to mmap %q", path)
	}
	defer reader.Close()

	size := l.chunkSize()
	buf := make([]byte, size)
	for off := 0; off < reader.Len(); off += size {
		n, err := reader.ReadAt(buf, int64(off))
		if n > 0 {
			if fnErr := fn(string(buf[:n])); fnErr != nil {
				return fnErr
			}
		}
		if err != nil && err != io.EOF {
			return errors.Wrapf(err, "failed reading mmap chunk from %q at offset %d", path, off)
		}
	}
	return nil
}
