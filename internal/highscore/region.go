package highscore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/vovakirdan/pocket-runner/internal/config"
)

// DefaultRegionSize is the size of a freshly created NVM image.
const DefaultRegionSize = 256

// Region is a fixed-size block of non-volatile memory.
type Region interface {
	io.ReaderAt
	io.WriterAt
}

// ErrOutOfRange is returned for accesses past the end of a region.
var ErrOutOfRange = errors.New("highscore: access outside region")

// MemoryRegion is an in-memory region, erased on creation.
// It can be told to fail writes, which tests use to model a worn block.
type MemoryRegion struct {
	mu       sync.Mutex
	data     []byte
	writeErr error
	writes   int
}

// NewMemoryRegion creates an erased region of the given size.
func NewMemoryRegion(size int) *MemoryRegion {
	return &MemoryRegion{data: bytes.Repeat([]byte{Erased}, size)}
}

// ReadAt implements io.ReaderAt.
func (m *MemoryRegion) ReadAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return 0, ErrOutOfRange
	}
	return copy(p, m.data[off:]), nil
}

// WriteAt implements io.WriterAt.
func (m *MemoryRegion) WriteAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return 0, m.writeErr
	}
	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return 0, ErrOutOfRange
	}
	m.writes++
	return copy(m.data[off:], p), nil
}

// FailWrites makes every following write return err. nil restores writes.
func (m *MemoryRegion) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Bytes returns a copy of the region contents.
func (m *MemoryRegion) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return bytes.Clone(m.data)
}

// Writes returns the number of successful WriteAt calls.
func (m *MemoryRegion) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// FileRegion stores the region as an image file on disk.
// Every write replaces the whole image through a temporary file and a
// rename, so a crash leaves either the old or the new image.
type FileRegion struct {
	path string
	size int
}

// OpenFileRegion opens the image at path, creating an erased image of
// the given size when it does not exist yet.
func OpenFileRegion(path string, size int) (*FileRegion, error) {
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("highscore: cannot create directory %s: %w", dir, err)
	}

	r := &FileRegion{path: path, size: size}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := r.replace(bytes.Repeat([]byte{Erased}, size)); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("highscore: cannot stat %s: %w", path, err)
	case info.Size() != int64(size):
		return nil, fmt.Errorf("highscore: image %s is %d bytes, expected %d", path, info.Size(), size)
	}

	return r, nil
}

// Path returns the image file location.
func (r *FileRegion) Path() string {
	return r.path
}

// ReadAt implements io.ReaderAt.
func (r *FileRegion) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(r.size) {
		return 0, ErrOutOfRange
	}
	img, err := os.ReadFile(r.path)
	if err != nil {
		return 0, fmt.Errorf("highscore: cannot read image: %w", err)
	}
	if len(img) != r.size {
		return 0, fmt.Errorf("highscore: image truncated to %d bytes", len(img))
	}
	return copy(p, img[off:]), nil
}

// WriteAt implements io.WriterAt.
func (r *FileRegion) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(r.size) {
		return 0, ErrOutOfRange
	}
	img, err := os.ReadFile(r.path)
	if err != nil {
		return 0, fmt.Errorf("highscore: cannot read image: %w", err)
	}
	if len(img) != r.size {
		return 0, fmt.Errorf("highscore: image truncated to %d bytes", len(img))
	}
	copy(img[off:], p)
	if err := r.replace(img); err != nil {
		return 0, err
	}
	return len(p), nil
}

// replace atomically swaps the image file for img.
func (r *FileRegion) replace(img []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".nvm-*")
	if err != nil {
		return fmt.Errorf("highscore: cannot create temp image: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(img); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("highscore: cannot write temp image: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("highscore: cannot sync temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("highscore: cannot close temp image: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("highscore: cannot replace image: %w", err)
	}
	return nil
}
