package buffer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Errors returned when opening an origin file.
var (
	ErrNotRegularFile = errors.New("not a regular file")
)

// cacheBlockSize is the size of the read cache for file-backed origins.
const cacheBlockSize = 4096

// Origin is a read-only view of a file's on-disk bytes at open time.
// The editor never writes through an Origin; saving produces a new file
// and a new Origin.
type Origin interface {
	io.ReaderAt

	// Len returns the total size of the origin in bytes.
	Len() int64

	// Close releases the underlying resources.
	Close() error
}

// FileOrigin is a file-backed origin with a small block cache, so page-sized
// reads during scrolling do not hit the disk for every call.
type FileOrigin struct {
	mu   sync.Mutex
	file *os.File
	size int64

	// Read cache: one aligned block.
	cacheStart int64
	cache      []byte
}

// OpenFile opens the file at path as a read-only origin.
func OpenFile(path string) (*FileOrigin, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	return &FileOrigin{file: f, size: info.Size(), cacheStart: -1}, nil
}

// Len returns the file size at open time.
func (o *FileOrigin) Len() int64 {
	return o.size
}

// ReadAt implements io.ReaderAt over the origin file.
// Small reads are served from the block cache.
func (o *FileOrigin) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > o.size {
		return 0, fmt.Errorf("origin read at %d: %w", off, io.EOF)
	}

	n := len(p)
	if int64(n) > o.size-off {
		n = int(o.size - off)
	}

	// Large reads bypass the cache.
	if n > cacheBlockSize {
		read, err := o.file.ReadAt(p[:n], off)
		if err != nil && err != io.EOF {
			return read, err
		}
		if n < len(p) {
			return n, io.EOF
		}
		return n, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.cached(off, n) {
		start := off - off%cacheBlockSize
		size := int64(cacheBlockSize)
		if start+size > o.size {
			size = o.size - start
		}
		// The requested range may straddle two aligned blocks.
		if off+int64(n) > start+size {
			size = off + int64(n) - start
		}
		buf := make([]byte, size)
		if _, err := o.file.ReadAt(buf, start); err != nil && err != io.EOF {
			return 0, err
		}
		o.cacheStart = start
		o.cache = buf
	}

	copy(p[:n], o.cache[off-o.cacheStart:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// cached reports whether [off, off+n) is inside the cache block.
func (o *FileOrigin) cached(off int64, n int) bool {
	if o.cacheStart < 0 {
		return false
	}
	return off >= o.cacheStart && off+int64(n) <= o.cacheStart+int64(len(o.cache))
}

// Close closes the underlying file.
func (o *FileOrigin) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cache = nil
	o.cacheStart = -1
	return o.file.Close()
}

// MemOrigin is a memory-backed origin, used for new files and tests.
type MemOrigin struct {
	data []byte
}

// Mem creates an origin over the given bytes. The slice is not copied;
// the caller must not modify it afterwards.
func Mem(data []byte) *MemOrigin {
	return &MemOrigin{data: data}
}

// Len returns the origin size.
func (o *MemOrigin) Len() int64 {
	return int64(len(o.data))
}

// ReadAt implements io.ReaderAt.
func (o *MemOrigin) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(o.data)) {
		return 0, io.EOF
	}
	n := copy(p, o.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close is a no-op for memory origins.
func (o *MemOrigin) Close() error {
	return nil
}
