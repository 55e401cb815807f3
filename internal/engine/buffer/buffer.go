package buffer

import (
	"errors"
	"io"
	"sync"
)

// Errors returned by buffer operations.
var (
	// ErrOffsetOutOfRange indicates an offset or length outside the current
	// logical buffer bounds.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrPatternEmpty indicates a zero-length fill pattern.
	ErrPatternEmpty = errors.New("pattern is empty")
)

// writeChunkSize is the block size used when streaming origin segments.
const writeChunkSize = 64 * 1024

// Buffer holds a file's original content reference plus an ordered overlay
// of pending edits. It answers byte-range read queries and mutation requests
// without ever modifying the origin.
//
// The overlay is a gapless partition of the logical length: concatenating
// all segments yields the current content. A buffer with zero edits has a
// single origin segment spanning the whole file (or no segments for an
// empty file).
type Buffer struct {
	mu       sync.RWMutex
	origin   Origin
	segs     []segment
	length   ByteOffset
	dirty    bool
	revision RevisionID
}

// New creates a buffer over the given origin with zero edits applied.
func New(origin Origin) *Buffer {
	b := &Buffer{
		origin:   origin,
		revision: NewRevisionID(),
	}
	if size := origin.Len(); size > 0 {
		b.segs = []segment{{kind: segOrigin, origin: 0, length: ByteOffset(size)}}
		b.length = ByteOffset(size)
	}
	return b
}

// NewEmpty creates a buffer for a new file with no content.
func NewEmpty() *Buffer {
	return New(Mem(nil))
}

// NewFromBytes creates a memory-backed buffer with the given initial content.
func NewFromBytes(data []byte) *Buffer {
	return New(Mem(append([]byte(nil), data...)))
}

// Read Operations

// Len returns the current logical length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.length
}

// Size returns the logical length as int64, for io-style consumers.
func (b *Buffer) Size() int64 {
	return int64(b.Len())
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Read returns the logical bytes in [offset, offset+length), resolving
// overlay segments against the origin as needed.
func (b *Buffer) Read(offset, length ByteOffset) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 || length < 0 || offset+length > b.length {
		return nil, ErrOffsetOutOfRange
	}

	data := make([]byte, length)
	if err := b.readLocked(data, offset); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadState returns the logical bytes in range together with a per-byte flag
// that is true where the byte comes from a pending edit rather than the
// origin. The renderer uses the flags to highlight changed bytes.
func (b *Buffer) ReadState(offset, length ByteOffset) ([]byte, []bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 || length < 0 || offset+length > b.length {
		return nil, nil, ErrOffsetOutOfRange
	}

	data := make([]byte, length)
	if err := b.readLocked(data, offset); err != nil {
		return nil, nil, err
	}

	changed := make([]bool, length)
	pos := ByteOffset(0)
	for i := range b.segs {
		seg := &b.segs[i]
		segEnd := pos + seg.length
		if segEnd > offset && pos < offset+length && seg.literal() {
			from := pos
			if from < offset {
				from = offset
			}
			to := segEnd
			if to > offset+length {
				to = offset + length
			}
			for o := from; o < to; o++ {
				changed[o-offset] = true
			}
		}
		pos = segEnd
		if pos >= offset+length {
			break
		}
	}
	return data, changed, nil
}

// ByteAt returns the byte at the given logical offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	data, err := b.Read(offset, 1)
	if err != nil {
		return 0, false
	}
	return data[0], true
}

// ReadAt implements io.ReaderAt over the logical byte stream.
// Search and diff consume the buffer through this interface.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if off < 0 || off > int64(b.length) {
		return 0, io.EOF
	}
	n := len(p)
	if int64(n) > int64(b.length)-off {
		n = int(int64(b.length) - off)
	}
	if err := b.readLocked(p[:n], ByteOffset(off)); err != nil {
		return 0, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// readLocked fills dst with the logical bytes starting at offset.
// Caller holds at least a read lock and has validated the range.
func (b *Buffer) readLocked(dst []byte, offset ByteOffset) error {
	if len(dst) == 0 {
		return nil
	}
	remaining := ByteOffset(len(dst))
	pos := ByteOffset(0)
	for i := range b.segs {
		seg := &b.segs[i]
		segEnd := pos + seg.length
		if segEnd <= offset {
			pos = segEnd
			continue
		}
		rel := offset - pos
		n := seg.length - rel
		if n > remaining {
			n = remaining
		}
		at := ByteOffset(len(dst)) - remaining
		if seg.literal() {
			copy(dst[at:at+n], seg.data[rel:rel+n])
		} else {
			if _, err := b.origin.ReadAt(dst[at:at+n], seg.origin+int64(rel)); err != nil {
				return err
			}
		}
		remaining -= n
		offset += n
		if remaining == 0 {
			return nil
		}
		pos = segEnd
	}
	return nil
}

// Mutations

// Splice replaces removeLen bytes at offset with the given literal data.
// It is the single mutation primitive: insert is a splice with removeLen 0,
// delete is a splice with no data, overwrite removes and adds equally.
// The range is validated before the overlay is touched, so a failed splice
// never leaves partial state.
func (b *Buffer) Splice(offset, removeLen ByteOffset, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spliceLocked(offset, removeLen, data)
}

// Insert inserts bytes at the given offset, shifting subsequent positions
// forward. Offset must be in [0, Len()].
func (b *Buffer) Insert(offset ByteOffset, data []byte) error {
	return b.Splice(offset, 0, data)
}

// Delete removes length bytes at offset, shifting subsequent positions
// backward.
func (b *Buffer) Delete(offset, length ByteOffset) error {
	return b.Splice(offset, length, nil)
}

// Replace overwrites bytes starting at offset. The length is unchanged
// unless the data extends past the current end, in which case the buffer
// grows (overwrite-then-append).
func (b *Buffer) Replace(offset ByteOffset, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > b.length {
		return ErrOffsetOutOfRange
	}
	removeLen := ByteOffset(len(data))
	if removeLen > b.length-offset {
		removeLen = b.length - offset
	}
	return b.spliceLocked(offset, removeLen, data)
}

// Fill overwrites [offset, offset+length) with the pattern repeated to cover
// the range; an uneven final repetition is truncated. Like Replace, a fill
// past the current end grows the buffer.
func (b *Buffer) Fill(offset, length ByteOffset, pattern []byte) error {
	if len(pattern) == 0 {
		return ErrPatternEmpty
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > b.length || length < 0 {
		return ErrOffsetOutOfRange
	}
	removeLen := length
	if removeLen > b.length-offset {
		removeLen = b.length - offset
	}
	return b.spliceLocked(offset, removeLen, Repeat(pattern, length))
}

// spliceLocked performs the splice without acquiring the lock.
func (b *Buffer) spliceLocked(offset, removeLen ByteOffset, data []byte) error {
	if offset < 0 || removeLen < 0 || offset+removeLen > b.length {
		return ErrOffsetOutOfRange
	}
	if removeLen == 0 && len(data) == 0 {
		return nil
	}

	i := b.splitAt(offset)
	j := b.splitAt(offset + removeLen)

	tail := append([]segment(nil), b.segs[j:]...)
	b.segs = b.segs[:i]
	if len(data) > 0 {
		kind := segInserted
		if removeLen > 0 {
			kind = segReplaced
		}
		b.segs = append(b.segs, segment{
			kind:   kind,
			length: ByteOffset(len(data)),
			data:   append([]byte(nil), data...),
		})
	}
	b.segs = append(b.segs, tail...)

	b.length += ByteOffset(len(data)) - removeLen
	b.mergeAround(i)
	b.dirty = true
	b.revision = NewRevisionID()
	return nil
}

// splitAt ensures a segment boundary exists at the given logical offset and
// returns the index of the segment starting there. Offset == length returns
// len(segs).
func (b *Buffer) splitAt(offset ByteOffset) int {
	pos := ByteOffset(0)
	for i := range b.segs {
		if offset == pos {
			return i
		}
		segEnd := pos + b.segs[i].length
		if offset < segEnd {
			left, right := b.segs[i].split(offset - pos)
			b.segs = append(b.segs, segment{})
			copy(b.segs[i+1:], b.segs[i:])
			b.segs[i] = left
			b.segs[i+1] = right
			return i + 1
		}
		pos = segEnd
	}
	return len(b.segs)
}

// mergeAround coalesces mergeable neighbors near index i, keeping the
// overlay small across long editing sessions.
func (b *Buffer) mergeAround(i int) {
	k := i - 1
	if k < 0 {
		k = 0
	}
	for k < len(b.segs)-1 && k <= i+1 {
		cur := &b.segs[k]
		next := &b.segs[k+1]
		if !cur.mergeable(next) {
			k++
			continue
		}
		merged := segment{kind: cur.kind, origin: cur.origin, length: cur.length + next.length}
		if cur.literal() {
			merged.data = make([]byte, 0, merged.length)
			merged.data = append(merged.data, cur.data...)
			merged.data = append(merged.data, next.data...)
		}
		b.segs[k] = merged
		b.segs = append(b.segs[:k+1], b.segs[k+2:]...)
	}
}

// State

// Dirty returns true if the buffer has unsaved changes.
func (b *Buffer) Dirty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty
}

// SetDirty overrides the dirty flag. The engine clears it when undo/redo
// returns the buffer to its last saved state.
func (b *Buffer) SetDirty(dirty bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirty = dirty
}

// RevisionID returns the current revision. It changes on every mutation and
// drives lazy diff recomputation.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// Revision returns the revision as a plain uint64 for consumers that do not
// import this package's types.
func (b *Buffer) Revision() uint64 {
	return uint64(b.RevisionID())
}

// SegmentCount returns the number of overlay segments (diagnostics only).
func (b *Buffer) SegmentCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.segs)
}

// Serialization

// WriteTo streams the logical byte stream to w. It implements io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var written int64
	chunk := make([]byte, writeChunkSize)
	for i := range b.segs {
		seg := &b.segs[i]
		if seg.literal() {
			n, err := w.Write(seg.data)
			written += int64(n)
			if err != nil {
				return written, err
			}
			continue
		}
		remaining := int64(seg.length)
		off := seg.origin
		for remaining > 0 {
			n := int64(len(chunk))
			if n > remaining {
				n = remaining
			}
			if _, err := b.origin.ReadAt(chunk[:n], off); err != nil {
				return written, err
			}
			wn, err := w.Write(chunk[:n])
			written += int64(wn)
			if err != nil {
				return written, err
			}
			off += n
			remaining -= n
		}
	}
	return written, nil
}

// Collapse replaces the origin with newOrigin and resets the overlay to a
// single unchanged segment spanning it. The engine calls this after a
// successful save, when the on-disk content equals the logical stream.
// The previous origin is closed.
func (b *Buffer) Collapse(newOrigin Origin) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.origin != nil {
		b.origin.Close()
	}
	b.origin = newOrigin
	b.segs = nil
	b.length = ByteOffset(newOrigin.Len())
	if b.length > 0 {
		b.segs = []segment{{kind: segOrigin, origin: 0, length: b.length}}
	}
	b.dirty = false
}

// Close releases the origin. The buffer must not be used afterwards.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.origin == nil {
		return nil
	}
	err := b.origin.Close()
	b.origin = nil
	b.segs = nil
	b.length = 0
	return err
}

// Repeat builds a byte slice of the given length by repeating pattern,
// truncating the last repetition if it divides unevenly.
func Repeat(pattern []byte, length ByteOffset) []byte {
	out := make([]byte, length)
	for i := range out {
		out[i] = pattern[i%len(pattern)]
	}
	return out
}
