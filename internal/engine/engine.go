package engine

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/dshills/hexstorm/internal/engine/buffer"
	"github.com/dshills/hexstorm/internal/engine/history"
	"github.com/dshills/hexstorm/internal/engine/search"
)

// ByteOffset re-exports the buffer's offset type for callers of the facade.
type ByteOffset = buffer.ByteOffset

// Range re-exports the buffer's half-open range type.
type Range = buffer.Range

// Engine is one open document: an edit buffer plus its undo journal.
// All methods are safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	buf      *buffer.Buffer
	journal  *history.Journal
	path     string
	readOnly bool

	// diskMod and diskSize snapshot the origin file as of the last open or
	// save, for external-change detection.
	diskMod  time.Time
	diskSize int64
}

// Open loads the file at path. The file content is never read into memory
// wholesale; the buffer reads through to it on demand.
func Open(path string, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	origin, err := buffer.OpenFile(path)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		buf:      buffer.New(origin),
		journal:  history.NewJournal(cfg.maxUndo, cfg.policy),
		path:     path,
		readOnly: cfg.readOnly,
	}
	e.snapshotDisk()
	return e, nil
}

// NewEmpty creates an untitled empty document.
func NewEmpty(opts ...Option) *Engine {
	return FromBytes(nil, opts...)
}

// FromBytes creates an untitled document with the given initial content.
func FromBytes(data []byte, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Engine{
		buf:      buffer.NewFromBytes(data),
		journal:  history.NewJournal(cfg.maxUndo, cfg.policy),
		readOnly: cfg.readOnly,
	}
}

// Path returns the document's file path, empty for untitled documents.
func (e *Engine) Path() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.path
}

// ReadOnly reports whether mutations are refused.
func (e *Engine) ReadOnly() bool { return e.readOnly }

// Len returns the logical document length.
func (e *Engine) Len() ByteOffset { return e.buf.Len() }

// Size returns the logical document length as int64.
func (e *Engine) Size() int64 { return e.buf.Size() }

// Revision returns the buffer's revision stamp.
func (e *Engine) Revision() uint64 { return e.buf.Revision() }

// Buffer exposes the underlying edit buffer for read-side consumers such
// as the diff engine and the renderer.
func (e *Engine) Buffer() *buffer.Buffer { return e.buf }

// Read returns a copy of the bytes in [offset, offset+length).
func (e *Engine) Read(offset, length ByteOffset) ([]byte, error) {
	return e.buf.Read(offset, length)
}

// ReadState returns bytes plus a per-byte changed flag for rendering.
func (e *Engine) ReadState(offset, length ByteOffset) ([]byte, []bool, error) {
	return e.buf.ReadState(offset, length)
}

// ByteAt returns the byte at offset, ok=false past the end.
func (e *Engine) ByteAt(offset ByteOffset) (byte, bool) {
	return e.buf.ByteAt(offset)
}

// Insert journals and applies an insertion at offset.
func (e *Engine) Insert(offset ByteOffset, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return e.mutate(history.NewInsert(offset, data))
}

// Delete journals and removes [offset, offset+length).
func (e *Engine) Delete(offset, length ByteOffset) error {
	if length == 0 {
		return nil
	}
	old, err := e.buf.Read(offset, length)
	if err != nil {
		return err
	}
	return e.mutate(history.NewDelete(offset, old))
}

// Replace journals and overwrites bytes starting at offset. A replacement
// reaching past the end grows the document.
func (e *Engine) Replace(offset ByteOffset, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	removeLen := ByteOffset(len(data))
	if remain := e.buf.Len() - offset; removeLen > remain {
		removeLen = remain
	}
	if removeLen < 0 {
		return ErrOutOfRange
	}
	old, err := e.buf.Read(offset, removeLen)
	if err != nil {
		return err
	}
	return e.mutate(history.NewReplace(offset, old, data))
}

// Fill journals and overwrites [offset, offset+length) with the pattern
// repeated, truncated at length. Like Replace, a fill reaching past the
// end grows the document.
func (e *Engine) Fill(offset, length ByteOffset, pattern []byte) error {
	if len(pattern) == 0 {
		return ErrPatternEmpty
	}
	if length == 0 {
		return nil
	}
	removeLen := length
	if remain := e.buf.Len() - offset; removeLen > remain {
		removeLen = remain
	}
	if removeLen < 0 {
		return ErrOutOfRange
	}
	old, err := e.buf.Read(offset, removeLen)
	if err != nil {
		return err
	}
	return e.mutate(history.NewReplace(offset, old, buffer.Repeat(pattern, length)))
}

// mutate validates and applies the record against the buffer, then
// journals it. A failed application journals nothing.
func (e *Engine) mutate(rec *history.Record) error {
	if e.readOnly {
		return ErrReadOnly
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.buf.Splice(rec.Offset, ByteOffset(len(rec.Old)), rec.New); err != nil {
		return err
	}
	e.journal.Push(rec)
	e.buf.SetDirty(!e.journal.AtSavedMark())
	return nil
}

// Undo reverts the most recent undo step and returns the affected range in
// post-undo coordinates.
func (e *Engine) Undo() (Range, error) {
	if e.readOnly {
		return Range{}, ErrReadOnly
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	r, err := e.journal.Undo(e.buf)
	if err != nil {
		return Range{}, err
	}
	e.buf.SetDirty(!e.journal.AtSavedMark())
	return r, nil
}

// Redo reapplies the step most recently undone.
func (e *Engine) Redo() (Range, error) {
	if e.readOnly {
		return Range{}, ErrReadOnly
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	r, err := e.journal.Redo(e.buf)
	if err != nil {
		return Range{}, err
	}
	e.buf.SetDirty(!e.journal.AtSavedMark())
	return r, nil
}

// Break ends the current coalescing group. The session calls it when the
// cursor leaves the edited neighborhood.
func (e *Engine) Break() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.journal.Break()
}

// CanUndo reports whether an undo step exists.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.journal.CanUndo()
}

// CanRedo reports whether a redo step exists.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.journal.CanRedo()
}

// UndoCount returns the number of available undo steps.
func (e *Engine) UndoCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.journal.UndoCount()
}

// RedoCount returns the number of available redo steps.
func (e *Engine) RedoCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.journal.RedoCount()
}

// PeekUndo describes the step Undo would revert.
func (e *Engine) PeekUndo() (history.RecordInfo, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.journal.PeekUndo()
}

// PeekRedo describes the step Redo would reapply.
func (e *Engine) PeekRedo() (history.RecordInfo, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.journal.PeekRedo()
}

// Dirty reports whether the document differs from its last saved state.
func (e *Engine) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.journal.AtSavedMark()
}

// Find locates pattern starting from start in the given direction,
// wrapping around the document boundary when wrap is set.
func (e *Engine) Find(ctx context.Context, pattern []byte, start int64, dir search.Direction, wrap bool) (int64, error) {
	if len(pattern) == 0 {
		return 0, ErrPatternEmpty
	}
	return search.Find(ctx, e.buf, pattern, start, dir, wrap)
}

// snapshotDisk records the origin file's current stat. Callers hold e.mu
// or own e exclusively.
func (e *Engine) snapshotDisk() {
	if e.path == "" {
		return
	}
	if info, err := os.Stat(e.path); err == nil {
		e.diskMod = info.ModTime()
		e.diskSize = info.Size()
	}
}

// ExternalChange reports whether the file on disk was modified behind this
// document since the last open or save. Untitled documents and stat
// failures report false.
func (e *Engine) ExternalChange() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.path == "" {
		return false
	}
	info, err := os.Stat(e.path)
	if err != nil {
		return false
	}
	return !info.ModTime().Equal(e.diskMod) || info.Size() != e.diskSize
}

// Close releases the underlying file handle.
func (e *Engine) Close() error {
	return e.buf.Close()
}
