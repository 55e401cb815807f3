package session

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/hexstorm/internal/engine"
)

// Document is one open file plus its view state. The cursor is a byte
// offset; position size (one past the last byte) is valid so inserts can
// target the end.
type Document struct {
	id      uuid.UUID
	eng     *engine.Engine
	cursor  int64
	viewTop int64
}

func newDocument(eng *engine.Engine) *Document {
	return &Document{id: uuid.New(), eng: eng}
}

// ID returns the document's stable identity, independent of its path.
func (d *Document) ID() uuid.UUID { return d.id }

// Engine returns the document's edit engine.
func (d *Document) Engine() *engine.Engine { return d.eng }

// Path returns the file path, empty for untitled documents.
func (d *Document) Path() string { return d.eng.Path() }

// Title returns the base name for the status line, or "untitled".
func (d *Document) Title() string {
	if p := d.eng.Path(); p != "" {
		return filepath.Base(p)
	}
	return "untitled"
}

// Cursor returns the current cursor offset.
func (d *Document) Cursor() int64 { return d.cursor }

// ViewTop returns the offset of the first visible byte.
func (d *Document) ViewTop() int64 { return d.viewTop }

// SetViewTop records the scroll position.
func (d *Document) SetViewTop(off int64) {
	if off < 0 {
		off = 0
	}
	d.viewTop = off
}

// MoveCursor places the cursor, clamped to [0, size]. A move that leaves
// the immediate neighborhood of the previous position ends the current
// undo coalescing group, so typing after a jump is a separate undo step.
func (d *Document) MoveCursor(to int64) {
	if to < 0 {
		to = 0
	}
	if size := d.eng.Size(); to > size {
		to = size
	}
	if to < d.cursor-1 || to > d.cursor+1 {
		d.eng.Break()
	}
	d.cursor = to
}

// Dirty reports unsaved changes.
func (d *Document) Dirty() bool { return d.eng.Dirty() }
