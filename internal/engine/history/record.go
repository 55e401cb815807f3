package history

import (
	"time"

	"github.com/dshills/hexstorm/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Record captures a single mutation as a reversible splice: at Offset, the
// bytes in Old were replaced by the bytes in New. Applying a record is a
// splice; inverting it swaps Old and New.
type Record struct {
	Offset ByteOffset
	Old    []byte // bytes removed by the mutation (restored on undo)
	New    []byte // bytes added by the mutation (restored on redo)

	Timestamp time.Time
}

// NewInsert creates a record for an insertion.
func NewInsert(offset ByteOffset, data []byte) *Record {
	return &Record{
		Offset:    offset,
		New:       append([]byte(nil), data...),
		Timestamp: time.Now(),
	}
}

// NewDelete creates a record for a deletion; deleted holds the removed bytes.
func NewDelete(offset ByteOffset, deleted []byte) *Record {
	return &Record{
		Offset:    offset,
		Old:       append([]byte(nil), deleted...),
		Timestamp: time.Now(),
	}
}

// NewReplace creates a record for an overwrite. Old and New may differ in
// length when the overwrite grew the buffer past its previous end.
func NewReplace(offset ByteOffset, old, new []byte) *Record {
	return &Record{
		Offset:    offset,
		Old:       append([]byte(nil), old...),
		New:       append([]byte(nil), new...),
		Timestamp: time.Now(),
	}
}

// IsInsert returns true if this record is a pure insertion.
func (r *Record) IsInsert() bool {
	return len(r.Old) == 0 && len(r.New) > 0
}

// IsDelete returns true if this record is a pure deletion.
func (r *Record) IsDelete() bool {
	return len(r.Old) > 0 && len(r.New) == 0
}

// IsReplace returns true if this record overwrites bytes.
func (r *Record) IsReplace() bool {
	return len(r.Old) > 0 && len(r.New) > 0
}

// NetDelta returns the change in buffer length caused by this record.
func (r *Record) NetDelta() int {
	return len(r.New) - len(r.Old)
}

// OldRange returns the range the record covered before it was applied.
func (r *Record) OldRange() Range {
	return Range{Start: r.Offset, End: r.Offset + ByteOffset(len(r.Old))}
}

// NewRange returns the range the record covers after it was applied.
func (r *Record) NewRange() Range {
	return Range{Start: r.Offset, End: r.Offset + ByteOffset(len(r.New))}
}

// Invert returns a record that exactly reverses this one.
func (r *Record) Invert() *Record {
	return &Record{
		Offset:    r.Offset,
		Old:       r.New,
		New:       r.Old,
		Timestamp: time.Now(),
	}
}

// Clone creates a deep copy of the record.
func (r *Record) Clone() *Record {
	return &Record{
		Offset:    r.Offset,
		Old:       append([]byte(nil), r.Old...),
		New:       append([]byte(nil), r.New...),
		Timestamp: r.Timestamp,
	}
}

// RecordInfo provides read-only info about a journal entry, used for
// displaying undo/redo state to the user.
type RecordInfo struct {
	Description string
	Timestamp   time.Time
	NetDelta    int
}

// Description returns a short human-readable label for the record.
func (r *Record) Description() string {
	switch {
	case r.IsInsert():
		return "insert"
	case r.IsDelete():
		return "delete"
	default:
		return "replace"
	}
}
