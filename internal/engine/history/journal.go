package history

import (
	"errors"
	"sync"
)

// Common errors for journal operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries caps journal growth when no explicit limit is given.
const DefaultMaxEntries = 1000

// Target is the mutation surface the journal replays records against.
// The buffer's Splice satisfies it. Applying through Target bypasses normal
// journal recording, so undo and redo are never double-logged.
type Target interface {
	Splice(offset, removeLen ByteOffset, data []byte) error
}

// Journal records every mutation of one buffer as a reversible Record and
// drives undo/redo. It is never persisted; one journal lives and dies with
// its buffer.
type Journal struct {
	mu sync.Mutex

	records []*Record
	cursor  int // index of the next record to undo; len(records) when fully applied

	// savedAt is the cursor value at the last save, or -1 when the saved
	// state was discarded with a truncated redo tail.
	savedAt int

	maxEntries int
	policy     Policy
	broken     bool // coalescing boundary declared since the last push
}

// NewJournal creates a journal with the given entry cap and coalescing
// policy. A non-positive cap selects DefaultMaxEntries.
func NewJournal(maxEntries int, policy Policy) *Journal {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Journal{
		maxEntries: maxEntries,
		policy:     policy,
	}
}

// Push appends a record for a mutation that is about to be applied.
// Any redo tail beyond the cursor is discarded first. Under the Adjacent
// policy the record may instead be merged into the previous one.
func (j *Journal) Push(rec *Record) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cursor == len(j.records) && j.cursor > 0 && !j.broken {
		if coalesce(j.policy, j.records[j.cursor-1], rec) {
			return
		}
	}

	// Discard redo tail
	if j.cursor < len(j.records) {
		j.records = j.records[:j.cursor]
		if j.savedAt > j.cursor {
			j.savedAt = -1
		}
	}

	j.records = append(j.records, rec)
	j.cursor = len(j.records)
	j.broken = false

	if len(j.records) > j.maxEntries {
		excess := len(j.records) - j.maxEntries
		j.records = j.records[excess:]
		j.cursor -= excess
		if j.savedAt >= 0 {
			j.savedAt -= excess
			if j.savedAt < 0 {
				j.savedAt = -1
			}
		}
	}
}

// Undo applies the inverse of the record before the cursor to the target
// and steps the cursor back. It returns the affected logical range so the
// UI can refresh it.
func (j *Journal) Undo(t Target) (Range, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cursor == 0 {
		return Range{}, ErrNothingToUndo
	}

	rec := j.records[j.cursor-1]
	if err := t.Splice(rec.Offset, ByteOffset(len(rec.New)), rec.Old); err != nil {
		return Range{}, err
	}
	j.cursor--
	j.broken = true
	return rec.OldRange(), nil
}

// Redo re-applies the record at the cursor and steps the cursor forward.
func (j *Journal) Redo(t Target) (Range, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cursor == len(j.records) {
		return Range{}, ErrNothingToRedo
	}

	rec := j.records[j.cursor]
	if err := t.Splice(rec.Offset, ByteOffset(len(rec.Old)), rec.New); err != nil {
		return Range{}, err
	}
	j.cursor++
	j.broken = true
	return rec.NewRange(), nil
}

// Break declares a coalescing boundary: the next pushed record starts a new
// undo step even if it would otherwise merge. Called when the cursor moves
// non-adjacently or a non-edit command intervenes.
func (j *Journal) Break() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.broken = true
}

// CanUndo returns true if undo is available.
func (j *Journal) CanUndo() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cursor > 0
}

// CanRedo returns true if redo is available.
func (j *Journal) CanRedo() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cursor < len(j.records)
}

// UndoCount returns the number of undo steps available.
func (j *Journal) UndoCount() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cursor
}

// RedoCount returns the number of redo steps available.
func (j *Journal) RedoCount() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.records) - j.cursor
}

// MarkSaved records the current cursor as the saved state. AtSavedMark
// reports whether the buffer content equals that state, which is how the
// engine maintains the dirty flag across undo and redo. A save is also a
// coalescing boundary: merging a later edit into the saved record would
// leave the cursor at savedAt while the content diverges from disk.
func (j *Journal) MarkSaved() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.savedAt = j.cursor
	j.broken = true
}

// AtSavedMark returns true if the cursor is at the last saved state.
func (j *Journal) AtSavedMark() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.savedAt == j.cursor
}

// Clear removes all records. Called when the buffer is closed.
func (j *Journal) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = nil
	j.cursor = 0
	j.savedAt = 0
	j.broken = false
}

// PeekUndo returns info about the next undo step without applying it.
func (j *Journal) PeekUndo() (RecordInfo, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cursor == 0 {
		return RecordInfo{}, false
	}
	return j.info(j.records[j.cursor-1]), true
}

// PeekRedo returns info about the next redo step without applying it.
func (j *Journal) PeekRedo() (RecordInfo, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cursor == len(j.records) {
		return RecordInfo{}, false
	}
	return j.info(j.records[j.cursor]), true
}

func (j *Journal) info(rec *Record) RecordInfo {
	return RecordInfo{
		Description: rec.Description(),
		Timestamp:   rec.Timestamp,
		NetDelta:    rec.NetDelta(),
	}
}
