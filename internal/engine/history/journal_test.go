package history

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dshills/hexstorm/internal/engine/buffer"
)

// Helper to create a journal and a buffer with sequential content.
func newTestJournal(n int, policy Policy) (*Journal, *buffer.Buffer) {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return NewJournal(0, policy), buffer.NewFromBytes(data)
}

// apply runs a record against the buffer and journals it, the way the
// engine does for every mutation.
func apply(t *testing.T, j *Journal, b *buffer.Buffer, rec *Record) {
	t.Helper()
	j.Push(rec)
	if err := b.Splice(rec.Offset, ByteOffset(len(rec.Old)), rec.New); err != nil {
		t.Fatalf("splice: %v", err)
	}
}

func content(t *testing.T, b *buffer.Buffer) []byte {
	t.Helper()
	data, err := b.Read(0, b.Len())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return data
}

func TestRecordInvert(t *testing.T) {
	rec := NewReplace(5, []byte{1, 2}, []byte{3, 4, 5})
	inv := rec.Invert()
	if !bytes.Equal(inv.Old, rec.New) || !bytes.Equal(inv.New, rec.Old) {
		t.Error("Invert did not swap Old and New")
	}
	if inv.Offset != rec.Offset {
		t.Error("Invert changed the offset")
	}
}

func TestRecordKinds(t *testing.T) {
	if rec := NewInsert(0, []byte{1}); !rec.IsInsert() || rec.IsDelete() || rec.IsReplace() {
		t.Error("insert record misclassified")
	}
	if rec := NewDelete(0, []byte{1}); !rec.IsDelete() || rec.IsInsert() {
		t.Error("delete record misclassified")
	}
	if rec := NewReplace(0, []byte{1}, []byte{2}); !rec.IsReplace() {
		t.Error("replace record misclassified")
	}
}

func TestUndoRestoresExactState(t *testing.T) {
	j, b := newTestJournal(10, PolicyNone)
	before := content(t, b)

	apply(t, j, b, NewInsert(5, []byte{0xAA, 0xBB}))
	if b.Len() != 12 {
		t.Fatalf("length = %d, want 12", b.Len())
	}
	after := content(t, b)

	r, err := j.Undo(b)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if r.Start != 5 || r.End != 5 {
		t.Errorf("affected range = %+v, want [5,5)", r)
	}
	if b.Len() != 10 {
		t.Errorf("length = %d, want 10", b.Len())
	}
	if !bytes.Equal(content(t, b), before) {
		t.Error("undo did not restore pre-mutation content")
	}

	if _, err := j.Redo(b); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if !bytes.Equal(content(t, b), after) {
		t.Error("redo did not restore post-mutation content")
	}
}

func TestUndoRedoBoundaries(t *testing.T) {
	j, b := newTestJournal(4, PolicyNone)

	if _, err := j.Undo(b); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("err = %v, want ErrNothingToUndo", err)
	}
	if _, err := j.Redo(b); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("err = %v, want ErrNothingToRedo", err)
	}
}

func TestNewMutationDiscardsRedoTail(t *testing.T) {
	j, b := newTestJournal(10, PolicyNone)

	apply(t, j, b, NewReplace(0, []byte{0}, []byte{0xAA}))
	apply(t, j, b, NewReplace(1, []byte{1}, []byte{0xBB}))

	if _, err := j.Undo(b); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !j.CanRedo() {
		t.Fatal("redo should be available after undo")
	}

	// A fresh edit discards the redo branch.
	apply(t, j, b, NewReplace(5, []byte{5}, []byte{0xCC}))
	if j.CanRedo() {
		t.Error("redo still available after new mutation")
	}
	if _, err := j.Redo(b); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("err = %v, want ErrNothingToRedo", err)
	}
}

func TestUndoSequence(t *testing.T) {
	j, b := newTestJournal(10, PolicyNone)
	want := [][]byte{content(t, b)}

	apply(t, j, b, NewInsert(0, []byte{0xFF}))
	want = append(want, content(t, b))
	apply(t, j, b, NewDelete(3, []byte{2, 3}))
	want = append(want, content(t, b))
	apply(t, j, b, NewReplace(0, []byte{0xFF}, []byte{0xEE}))
	want = append(want, content(t, b))

	for i := len(want) - 2; i >= 0; i-- {
		if _, err := j.Undo(b); err != nil {
			t.Fatalf("Undo %d: %v", i, err)
		}
		if !bytes.Equal(content(t, b), want[i]) {
			t.Errorf("after undo to %d: content = % x, want % x", i, content(t, b), want[i])
		}
	}
	for i := 1; i < len(want); i++ {
		if _, err := j.Redo(b); err != nil {
			t.Fatalf("Redo %d: %v", i, err)
		}
		if !bytes.Equal(content(t, b), want[i]) {
			t.Errorf("after redo to %d: content = % x, want % x", i, content(t, b), want[i])
		}
	}
}

func TestDeleteUndoBecomesInsert(t *testing.T) {
	j, b := newTestJournal(10, PolicyNone)

	deleted, _ := b.Read(3, 4)
	apply(t, j, b, NewDelete(3, deleted))
	if b.Len() != 6 {
		t.Fatalf("length = %d, want 6", b.Len())
	}

	r, err := j.Undo(b)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if r.Start != 3 || r.End != 7 {
		t.Errorf("affected range = %+v, want [3,7)", r)
	}
	got := content(t, b)
	if !bytes.Equal(got, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}) {
		t.Errorf("content = % x", got)
	}
}

func TestCoalesceAdjacentTyping(t *testing.T) {
	j, b := newTestJournal(10, PolicyAdjacent)

	// Three consecutive single-byte overwrites, as when typing hex digits
	// across adjacent cells.
	apply(t, j, b, NewReplace(2, []byte{2}, []byte{0xAA}))
	apply(t, j, b, NewReplace(3, []byte{3}, []byte{0xBB}))
	apply(t, j, b, NewReplace(4, []byte{4}, []byte{0xCC}))

	if got := j.UndoCount(); got != 1 {
		t.Fatalf("undo steps = %d, want 1 (coalesced)", got)
	}

	if _, err := j.Undo(b); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	got := content(t, b)
	if !bytes.Equal(got, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}) {
		t.Errorf("single undo did not revert the whole group: % x", got)
	}
}

func TestCoalesceSameCellRetype(t *testing.T) {
	j, b := newTestJournal(10, PolicyAdjacent)

	// Typing the two nibbles of one cell produces two overwrites at the
	// same offset.
	apply(t, j, b, NewReplace(5, []byte{5}, []byte{0xA5}))
	apply(t, j, b, NewReplace(5, []byte{0xA5}, []byte{0xAB}))

	if got := j.UndoCount(); got != 1 {
		t.Fatalf("undo steps = %d, want 1", got)
	}
	if _, err := j.Undo(b); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got, _ := b.ByteAt(5); got != 5 {
		t.Errorf("byte at 5 = %#x, want 0x05", got)
	}
}

func TestBreakStopsCoalescing(t *testing.T) {
	j, b := newTestJournal(10, PolicyAdjacent)

	apply(t, j, b, NewReplace(2, []byte{2}, []byte{0xAA}))
	j.Break()
	apply(t, j, b, NewReplace(3, []byte{3}, []byte{0xBB}))

	if got := j.UndoCount(); got != 2 {
		t.Errorf("undo steps = %d, want 2 after Break", got)
	}
}

func TestNonAdjacentNeverCoalesces(t *testing.T) {
	j, b := newTestJournal(10, PolicyAdjacent)

	apply(t, j, b, NewReplace(2, []byte{2}, []byte{0xAA}))
	apply(t, j, b, NewReplace(7, []byte{7}, []byte{0xBB}))

	if got := j.UndoCount(); got != 2 {
		t.Errorf("undo steps = %d, want 2", got)
	}
}

func TestPolicyNoneNeverCoalesces(t *testing.T) {
	j, b := newTestJournal(10, PolicyNone)

	apply(t, j, b, NewReplace(2, []byte{2}, []byte{0xAA}))
	apply(t, j, b, NewReplace(3, []byte{3}, []byte{0xBB}))

	if got := j.UndoCount(); got != 2 {
		t.Errorf("undo steps = %d, want 2", got)
	}
}

func TestMaxEntriesCap(t *testing.T) {
	j := NewJournal(3, PolicyNone)
	b := buffer.NewFromBytes(make([]byte, 16))

	for i := 0; i < 5; i++ {
		apply(t, j, b, NewReplace(ByteOffset(i*2), []byte{0}, []byte{byte(i + 1)}))
	}
	if got := j.UndoCount(); got != 3 {
		t.Errorf("undo steps = %d, want 3 (capped)", got)
	}
}

func TestSavedMark(t *testing.T) {
	j, b := newTestJournal(10, PolicyNone)

	if !j.AtSavedMark() {
		t.Error("fresh journal should be at saved mark")
	}

	apply(t, j, b, NewReplace(0, []byte{0}, []byte{0xAA}))
	if j.AtSavedMark() {
		t.Error("should not be at saved mark after edit")
	}

	j.MarkSaved()
	if !j.AtSavedMark() {
		t.Error("should be at saved mark after MarkSaved")
	}

	// Undo moves away from the mark; redo returns to it.
	if _, err := j.Undo(b); err != nil {
		t.Fatal(err)
	}
	if j.AtSavedMark() {
		t.Error("should not be at saved mark after undo past save")
	}
	if _, err := j.Redo(b); err != nil {
		t.Fatal(err)
	}
	if !j.AtSavedMark() {
		t.Error("redo should return to the saved mark")
	}
}

func TestSaveStopsCoalescing(t *testing.T) {
	j, b := newTestJournal(10, PolicyAdjacent)

	// An otherwise coalescible overwrite right after a save must start a
	// new record, or the cursor would sit at savedAt while the content
	// diverges from disk.
	apply(t, j, b, NewReplace(0, []byte{0}, []byte{0xAA}))
	j.MarkSaved()
	apply(t, j, b, NewReplace(1, []byte{1}, []byte{0xBB}))

	if got := j.UndoCount(); got != 2 {
		t.Errorf("undo steps = %d, want 2 across a save", got)
	}
	if j.AtSavedMark() {
		t.Error("edit after save should leave the saved mark")
	}
	if _, err := j.Undo(b); err != nil {
		t.Fatal(err)
	}
	if !j.AtSavedMark() {
		t.Error("one undo should return to the saved state")
	}
}

func TestSavedMarkUnreachableAfterTruncation(t *testing.T) {
	j, b := newTestJournal(10, PolicyNone)

	apply(t, j, b, NewReplace(0, []byte{0}, []byte{0xAA}))
	j.MarkSaved()

	if _, err := j.Undo(b); err != nil {
		t.Fatal(err)
	}
	// New edit discards the redo tail containing the saved state.
	apply(t, j, b, NewReplace(1, []byte{1}, []byte{0xBB}))

	if j.AtSavedMark() {
		t.Error("saved mark should be unreachable after branch discard")
	}
	if _, err := j.Undo(b); err != nil {
		t.Fatal(err)
	}
	if j.AtSavedMark() {
		t.Error("saved mark must stay unreachable")
	}
}

func TestPeek(t *testing.T) {
	j, b := newTestJournal(10, PolicyNone)

	if _, ok := j.PeekUndo(); ok {
		t.Error("PeekUndo on empty journal")
	}

	apply(t, j, b, NewInsert(0, []byte{1, 2}))
	info, ok := j.PeekUndo()
	if !ok || info.Description != "insert" || info.NetDelta != 2 {
		t.Errorf("PeekUndo = %+v, %v", info, ok)
	}

	if _, err := j.Undo(b); err != nil {
		t.Fatal(err)
	}
	info, ok = j.PeekRedo()
	if !ok || info.Description != "insert" {
		t.Errorf("PeekRedo = %+v, %v", info, ok)
	}
}
