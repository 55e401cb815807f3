// Package history provides the undo journal for the hex editor engine.
//
// Every buffer mutation is captured as a Record: a splice described by its
// offset plus the bytes it removed and the bytes it added. A Record carries
// enough state to be applied and inverted exactly, so undo and redo are both
// plain splices against the buffer.
//
// The Journal keeps records in issue order with a cursor marking the next
// record to undo. Pushing a new record while the cursor is behind the end
// truncates the discarded redo tail (classic undo-branch-discard).
//
// Consecutive single-byte overwrites can be coalesced into one record under
// a configurable policy, keeping undo granularity at the user-action level
// rather than the byte level. The grouping boundary is declared by the caller
// via Break, typically when the cursor moves non-adjacently or a non-edit
// command runs.
package history
