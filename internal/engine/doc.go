// Package engine ties one document's edit buffer, undo journal, and search
// together behind a single facade. Every mutation goes through the engine
// so it is journaled before the caller sees the result; undo and redo
// replay journal records against the buffer and report the affected range
// so views can follow the change.
//
// Saving streams the buffer to a temporary file and renames it over the
// target, then collapses the overlay onto the freshly written file. A
// failed save leaves the buffer, the journal, and the on-disk file exactly
// as they were.
package engine
