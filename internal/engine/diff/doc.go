// Package diff compares the logical content of two or more buffers and
// classifies every byte as Equal, Differ, or Missing.
//
// The first buffer is the reference. Each other buffer is aligned against
// the reference pairwise, then the pair alignments are merged along the
// reference axis into a single Map of blocks. A block carries one span per
// buffer; a buffer that has no bytes for the block gets an empty span and
// the block is classified Missing.
//
// Alignment is streaming lockstep with bounded lookahead: after a mismatch
// the aligner searches a small window on both sides for a run of SyncLen
// identical bytes and resynchronizes there, so an insertion does not smear
// the rest of the comparison. An optional Myers strategy computes a minimal
// edit script instead when the inputs are small enough; it falls back to
// resync alignment when they are not.
//
// Session wraps a computed Map with revision tracking: the map is
// recomputed lazily, only when some buffer's revision has moved since the
// last computation.
package diff
