// Package buffer provides the document buffer for the hex editor engine.
//
// A Buffer represents a file's current content as an immutable Origin (the
// on-disk bytes at open time) plus an ordered overlay of edit segments. Each
// segment is either a run of untouched origin bytes or a run of literal bytes
// produced by an insert or overwrite. Together the segments form a gapless
// partition of the logical file length, so small edits never require reading
// or rewriting the whole file: only touched regions are materialized.
//
// All mutations go through Splice, which validates its range before touching
// the overlay. A failed call leaves the buffer exactly as it was.
//
// Basic usage:
//
//	origin, _ := buffer.OpenFile("/tmp/data.bin")
//	buf := buffer.New(origin)
//
//	// Overwrite two bytes at offset 8
//	buf.Replace(8, []byte{0xde, 0xad})
//
//	// Insert a byte at offset 3
//	buf.Insert(3, []byte{0x00})
//
//	// Read the logical stream
//	data, _ := buf.Read(0, buf.Len())
//
// Thread Safety:
//
// All Buffer methods are thread-safe via sync.RWMutex. The editing session
// itself is single-user; the lock exists so read-only consumers (renderer,
// search, diff) can safely observe the buffer.
package buffer
