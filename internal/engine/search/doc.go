// Package search scans a buffer's logical byte stream for a literal pattern.
//
// The scan streams fixed-size blocks through the buffer's read API so a
// match straddling overlay segment boundaries is still found: each block
// carries len(pattern)-1 bytes of overlap with its neighbor. Matching uses
// Boyer-Moore-Horspool, so a full pass stays linear even on adversarial
// patterns.
//
// Both directions support wraparound: a forward search that reaches the end
// continues from offset zero back to the start position, and symmetrically
// for backward. Long scans poll the context at block boundaries and return
// ErrCancelled when the caller gives up.
//
// Patterns arrive from the UI as hex-stream text ("dead be ef") or ASCII
// literals; ParseHex and FromASCII normalize both to bytes.
package search
