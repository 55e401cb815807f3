package search

import (
	"context"
	"errors"
	"io"
)

// Errors returned by search operations.
var (
	// ErrPatternEmpty indicates a zero-length search pattern.
	ErrPatternEmpty = errors.New("pattern is empty")

	// ErrNotFound indicates no occurrence exists in a full pass.
	ErrNotFound = errors.New("sequence not found")

	// ErrCancelled indicates the caller cancelled a long-running scan.
	ErrCancelled = errors.New("search cancelled")
)

// blockSize is the streaming read granularity.
const blockSize = 4096

// Direction selects the scan direction.
type Direction uint8

const (
	// Forward scans toward higher offsets.
	Forward Direction = iota
	// Backward scans toward lower offsets.
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Source is the read surface the scan consumes. The buffer's logical byte
// stream satisfies it; the scanner never sees overlay segments directly.
type Source interface {
	io.ReaderAt
	Size() int64
}

// Find returns the offset of the first occurrence of pattern at or after
// start (Forward), or the last occurrence at or before start (Backward).
// With wrap set, a scan that reaches the buffer boundary continues from the
// opposite end back to the start position. Returns ErrNotFound after a full
// unsuccessful pass and ErrCancelled if ctx is done at a block boundary.
func Find(ctx context.Context, src Source, pattern []byte, start int64, dir Direction, wrap bool) (int64, error) {
	if len(pattern) == 0 {
		return 0, ErrPatternEmpty
	}
	size := src.Size()
	if int64(len(pattern)) > size {
		return 0, ErrNotFound
	}
	if start < 0 {
		start = 0
	}
	if start > size {
		start = size
	}

	var skip [256]int
	buildSkipTable(pattern, &skip)

	if dir == Forward {
		if off, err := findFirst(ctx, src, pattern, &skip, start, size); err != ErrNotFound {
			return off, err
		}
		if wrap && start > 0 {
			return findFirst(ctx, src, pattern, &skip, 0, start)
		}
		return 0, ErrNotFound
	}

	if off, err := findLast(ctx, src, pattern, &skip, 0, start+1); err != ErrNotFound {
		return off, err
	}
	if wrap && start+1 < size {
		return findLast(ctx, src, pattern, &skip, start+1, size)
	}
	return 0, ErrNotFound
}

// buildSkipTable fills the Boyer-Moore-Horspool bad-character table.
func buildSkipTable(pattern []byte, skip *[256]int) {
	for i := range skip {
		skip[i] = len(pattern)
	}
	for i := 0; i < len(pattern)-1; i++ {
		skip[pattern[i]] = len(pattern) - 1 - i
	}
}

// findFirst scans candidate match positions in [lo, hi), lowest first.
// Blocks overlap by len(pattern)-1 bytes so straddling matches are found.
func findFirst(ctx context.Context, src Source, pattern []byte, skip *[256]int, lo, hi int64) (int64, error) {
	size := src.Size()
	window := make([]byte, blockSize+len(pattern)-1)

	for pos := lo; pos < hi; pos += blockSize {
		if ctx != nil && ctx.Err() != nil {
			return 0, ErrCancelled
		}

		n := int64(len(window))
		if pos+n > size {
			n = size - pos
		}
		if n < int64(len(pattern)) {
			break
		}
		if _, err := src.ReadAt(window[:n], pos); err != nil && err != io.EOF {
			return 0, err
		}

		limit := hi - pos
		if limit > blockSize {
			limit = blockSize
		}
		if rel := bmh(window[:n], int(limit), pattern, skip); rel >= 0 {
			return pos + int64(rel), nil
		}
	}
	return 0, ErrNotFound
}

// findLast scans candidate match positions in [lo, hi), highest first.
// Blocks are walked from the high end; within a block the last match wins.
func findLast(ctx context.Context, src Source, pattern []byte, skip *[256]int, lo, hi int64) (int64, error) {
	size := src.Size()

	blockHi := hi
	for blockHi > lo {
		if ctx != nil && ctx.Err() != nil {
			return 0, ErrCancelled
		}

		blockLo := blockHi - blockSize
		if blockLo < lo {
			blockLo = lo
		}

		// Read the block plus overlap so a match starting near blockHi-1
		// can complete.
		end := blockHi - 1 + int64(len(pattern))
		if end > size {
			end = size
		}
		if end > blockLo {
			window := make([]byte, end-blockLo)
			if _, err := src.ReadAt(window, blockLo); err != nil && err != io.EOF {
				return 0, err
			}

			limit := int(blockHi - blockLo)
			last := -1
			at := 0
			for {
				rel := bmh(window[at:], limit-at, pattern, skip)
				if rel < 0 {
					break
				}
				last = at + rel
				at += rel + 1
			}
			if last >= 0 {
				return blockLo + int64(last), nil
			}
		}

		blockHi = blockLo
	}
	return 0, ErrNotFound
}

// bmh returns the index of the first occurrence of pattern in data whose
// start index is below limit, or -1. The full pattern must fit in data.
func bmh(data []byte, limit int, pattern []byte, skip *[256]int) int {
	if limit <= 0 {
		return -1
	}
	plen := len(pattern)
	i := 0
	for i+plen <= len(data) && i < limit {
		j := plen - 1
		for j >= 0 && data[i+j] == pattern[j] {
			j--
		}
		if j < 0 {
			return i
		}
		i += skip[data[i+plen-1]]
	}
	return -1
}
