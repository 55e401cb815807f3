package buffer

import "sync/atomic"

// ByteOffset is a byte position in the logical (post-edit) byte stream.
type ByteOffset int64

// Range represents a half-open byte range [Start, End) in the logical stream.
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

// NewRange creates a range, swapping start and end if needed.
func NewRange(start, end ByteOffset) Range {
	if start > end {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// Len returns the length of the range.
func (r Range) Len() ByteOffset {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start >= r.End
}

// Contains returns true if the offset is within the range.
func (r Range) Contains(offset ByteOffset) bool {
	return offset >= r.Start && offset < r.End
}

// Union returns the smallest range covering both r and other.
func (r Range) Union(other Range) Range {
	if other.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return other
	}
	out := r
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// RevisionID uniquely identifies a buffer revision.
// A new revision is created on every mutation.
type RevisionID uint64

var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
