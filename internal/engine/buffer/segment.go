package buffer

// segmentKind identifies what a segment's bytes are attributed to.
type segmentKind uint8

const (
	// segOrigin is a run of untouched bytes from the origin file.
	segOrigin segmentKind = iota
	// segInserted is a run of literal bytes added by an insert.
	segInserted
	// segReplaced is a run of literal bytes written by an overwrite.
	segReplaced
)

// segment is one contiguous run of the logical byte stream.
// Origin segments reference [origin, origin+length) of the origin file;
// literal segments own their bytes in data.
type segment struct {
	kind   segmentKind
	origin int64      // start offset in the origin (segOrigin only)
	length ByteOffset // logical length; == len(data) for literal segments
	data   []byte     // literal bytes (segInserted, segReplaced)
}

// literal returns true for inserted or replaced segments.
func (s *segment) literal() bool {
	return s.kind != segOrigin
}

// split divides the segment at the given relative offset.
// The offset must be in (0, length).
func (s *segment) split(at ByteOffset) (segment, segment) {
	left := *s
	right := *s
	left.length = at
	right.length = s.length - at
	if s.kind == segOrigin {
		right.origin = s.origin + int64(at)
	} else {
		left.data = s.data[:at]
		right.data = s.data[at:]
	}
	return left, right
}

// mergeable returns true if next can be appended to s as one segment.
func (s *segment) mergeable(next *segment) bool {
	if s.kind != next.kind {
		return false
	}
	if s.kind == segOrigin {
		return s.origin+int64(s.length) == next.origin
	}
	return true
}
