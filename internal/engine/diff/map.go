package diff

import "sort"

// Kind classifies a block of compared bytes.
type Kind uint8

const (
	// Equal means every buffer holds the same bytes for the block.
	Equal Kind = iota

	// Differ means every buffer holds bytes for the block but at least one
	// disagrees with the reference.
	Differ

	// Missing means at least one buffer has no bytes for the block, for
	// example past a shorter file's end or across a deleted region.
	Missing
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Differ:
		return "differ"
	case Missing:
		return "missing"
	default:
		return "equal"
	}
}

// Span is a half-open byte range [Start, End) in one buffer's own
// coordinates. An empty span marks a buffer with no bytes for the block.
type Span struct {
	Start int64
	End   int64
}

// Len returns the span length in bytes.
func (s Span) Len() int64 { return s.End - s.Start }

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool { return s.End <= s.Start }

// Block is one classified region of the comparison. Spans has one entry
// per compared buffer, in the order the buffers were given; Spans[0] is
// the reference.
type Block struct {
	Kind  Kind
	Spans []Span
}

// Map is the merged result of a comparison. Blocks are ordered by
// reference offset and partition every buffer's content.
type Map struct {
	blocks []Block
	// perFile[f] indexes blocks by file f's own offsets for ClassAt.
	perFile [][]fileRange
}

type fileRange struct {
	span  Span
	block int
}

// newMap builds the per-file lookup index over blocks.
func newMap(files int, blocks []Block) *Map {
	m := &Map{blocks: blocks, perFile: make([][]fileRange, files)}
	for f := 0; f < files; f++ {
		for bi, blk := range blocks {
			sp := blk.Spans[f]
			if !sp.IsEmpty() {
				m.perFile[f] = append(m.perFile[f], fileRange{span: sp, block: bi})
			}
		}
		sort.Slice(m.perFile[f], func(i, j int) bool {
			return m.perFile[f][i].span.Start < m.perFile[f][j].span.Start
		})
	}
	return m
}

// Blocks returns the ordered comparison blocks.
func (m *Map) Blocks() []Block { return m.blocks }

// Files returns the number of compared buffers.
func (m *Map) Files() int { return len(m.perFile) }

// ClassAt returns the classification of the byte at off in buffer file.
// Offsets outside the buffer return Equal, the no-highlight class.
func (m *Map) ClassAt(file int, off int64) Kind {
	if file < 0 || file >= len(m.perFile) {
		return Equal
	}
	ranges := m.perFile[file]
	i := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].span.End > off
	})
	if i < len(ranges) && ranges[i].span.Start <= off {
		return m.blocks[ranges[i].block].Kind
	}
	return Equal
}

// KindCounts returns, for one buffer, the number of its bytes in each
// class, summarizing a comparison.
func (m *Map) KindCounts(file int) (equal, differ, missing int64) {
	if file < 0 || file >= len(m.perFile) {
		return 0, 0, 0
	}
	for _, fr := range m.perFile[file] {
		switch m.blocks[fr.block].Kind {
		case Equal:
			equal += fr.span.Len()
		case Differ:
			differ += fr.span.Len()
		case Missing:
			missing += fr.span.Len()
		}
	}
	return equal, differ, missing
}
