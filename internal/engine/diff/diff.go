package diff

import (
	"context"
	"errors"
	"sort"
)

// ErrNoSources indicates Compute was called with nothing to compare.
var ErrNoSources = errors.New("no buffers to compare")

// Compute compares sources[0] (the reference) against every other source
// and merges the pairwise alignments into one Map. A zero Options value
// selects the defaults.
func Compute(ctx context.Context, sources []Source, opts Options) (*Map, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	opts = opts.normalize()

	refSize := sources[0].Size()
	if len(sources) == 1 {
		blk := Block{Kind: Equal, Spans: []Span{{0, refSize}}}
		if refSize == 0 {
			return newMap(1, nil), nil
		}
		return newMap(1, []Block{blk}), nil
	}

	aligns := make([]fileAlign, len(sources))
	for f := 1; f < len(sources); f++ {
		ops, err := alignPair(ctx, sources[0], sources[f], opts)
		if err != nil {
			return nil, err
		}
		aligns[f] = buildFileAlign(ops)
	}

	return mergeAlignments(len(sources), refSize, aligns), nil
}

// alignPair runs the configured strategy, falling back to resync alignment
// when Myers declines the input.
func alignPair(ctx context.Context, ref, other Source, opts Options) ([]op, error) {
	if opts.Strategy == StrategyMyers {
		ops, ok, err := alignMyers(ctx, ref, other, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			return ops, nil
		}
	}
	return alignResync(ctx, ref, other, opts)
}

// pairSeg is one alignment run in both coordinate systems. Deletions have
// an empty file span; insertions have an empty reference span and are kept
// separately, anchored at their reference offset.
type pairSeg struct {
	refStart, refEnd int64
	fStart, fEnd     int64
	kind             opKind
}

type fileAlign struct {
	segs []pairSeg      // eq/sub/del runs; partition the reference axis
	ins  map[int64]Span // file-only runs keyed by reference anchor
}

func buildFileAlign(ops []op) fileAlign {
	fa := fileAlign{ins: make(map[int64]Span)}
	var refPos, fPos int64
	for _, o := range ops {
		switch o.kind {
		case opEq, opSub:
			fa.segs = append(fa.segs, pairSeg{refPos, refPos + o.n, fPos, fPos + o.n, o.kind})
			refPos += o.n
			fPos += o.n
		case opDel:
			fa.segs = append(fa.segs, pairSeg{refPos, refPos + o.n, fPos, fPos, opDel})
			refPos += o.n
		case opIns:
			fa.ins[refPos] = Span{fPos, fPos + o.n}
			fPos += o.n
		}
	}
	return fa
}

// mergeAlignments cuts the reference axis at every pair boundary and emits
// one block per elementary interval, plus Missing blocks for file-only
// insertions anchored between intervals.
func mergeAlignments(files int, refSize int64, aligns []fileAlign) *Map {
	cutSet := map[int64]struct{}{0: {}, refSize: {}}
	for f := 1; f < files; f++ {
		for _, seg := range aligns[f].segs {
			cutSet[seg.refStart] = struct{}{}
			cutSet[seg.refEnd] = struct{}{}
		}
		for anchor := range aligns[f].ins {
			cutSet[anchor] = struct{}{}
		}
	}
	cuts := make([]int64, 0, len(cutSet))
	for c := range cutSet {
		cuts = append(cuts, c)
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i] < cuts[j] })

	var blocks []Block
	segIdx := make([]int, files)

	for ci, r0 := range cuts {
		// File-only bytes anchored at this reference offset come first.
		if blk, ok := insertionBlock(files, r0, aligns); ok {
			blocks = append(blocks, blk)
		}
		if ci == len(cuts)-1 {
			break
		}
		r1 := cuts[ci+1]
		if r1 <= r0 {
			continue
		}

		spans := make([]Span, files)
		spans[0] = Span{r0, r1}
		kind := Equal
		for f := 1; f < files; f++ {
			segs := aligns[f].segs
			for segIdx[f] < len(segs) && segs[segIdx[f]].refEnd <= r0 {
				segIdx[f]++
			}
			seg := segs[segIdx[f]]
			switch seg.kind {
			case opEq:
				spans[f] = Span{seg.fStart + (r0 - seg.refStart), seg.fStart + (r1 - seg.refStart)}
			case opSub:
				spans[f] = Span{seg.fStart + (r0 - seg.refStart), seg.fStart + (r1 - seg.refStart)}
				if kind != Missing {
					kind = Differ
				}
			case opDel:
				spans[f] = Span{seg.fStart, seg.fStart}
				kind = Missing
			}
		}
		blocks = append(blocks, Block{Kind: kind, Spans: spans})
	}

	return newMap(files, blocks)
}

// insertionBlock gathers every file's insertion anchored at the given
// reference offset into one Missing block with an empty reference span.
func insertionBlock(files int, anchor int64, aligns []fileAlign) (Block, bool) {
	spans := make([]Span, files)
	spans[0] = Span{anchor, anchor}
	any := false
	for f := 1; f < files; f++ {
		if sp, ok := aligns[f].ins[anchor]; ok {
			spans[f] = sp
			any = true
		}
	}
	if !any {
		return Block{}, false
	}
	return Block{Kind: Missing, Spans: spans}, true
}
