package diff

import (
	"bytes"
	"context"
	"errors"
	"io"
)

// ErrCancelled indicates the caller cancelled a comparison.
var ErrCancelled = errors.New("diff cancelled")

// Source is the read surface a comparison consumes.
type Source interface {
	io.ReaderAt
	Size() int64
}

type opKind uint8

const (
	opEq  opKind = iota // both sides advance, bytes equal
	opSub               // both sides advance, bytes differ
	opDel               // reference-only bytes
	opIns               // other-side-only bytes
)

// op is one run of a pairwise alignment.
type op struct {
	kind opKind
	n    int64
}

// opEmitter merges consecutive runs of the same kind.
type opEmitter struct {
	ops []op
}

func (e *opEmitter) emit(kind opKind, n int64) {
	if n <= 0 {
		return
	}
	if last := len(e.ops) - 1; last >= 0 && e.ops[last].kind == kind {
		e.ops[last].n += n
		return
	}
	e.ops = append(e.ops, op{kind: kind, n: n})
}

// alignResync aligns a against b by streaming lockstep comparison. After a
// mismatch it searches at most opts.Lookahead bytes ahead on both sides for
// a run of opts.SyncLen identical bytes and resynchronizes at the cheapest
// such point.
func alignResync(ctx context.Context, a, b Source, opts Options) ([]op, error) {
	aSize, bSize := a.Size(), b.Size()
	window := opts.Lookahead + int64(opts.SyncLen)
	if window < 4096 {
		window = 4096
	}

	var e opEmitter
	var i, j int64
	for {
		if ctx != nil && ctx.Err() != nil {
			return nil, ErrCancelled
		}
		if i >= aSize || j >= bSize {
			break
		}

		wa, err := readWindow(a, i, min64(window, aSize-i))
		if err != nil {
			return nil, err
		}
		wb, err := readWindow(b, j, min64(window, bSize-j))
		if err != nil {
			return nil, err
		}

		if p := commonPrefix(wa, wb); p > 0 {
			e.emit(opEq, int64(p))
			i += int64(p)
			j += int64(p)
			continue
		}

		da, db, ok := resyncPoint(wa, wb, opts)
		if !ok {
			// No sync point within the lookahead. Pair up the differing
			// run byte for byte and keep going in lockstep.
			n := min64(int64(len(wa)), int64(len(wb)))
			d := int64(0)
			for d < n && wa[d] != wb[d] {
				d++
			}
			if d == 0 {
				d = 1
			}
			e.emit(opSub, d)
			i += d
			j += d
			continue
		}

		paired := min64(da, db)
		e.emit(opSub, paired)
		e.emit(opDel, da-paired)
		e.emit(opIns, db-paired)
		i += da
		j += db
	}

	e.emit(opDel, aSize-i)
	e.emit(opIns, bSize-j)
	return e.ops, nil
}

// resyncPoint searches both windows for the cheapest skew (da, db) at which
// a run of opts.SyncLen bytes matches. Cost is da+db. The windows start at
// the mismatch position, so da and db are the byte counts consumed before
// the streams realign.
func resyncPoint(wa, wb []byte, opts Options) (da, db int64, ok bool) {
	syncLen := opts.SyncLen
	maxSkew := opts.Lookahead

	bestCost := int64(-1)
	limit := min64(maxSkew, int64(len(wa)-syncLen))
	for d := int64(1); d <= limit; d++ {
		if bestCost >= 0 && d >= bestCost {
			break
		}
		probe := wa[d : d+int64(syncLen)]
		idx := bytes.Index(wb, probe)
		if idx < 0 || int64(idx) > maxSkew {
			continue
		}
		if cost := d + int64(idx); bestCost < 0 || cost < bestCost {
			bestCost, da, db = cost, d, int64(idx)
		}
	}

	// Also consider keeping the reference position and skipping only on
	// the other side (pure insertion).
	if int64(len(wa)) >= int64(syncLen) {
		probe := wa[:syncLen]
		if idx := bytes.Index(wb[1:], probe); idx >= 0 && int64(idx)+1 <= maxSkew {
			if cost := int64(idx) + 1; bestCost < 0 || cost < bestCost {
				bestCost, da, db = cost, 0, int64(idx)+1
			}
		}
	}

	return da, db, bestCost >= 0
}

func readWindow(src Source, off, n int64) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := src.ReadAt(buf, off); err != nil && err != io.EOF {
		return nil, err
	}
	return buf, nil
}

func commonPrefix(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
