package diff

import "context"

// alignMyers aligns a against b with a minimal edit script. It loads both
// inputs into memory, so it refuses inputs larger than opts.MyersSizeLimit
// and edit distances above opts.MaxEditDistance; the caller falls back to
// alignResync when ok is false.
func alignMyers(ctx context.Context, a, b Source, opts Options) (ops []op, ok bool, err error) {
	if a.Size() > opts.MyersSizeLimit || b.Size() > opts.MyersSizeLimit {
		return nil, false, nil
	}
	da, err := readWindow(a, 0, a.Size())
	if err != nil {
		return nil, false, err
	}
	db, err := readWindow(b, 0, b.Size())
	if err != nil {
		return nil, false, err
	}

	trace, found := myersForward(ctx, da, db, opts.MaxEditDistance)
	if !found {
		if ctx != nil && ctx.Err() != nil {
			return nil, false, ErrCancelled
		}
		return nil, false, nil
	}
	return pairSubstitutions(myersBacktrack(trace, da, db)), true, nil
}

// myersForward runs the greedy forward pass, snapshotting the frontier per
// depth for the backtrack. Returns found=false when the edit distance
// exceeds maxD or the context is cancelled.
func myersForward(ctx context.Context, a, b []byte, maxD int) (trace [][]int, found bool) {
	n, m := len(a), len(b)
	if total := n + m; total < maxD {
		maxD = total
	}
	off := maxD
	v := make([]int, 2*maxD+2)

	for d := 0; d <= maxD; d++ {
		if ctx != nil && ctx.Err() != nil {
			return nil, false
		}
		trace = append(trace, append([]int(nil), v...))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[off+k-1] < v[off+k+1]) {
				x = v[off+k+1]
			} else {
				x = v[off+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[off+k] = x
			if x >= n && y >= m {
				return trace, true
			}
		}
	}
	return nil, false
}

// myersBacktrack reconstructs the edit script from the forward trace.
func myersBacktrack(trace [][]int, a, b []byte) []op {
	n, m := len(a), len(b)
	off := (len(trace[0]) - 2) / 2

	// Built back-to-front, then reversed.
	var rev opEmitter
	x, y := n, m
	for d := len(trace) - 1; d >= 0 && (x > 0 || y > 0); d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[off+k-1] < v[off+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[off+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			rev.emit(opEq, 1)
			x--
			y--
		}
		if d == 0 {
			break
		}
		if x == prevX {
			rev.emit(opIns, 1)
			y--
		} else {
			rev.emit(opDel, 1)
			x--
		}
	}

	ops := rev.ops
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}

// pairSubstitutions rewrites adjacent delete/insert runs as a paired
// differing run plus the surplus, matching what the resync aligner emits.
// Hex rendering wants changed bytes column-aligned, not shown as a removal
// next to an addition.
func pairSubstitutions(ops []op) []op {
	var e opEmitter
	for i := 0; i < len(ops); i++ {
		cur := ops[i]
		if i+1 < len(ops) {
			next := ops[i+1]
			if (cur.kind == opDel && next.kind == opIns) || (cur.kind == opIns && next.kind == opDel) {
				paired := min64(cur.n, next.n)
				e.emit(opSub, paired)
				if cur.n > paired {
					e.emit(cur.kind, cur.n-paired)
				}
				if next.n > paired {
					e.emit(next.kind, next.n-paired)
				}
				i++
				continue
			}
		}
		e.emit(cur.kind, cur.n)
	}
	return e.ops
}
