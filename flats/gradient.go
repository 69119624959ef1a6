package flats

import "github.com/maseology/flatresolve/grid"

// bfsQueue is a FIFO with a sentinel marker re-inserted at the tail after
// each level, so popping the sentinel advances the level counter. This is
// the "sentinel-driven level BFS" shared by BuildAwayGradient and
// BuildTowardCombinedGradient.
type bfsQueue struct {
	q []Cell
}

func newBFSQueue(seed []Cell) *bfsQueue {
	q := make([]Cell, len(seed), len(seed)+1)
	copy(q, seed)
	q = append(q, levelMarker)
	return &bfsQueue{q: q}
}

func (b *bfsQueue) pop() Cell {
	c := b.q[0]
	b.q = b.q[1:]
	return c
}

func (b *bfsQueue) push(c Cell) { b.q = append(b.q, c) }

// onlyMarkerLeft reports whether the sentinel is the sole remaining entry,
// the BFS termination condition.
func (b *bfsQueue) onlyMarkerLeft() bool {
	return len(b.q) == 1
}

// BuildAwayGradient runs the first of the two level-synchronous BFS
// passes: starting from the (already label-filtered) high edges, it
// assigns every reachable cell of a flat its graph distance from the
// nearest high edge (1 for the edges themselves), recording the maximal
// distance seen per label in H. M is allocated here and zero-initialized;
// H is sized to hold every label 1..nlabels.
func BuildAwayGradient(f, l *grid.Grid[int], high []Cell, nlabels int) (m *grid.Grid[int], h []int) {
	m = grid.New[int](f.Width(), f.Height(), MaskNoData)
	m.Init(0)
	h = make([]int, nlabels+1)

	level := 1
	bq := newBFSQueue(high)
	for !bq.onlyMarkerLeft() {
		c := bq.pop()
		if c == levelMarker {
			level++
			bq.push(levelMarker)
			continue
		}
		if m.At(c.X, c.Y) > 0 {
			continue // already assigned; the value field doubles as the visited marker
		}

		m.Set(c.X, c.Y, level)
		lbl := l.At(c.X, c.Y)
		if level > h[lbl] {
			h[lbl] = level
		}

		lblHere := lbl
		f.Neighbors8(c.X, c.Y, func(n, nx, ny int) {
			if l.At(nx, ny) == lblHere && f.At(nx, ny) == NoFlow {
				bq.push(Cell{nx, ny})
			}
		})
	}
	return m, h
}

// BuildTowardCombinedGradient runs the second BFS pass: starting from the
// (unfiltered) low edges, it overlays the distance-from-outlet gradient
// onto m, combining it with the away-gradient already stored there so the
// result is strictly monotone along any descent path to the outlet. m and
// h are the outputs of BuildAwayGradient, mutated in place. The pre-negate
// sweep honors opts.Parallel; the BFS itself is sequential.
func BuildTowardCombinedGradient(f, l *grid.Grid[int], m *grid.Grid[int], h []int, low []Cell, opts *Options) {
	w, ht := m.Width(), m.Height()
	parallelRows(ht, opts.parallel(), func(y int) {
		for x := 0; x < w; x++ {
			m.Set(x, y, -m.At(x, y))
		}
	})

	level := 1
	bq := newBFSQueue(low)
	for !bq.onlyMarkerLeft() {
		c := bq.pop()
		if c == levelMarker {
			level++
			bq.push(levelMarker)
			continue
		}
		cur := m.At(c.X, c.Y)
		if cur > 0 {
			continue // already finalized this pass
		}

		lbl := l.At(c.X, c.Y)
		if cur != 0 {
			// cur < 0: recover the stored away-value directly, without
			// recomputing h[lbl]-(away-1); the sign flip already carries it.
			m.Set(c.X, c.Y, (h[lbl]+cur)+2*level)
		} else {
			m.Set(c.X, c.Y, 2*level)
		}

		f.Neighbors8(c.X, c.Y, func(n, nx, ny int) {
			if l.At(nx, ny) == lbl && f.At(nx, ny) == NoFlow {
				bq.push(Cell{nx, ny})
			}
		})
	}
}
