package flats

import "github.com/maseology/flatresolve/grid"

// LabelFlats flood-fills from each unseen low-edge cell across cells of
// equal elevation, assigning each connected flat region a unique positive
// label. Labels are dense, starting at 1, in the order their seed cell is
// encountered in low. L is allocated fresh, sized like e, initialized to 0.
func LabelFlats[T grid.Number](low []Cell, e *grid.Grid[T]) (l *grid.Grid[int], nlabels int) {
	l = grid.New[int](e.Width(), e.Height(), 0)
	l.Init(0)

	next := 1
	for _, seed := range low {
		if l.At(seed.X, seed.Y) != 0 {
			continue
		}
		labelThis(seed.X, seed.Y, next, l, e)
		next++
	}
	return l, next - 1
}

// labelThis performs the flood fill for a single flat: every cell
// reachable from (x0,y0) by 8-connected steps over cells of the same
// elevation is marked lbl in l.
func labelThis[T grid.Number](x0, y0, lbl int, l *grid.Grid[int], e *grid.Grid[T]) {
	target := e.At(x0, y0)
	queue := []Cell{{x0, y0}}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		if e.At(c.X, c.Y) != target {
			continue
		}
		if l.At(c.X, c.Y) > 0 {
			continue
		}
		l.Set(c.X, c.Y, lbl)

		e.Neighbors8(c.X, c.Y, func(n, nx, ny int) {
			queue = append(queue, Cell{nx, ny})
		})
	}
}

// filterToLabeled returns the subset of cells that have been assigned a
// positive label. Used to drop high edges belonging to flats without any
// low-edge outlet.
func filterToLabeled(cells []Cell, l *grid.Grid[int]) []Cell {
	out := make([]Cell, 0, len(cells))
	for _, c := range cells {
		if l.At(c.X, c.Y) > 0 {
			out = append(out, c)
		}
	}
	return out
}
