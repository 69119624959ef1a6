package flats

import "github.com/maseology/flatresolve/grid"

// FindFlatEdges scans F and E and partitions flat cells into low edges
// (non-flat draining cells adjacent to an equal-elevation flat cell, the
// outlet of that flat as seen from outside) and high edges (flat cells
// adjacent to strictly higher terrain). A cell enters at most one queue:
// the low-edge test is tried first, and a match there skips the high-edge
// test for that cell. cellsWithoutFlow is a diagnostic-only tally of
// NO_FLOW cells encountered. Queue order is row-major and stable whether
// or not the scan runs row-parallel.
func FindFlatEdges[T grid.Number](f *grid.Grid[int], e *grid.Grid[T], opts *Options) (low, high []Cell, cellsWithoutFlow int) {
	w, h := f.Width(), f.Height()
	fnodata := f.NoData()

	lowRows := make([][]Cell, h)
	highRows := make([][]Cell, h)
	noflow := make([]int, h)

	parallelRows(h, opts.parallel(), func(y int) {
		for x := 0; x < w; x++ {
			fxy := f.At(x, y)
			if fxy == fnodata {
				continue
			}
			if fxy == NoFlow {
				noflow[y]++
			}

			isLow, isHigh := false, false
			e.Neighbors8(x, y, func(n, nx, ny int) {
				if isLow || isHigh {
					return
				}
				fn := f.At(nx, ny)
				if fn == fnodata {
					return
				}
				if fxy != NoFlow && fn == NoFlow && e.At(nx, ny) == e.At(x, y) {
					isLow = true
					return
				}
				if fxy == NoFlow && e.At(x, y) < e.At(nx, ny) {
					isHigh = true
				}
			})
			if isLow {
				lowRows[y] = append(lowRows[y], Cell{x, y})
			} else if isHigh {
				highRows[y] = append(highRows[y], Cell{x, y})
			}
		}
	})

	for y := 0; y < h; y++ {
		low = append(low, lowRows[y]...)
		high = append(high, highRows[y]...)
		cellsWithoutFlow += noflow[y]
	}
	return low, high, cellsWithoutFlow
}
