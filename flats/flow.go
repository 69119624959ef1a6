package flats

import "github.com/maseology/flatresolve/grid"

// D8FlowFlats assigns a flow direction to every interior NO_FLOW cell the
// flat mask covers, mutating f in place. Cells of non-drainable flats (no
// same-label neighbor with a lower mask) are left NO_FLOW. The one-cell
// border is excluded so the neighbor scan never needs a bounds check.
func D8FlowFlats(m, l, f *grid.Grid[int], opts *Options) {
	w, h := m.Width(), m.Height()
	mnodata := m.NoData()
	parallelRows(h, opts.parallel(), func(y int) {
		if y == 0 || y == h-1 {
			return
		}
		for x := 1; x < w-1; x++ {
			if m.At(x, y) == mnodata {
				continue
			}
			if f.At(x, y) != NoFlow {
				continue
			}
			f.Set(x, y, d8MaskedFlowDir(m, l, x, y))
		}
	})
}

// d8MaskedFlowDir selects the same-label neighbor minimizing the flat
// mask. On a mask tie a cardinal direction displaces a previously chosen
// diagonal one; the direction-code parity convention in grid.DX/DY is what
// makes this test work. Only called on interior cells.
func d8MaskedFlowDir(m, l *grid.Grid[int], x, y int) int {
	min := m.At(x, y)
	dir := NoFlow
	lbl := l.At(x, y)
	for n := 1; n <= 8; n++ {
		nx, ny := x+grid.DX[n], y+grid.DY[n]
		if l.At(nx, ny) != lbl {
			continue
		}
		mn := m.At(nx, ny)
		if mn < min || (mn == min && dir > 0 && !grid.IsCardinal(dir) && grid.IsCardinal(n)) {
			min = mn
			dir = n
		}
	}
	return dir
}
