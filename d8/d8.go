// Package d8 supplies the initial steepest-descent D8 flow-direction
// assignment the flats package assumes is already available. It is kept
// separate from flats so flat resolution never depends on any one D8
// scheme or raster format.
package d8

import "github.com/maseology/flatresolve/grid"

// NoFlow marks a cell with no locally steeper neighbor, the candidates
// for flat membership downstream in the flats package.
const NoFlow = 0

// ComputeFunc is the shape of a direction kernel as consumed by
// flats.BarnesFlatResolutionD8: given elevations, produce flow directions.
type ComputeFunc[T grid.Number] func(e *grid.Grid[T]) *grid.Grid[int]

// ComputeD8Directions assigns every in-grid, non-NoData cell of e either a
// direction in 1..8 (the steepest lower neighbor) or NoFlow (no neighbor is
// strictly lower). Ties among equally-steepest neighbors are broken by the
// lowest direction code, matching the scan order below.
//
// Cells on the raster border that would otherwise be NoFlow are instead
// directed off the map (the first direction code whose target lies outside
// the grid). Interior pits and plateaus therefore account for every NoFlow
// cell, which is the precondition the flat-resolution stages assume: a
// monotone ramp yields no flats at all, not a phantom single-cell flat in
// its lowest corner.
func ComputeD8Directions[T grid.Number](e *grid.Grid[T]) *grid.Grid[int] {
	w, h := e.Width(), e.Height()
	f := grid.New[int](w, h, -9999)

	nodata := e.NoData()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			z := e.At(x, y)
			if z == nodata {
				continue
			}
			best, bestDrop := NoFlow, T(0)
			e.Neighbors8(x, y, func(n, nx, ny int) {
				zn := e.At(nx, ny)
				if zn == nodata {
					return
				}
				if zn >= z {
					return
				}
				drop := z - zn
				if best == NoFlow || drop > bestDrop {
					best, bestDrop = n, drop
				}
			})
			if best == NoFlow {
				best = edgeFlow(e, x, y)
			}
			f.Set(x, y, best)
		}
	}
	return f
}

// edgeFlow returns the first direction code pointing off the grid from
// (x,y), or NoFlow for interior cells.
func edgeFlow[T grid.Number](e *grid.Grid[T], x, y int) int {
	for n := 1; n <= 8; n++ {
		if !e.InGrid(x+grid.DX[n], y+grid.DY[n]) {
			return n
		}
	}
	return NoFlow
}
