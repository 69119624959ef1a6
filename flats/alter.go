package flats

import (
	"fmt"
	"math"

	"github.com/maseology/flatresolve/grid"
)

// AlterationWarning records a raised cell whose altered elevation met or
// exceeded a neighbor in another flat that was not originally lower. N is
// the direction code of the offending neighbor.
type AlterationWarning struct{ X, Y, N int }

// D8FlatsAlterDEM raises the elevation of every interior flat cell by its
// flat-mask count of next-representable-float increments, so that the
// standard D8 kernel run on the altered DEM drains the flat the same way
// D8FlowFlats would. e is mutated in place. Raises that overtop a
// different-label neighbor which was not originally lower are reported and
// logged but do not abort.
//
// The increments stay within the elevation type's own precision:
// math.Nextafter32 for float32 grids, math.Nextafter for float64.
func D8FlatsAlterDEM[T grid.Float](m, l *grid.Grid[int], e *grid.Grid[T], opts *Options) []AlterationWarning {
	var warns []AlterationWarning
	w, h := m.Width(), m.Height()
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			lbl := l.At(x, y)
			if lbl == 0 {
				continue
			}

			var higher [9]bool
			for n := 1; n <= 8; n++ {
				higher[n] = e.At(x, y) > e.At(x+grid.DX[n], y+grid.DY[n])
			}

			for i := 0; i < m.At(x, y); i++ {
				e.Set(x, y, nextUp(e.At(x, y)))
			}

			for n := 1; n <= 8; n++ {
				nx, ny := x+grid.DX[n], y+grid.DY[n]
				if l.At(nx, ny) == lbl {
					continue
				}
				if e.At(x, y) < e.At(nx, ny) {
					continue
				}
				if !higher[n] {
					warns = append(warns, AlterationWarning{x, y, n})
					opts.log(fmt.Sprintf("raising (%d,%d) resulted in an invalid alteration of the DEM", x, y))
				}
			}
		}
	}
	return warns
}

// nextUp returns the next representable value of v toward +Inf, at v's own
// precision.
func nextUp[T grid.Float](v T) T {
	switch x := any(v).(type) {
	case float32:
		return T(math.Nextafter32(x, float32(math.Inf(1))))
	case float64:
		return T(math.Nextafter(x, math.Inf(1)))
	}
	return v
}
