package flats

import (
	"math/rand"
	"testing"

	"github.com/maseology/flatresolve/d8"
	"github.com/maseology/flatresolve/grid"
	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
	"github.com/stretchr/testify/require"
)

// randomTerrain quantizes noise to a few elevation steps so every draw is
// riddled with plateaus, pits and multi-outlet flats.
func randomTerrain(rng *rand.Rand, w, h int) *grid.Grid[float64] {
	g := grid.New[float64](w, h, tnd)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, float64(rng.Intn(4)))
		}
	}
	return g
}

// fuzz the resolver over quantized random terrain: whatever the flat
// topology, labels stay consistent, assigned directions descend the mask,
// and no flow path cycles
func TestResolveFlatsRandomTerrain(t *testing.T) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(278)

	for trial := 0; trial < 25; trial++ {
		e := randomTerrain(rng, 12, 12)
		f0 := d8.ComputeD8Directions(e)
		m, l, _, err := ResolveFlats(e, f0, nil)
		require.NoError(t, err)

		checkLabelConsistency(t, e, f0, l)

		f := d8.ComputeD8Directions(e)
		D8FlowFlats(m, l, f, nil)
		checkDescent(t, m, l, f0, f)

		// acyclicity: following directions always terminates; a chain may
		// legitimately stall on an unresolvable (non-drainable) cell
		limit := l.NumCells()
		for y := 0; y < 12; y++ {
			for x := 0; x < 12; x++ {
				if f.At(x, y) == NoFlow || f.At(x, y) == f.NoData() {
					continue
				}
				cx, cy := x, y
				for steps := 0; ; steps++ {
					require.Less(t, steps, limit, "trial %d: flow from (%d,%d) cycles", trial, x, y)
					n := f.At(cx, cy)
					if n == NoFlow || n == f.NoData() {
						break
					}
					cx, cy = cx+grid.DX[n], cy+grid.DY[n]
					if !f.InGrid(cx, cy) {
						break
					}
				}
			}
		}
	}
}
