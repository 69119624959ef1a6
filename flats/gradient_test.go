package flats

import (
	"testing"

	"github.com/maseology/flatresolve/d8"
	"github.com/maseology/flatresolve/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tnd = -9999.0

func demFromRows(rows [][]float64) *grid.Grid[float64] {
	h, w := len(rows), len(rows[0])
	g := grid.New[float64](w, h, tnd)
	for y, r := range rows {
		for x, v := range r {
			g.Set(x, y, v)
		}
	}
	return g
}

// a 3x3 plateau at 5 walled by 10s, draining through the single border
// cell at 3 below the plateau's south side
func plateauOneOutlet() *grid.Grid[float64] {
	return demFromRows([][]float64{
		{10, 10, 10, 10, 10},
		{10, 5, 5, 5, 10},
		{10, 5, 5, 5, 10},
		{10, 5, 5, 5, 10},
		{10, 10, 3, 10, 10},
	})
}

func TestFindFlatEdgesPlateau(t *testing.T) {
	e := plateauOneOutlet()
	f := d8.ComputeD8Directions(e)
	low, high, noflow := FindFlatEdges(f, e, nil)

	// the bottom row of the plateau drains into the outlet at (2,4), so
	// the remaining six cells are the flat
	assert.Equal(t, 6, noflow)
	assert.ElementsMatch(t, []Cell{{1, 3}, {2, 3}, {3, 3}}, low)
	assert.ElementsMatch(t, []Cell{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {3, 2}}, high)
}

func TestFindFlatEdgesParallelMatchesSerial(t *testing.T) {
	e := plateauOneOutlet()
	f := d8.ComputeD8Directions(e)
	low0, high0, n0 := FindFlatEdges(f, e, nil)
	low1, high1, n1 := FindFlatEdges(f, e, &Options{Parallel: true})
	assert.Equal(t, low0, low1)
	assert.Equal(t, high0, high1)
	assert.Equal(t, n0, n1)
}

func TestLabelFlatsPlateau(t *testing.T) {
	e := plateauOneOutlet()
	f := d8.ComputeD8Directions(e)
	low, high, _ := FindFlatEdges(f, e, nil)

	l, nflats := LabelFlats(low, e)
	require.Equal(t, 1, nflats)

	// the flood fill covers the full 3x3 block of 5s, low edges included
	nlabeled := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if l.At(x, y) > 0 {
				assert.Equal(t, 5.0, e.At(x, y))
				nlabeled++
			}
		}
	}
	assert.Equal(t, 9, nlabeled)
	assert.Len(t, filterToLabeled(high, l), len(high), "every high edge is in the labeled flat")
}

func TestBuildGradientsPlateau(t *testing.T) {
	e := plateauOneOutlet()
	f := d8.ComputeD8Directions(e)
	low, high, _ := FindFlatEdges(f, e, nil)
	l, nflats := LabelFlats(low, e)
	high = filterToLabeled(high, l)

	m, h := BuildAwayGradient(f, l, high, nflats)
	require.Len(t, h, 2)
	assert.Equal(t, 2, h[1], "plateau center is two steps from the walls")
	assert.Equal(t, 1, m.At(1, 1))
	assert.Equal(t, 2, m.At(2, 2))
	assert.Equal(t, 0, m.At(2, 3), "low edges are out of reach of the away pass")

	BuildTowardCombinedGradient(f, l, m, h, low, nil)
	want := [][]int{
		{0, 0, 0, 0, 0},
		{0, 7, 7, 7, 0},
		{0, 5, 4, 5, 0},
		{0, 2, 2, 2, 0},
		{0, 0, 0, 0, 0},
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			assert.Equal(t, want[y][x], m.At(x, y), "mask at (%d,%d)", x, y)
		}
	}
}

func TestD8FlowFlatsPrefersCardinalOnTie(t *testing.T) {
	e := plateauOneOutlet()
	f := d8.ComputeD8Directions(e)
	low, high, _ := FindFlatEdges(f, e, nil)
	l, nflats := LabelFlats(low, e)
	m, h := BuildAwayGradient(f, l, filterToLabeled(high, l), nflats)
	BuildTowardCombinedGradient(f, l, m, h, low, nil)

	D8FlowFlats(m, l, f, nil)

	// (2,2) sees mask 2 at S, SE and SW; the cardinal S must win
	assert.Equal(t, 5, f.At(2, 2))
	// (2,1) sees its unique minimum, 4, due S
	assert.Equal(t, 5, f.At(2, 1))
	for _, c := range []Cell{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {2, 2}, {3, 2}} {
		assert.NotEqual(t, NoFlow, f.At(c.X, c.Y), "flat cell (%d,%d) unresolved", c.X, c.Y)
	}
}
