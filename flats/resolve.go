package flats

import (
	"errors"
	"fmt"

	"github.com/maseology/flatresolve/grid"
	"github.com/maseology/mmaths"
)

// ErrCancelled is returned when Options.Cancelled reports true between
// stages. Partial results are undefined.
var ErrCancelled = errors.New("flats: resolution cancelled")

// ResolveFlats is the primary entry point: given elevations and an initial
// D8 flow-direction raster (every cell lacking a strictly lower neighbor
// marked NO_FLOW), it labels every drainable flat and builds the combined
// flat mask that drains it. Neither e nor f is modified. Whenever err is
// nil the returned mask and label grids are allocated and in a consistent
// state, even when no resolution work was possible; the Report says which
// case applied. A dimension or NoData-mask mismatch between e and f is the
// only fatal condition; it, like ErrCancelled, returns nil grids.
func ResolveFlats[T grid.Number](e *grid.Grid[T], f *grid.Grid[int], opts *Options) (m, l *grid.Grid[int], rep Report, err error) {
	w, h := e.Width(), e.Height()
	if w != f.Width() || h != f.Height() {
		return nil, nil, rep, fmt.Errorf("flats.ResolveFlats: raster dimensions disagree: elevations %dx%d, flowdirs %dx%d",
			w, h, f.Width(), f.Height())
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (e.At(x, y) == e.NoData()) != (f.At(x, y) == f.NoData()) {
				return nil, nil, rep, fmt.Errorf("flats.ResolveFlats: NoData masks disagree at (%d,%d)", x, y)
			}
		}
	}

	opts.stage("searching for flat edges")
	low, high, noflow := FindFlatEdges(f, e, opts)
	rep.CellsWithoutFlow = noflow
	opts.log(fmt.Sprintf("%d cells had no flow direction", noflow))

	if len(low) == 0 {
		if len(high) > 0 {
			rep.Kind = FlatsWithoutOutlets
			rep.Message = "there were flats, but none had outlets"
		} else {
			rep.Kind = NoFlatsPresent
			rep.Message = "there were no flats"
		}
		opts.log(rep.Message)
		m = grid.New[int](w, h, MaskNoData)
		m.Init(0)
		l = grid.New[int](w, h, 0)
		return m, l, rep, nil
	}
	if opts.cancelled() {
		return nil, nil, rep, ErrCancelled
	}

	opts.stage("labeling flats")
	l, nflats := LabelFlats(low, e)
	rep.NFlats = nflats
	opts.log(fmt.Sprintf("found %d unique flats", nflats))

	filtered := filterToLabeled(high, l)
	if len(filtered) < len(high) {
		rep.Kind = PartialOutletCoverage
		rep.Message = "not all flats have outlets; the DEM contains sinks/pits/depressions"
		ids := make([]int, 0, len(high)-len(filtered))
		for _, c := range high {
			if l.At(c.X, c.Y) == 0 {
				ids = append(ids, c.Y*w+c.X)
			}
		}
		rep.DroppedCellIDs = mmaths.UniqueInts(ids)
		opts.log(rep.Message)
	}
	if opts.cancelled() {
		return nil, nil, rep, ErrCancelled
	}

	opts.stage("building away gradient")
	m, heights := BuildAwayGradient(f, l, filtered, nflats)
	if opts.cancelled() {
		return nil, nil, rep, ErrCancelled
	}

	opts.stage("building toward and combined gradients")
	BuildTowardCombinedGradient(f, l, m, heights, low, opts)
	return m, l, rep, nil
}

// BarnesFlatResolutionD8 is the convenience orchestrator: compute the
// initial D8 directions, resolve flats, then either fill directions inside
// the flats from the mask (alter false) or raise the DEM by monotone float
// increments and recompute directions on the altered surface (alter true).
// compute is the caller-supplied steepest-descent kernel; e is mutated only
// in the alter path. The returned raster carries the resolved directions.
func BarnesFlatResolutionD8[T grid.Float](e *grid.Grid[T], compute func(*grid.Grid[T]) *grid.Grid[int], alter bool, opts *Options) (*grid.Grid[int], Report, error) {
	opts.stage("computing flow directions")
	f := compute(e)

	m, l, rep, err := ResolveFlats(e, f, opts)
	if err != nil {
		return nil, rep, err
	}

	if alter {
		// any poison value surviving to the output marks a read of the
		// transitional state between resolution and re-computation
		f.Init(alterationPoison)
		opts.stage("altering dem")
		rep.Alterations = D8FlatsAlterDEM(m, l, e, opts)
		opts.stage("recomputing flow directions")
		f = compute(e)
	} else {
		opts.stage("resolving flow directions in flats")
		D8FlowFlats(m, l, f, opts)
	}
	return f, rep, nil
}
