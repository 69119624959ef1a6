// Package flats implements the Barnes-Lehman-Mulla flat resolution
// algorithm: given a DEM and an initial D8 flow-direction assignment, it
// finds every topographic flat, labels its connected component, and
// builds a synthetic drainage gradient (the "flat mask") so that flow
// directions can be resolved even where the terrain is locally constant.
//
// Known limitation of the algorithm as published: a high-edge
// cell that borders more than one flat (possible along a ridge) is filed
// under its own label only. It is never considered as a high edge of the
// neighboring flat.
package flats

// NoFlow marks a cell with no locally steeper neighbor.
const NoFlow = 0

// MaskNoData is the NoData sentinel for the flat mask M: distinguishable
// from any post-resolution value, which is always >= 0.
const MaskNoData = -1

// alterationPoison is written into F between ResolveFlats and
// D8FlatsAlterDEM in the DEM-altering orchestration path, so that any read
// of the transitional flow-direction state during that window is
// conspicuous. It carries no other meaning.
const alterationPoison = 155

// Cell is an (x,y) coordinate used as an edge-queue entry.
type Cell struct{ X, Y int }

// levelMarker is the sentinel re-inserted at the tail of a BFS queue after
// each level; popping it increments the level counter.
var levelMarker = Cell{-1, -1}
