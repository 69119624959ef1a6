package d8

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/maseology/flatresolve/grid"
)

// ReadASCIIGrid loads an Esri ASCII grid (the six-line header ArcInfo
// writes) into a float64 raster. Raster I/O is not a concern of the flats
// package; this exists only so the cmd/ driver has something concrete to
// hand to ComputeD8Directions.
func ReadASCIIGrid(fp string) (*grid.Grid[float64], error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("d8.ReadASCIIGrid: %v", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	hdr := map[string]float64{}
	for len(hdr) < 6 && sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			return nil, fmt.Errorf("d8.ReadASCIIGrid: malformed header line %q", sc.Text())
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("d8.ReadASCIIGrid: header %q: %v", fields[0], err)
		}
		hdr[strings.ToLower(fields[0])] = v
	}
	ncols, nrows := int(hdr["ncols"]), int(hdr["nrows"])
	nodata := hdr["nodata_value"]
	if ncols <= 0 || nrows <= 0 {
		return nil, fmt.Errorf("d8.ReadASCIIGrid: missing or invalid ncols/nrows")
	}

	g := grid.New[float64](ncols, nrows, nodata)
	y := 0
	for sc.Scan() && y < nrows {
		fields := strings.Fields(sc.Text())
		for x := 0; x < ncols && x < len(fields); x++ {
			v, err := strconv.ParseFloat(fields[x], 64)
			if err != nil {
				return nil, fmt.Errorf("d8.ReadASCIIGrid: row %d col %d: %v", y, x, err)
			}
			g.Set(x, y, v)
		}
		y++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("d8.ReadASCIIGrid: %v", err)
	}
	return g, nil
}

// WriteASCIIGrid writes an integer raster (typically resolved flow
// directions) back out in the same header format.
func WriteASCIIGrid(fp string, g *grid.Grid[int]) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf("d8.WriteASCIIGrid: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "ncols %d\n", g.Width())
	fmt.Fprintf(w, "nrows %d\n", g.Height())
	fmt.Fprintf(w, "xllcorner 0\n")
	fmt.Fprintf(w, "yllcorner 0\n")
	fmt.Fprintf(w, "cellsize 1\n")
	fmt.Fprintf(w, "nodata_value %d\n", g.NoData())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if x > 0 {
				w.WriteByte(' ')
			}
			fmt.Fprintf(w, "%d", g.At(x, y))
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}
