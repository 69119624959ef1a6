package main

/*
	Barnes-Lehman-Mulla flat resolution driver

	reads a control file naming an input DEM (Esri ASCII grid) and an
	output flow-direction raster; computes D8 directions, resolves every
	drainable flat, and writes the corrected directions back out
*/

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/flatresolve/d8"
	"github.com/maseology/flatresolve/flats"
	"github.com/maseology/mmio"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalln("usage: hydrocorrect <control file>")
	}

	var demFP, fdirFP string
	alter := false
	func(controlFP string) { // getFilePaths
		ins := mmio.NewInstruct(controlFP)
		demFP = ins.Param["demfp"][0]
		fdirFP = ins.Param["fdirfp"][0]
		if a, ok := ins.Param["alter"]; ok {
			alter = a[0] == "true"
		}
	}(os.Args[1])

	tt := mmio.NewTimer()
	println("load dem")
	dem, err := d8.ReadASCIIGrid(demFP)
	if err != nil {
		log.Fatalln(err)
	}
	tt.Lap("dem load complete")
	fmt.Printf(" %s cells (%d x %d)\n", mmio.Thousands(int64(dem.NumCells())), dem.Width(), dem.Height())

	nstage := 6 // compute, edges, label, away, combined, resolve
	if alter {
		nstage = 7 // the alter path recomputes directions at the end
	}
	uiprogress.Start()
	bar := uiprogress.AddBar(nstage).AppendCompleted().PrependElapsed()
	var mu sync.Mutex
	stage := "starting"
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		mu.Lock()
		defer mu.Unlock()
		return stage
	})

	opts := &flats.Options{
		Parallel: true,
		Progress: func(s string) {
			mu.Lock()
			stage = s
			mu.Unlock()
			bar.Incr()
		},
		Log: func(s string) { fmt.Fprintln(os.Stderr, " "+s) },
	}

	fdir, rep, err := flats.BarnesFlatResolutionD8(dem, d8.ComputeD8Directions[float64], alter, opts)
	uiprogress.Stop()
	if err != nil {
		log.Fatalln(err)
	}
	tt.Lap("flat resolution complete")
	fmt.Printf(" %s cells had no flow direction; %d flats resolved\n",
		mmio.Thousands(int64(rep.CellsWithoutFlow)), rep.NFlats)
	if len(rep.DroppedCellIDs) > 0 {
		fmt.Printf(" %d high-edge cells dropped (outletless flats)\n", len(rep.DroppedCellIDs))
	}

	if err := d8.WriteASCIIGrid(fdirFP, fdir); err != nil {
		log.Fatalln(err)
	}
	tt.Print("total")
}
