// Package main provides the demstats command, which computes bucketed terrain
// statistics from GeoTIFF digital elevation models.
//
// Usage:
//
//	demstats elev-hist heightmap.tif[,mask.raw]...
//	demstats grad-at-points heightmap.tif[,mask.raw]...
//	demstats slope-dir heightmap.tif[,mask.raw]...
//	demstats peak-valley heightmap.tif[,mask.raw]...
//	demstats skip-bytes --offset 3 --stride 4 < in > out
//
// Results are written to standard output. Diagnostics are logged to standard
// error.
package main

func main() {
	Execute()
}
