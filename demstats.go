// Package demstats computes bucketed terrain statistics from GeoTIFF digital
// elevation models on an ellipsoidal datum.
package demstats

type TileCoord struct {
	C int // Column.
	R int // Row.
}

// A Raster is a dense, row-major grid of samples.
type Raster interface {
	Size() (int, int)
	At(x, y int) float64
}
