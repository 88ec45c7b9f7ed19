package demstats

import "seehuhn.de/go/geom/vec"

// InterpolateBilinear returns the bilinear interpolation of raster, which is
// width by height, at loc. Neighbours that fall outside the raster wrap around
// to the opposite edge.
func InterpolateBilinear(raster Raster, width, height int, loc vec.Vec2) float64 {
	x0 := wrap(int(loc.X), width)
	y0 := wrap(int(loc.Y), height)
	x1 := wrap(x0+1, width)
	y1 := wrap(y0+1, height)

	dx := loc.X - float64(x0)
	dy := loc.Y - float64(y0)

	z0 := (1-dx)*raster.At(x0, y0) + dx*raster.At(x1, y0)
	z1 := (1-dx)*raster.At(x0, y1) + dx*raster.At(x1, y1)
	return (1-dy)*z0 + dy*z1
}

// wrap returns i modulo n in the range [0, n).
func wrap(i, n int) int {
	return ((i % n) + n) % n
}
