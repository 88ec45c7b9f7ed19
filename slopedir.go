package demstats

import (
	"fmt"
	"io"
	"math"
)

// A SlopeDirectionRose accumulates, per compass sector, the area-weighted
// projection of terrain surface normals onto the sector's direction.
type SlopeDirectionRose struct {
	sectors    int
	normal     []float64
	horizontal []float64
}

// minHorizontalNormal is the horizontal normal component below which a pixel
// is treated as flat.
const minHorizontalNormal = 1.0 / 65536

// NewSlopeDirectionRose returns a new, empty SlopeDirectionRose with the
// given number of sectors covering [0, 2*pi).
func NewSlopeDirectionRose(sectors int) *SlopeDirectionRose {
	return &SlopeDirectionRose{
		sectors:    sectors,
		normal:     make([]float64, sectors),
		horizontal: make([]float64, sectors),
	}
}

// Accumulate adds the contribution of every valid, non-flat interior pixel of
// input.
func (r *SlopeDirectionRose) Accumulate(input *Input) error {
	width, height := input.Heights.Size()
	spacing := input.Domain.PixelSpacing(width, height)

	directions := make([][2]float64, r.sectors)
	for k := range directions {
		sin, cos := math.Sincos(2 * math.Pi * float64(k) / float64(r.sectors))
		directions[k] = [2]float64{-sin, cos}
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			if !input.Mask.Valid(x, y) {
				continue
			}
			derivatives, scale := geographicGradient(input, x, y)
			nx := -derivatives.X / scale.X
			ny := -derivatives.Y / scale.Y
			length := math.Sqrt(nx*nx + ny*ny + 1)
			nx, ny = nx/length, ny/length
			horizontal := math.Hypot(nx, ny)
			if !(horizontal > minHorizontalNormal) {
				continue
			}
			area := scale.X * spacing.X * scale.Y * spacing.Y
			hx, hy := nx/horizontal, ny/horizontal
			for k, d := range directions {
				r.normal[k] += area * max(nx*d[0]+ny*d[1], 0)
				r.horizontal[k] += area * max(hx*d[0]+hy*d[1], 0)
			}
		}
	}
	return nil
}

// Ratio returns the ratio of the accumulated normal and horizontal
// contributions of sector k.
func (r *SlopeDirectionRose) Ratio(k int) float64 {
	return r.normal[k] / r.horizontal[k]
}

// WriteTo writes the fraction of a full turn and the ratio of each sector to
// w.
func (r *SlopeDirectionRose) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for k := range r.sectors {
		n, err := fmt.Fprintf(w, "%.8g %.8g\n", float64(k)/float64(r.sectors), r.Ratio(k))
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
