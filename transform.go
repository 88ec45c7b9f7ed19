package demstats

import (
	"fmt"
	"math"

	"github.com/twpayne/go-proj/v10"
)

// An affine holds the coefficients of an affine map from image coordinates
// (i, j) to model coordinates (x, y):
//
//	x = s11*i + s12*j + xoff
//	y = s21*i + s22*j + yoff
type affine struct {
	s11, s12, xoff float64
	s21, s22, yoff float64
}

// imageToModelAffine returns the affine map from image to model coordinates
// described by g's ModelTransformationTag, or by its ModelTiepointTag and
// ModelPixelScaleTag.
func (g *GeoTIFF) imageToModelAffine() (affine, error) {
	if m := g.ifd.ModelTransformationTag; len(m) != 0 {
		if len(m) != 16 {
			return affine{}, fmt.Errorf("%w: %s: ModelTransformationTag has %d values", ErrGeoModel, g.name, len(m))
		}
		return affine{
			s11: m[0], s12: m[1], xoff: m[3],
			s21: m[4], s22: m[5], yoff: m[7],
		}, nil
	}

	tiepoint, scale := g.ifd.ModelTiepointTag, g.ifd.ModelPixelScaleTag
	if len(tiepoint) < 6 || len(scale) < 2 {
		return affine{}, fmt.Errorf("%w: %s: missing georeferencing tags", ErrGeoModel, g.name)
	}
	i, j := tiepoint[0], tiepoint[1]
	x, y := tiepoint[3], tiepoint[4]
	scaleX, scaleY := scale[0], scale[1]
	return affine{
		s11: scaleX, xoff: x - i*scaleX,
		s22: -scaleY, yoff: y + j*scaleY,
	}, nil
}

// definition returns the PROJ definition of a.
func (a affine) definition() string {
	return fmt.Sprintf("+proj=affine +xoff=%.17g +yoff=%.17g +s11=%.17g +s12=%.17g +s21=%.17g +s22=%.17g",
		a.xoff, a.yoff, a.s11, a.s12, a.s21, a.s22)
}

// ImageToModel transforms coords, each an image coordinate (i, j), in place
// to model coordinates.
func (g *GeoTIFF) ImageToModel(coords [][]float64) error {
	a, err := g.imageToModelAffine()
	if err != nil {
		return err
	}
	pj, err := proj.New(a.definition())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrProjection, g.name, err)
	}
	if err := pj.ForwardFloat64Slices(coords); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrProjection, g.name, err)
	}
	for _, coord := range coords {
		for _, value := range coord {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return fmt.Errorf("%w: %s: %v", ErrProjection, g.name, coord)
			}
		}
	}
	return nil
}
