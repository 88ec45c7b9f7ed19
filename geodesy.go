package demstats

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
)

// EPSG angular unit codes.
const (
	angularUnitRadian = 9101
	angularUnitDegree = 9102
)

// A GeodeticDomain is the geographic extent of a raster. Min corresponds to
// pixel (0, 0) and Max to pixel (width, height). X is longitude and Y is
// latitude, both in radians.
type GeodeticDomain struct {
	Min vec.Vec2
	Max vec.Vec2
	Ellipsoid
}

// NewGeodeticDomain returns the geodetic domain of g, whose pixel data is
// described by info. Only geographic (latitude/longitude) models are
// supported.
func NewGeodeticDomain(g *GeoTIFF, info *ImageInfo) (*GeodeticDomain, error) {
	geoKeys, err := g.GeoKeys()
	if err != nil {
		return nil, err
	}

	modelType, ok := geoKeys.Int(GeoKeyGTModelType)
	if !ok {
		return nil, fmt.Errorf("%w: %s: no model type present", ErrGeoModel, g.name)
	}
	if modelType != ModelTypeGeographic {
		return nil, fmt.Errorf("%w: %s: model type %d is not geographic", ErrGeoModel, g.name, modelType)
	}

	unitSize := math.Pi / 180
	if angularUnits, ok := geoKeys.Int(GeoKeyAngularUnits); ok {
		switch angularUnits {
		case angularUnitDegree:
		case angularUnitRadian:
			unitSize = 1
		case userDefined:
			if unitSize, ok = geoKeys.Double(GeoKeyGeogAngularUnitSize); !ok {
				return nil, fmt.Errorf("%w: %s: missing angular unit size", ErrGeoModel, g.name)
			}
		default:
			return nil, fmt.Errorf("%w: %s: angular units %d", ErrGeoModel, g.name, angularUnits)
		}
	}

	ellipsoid, err := EllipsoidFromGeoKeys(geoKeys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", g.name, err)
	}

	boxOffset := 0.0
	if rasterType, ok := geoKeys.Int(GeoKeyGTRasterType); ok && rasterType == RasterPixelIsPoint {
		boxOffset = -0.5
	}
	corners := [][]float64{
		{boxOffset, boxOffset},
		{boxOffset + float64(info.Width), boxOffset + float64(info.Height)},
	}
	if err := g.ImageToModel(corners); err != nil {
		return nil, err
	}

	return &GeodeticDomain{
		Min:       vec.Vec2{X: unitSize * corners[0][0], Y: unitSize * corners[0][1]},
		Max:       vec.Vec2{X: unitSize * corners[1][0], Y: unitSize * corners[1][1]},
		Ellipsoid: ellipsoid,
	}, nil
}

// PixelToGeo returns the geographic coordinate of loc in a width by height
// raster covering d.
func (d *GeodeticDomain) PixelToGeo(loc vec.Vec2, width, height int) vec.Vec2 {
	u := loc.X / float64(width)
	v := loc.Y / float64(height)
	return vec.Vec2{
		X: u*d.Max.X + (1-u)*d.Min.X,
		Y: v*d.Max.Y + (1-v)*d.Min.Y,
	}
}

// PixelSpacing returns the absolute change in longitude and latitude between
// adjacent pixels of a width by height raster covering d.
func (d *GeodeticDomain) PixelSpacing(width, height int) vec.Vec2 {
	delta := d.PixelToGeo(vec.Vec2{X: 1}, width, height).Sub(d.PixelToGeo(vec.Vec2{Y: 1}, width, height))
	return vec.Vec2{X: math.Abs(delta.X), Y: math.Abs(delta.Y)}
}

// PrimeVerticalRadius returns the prime vertical radius of curvature N of e at
// latitude phi, and its derivative with respect to phi.
func (e Ellipsoid) PrimeVerticalRadius(phi float64) (n, dnDPhi float64) {
	if e.SemiMajor == e.SemiMinor {
		return e.SemiMajor, 0
	}
	r := e.SemiMinor / e.SemiMajor
	sinPhi, cosPhi := math.Sincos(phi)
	d := cosPhi*cosPhi + r*r*sinPhi*sinPhi
	n = e.SemiMajor / math.Sqrt(d)
	dnDPhi = -e.SemiMajor * (r*r - 1) * cosPhi * sinPhi / math.Pow(d, 1.5)
	return n, dnDPhi
}

// LocalScaleFactors returns the ground length corresponding to a unit change
// in longitude (X) and in latitude (Y) at longitude lambda, latitude phi, and
// height z above e.
func (e Ellipsoid) LocalScaleFactors(lambda, phi, z float64) vec.Vec2 {
	r := e.SemiMinor / e.SemiMajor
	n, dnDPhi := e.PrimeVerticalRadius(phi)
	sinLambda, cosLambda := math.Sincos(lambda)
	sinPhi, cosPhi := math.Sincos(phi)

	dXDLambda := -(n + z) * cosPhi * sinLambda
	dYDLambda := (n + z) * cosPhi * cosLambda

	dXDPhi := dnDPhi*cosPhi*cosLambda - (n+z)*sinPhi*cosLambda
	dYDPhi := dnDPhi*cosPhi*sinLambda - (n+z)*sinPhi*sinLambda
	dZDPhi := r*r*dnDPhi*sinPhi + (r*r*n+z)*cosPhi

	return vec.Vec2{
		X: math.Hypot(dXDLambda, dYDLambda),
		Y: math.Sqrt(dXDPhi*dXDPhi + dYDPhi*dYDPhi + dZDPhi*dZDPhi),
	}
}

// GroundDistance returns the ground length of the step from geographic
// coordinate from to geographic coordinate to, using the local scale factors
// at to.
func (e Ellipsoid) GroundDistance(from, to vec.Vec2) float64 {
	scale := e.LocalScaleFactors(to.X, to.Y, 0)
	delta := to.Sub(from)
	return vec.Vec2{X: scale.X * delta.X, Y: scale.Y * delta.Y}.Length()
}
