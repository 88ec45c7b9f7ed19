package demstats

import (
	"fmt"
	"math"
	"math/rand/v2"

	"seehuhn.de/go/geom/vec"
)

// DefaultValidityFloor is the elevation below which samples are treated as no
// data.
const DefaultValidityFloor = 1.0

// A Ray is a starting pixel coordinate and a per-step displacement in pixel
// space.
type Ray struct {
	Origin    vec.Vec2
	Direction vec.Vec2
}

// A ProfileSample is an elevation at a ground distance along a profile.
type ProfileSample struct {
	T float64 // Arc length.
	Z float64 // Elevation.
}

// A Profile is a sequence of samples with strictly increasing arc length.
type Profile []ProfileSample

// A CrossSectionTracer extracts elevation profiles along rays through a
// raster.
type CrossSectionTracer struct {
	Heights       *RasterImage
	Mask          *Mask
	Domain        *GeodeticDomain
	ValidityFloor float64
}

// Trace walks ray through the raster one direction step at a time until it
// leaves the raster and returns the maximal runs of valid samples as profiles.
// A sample is valid if the interpolated mask is at least 0.5 and the
// interpolated elevation is at least t.ValidityFloor. NaN elevations are
// invalid.
//
// The bounds check does not include a lower bound on y.
func (t *CrossSectionTracer) Trace(ray Ray) []Profile {
	width, height := t.Heights.Size()

	var profiles []Profile
	var current Profile
	arcLength := 0.0
	prevLoc := ray.Origin
	for loc := ray.Origin.Add(ray.Direction); 0 <= loc.X && loc.X < float64(width) && loc.Y < float64(height); loc = loc.Add(ray.Direction) {
		maskValue := InterpolateBilinear(t.Mask, width, height, loc)
		z := InterpolateBilinear(t.Heights, width, height, loc)
		if !(maskValue >= 0.5 && z >= t.ValidityFloor) {
			if len(current) != 0 {
				profiles = append(profiles, current)
				current = nil
				arcLength = 0
			}
		} else {
			current = append(current, ProfileSample{T: arcLength, Z: z})
			geo := t.Domain.PixelToGeo(loc, width, height)
			prevGeo := t.Domain.PixelToGeo(prevLoc, width, height)
			arcLength += t.Domain.GroundDistance(prevGeo, geo)
		}
		prevLoc = loc
	}
	if len(current) != 0 {
		profiles = append(profiles, current)
	}

	profilesExtracted.Add(float64(len(profiles)))
	return profiles
}

// RandomOrigin returns a uniformly random valid pixel of a width by height
// raster, excluding the first row and column. At least one such pixel must be
// valid.
func RandomOrigin(r *rand.Rand, mask *Mask, width, height int) (vec.Vec2, error) {
	if width < 3 || height < 3 {
		return vec.Vec2{}, fmt.Errorf("%w: raster of %dx%d is too small", ErrFormat, width, height)
	}
	for {
		x := 1 + r.IntN(width-1)
		y := 1 + r.IntN(height-1)
		if mask.Valid(x, y) {
			return vec.Vec2{X: float64(x), Y: float64(y)}, nil
		}
	}
}

// RandomDirection returns a unit vector with a uniformly random angle in
// [0, pi).
func RandomDirection(r *rand.Rand) vec.Vec2 {
	angle := math.Pi * r.Float64()
	sin, cos := math.Sincos(angle)
	return vec.Vec2{X: cos, Y: sin}
}

// StartLocation moves origin backwards along dir to where it meets the edge of
// the raster, so that a trace from the returned location sweeps across the
// whole raster. maxX is the largest x coordinate of the raster. dir must have
// a non-negative y component.
func StartLocation(origin, dir vec.Vec2, maxX float64) vec.Vec2 {
	rX := origin.X / dir.X
	rY := origin.Y / dir.Y
	if rX < 0 {
		rX = (origin.X - maxX) / dir.X
	}
	return origin.Sub(dir.Mul(min(rX, rY)))
}
