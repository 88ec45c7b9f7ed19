package demstats

import (
	"io"
	"math/rand/v2"

	"seehuhn.de/go/geom/vec"
)

// A GradientSample is an elevation and the magnitude of the terrain gradient
// there.
type GradientSample struct {
	Elevation float64
	Gradient  float64
}

// A GradientSampler samples elevation and slope pairs in logarithmic
// elevation buckets.
type GradientSampler struct {
	validityFloor float64
	minGradient   float64
	sampler       *LogBucketSampler[GradientSample]
}

// A SamplerOption sets an option shared by the sampling accumulators.
type SamplerOption func(*samplerOptions)

type samplerOptions struct {
	bucketCount     int
	resolution      float64
	capacity        int
	validityFloor   float64
	minGradient     float64
	filterScale     float64
	reliefThreshold float64
	transectBudget  int64
}

func newSamplerOptions(options []SamplerOption) samplerOptions {
	o := samplerOptions{
		bucketCount:     159,
		resolution:      12,
		capacity:        1024,
		validityFloor:   DefaultValidityFloor,
		minGradient:     1.0 / 2048,
		filterScale:     2048,
		reliefThreshold: 32,
		transectBudget:  8 * 65536 * 8192,
	}
	for _, option := range options {
		option(&o)
	}
	return o
}

// WithLogBuckets sets the number of logarithmic buckets and the number of
// buckets per doubling.
func WithLogBuckets(bucketCount int, resolution float64) SamplerOption {
	return func(o *samplerOptions) {
		o.bucketCount = bucketCount
		o.resolution = resolution
	}
}

// WithReservoirSize sets the maximum number of samples kept per bucket.
func WithReservoirSize(capacity int) SamplerOption {
	return func(o *samplerOptions) {
		o.capacity = capacity
	}
}

// WithValidityFloor sets the elevation below which samples are ignored.
func WithValidityFloor(validityFloor float64) SamplerOption {
	return func(o *samplerOptions) {
		o.validityFloor = validityFloor
	}
}

// WithMinGradient sets the gradient magnitude at or below which samples are
// ignored.
func WithMinGradient(minGradient float64) SamplerOption {
	return func(o *samplerOptions) {
		o.minGradient = minGradient
	}
}

// WithFilterScale sets the length scale of the low-pass filter applied to
// profiles.
func WithFilterScale(filterScale float64) SamplerOption {
	return func(o *samplerOptions) {
		o.filterScale = filterScale
	}
}

// WithReliefThreshold sets the relief at or below which peaks are ignored.
func WithReliefThreshold(reliefThreshold float64) SamplerOption {
	return func(o *samplerOptions) {
		o.reliefThreshold = reliefThreshold
	}
}

// WithTransectBudget sets the transect budget. The number of transects traced
// per input is the budget divided by the square root of the number of valid
// pixels.
func WithTransectBudget(transectBudget int64) SamplerOption {
	return func(o *samplerOptions) {
		o.transectBudget = transectBudget
	}
}

// NewGradientSampler returns a new GradientSampler drawing random numbers from
// rng.
func NewGradientSampler(rng *rand.Rand, options ...SamplerOption) *GradientSampler {
	o := newSamplerOptions(options)
	return &GradientSampler{
		validityFloor: o.validityFloor,
		minGradient:   o.minGradient,
		sampler:       NewLogBucketSampler[GradientSample](rng, o.bucketCount, o.resolution, o.capacity),
	}
}

// Accumulate samples the gradient at every valid interior pixel of input.
func (s *GradientSampler) Accumulate(input *Input) error {
	width, height := input.Heights.Size()
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			if !input.Mask.Valid(x, y) {
				continue
			}
			value := input.Heights.At(x, y)
			if !(value > s.validityFloor) {
				continue
			}
			gradient := physicalGradient(input, x, y).Length()
			if gradient > s.minGradient {
				s.sampler.Add(value, GradientSample{
					Elevation: value,
					Gradient:  gradient,
				})
			}
		}
	}
	return nil
}

// Bucket returns the samples of bucket i.
func (s *GradientSampler) Bucket(i int) *Reservoir[GradientSample] {
	return s.sampler.Bucket(i)
}

// WriteTo writes the sampled elevation and gradient pairs to w.
func (s *GradientSampler) WriteTo(w io.Writer) (int64, error) {
	return s.sampler.WriteSamples(w, func(sample GradientSample) (float64, float64) {
		return sample.Elevation, sample.Gradient
	})
}

// physicalGradient returns the elevation gradient at the interior pixel
// (x, y) of input, per unit ground length along longitude (X) and latitude (Y),
// from central differences in geographic coordinates.
func physicalGradient(input *Input, x, y int) vec.Vec2 {
	derivatives, scale := geographicGradient(input, x, y)
	return vec.Vec2{
		X: derivatives.X / scale.X,
		Y: derivatives.Y / scale.Y,
	}
}

// geographicGradient returns the elevation gradient at the interior pixel
// (x, y) of input with respect to longitude and latitude, and the local scale
// factors at that pixel's elevation.
func geographicGradient(input *Input, x, y int) (derivatives, scale vec.Vec2) {
	width, height := input.Heights.Size()
	geo := func(x, y int) vec.Vec2 {
		return input.Domain.PixelToGeo(vec.Vec2{X: float64(x), Y: float64(y)}, width, height)
	}

	value := input.Heights.At(x, y)
	west, east := geo(x-1, y), geo(x+1, y)
	above, below := geo(x, y-1), geo(x, y+1)
	derivatives = vec.Vec2{
		X: (input.Heights.At(x+1, y) - input.Heights.At(x-1, y)) / (east.X - west.X),
		Y: (input.Heights.At(x, y+1) - input.Heights.At(x, y-1)) / (below.Y - above.Y),
	}

	center := geo(x, y)
	scale = input.Domain.LocalScaleFactors(center.X, center.Y, value)
	return derivatives, scale
}
