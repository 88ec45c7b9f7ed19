package demstats

import (
	"fmt"
	"io"

	"seehuhn.de/go/geom/vec"
)

// An ElevationHistogram accumulates the ground area of valid pixels in fixed
// width elevation buckets.
type ElevationHistogram struct {
	bucketWidth    float64
	maxElevation   float64
	validityFloor  float64
	scaleCacheSize int
	area           []float64
}

// An ElevationHistogramOption sets an option on an ElevationHistogram.
type ElevationHistogramOption func(*ElevationHistogram)

// WithBucketWidth sets the width of each elevation bucket.
func WithBucketWidth(bucketWidth float64) ElevationHistogramOption {
	return func(h *ElevationHistogram) {
		h.bucketWidth = bucketWidth
	}
}

// WithMaxElevation sets the elevation covered by the histogram.
func WithMaxElevation(maxElevation float64) ElevationHistogramOption {
	return func(h *ElevationHistogram) {
		h.maxElevation = maxElevation
	}
}

// WithHistogramValidityFloor sets the elevation at or below which pixels are
// ignored.
func WithHistogramValidityFloor(validityFloor float64) ElevationHistogramOption {
	return func(h *ElevationHistogram) {
		h.validityFloor = validityFloor
	}
}

// WithScaleCacheSize sets the number of latitudes whose scale factors are
// cached.
func WithScaleCacheSize(scaleCacheSize int) ElevationHistogramOption {
	return func(h *ElevationHistogram) {
		h.scaleCacheSize = scaleCacheSize
	}
}

// NewElevationHistogram returns a new, empty ElevationHistogram.
func NewElevationHistogram(options ...ElevationHistogramOption) *ElevationHistogram {
	h := &ElevationHistogram{
		bucketWidth:    32,
		maxElevation:   8900,
		validityFloor:  DefaultValidityFloor,
		scaleCacheSize: 4096,
	}
	for _, option := range options {
		option(h)
	}
	h.area = make([]float64, int(h.maxElevation/h.bucketWidth))
	return h
}

// Accumulate adds the area of every valid pixel of input above the validity
// floor to its elevation bucket.
func (h *ElevationHistogram) Accumulate(input *Input) error {
	width, height := input.Heights.Size()
	spacing := input.Domain.PixelSpacing(width, height)
	scaleCache, err := NewScaleCache(input.Domain.Ellipsoid, h.scaleCacheSize)
	if err != nil {
		return err
	}
	for y := range height {
		for x := range width {
			if !input.Mask.Valid(x, y) {
				continue
			}
			value := input.Heights.At(x, y)
			if !(value > h.validityFloor) {
				continue
			}
			bucket, ok := LinearBucket(value, h.bucketWidth, len(h.area))
			if !ok {
				samplesOutOfRange.Inc()
				continue
			}
			geo := input.Domain.PixelToGeo(vec.Vec2{X: float64(x), Y: float64(y)}, width, height)
			scale := scaleCache.LocalScaleFactors(geo.Y)
			h.area[bucket] += scale.X * spacing.X * scale.Y * spacing.Y
		}
	}
	return nil
}

// Area returns the accumulated area of bucket i.
func (h *ElevationHistogram) Area(i int) float64 {
	return h.area[i]
}

// WriteTo writes the center and area density of each bucket to w.
func (h *ElevationHistogram) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for i, area := range h.area {
		z0 := h.bucketWidth * float64(i)
		z1 := h.bucketWidth * float64(i+1)
		n, err := fmt.Fprintf(w, "%.8e %.16g\n", 0.5*(z0+z1), area/(z1-z0))
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
