package demstats

import (
	"fmt"
	"io/fs"
)

// A RasterImage is a single channel 32-bit float raster stored row-major.
type RasterImage struct {
	width   int
	height  int
	samples []float32
}

// NewRasterImage returns a new RasterImage of the given size with all samples
// set to zero.
func NewRasterImage(width, height int) *RasterImage {
	return &RasterImage{
		width:   width,
		height:  height,
		samples: make([]float32, width*height),
	}
}

// NewRasterImageFromSamples returns a RasterImage backed by samples, which
// must hold exactly width*height values.
func NewRasterImageFromSamples(width, height int, samples []float32) (*RasterImage, error) {
	if len(samples) != width*height {
		return nil, fmt.Errorf("%w: %d samples for a %dx%d raster", ErrSizeMismatch, len(samples), width, height)
	}
	return &RasterImage{
		width:   width,
		height:  height,
		samples: samples,
	}, nil
}

// Size returns the width and height of r.
func (r *RasterImage) Size() (int, int) {
	return r.width, r.height
}

// At returns the sample at (x, y).
func (r *RasterImage) At(x, y int) float64 {
	return float64(r.samples[y*r.width+x])
}

// Samples returns r's samples. The caller must not modify them.
func (r *RasterImage) Samples() []float32 {
	return r.samples
}

// A Mask marks the valid pixels of a raster. A nil *Mask marks every pixel as
// valid.
type Mask struct {
	width  int
	height int
	data   []byte
}

// NewMask returns a Mask backed by data, which must hold exactly width*height
// bytes.
func NewMask(width, height int, data []byte) (*Mask, error) {
	if len(data) != width*height {
		return nil, fmt.Errorf("%w: mask has %d bytes, raster has %dx%d pixels", ErrSizeMismatch, len(data), width, height)
	}
	return &Mask{
		width:  width,
		height: height,
		data:   data,
	}, nil
}

// LoadMask reads a raw, row-major byte mask from filename. The file must be
// exactly width*height bytes long.
func LoadMask(fsys fs.FS, filename string, width, height int) (*Mask, error) {
	fileInfo, err := fs.Stat(fsys, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFile, err)
	}
	if fileInfo.Size() != int64(width)*int64(height) {
		return nil, fmt.Errorf("%w: %s is %d bytes, expected %d", ErrSizeMismatch, filename, fileInfo.Size(), width*height)
	}
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFile, err)
	}
	return NewMask(width, height, data)
}

// Size returns the width and height of m.
func (m *Mask) Size() (int, int) {
	return m.width, m.height
}

// At returns the raw mask value at (x, y), or 1 if m is nil.
func (m *Mask) At(x, y int) float64 {
	if m == nil {
		return 1
	}
	return float64(m.data[y*m.width+x])
}

// Valid returns whether the pixel at (x, y) is valid.
func (m *Mask) Valid(x, y int) bool {
	return m == nil || m.data[y*m.width+x] != 0
}

// ValidCountFrom returns the number of valid pixels (x, y) in a width by
// height raster covered by m with x >= x0 and y >= y0.
func (m *Mask) ValidCountFrom(x0, y0, width, height int) int {
	if m == nil {
		return max(width-x0, 0) * max(height-y0, 0)
	}
	count := 0
	for y := y0; y < height; y++ {
		for x := x0; x < width; x++ {
			if m.data[y*m.width+x] != 0 {
				count++
			}
		}
	}
	return count
}

// ValidCount returns the number of valid pixels in a width by height raster
// covered by m.
func (m *Mask) ValidCount(width, height int) int {
	if m == nil {
		return width * height
	}
	count := 0
	for _, b := range m.data {
		if b != 0 {
			count++
		}
	}
	return count
}
