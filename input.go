package demstats

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
)

// An InputSpec names a heightmap and its optional mask.
type InputSpec struct {
	Heightmap string
	Mask      string
}

// ParseInputSpec parses an argument of the form heightmap[,mask].
func ParseInputSpec(arg string) InputSpec {
	heightmap, mask, _ := strings.Cut(arg, ",")
	return InputSpec{
		Heightmap: heightmap,
		Mask:      mask,
	}
}

// An Input is a loaded heightmap with its mask and geodetic domain. It is
// read-only once loaded.
type Input struct {
	Name    string
	Heights *RasterImage
	Mask    *Mask
	Domain  *GeodeticDomain
}

// An Accumulator accumulates statistics over a sequence of inputs and writes
// them out once all inputs have been accumulated.
type Accumulator interface {
	Accumulate(input *Input) error
	io.WriterTo
}

// LoadInput loads the heightmap and mask named by spec from fsys. The domain
// is logged to logger before the pixel data is loaded.
func LoadInput(fsys fs.FS, spec InputSpec, logger *slog.Logger) (*Input, error) {
	g, err := OpenGeoTIFF(fsys, spec.Heightmap)
	if err != nil {
		return nil, err
	}
	defer g.Close()

	info, err := g.Inspect()
	if err != nil {
		return nil, err
	}

	domain, err := NewGeodeticDomain(g, info)
	if err != nil {
		return nil, err
	}
	logger.Info("domain",
		"file", spec.Heightmap,
		"min", fmt.Sprintf("(%.7g, %.7g)", domain.Min.X, domain.Min.Y),
		"max", fmt.Sprintf("(%.7g, %.7g)", domain.Max.X, domain.Max.Y),
		"R_e", fmt.Sprintf("%.8g", domain.SemiMajor),
		"R_p", fmt.Sprintf("%.8g", domain.SemiMinor),
	)

	heights, err := g.Load(info)
	if err != nil {
		return nil, err
	}

	var mask *Mask
	if spec.Mask != "" {
		if mask, err = LoadMask(fsys, spec.Mask, info.Width, info.Height); err != nil {
			return nil, err
		}
	}

	return &Input{
		Name:    spec.Heightmap,
		Heights: heights,
		Mask:    mask,
		Domain:  domain,
	}, nil
}

// Run loads each input in turn and adds it to accumulator, stopping at the
// first error. Each input is released before the next is loaded.
func Run(fsys fs.FS, specs []InputSpec, accumulator Accumulator, logger *slog.Logger) error {
	for _, spec := range specs {
		input, err := LoadInput(fsys, spec, logger)
		if err != nil {
			return err
		}
		if err := accumulator.Accumulate(input); err != nil {
			return err
		}
		inputsProcessed.Inc()
	}
	return nil
}
