package demstats

import (
	"errors"
	"io"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseInputSpec(t *testing.T) {
	for _, tc := range []struct {
		arg      string
		expected InputSpec
	}{
		{
			arg:      "dem.tif",
			expected: InputSpec{Heightmap: "dem.tif"},
		},
		{
			arg:      "dem.tif,mask.raw",
			expected: InputSpec{Heightmap: "dem.tif", Mask: "mask.raw"},
		},
		{
			arg:      "dem.tif,mask,with,commas.raw",
			expected: InputSpec{Heightmap: "dem.tif", Mask: "mask,with,commas.raw"},
		},
	} {
		assert.Equal(t, tc.expected, ParseInputSpec(tc.arg))
	}
}

func TestLoadInput(t *testing.T) {
	samples := rampSamples(4, 3)
	fsys := testFS(t, map[string][]byte{
		"dem.tif":        stripTIFF(4, 3, samples, 10, 50, 0.5).encode(t),
		"mask.raw":       {1, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1},
		"short_mask.raw": {1, 1, 1},
	})

	input := loadTestInput(t, fsys, InputSpec{Heightmap: "dem.tif", Mask: "mask.raw"})
	assert.Equal(t, "dem.tif", input.Name)
	assert.Equal(t, samples, input.Heights.Samples())
	assert.Equal(t, 8, input.Mask.ValidCount(4, 3))
	assert.Equal(t, "", cmp.Diff(&GeodeticDomain{
		Min:       degrees(10, 50),
		Max:       degrees(12, 48.5),
		Ellipsoid: EllipsoidWithInvFlattening(6378137, 298.257223563),
	}, input.Domain, cmpopts.EquateApprox(0, 1e-12)))

	input = loadTestInput(t, fsys, InputSpec{Heightmap: "dem.tif"})
	assert.True(t, input.Mask == nil)

	_, err := LoadInput(fsys, InputSpec{Heightmap: "dem.tif", Mask: "short_mask.raw"}, discardLogger())
	assert.IsError(t, err, ErrSizeMismatch)

	_, err = LoadInput(fsys, InputSpec{Heightmap: "missing.tif"}, discardLogger())
	assert.IsError(t, err, ErrFile)
}

type countingAccumulator struct {
	names []string
	err   error
}

func (a *countingAccumulator) Accumulate(input *Input) error {
	a.names = append(a.names, input.Name)
	return a.err
}

func (a *countingAccumulator) WriteTo(io.Writer) (int64, error) {
	return 0, nil
}

func TestRun(t *testing.T) {
	fsys := testFS(t, map[string][]byte{
		"a.tif": stripTIFF(3, 3, rampSamples(3, 3), 0, 1, 0.1).encode(t),
		"b.tif": stripTIFF(3, 3, rampSamples(3, 3), 1, 1, 0.1).encode(t),
	})

	accumulator := &countingAccumulator{}
	err := Run(fsys, []InputSpec{{Heightmap: "a.tif"}, {Heightmap: "b.tif"}}, accumulator, discardLogger())
	assert.NoError(t, err)
	assert.Equal(t, []string{"a.tif", "b.tif"}, accumulator.names)

	accumulator = &countingAccumulator{}
	err = Run(fsys, []InputSpec{{Heightmap: "a.tif"}, {Heightmap: "missing.tif"}, {Heightmap: "b.tif"}}, accumulator, discardLogger())
	assert.IsError(t, err, ErrFile)
	assert.Equal(t, []string{"a.tif"}, accumulator.names)

	errAccumulate := errors.New("accumulate")
	accumulator = &countingAccumulator{err: errAccumulate}
	err = Run(fsys, []InputSpec{{Heightmap: "a.tif"}, {Heightmap: "b.tif"}}, accumulator, discardLogger())
	assert.IsError(t, err, errAccumulate)
	assert.Equal(t, []string{"a.tif"}, accumulator.names)
}

func TestRunElevationHistogram(t *testing.T) {
	samples := []float32{
		10, 20, 30,
		40, 50, 60,
		70, 80, 90,
	}
	fsys := testFS(t, map[string][]byte{
		"dem.tif": stripTIFF(3, 3, samples, 0, 0.3, 0.1).encode(t),
	})
	h := NewElevationHistogram()
	assert.NoError(t, Run(fsys, []InputSpec{{Heightmap: "dem.tif"}}, h, discardLogger()))
	assert.NotEqual(t, 0.0, h.Area(0))
	assert.NotEqual(t, 0.0, h.Area(1))
	assert.NotEqual(t, 0.0, h.Area(2))
	assert.Equal(t, 0.0, h.Area(3))
}
