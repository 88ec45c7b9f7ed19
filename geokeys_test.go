package demstats

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseGeoKeyDirectory(t *testing.T) {
	directory := []uint16{
		1, 1, 0, 7,
		1024, 0, 1, 2,
		1025, 0, 1, 1,
		1026, 34737, 7, 0,
		2048, 0, 1, 4258,
		2049, 34737, 18, 7,
		2054, 0, 1, 9102,
		2057, 34736, 1, 1,
	}
	doubleParams := []float64{
		0.0174532925199433,
		6378137,
	}
	asciiParams := "" +
		"WGS 84|" +
		"GCS Name = ETRS89|"

	actual, err := ParseGeoKeyDirectory(directory, doubleParams, asciiParams)
	assert.NoError(t, err)
	assert.Equal(t, &GeoKeyDirectory{
		Params: map[GeoKey]int{
			GeoKeyGTModelType:  ModelTypeGeographic,
			GeoKeyGTRasterType: RasterPixelIsArea,
			GeoKeyGeodeticCRS:  4258,
			GeoKeyAngularUnits: 9102,
		},
		DoubleParams: map[GeoKey]float64{
			GeoKeyEllipsoidSemiMajorAxis: 6378137,
		},
		ASCIIParams: map[GeoKey]string{
			GeoKeyGTCitation:   "WGS 84",
			GeoKeyGeogCitation: "GCS Name = ETRS89",
		},
	}, actual)

	modelType, ok := actual.Int(GeoKeyGTModelType)
	assert.True(t, ok)
	assert.Equal(t, ModelTypeGeographic, modelType)
	_, ok = actual.Int(GeoKeyEllipsoid)
	assert.False(t, ok)
	semiMajor, ok := actual.Double(GeoKeyEllipsoidSemiMajorAxis)
	assert.True(t, ok)
	assert.Equal(t, 6378137.0, semiMajor)
}

func TestParseGeoKeyDirectoryErrors(t *testing.T) {
	for _, tc := range []struct {
		name         string
		directory    []uint16
		doubleParams []float64
		asciiParams  string
	}{
		{
			name: "empty",
		},
		{
			name:      "key_directory_version",
			directory: []uint16{2, 1, 0, 0},
		},
		{
			name:      "key_revision",
			directory: []uint16{1, 2, 0, 0},
		},
		{
			name:      "minor_revision",
			directory: []uint16{1, 1, 2, 0},
		},
		{
			name:      "truncated",
			directory: []uint16{1, 1, 0, 2, 1024, 0, 1, 2},
		},
		{
			name:      "double_out_of_range",
			directory: []uint16{1, 1, 0, 1, 2057, 34736, 1, 0},
		},
		{
			name:        "ascii_out_of_range",
			directory:   []uint16{1, 1, 0, 1, 1026, 34737, 10, 0},
			asciiParams: "short|",
		},
		{
			name:      "unsupported_location",
			directory: []uint16{1, 1, 0, 1, 1024, 33550, 1, 0},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseGeoKeyDirectory(tc.directory, tc.doubleParams, tc.asciiParams)
			assert.IsError(t, err, ErrGeoModel)
		})
	}
}
