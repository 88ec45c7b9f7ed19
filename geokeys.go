package demstats

import (
	"fmt"
	"strings"
)

type GeoKey uint16

const (
	GeoKeyGTModelType  GeoKey = 1024
	GeoKeyGTRasterType GeoKey = 1025
	GeoKeyGTCitation   GeoKey = 1026

	GeoKeyGeodeticCRS            GeoKey = 2048
	GeoKeyGeogCitation           GeoKey = 2049
	GeoKeyGeodeticDatum          GeoKey = 2050
	GeoKeyPrimeMeridian          GeoKey = 2051
	GeoKeyAngularUnits           GeoKey = 2054
	GeoKeyGeogAngularUnitSize    GeoKey = 2055
	GeoKeyEllipsoid              GeoKey = 2056
	GeoKeyEllipsoidSemiMajorAxis GeoKey = 2057
	GeoKeyEllipsoidSemiMinorAxis GeoKey = 2058
	GeoKeyEllipsoidInvFlattening GeoKey = 2059

	GeoKeyProjectedCRS GeoKey = 3072
)

// GTModelTypeGeoKey values.
const (
	ModelTypeProjected  = 1
	ModelTypeGeographic = 2
	ModelTypeGeocentric = 3
)

// GTRasterTypeGeoKey values.
const (
	RasterPixelIsArea  = 1
	RasterPixelIsPoint = 2
)

const (
	tagGeoDoubleParams = 34736
	tagGeoASCIIParams  = 34737
)

type GeoKeyDirectory struct {
	Params       map[GeoKey]int
	DoubleParams map[GeoKey]float64
	ASCIIParams  map[GeoKey]string
}

// ParseGeoKeyDirectory parses a GeoKey directory with its associated double
// and ASCII parameters.
func ParseGeoKeyDirectory(directory []uint16, doubleParams []float64, asciiParams string) (*GeoKeyDirectory, error) {
	if len(directory) < 4 {
		return nil, fmt.Errorf("%w: missing GeoKey directory header", ErrGeoModel)
	}

	if keyDirectoryVersion := int(directory[0]); keyDirectoryVersion != 1 {
		return nil, fmt.Errorf("%w: GeoKey directory version %d", ErrGeoModel, keyDirectoryVersion)
	}
	if keyRevision := int(directory[1]); keyRevision != 1 {
		return nil, fmt.Errorf("%w: GeoTIFF key revision %d", ErrGeoModel, keyRevision)
	}
	if minorRevision := int(directory[2]); minorRevision != 0 && minorRevision != 1 {
		return nil, fmt.Errorf("%w: GeoTIFF minor revision %d", ErrGeoModel, minorRevision)
	}
	numberOfKeys := int(directory[3])
	if len(directory) != 4+4*numberOfKeys {
		return nil, fmt.Errorf("%w: GeoKey directory has %d entries, expected %d", ErrGeoModel, len(directory), 4+4*numberOfKeys)
	}

	d := &GeoKeyDirectory{
		Params:       make(map[GeoKey]int),
		DoubleParams: make(map[GeoKey]float64),
		ASCIIParams:  make(map[GeoKey]string),
	}
	for i := range numberOfKeys {
		keyValues := directory[4+4*i : 4+4*(i+1)]
		key := GeoKey(keyValues[0])
		tiffTagLocation := int(keyValues[1])
		count := int(keyValues[2])
		valueOffset := int(keyValues[3])
		switch tiffTagLocation {
		case 0:
			if count != 1 {
				return nil, fmt.Errorf("%w: GeoKey %d has %d inline values", ErrGeoModel, key, count)
			}
			d.Params[key] = valueOffset
		case tagGeoDoubleParams:
			if count != 1 || valueOffset >= len(doubleParams) {
				return nil, fmt.Errorf("%w: GeoKey %d: invalid double parameter", ErrGeoModel, key)
			}
			d.DoubleParams[key] = doubleParams[valueOffset]
		case tagGeoASCIIParams:
			if valueOffset+count > len(asciiParams) {
				return nil, fmt.Errorf("%w: GeoKey %d: invalid ASCII parameter", ErrGeoModel, key)
			}
			d.ASCIIParams[key] = strings.TrimSuffix(asciiParams[valueOffset:valueOffset+count], "|")
		default:
			return nil, fmt.Errorf("%w: GeoKey %d stored in unsupported tag %d", ErrGeoModel, key, tiffTagLocation)
		}
	}
	return d, nil
}

func (d *GeoKeyDirectory) Int(key GeoKey) (int, bool) {
	value, ok := d.Params[key]
	return value, ok
}

func (d *GeoKeyDirectory) Double(key GeoKey) (float64, bool) {
	value, ok := d.DoubleParams[key]
	return value, ok
}

// GeoKeys returns g's GeoKey directory.
func (g *GeoTIFF) GeoKeys() (*GeoKeyDirectory, error) {
	d, err := ParseGeoKeyDirectory(g.ifd.GeoKeyDirectoryTag, g.ifd.GeoDoubleParamsTag, g.ifd.GeoASCIIParamsTag)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", g.name, err)
	}
	return d, nil
}
