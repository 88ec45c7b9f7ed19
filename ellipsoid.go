package demstats

import "fmt"

// An Ellipsoid is an oblate spheroid approximating the Earth.
type Ellipsoid struct {
	SemiMajor float64 // Equatorial radius, R_e.
	SemiMinor float64 // Polar radius, R_p.
}

const (
	EllipsoidWGS84             = 7030
	EllipsoidGRS80             = 7019
	EllipsoidClarke1866        = 7008
	EllipsoidBessel1841        = 7004
	EllipsoidInternational1924 = 7022
	EllipsoidWGS72             = 7043
)

const userDefined = 32767

// EllipsoidWithInvFlattening returns the ellipsoid with the given semi-major
// axis and inverse flattening.
func EllipsoidWithInvFlattening(semiMajor, invFlattening float64) Ellipsoid {
	if invFlattening == 0 {
		return Ellipsoid{SemiMajor: semiMajor, SemiMinor: semiMajor}
	}
	return Ellipsoid{
		SemiMajor: semiMajor,
		SemiMinor: semiMajor * (1 - 1/invFlattening),
	}
}

var ellipsoidsByCode = map[int]Ellipsoid{
	EllipsoidWGS84:             EllipsoidWithInvFlattening(6378137, 298.257223563),
	EllipsoidGRS80:             EllipsoidWithInvFlattening(6378137, 298.257222101),
	EllipsoidClarke1866:        {SemiMajor: 6378206.4, SemiMinor: 6356583.8},
	EllipsoidBessel1841:        EllipsoidWithInvFlattening(6377397.155, 299.1528128),
	EllipsoidInternational1924: EllipsoidWithInvFlattening(6378388, 297),
	EllipsoidWGS72:             EllipsoidWithInvFlattening(6378135, 298.26),
}

// ellipsoidCodesByDatum maps EPSG geodetic datum codes to ellipsoid codes.
var ellipsoidCodesByDatum = map[int]int{
	6326: EllipsoidWGS84,             // WGS 84
	6258: EllipsoidGRS80,             // ETRS89
	6269: EllipsoidGRS80,             // NAD83
	6283: EllipsoidGRS80,             // GDA94
	6267: EllipsoidClarke1866,        // NAD27
	6314: EllipsoidBessel1841,        // DHDN
	6230: EllipsoidInternational1924, // ED50
	6322: EllipsoidWGS72,             // WGS 72
}

var datumsByGeodeticCRS = map[int]int{
	4326: 6326,
	4258: 6258,
	4269: 6269,
	4283: 6283,
	4267: 6267,
	4314: 6314,
	4230: 6230,
	4322: 6322,
}

// EllipsoidFromGeoKeys resolves the ellipsoid described by d. Explicit axis
// keys take precedence over the ellipsoid code, which takes precedence over the
// datum and geodetic CRS codes. If nothing is specified then WGS84 is assumed.
func EllipsoidFromGeoKeys(d *GeoKeyDirectory) (Ellipsoid, error) {
	if semiMajor, ok := d.Double(GeoKeyEllipsoidSemiMajorAxis); ok {
		if semiMinor, ok := d.Double(GeoKeyEllipsoidSemiMinorAxis); ok {
			return Ellipsoid{SemiMajor: semiMajor, SemiMinor: semiMinor}, nil
		}
		if invFlattening, ok := d.Double(GeoKeyEllipsoidInvFlattening); ok {
			return EllipsoidWithInvFlattening(semiMajor, invFlattening), nil
		}
		return Ellipsoid{SemiMajor: semiMajor, SemiMinor: semiMajor}, nil
	}

	code, ok := d.Int(GeoKeyEllipsoid)
	if !ok || code == userDefined {
		datum, ok := d.Int(GeoKeyGeodeticDatum)
		if !ok || datum == userDefined {
			crs, ok := d.Int(GeoKeyGeodeticCRS)
			if !ok || crs == userDefined {
				return ellipsoidsByCode[EllipsoidWGS84], nil
			}
			if datum, ok = datumsByGeodeticCRS[crs]; !ok {
				return Ellipsoid{}, fmt.Errorf("%w: unknown geodetic CRS %d", ErrGeoModel, crs)
			}
		}
		if code, ok = ellipsoidCodesByDatum[datum]; !ok {
			return Ellipsoid{}, fmt.Errorf("%w: unknown geodetic datum %d", ErrGeoModel, datum)
		}
	}

	ellipsoid, ok := ellipsoidsByCode[code]
	if !ok {
		return Ellipsoid{}, fmt.Errorf("%w: unknown ellipsoid %d", ErrGeoModel, code)
	}
	return ellipsoid, nil
}
