package demstats

import "errors"

// Errors returned while ingesting a raster or building its geodetic frame. All
// of them are fatal for a run.
var (
	ErrFile         = errors.New("file error")
	ErrFormat       = errors.New("unsupported format")
	ErrGeoModel     = errors.New("unsupported geographic model")
	ErrProjection   = errors.New("coordinate transform failed")
	ErrSizeMismatch = errors.New("size mismatch")

	errShortRead = errors.New("short read")
)
