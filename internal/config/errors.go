package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidBucketWidth is returned when the histogram bucket width is not
	// positive.
	ErrInvalidBucketWidth = errors.New("invalid bucket width: must be positive")

	// ErrInvalidMaxElevation is returned when the histogram does not cover at
	// least one bucket.
	ErrInvalidMaxElevation = errors.New("invalid max elevation: must be at least one bucket width")

	// ErrInvalidLogBuckets is returned when the number of logarithmic buckets
	// or their resolution is not positive.
	ErrInvalidLogBuckets = errors.New("invalid log buckets: count and resolution must be positive")

	// ErrInvalidReservoirSize is returned when the per-bucket sample size is not
	// positive.
	ErrInvalidReservoirSize = errors.New("invalid reservoir size: must be positive")

	// ErrInvalidSectors is returned when the slope direction rose has no
	// sectors.
	ErrInvalidSectors = errors.New("invalid sectors: must be positive")

	// ErrInvalidFilterScale is returned when the low-pass filter scale is not
	// positive.
	ErrInvalidFilterScale = errors.New("invalid filter scale: must be positive")

	// ErrInvalidTransectBudget is returned when the transect budget is
	// negative.
	ErrInvalidTransectBudget = errors.New("invalid transect budget: must be non-negative")

	// ErrInvalidScaleCacheSize is returned when the scale factor cache size is
	// not positive.
	ErrInvalidScaleCacheSize = errors.New("invalid scale cache size: must be positive")
)
