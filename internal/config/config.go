package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	DefaultValidityFloor   = 1.0
	DefaultBucketWidth     = 32.0
	DefaultMaxElevation    = 8900.0
	DefaultLogBuckets      = 159
	DefaultLogResolution   = 12.0
	DefaultReservoirSize   = 1024
	DefaultMinGradient     = 1.0 / 2048
	DefaultSectors         = 64
	DefaultFilterScale     = 2048.0
	DefaultReliefThreshold = 32.0
	DefaultTransectBudget  = 8 * 65536 * 8192
	DefaultScaleCacheSize  = 4096
	DefaultConfigFileName  = "config.yaml"
	AppName                = "demstats"
)

// Config holds the parameters of every pipeline.
type Config struct {
	// ValidityFloor is the elevation at or below which samples are treated as
	// no data.
	ValidityFloor float64 `yaml:"validityFloor"`

	// BucketWidth and MaxElevation define the linear elevation histogram.
	BucketWidth  float64 `yaml:"bucketWidth"`
	MaxElevation float64 `yaml:"maxElevation"`

	// LogBuckets is the number of logarithmic buckets, each 1/LogResolution
	// of a doubling wide.
	LogBuckets    int     `yaml:"logBuckets"`
	LogResolution float64 `yaml:"logResolution"`

	// ReservoirSize is the maximum number of samples kept per bucket.
	ReservoirSize int `yaml:"reservoirSize"`

	MinGradient     float64 `yaml:"minGradient"`
	Sectors         int     `yaml:"sectors"`
	FilterScale     float64 `yaml:"filterScale"`
	ReliefThreshold float64 `yaml:"reliefThreshold"`

	// TransectBudget divided by the square root of an input's valid pixel
	// count is the number of transects traced through that input.
	TransectBudget int64 `yaml:"transectBudget"`

	ScaleCacheSize int `yaml:"scaleCacheSize"`

	// Seed seeds the PCG random number generator.
	Seed [2]uint64 `yaml:"seed,flow"`
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		ValidityFloor:   DefaultValidityFloor,
		BucketWidth:     DefaultBucketWidth,
		MaxElevation:    DefaultMaxElevation,
		LogBuckets:      DefaultLogBuckets,
		LogResolution:   DefaultLogResolution,
		ReservoirSize:   DefaultReservoirSize,
		MinGradient:     DefaultMinGradient,
		Sectors:         DefaultSectors,
		FilterScale:     DefaultFilterScale,
		ReliefThreshold: DefaultReliefThreshold,
		TransectBudget:  DefaultTransectBudget,
		ScaleCacheSize:  DefaultScaleCacheSize,
	}
}

// Validate checks c for values that no pipeline can run with.
func (c *Config) Validate() error {
	switch {
	case !(c.BucketWidth > 0):
		return ErrInvalidBucketWidth
	case !(c.MaxElevation >= c.BucketWidth):
		return ErrInvalidMaxElevation
	case c.LogBuckets <= 0 || !(c.LogResolution > 0):
		return ErrInvalidLogBuckets
	case c.ReservoirSize <= 0:
		return ErrInvalidReservoirSize
	case c.Sectors <= 0:
		return ErrInvalidSectors
	case !(c.FilterScale > 0):
		return ErrInvalidFilterScale
	case c.TransectBudget < 0:
		return ErrInvalidTransectBudget
	case c.ScaleCacheSize <= 0:
		return ErrInvalidScaleCacheSize
	default:
		return nil
	}
}

// ConfigDir returns the XDG configuration directory for demstats.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
