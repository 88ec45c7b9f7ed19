// Package config provides the run configuration for demstats: bucket layouts,
// sampling parameters, and the random seed, loaded from an optional YAML file
// and overridden by command line flags.
package config
