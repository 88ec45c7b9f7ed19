package main

import (
	"log/slog"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/twpayne/go-demstats"
	"github.com/twpayne/go-demstats/internal/config"
)

// NewGradAtPointsCmd creates the grad-at-points command.
func NewGradAtPointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grad-at-points heightmap[,mask]...",
		Short: "Write sampled elevation and gradient pairs",
		Long: `grad-at-points computes the magnitude of the terrain gradient at every
valid interior pixel and writes a bounded random sample of elevation and
gradient pairs from each logarithmic elevation bucket.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPipeline(newGradientSampler),
	}
}

func newGradientSampler(cfg *config.Config, rng *rand.Rand, _ *slog.Logger) demstats.Accumulator {
	return demstats.NewGradientSampler(rng, samplerOptions(cfg)...)
}

// samplerOptions returns the sampler options configured by cfg.
func samplerOptions(cfg *config.Config) []demstats.SamplerOption {
	return []demstats.SamplerOption{
		demstats.WithLogBuckets(cfg.LogBuckets, cfg.LogResolution),
		demstats.WithReservoirSize(cfg.ReservoirSize),
		demstats.WithValidityFloor(cfg.ValidityFloor),
		demstats.WithMinGradient(cfg.MinGradient),
		demstats.WithFilterScale(cfg.FilterScale),
		demstats.WithReliefThreshold(cfg.ReliefThreshold),
		demstats.WithTransectBudget(cfg.TransectBudget),
	}
}
