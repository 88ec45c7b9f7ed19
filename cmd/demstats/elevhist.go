package main

import (
	"log/slog"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/twpayne/go-demstats"
	"github.com/twpayne/go-demstats/internal/config"
)

// NewElevHistCmd creates the elev-hist command.
func NewElevHistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "elev-hist heightmap[,mask]...",
		Short: "Write the ground area per elevation bucket",
		Long: `elev-hist accumulates the ground area of every valid pixel into fixed
width elevation buckets and writes, for each bucket, its center elevation and
its area divided by the bucket width.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPipeline(newElevationHistogram),
	}
}

func newElevationHistogram(cfg *config.Config, _ *rand.Rand, _ *slog.Logger) demstats.Accumulator {
	return demstats.NewElevationHistogram(
		demstats.WithBucketWidth(cfg.BucketWidth),
		demstats.WithMaxElevation(cfg.MaxElevation),
		demstats.WithHistogramValidityFloor(cfg.ValidityFloor),
		demstats.WithScaleCacheSize(cfg.ScaleCacheSize),
	)
}
