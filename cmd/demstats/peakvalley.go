package main

import (
	"log/slog"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/twpayne/go-demstats"
	"github.com/twpayne/go-demstats/internal/config"
)

// NewPeakValleyCmd creates the peak-valley command.
func NewPeakValleyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "peak-valley heightmap[,mask]...",
		Short: "Write sampled valley baseline and peak pairs",
		Long: `peak-valley traces random straight transects through each input, low-pass
filters the resulting elevation profiles, and writes a bounded random sample
of valley baseline and peak elevation pairs from each logarithmic peak
elevation bucket.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPipeline(newReliefSampler),
	}
}

func newReliefSampler(cfg *config.Config, rng *rand.Rand, logger *slog.Logger) demstats.Accumulator {
	return demstats.NewReliefSampler(rng, logger, samplerOptions(cfg)...)
}
