package main

import (
	"log/slog"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/twpayne/go-demstats"
	"github.com/twpayne/go-demstats/internal/config"
)

// NewSlopeDirCmd creates the slope-dir command.
func NewSlopeDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slope-dir heightmap[,mask]...",
		Short: "Write the slope direction rose",
		Long: `slope-dir projects the surface normal of every valid, non-flat interior
pixel onto each compass sector and writes, for each sector, its fraction of a
full turn and the ratio of the accumulated normal and horizontal projections.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPipeline(newSlopeDirectionRose),
	}
}

func newSlopeDirectionRose(cfg *config.Config, _ *rand.Rand, _ *slog.Logger) demstats.Accumulator {
	return demstats.NewSlopeDirectionRose(cfg.Sectors)
}
