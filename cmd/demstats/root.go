package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/twpayne/go-demstats"
	"github.com/twpayne/go-demstats/internal/config"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demstats",
		Short: "Compute terrain statistics from GeoTIFF elevation models",
		Long: `demstats computes bucketed terrain statistics from one or more GeoTIFF
digital elevation models in geographic coordinates.

Each input is a heightmap, optionally followed by a comma and a raw byte mask
of the same size whose non-zero bytes mark valid pixels. Inputs are processed
one at a time and their statistics are combined.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: demstats/config.yaml in the XDG config directory)")
	cmd.PersistentFlags().UintSlice("seed", nil,
		"Two seeds for the random number generator")
	cmd.PersistentFlags().String("metrics-file", "",
		"Write Prometheus metrics to the specified file on exit")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewElevHistCmd())
	cmd.AddCommand(NewGradAtPointsCmd())
	cmd.AddCommand(NewSlopeDirCmd())
	cmd.AddCommand(NewPeakValleyCmd())
	cmd.AddCommand(NewSkipBytesCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogger creates a structured logger on standard error based on the
// verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// loadConfig loads the configuration file, if any, and applies flag
// overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg := config.NewConfig()
	switch path := config.FindConfigFile(configPath); {
	case path != "":
		if cfg, err = config.LoadConfigFile(path); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	case configPath != "":
		return nil, fmt.Errorf("%s: %w", configPath, config.ErrConfigNotFound)
	}

	if cmd.Flags().Changed("seed") {
		seed, err := cmd.Flags().GetUintSlice("seed")
		if err != nil {
			return nil, err
		}
		if len(seed) != 2 {
			return nil, fmt.Errorf("--seed: expected two values, got %d", len(seed))
		}
		cfg.Seed = [2]uint64{uint64(seed[0]), uint64(seed[1])}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// A newAccumulatorFunc creates the accumulator of a pipeline.
type newAccumulatorFunc func(cfg *config.Config, rng *rand.Rand, logger *slog.Logger) demstats.Accumulator

// runPipeline returns a cobra RunE function that accumulates every input
// named in args and writes the result to the command's output.
func runPipeline(newAccumulator newAccumulatorFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		logger := setupLogger(verbose)

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rng := rand.New(rand.NewPCG(cfg.Seed[0], cfg.Seed[1]))

		specs := make([]demstats.InputSpec, 0, len(args))
		for _, arg := range args {
			spec := demstats.ParseInputSpec(arg)
			if spec.Heightmap, err = rootFSPath(spec.Heightmap); err != nil {
				return err
			}
			if spec.Mask != "" {
				if spec.Mask, err = rootFSPath(spec.Mask); err != nil {
					return err
				}
			}
			specs = append(specs, spec)
		}

		accumulator := newAccumulator(cfg, rng, logger)
		if err := demstats.Run(os.DirFS("/"), specs, accumulator, logger); err != nil {
			return err
		}

		w := bufio.NewWriter(cmd.OutOrStdout())
		if _, err := accumulator.WriteTo(w); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}

		return writeMetrics(cmd)
	}
}

// rootFSPath returns path as a path in os.DirFS("/").
func rootFSPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(filepath.ToSlash(absPath), "/"), nil
}

// writeMetrics writes the default Prometheus registry to the file named by
// the --metrics-file flag, if set.
func writeMetrics(cmd *cobra.Command) error {
	metricsFile, err := cmd.Flags().GetString("metrics-file")
	if err != nil || metricsFile == "" {
		return err
	}
	return prometheus.WriteToTextfile(metricsFile, prometheus.DefaultGatherer)
}
