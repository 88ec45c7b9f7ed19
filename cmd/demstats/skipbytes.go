package main

import (
	"github.com/spf13/cobra"

	"github.com/twpayne/go-demstats"
)

// NewSkipBytesCmd creates the skip-bytes command.
func NewSkipBytesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skip-bytes",
		Short: "Copy every stride'th byte of standard input to standard output",
		Long: `skip-bytes copies the bytes of standard input whose index plus offset is a
multiple of stride to standard output. It extracts a single channel, such as a
mask, from interleaved raw data.`,
		Args: cobra.NoArgs,
		RunE: runSkipBytesCmd,
	}

	cmd.Flags().Int("offset", 0, "Offset added to each byte index")
	cmd.Flags().Int("stride", 1, "Keep one byte in every stride bytes")

	return cmd
}

func runSkipBytesCmd(cmd *cobra.Command, _ []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	logger := setupLogger(verbose)

	offset, err := cmd.Flags().GetInt("offset")
	if err != nil {
		return err
	}
	stride, err := cmd.Flags().GetInt("stride")
	if err != nil {
		return err
	}

	read, written, err := demstats.SkipBytes(cmd.InOrStdin(), cmd.OutOrStdout(), offset, stride)
	if err != nil {
		return err
	}
	logger.Info("skip-bytes", "bytes_in", read, "bytes_out", written)
	return writeMetrics(cmd)
}
