package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arloliu/fitsync"
	"github.com/arloliu/fitsync/backup"
	"github.com/arloliu/fitsync/fit"
)

var (
	cleanOutput   string
	cleanChecksum bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Clean a single activity file without uploading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]

		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", src, err)
		}

		var opts []fit.DecoderOption
		if cleanChecksum {
			opts = append(opts, fit.WithChecksumValidation())
		}

		cleaned, err := fitsync.Clean(data, opts...)
		if err != nil {
			return fmt.Errorf("failed to clean %s: %w", src, err)
		}

		dst := cleanOutput
		if dst == "" {
			dst = filepath.Join(filepath.Dir(src), backup.TimestampName(src, time.Now()))
		}

		if err := os.WriteFile(dst, cleaned, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", dst, err)
		}

		log.Info().Str("source", src).Str("output", dst).Msg("cleaned activity file")

		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "output path (default: timestamped name next to the input)")
	cleanCmd.Flags().BoolVar(&cleanChecksum, "verify-checksum", false, "verify the input file checksum before cleaning")
	rootCmd.AddCommand(cleanCmd)
}
