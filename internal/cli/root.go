// Package cli implements the fitsync command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitsync/config"
)

var (
	// Global flags.
	cfgFile   string
	backupDir string

	// Shared state set during PersistentPreRunE.
	cfg config.Config
)

// rootCmd is the base command for fitsync.
var rootCmd = &cobra.Command{
	Use:   "fitsync",
	Short: "Clean trainer activity files and sync them to Garmin Connect",
	Long: `Fitsync picks up the newest activity file written by the MyWhoosh trainer,
strips the temperature readings, fills in missing session averages from the
per-record samples, backs the cleaned file up with a timestamp suffix, and
uploads it to Garmin Connect.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if backupDir != "" {
			cfg.BackupDir = backupDir
		}

		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&backupDir, "backup-dir", "", "backup directory (overrides config)")
}
