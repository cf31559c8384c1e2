package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arloliu/fitsync"
	"github.com/arloliu/fitsync/backup"
	"github.com/arloliu/fitsync/errs"
	"github.com/arloliu/fitsync/garmin"
)

var (
	syncForce    bool
	syncNoUpload bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Clean the newest activity file, back it up, and upload it",
	RunE: func(cmd *cobra.Command, args []string) error {
		activityDir := cfg.ActivityDir
		if activityDir == "" {
			var err error
			activityDir, err = backup.LocateActivityDir()
			if err != nil {
				return err
			}
		}

		src, err := backup.MostRecent(activityDir)
		if err != nil {
			return err
		}
		log.Info().Str("source", src).Msg("found activity file")

		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", src, err)
		}

		if cfg.BackupDir == "" {
			return fmt.Errorf("%w: set backup_dir in the config or pass --backup-dir", errs.ErrInvalidBackupDir)
		}

		state, err := backup.LoadState(cfg.BackupDir)
		if err != nil {
			return err
		}
		if !syncForce && state.AlreadySynced(data) {
			log.Info().Str("source", src).Msg("already synced, nothing to do")
			return nil
		}

		cleaned, err := fitsync.Clean(data)
		if err != nil {
			return fmt.Errorf("failed to clean %s: %w", src, err)
		}

		writer, err := backup.NewWriter(cfg.BackupDir, cfg.ArchiveCodec())
		if err != nil {
			return err
		}

		now := time.Now()
		saved, err := writer.SaveCleaned(src, cleaned, now)
		if err != nil {
			return err
		}
		if _, err := writer.ArchiveOriginal(src, data, now); err != nil {
			return err
		}

		if !syncNoUpload {
			if err := uploadCleaned(cmd, saved, cleaned); err != nil {
				return err
			}
		}

		return backup.SaveState(cfg.BackupDir, backup.MarkSynced(src, data, now))
	},
}

// uploadCleaned resumes the persisted session and uploads. A duplicate
// activity on the remote side is reported but does not fail the sync; the
// backup already happened.
func uploadCleaned(cmd *cobra.Command, path string, data []byte) error {
	client := garmin.NewClient()
	if err := client.Resume(cfg.TokenPath); err != nil {
		return fmt.Errorf("%w (run `fitsync auth` first)", err)
	}

	err := client.Upload(cmd.Context(), filepath.Base(path), data)
	if errors.Is(err, errs.ErrDuplicateActivity) {
		log.Warn().Str("file", path).Msg("duplicate activity already on remote service")
		return nil
	}

	return err
}

func init() {
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "sync even if the source file was already synced")
	syncCmd.Flags().BoolVar(&syncNoUpload, "no-upload", false, "clean and back up without uploading")
	rootCmd.AddCommand(syncCmd)
}
