package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitsync/garmin"
)

const (
	envUsername = "GARMIN_USERNAME"
	envPassword = "GARMIN_PASSWORD"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate and persist a session token",
	Long: `Auth logs in to the remote activity service and stores the session token
at the configured token path. Credentials are taken from the GARMIN_USERNAME
and GARMIN_PASSWORD environment variables when set, otherwise prompted for.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, password, err := credentials(cmd)
		if err != nil {
			return err
		}

		client := garmin.NewClient()
		if err := client.Login(cmd.Context(), username, password); err != nil {
			return err
		}

		if err := garmin.SaveToken(cfg.TokenPath, client.Token()); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Session token saved to", cfg.TokenPath)

		return nil
	},
}

func credentials(cmd *cobra.Command) (string, string, error) {
	username := os.Getenv(envUsername)
	password := os.Getenv(envPassword)
	if username != "" && password != "" {
		return username, password, nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	if username == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	if password == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	return username, password, nil
}

func init() {
	rootCmd.AddCommand(authCmd)
}
