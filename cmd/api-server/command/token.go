package command

import (
	"errors"
	"fmt"

	"cinelibri/internal/config"
	"cinelibri/internal/microservices/http-api/middleware"

	"github.com/spf13/cobra"
)

var tokenUserID string

// tokenCmd mints a bearer token for local development against the configured secret.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed development bearer token for a user id",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenUserID == "" {
			return errors.New("--user is required")
		}
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		token, err := middleware.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry).Issue(tokenUserID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "user id to put in the token")
}
