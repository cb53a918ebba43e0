package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"sonyremote/internal/server"
)

var tokenClient string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the HTTP API",
	Long: `Issue a JWT signed with server.jwt_secret for calling the HTTP API.
The token expires after server.token_expiry_hours.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Server.JWTSecret == "" {
			return fmt.Errorf("server.jwt_secret is not set; the API runs without authentication")
		}

		jwtService := server.NewJWTService(cfg.Server.JWTSecret, cfg.Server.JWTIssuer, cfg.Server.TokenExpiryHours)
		token, err := jwtService.GenerateToken(tokenClient)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenClient, "client", "cli", "Client name recorded in the token")
}
