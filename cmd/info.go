package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"sonyremote/internal/bravia"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the TV's remote controller description",
	Long: `Query the TV for getRemoteControllerInfo and print the answer.
The query needs only the TV address; the pre-shared key is not sent.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRemote()
		if err != nil {
			return err
		}
		defer r.Close()

		ctx := context.Background()
		endpoint, err := r.endpoint(ctx)
		if err != nil {
			return err
		}
		if endpoint.Address == "" {
			return bravia.ErrConfigurationMissing
		}

		log.Info().
			Str("host", endpoint.Address).
			Msg("Querying remote controller info")

		body, err := r.client.RemoteControllerInfo(ctx, endpoint.Address)
		if err != nil {
			log.Error().Err(err).Msg("Failed to query remote controller info")
			return err
		}

		var result interface{}
		if err := json.Unmarshal(body, &result); err == nil {
			prettyJSON, _ := json.MarshalIndent(result, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(prettyJSON))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
		}
		return nil
	},
}
