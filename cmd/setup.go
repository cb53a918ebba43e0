package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"sonyremote/internal/bravia"
	"sonyremote/internal/settings"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Store the TV address and pre-shared key",
	Long: `Store the TV address and pre-shared key used by every other command.
Set the key on the TV under Network > Home Network > IP Control > Pre-Shared Key.

Example:
  sonyremote setup --host 192.168.1.100 --psk 0000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := settings.OpenStore(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("failed to open settings: %w", err)
		}
		defer store.Close()

		endpoint := bravia.Endpoint{Address: hostFlag, PSK: pskFlag}
		if err := store.SaveEndpoint(context.Background(), endpoint); err != nil {
			return err
		}

		log.Info().
			Str("host", endpoint.Address).
			Str("store", cfg.Store.Path).
			Msg("Device settings saved")

		cmd.Printf("Saved TV %s to %s\n", endpoint.Address, cfg.Store.Path)
		return nil
	},
}

var setupShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored TV settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := settings.OpenStore(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("failed to open settings: %w", err)
		}
		defer store.Close()

		endpoint, err := store.Endpoint(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Store:   %s\n", cfg.Store.Path)
		if endpoint.Address == "" {
			fmt.Fprintln(out, "Address: (not set)")
		} else {
			fmt.Fprintf(out, "Address: %s\n", endpoint.Address)
		}
		if endpoint.PSK == "" {
			fmt.Fprintln(out, "PSK:     (not set)")
		} else {
			fmt.Fprintf(out, "PSK:     %s\n", settings.MaskPSK(endpoint.PSK))
		}
		return nil
	},
}

func init() {
	setupCmd.AddCommand(setupShowCmd)
}
