package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"sonyremote/cmd/cli"
	"sonyremote/internal/logger"
)

var cliCmd = &cobra.Command{
	Use:   "cli",
	Short: "Start the interactive terminal remote",
	Long: `Launch the interactive terminal remote. The first screen stores the TV
address and pre-shared key when none are set; the remote screen sends
buttons and channel numbers and shows the outcome of each press.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// log lines would tear the alternate screen
		logger.SetSilentMode(true)
		log = logger.New()

		relay := &cli.Relay{}
		r, err := openRemote(relay)
		if err != nil {
			return err
		}
		defer r.Close()

		endpoint, err := r.endpoint(context.Background())
		if err != nil {
			return err
		}

		return cli.StartTUI(cli.Options{
			Runner:   r.sequencer,
			Store:    r.store,
			Endpoint: endpoint,
			Relay:    relay,
			Debug:    verbose,
			Test:     testFlag,
		})
	},
}
