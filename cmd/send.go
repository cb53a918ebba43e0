package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"sonyremote/internal/sequencer"
	"sonyremote/internal/status"
)

var sendCmd = &cobra.Command{
	Use:   "send BUTTON...",
	Short: "Send remote buttons and channel numbers",
	Long: `Send one or more remote buttons to the TV, in order, with a short pause
between them. Numeric arguments such as 38 or 38.1 are sent digit by digit.

Examples:
  sonyremote send Home
  sonyremote send 38.1 Enter
  sonyremote send "Netflix Confirm"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens := sequencer.ParseButton(strings.Join(args, " "))

		printer := status.ReporterFunc(func(e status.Event) {
			// failures come back as the command error
			if e.Kind == status.KindSucceeded || e.Kind == status.KindCanceled ||
				(verbose && e.Kind == status.KindProgress) {
				fmt.Fprintln(cmd.OutOrStdout(), e.Message)
			}
		})

		r, err := openRemote(printer)
		if err != nil {
			return err
		}
		defer r.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		report, err := r.sequencer.Run(ctx, tokens)
		if err != nil {
			log.Debug().Err(err).Int("sent", report.Sent).Msg("Batch did not complete")
			return err
		}
		return nil
	},
}
