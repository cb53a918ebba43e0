package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"sonyremote/internal/bravia"
)

var listCodes bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the button names the TV understands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !listCodes {
			for _, name := range bravia.Commands() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range bravia.Commands() {
			code, _ := bravia.Lookup(name)
			fmt.Fprintf(w, "%s\t%s\n", name, code)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().BoolVar(&listCodes, "codes", false, "Show the IRCC code next to each name")
}
