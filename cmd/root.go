package cmd

import (
	"github.com/spf13/cobra"
	"sonyremote/internal/bravia"
	"sonyremote/internal/config"
	"sonyremote/internal/logger"
)

var (
	verbose    bool
	configPath string

	// device flags override the stored settings for one invocation
	hostFlag string
	pskFlag  string
	testFlag bool

	cfg = config.NewDefaultConfig()
	log = logger.New()
)

var rootCmd = &cobra.Command{
	Use:   "sonyremote",
	Short: "Sony Bravia remote control over the local network",
	Long: `sonyremote drives a Sony Bravia TV through its IRCC-IP interface.
It sends named remote buttons and channel numbers, stores the TV address and
pre-shared key, and can serve a small HTTP API or an interactive terminal remote.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadOrDefault(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logger.SetSilentMode(!verbose)
		logger.SetLevel(cfg.Log.Level)
		if verbose {
			logger.SetLevel(logger.LOG_DEBUG)
		}
		log = logger.New()
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default "+config.DefaultFileName+")")
	rootCmd.PersistentFlags().StringVarP(&hostFlag, "host", "H", "", "TV address, overrides the stored setting")
	rootCmd.PersistentFlags().StringVarP(&pskFlag, "psk", "k", "", "TV pre-shared key, overrides the stored setting")
	rootCmd.PersistentFlags().BoolVar(&testFlag, "test", false, "Enable test mode (simulate device responses without HTTP calls)")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cliCmd)
}

func flagEndpoint() bravia.Endpoint {
	return bravia.Endpoint{Address: hostFlag, PSK: pskFlag}
}
