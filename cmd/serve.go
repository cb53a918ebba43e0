package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"sonyremote/internal/logger"
	"sonyremote/internal/metrics"
	"sonyremote/internal/server"
	"sonyremote/internal/status"
)

var listenFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve a REST API for sending buttons, reading batch status and
managing the TV settings, plus Prometheus metrics on /metrics.
When server.jwt_secret is set every /api/v1 route except /health needs a
bearer token from "sonyremote token".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// daemons always log
		logger.SetSilentMode(false)
		log = logger.New()

		address := cfg.Server.Listen
		if listenFlag != "" {
			address = listenFlag
		}

		board := status.NewBoard()
		defer board.Close()
		history := status.NewHistory(cfg.Status.HistorySize)

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		remoteMetrics := metrics.New(registry)

		r, err := openRemote(board, history, remoteMetrics)
		if err != nil {
			return err
		}
		defer r.Close()

		var jwtService *server.JWTService
		if cfg.Server.JWTSecret != "" {
			jwtService = server.NewJWTService(cfg.Server.JWTSecret, cfg.Server.JWTIssuer, cfg.Server.TokenExpiryHours)
		}

		apiServer := server.NewAPIServer(server.Options{
			Sequencer: r.sequencer,
			Settings:  r.store,
			Info:      r.client,
			Board:     board,
			History:   history,
			Gatherer:  registry,
			JWT:       jwtService,
		})

		log.Info().
			Str("address", address).
			Str("store", cfg.Store.Path).
			Str("batch_policy", string(cfg.Policy())).
			Bool("test", testFlag).
			Msg("Starting sonyremote API")

		errChan := make(chan error, 1)
		go func() {
			errChan <- apiServer.Start(address)
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
		case err := <-errChan:
			if err != nil {
				log.Error().Err(err).Msg("API server error")
				return fmt.Errorf("API server error: %w", err)
			}
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiServer.Stop(ctx); err != nil {
			log.Error().Err(err).Msg("Error stopping API server")
		}

		log.Info().Msg("API stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&listenFlag, "listen", "l", "", "Listen address, overrides server.listen")
}
