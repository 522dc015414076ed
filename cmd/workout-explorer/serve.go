package main

import (
	"github.com/spf13/cobra"

	"github.com/justestif/go-workout-music-explorer/internal/web"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the explorer HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		d, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer d.close()

		// Warm the default dataset so the first visitor does not wait.
		if _, err := d.explorer.Load(cmd.Context(), cfg.Explore.DefaultDataset); err != nil {
			logVerbose("Preloading %q failed: %v", cfg.Explore.DefaultDataset, err)
		}

		srv := web.NewServer(web.ServerConfig{
			Addr:           cfg.Addr(),
			Explorer:       d.explorer,
			Metrics:        d.metrics,
			DefaultDataset: cfg.Explore.DefaultDataset,
			ResultLimit:    cfg.Explore.ResultLimit,
		})
		return srv.Run()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
