package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	garmentd "github.com/seamly/garmentd"
	"github.com/seamly/garmentd/internal/config"
	"github.com/seamly/garmentd/internal/logging"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pattern generation HTTP server",
	Long:  `Starts the garmentd generation service, exposing a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))
		svc, err := garmentd.New(cfg.OutputRoot,
			garmentd.WithLogger(logger),
			garmentd.WithMaxConcurrent(cfg.MaxConcurrent),
			garmentd.WithCleanupPolicy(cfg.CleanupPolicy),
			garmentd.WithMeshCells(cfg.MeshCells),
		)
		if err != nil {
			fmt.Printf("Error initializing garmentd: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: svc.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("server starting", "addr", srv.Addr, "output_root", cfg.OutputRoot)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutdown started", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address, overriding the config file")
}
