package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"mvcs-loader/core/config"
	"mvcs-loader/core/loader"
	"mvcs-loader/core/logger"
	"mvcs-loader/core/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd loads bundles into one host and serves its state.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load bundles and serve the host status API",
	Long:  `Loads every --bundle into a single host (configure phase first, then inject) and serves the resulting registries over HTTP until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		bundles, _ := cmd.Flags().GetStringSlice("bundle")

		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Prepare Host and Delegates
		rt, err := newRuntime(cmd.Context(), cfg, logg)
		if err != nil {
			logg.Fatal("Failed to prepare host", zap.Error(err))
		}

		// 4. Register Bundles
		mgr := loader.NewManager(logg)
		for _, dir := range bundles {
			l, err := rt.loader(dir)
			if err != nil {
				logg.Fatal("Invalid bundle directory", zap.String("dir", dir), zap.Error(err))
			}
			mgr.Register(loader.Bundle{Loader: l})
		}

		// 5. Load Bundles; failures are reported but the host still serves
		if err := mgr.LoadAll(cmd.Context()); err != nil {
			logg.Warn("Some bundles failed to load", zap.Error(err))
		}

		app := server.New(cfg.Server, rt.host, mgr.Names(), logg)

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringSlice("bundle", []string{"."}, "Bundle base directories, loaded in order")
}
