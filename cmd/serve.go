package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohingrover/absuma/api"
	"github.com/rohingrover/absuma/internal/cache"
	"github.com/rohingrover/absuma/internal/database"
	"github.com/rohingrover/absuma/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := database.Connect(&cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	cacheClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.WithError(err).Warn("Failed to connect to Redis, continuing without caching")
		cacheClient = nil
	} else {
		defer cacheClient.Close()
	}

	nrApp, err := telemetry.InitNewRelic(cfg.NewRelic)
	if err != nil {
		log.WithError(err).Warn("Failed to initialize New Relic, continuing without telemetry")
	}

	server := api.NewServer(cfg, log, nrApp, db, cacheClient)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Error("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exited properly")
	return nil
}
