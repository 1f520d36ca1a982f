// Package main - Entry point for the mandashop order API server
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mandashop/api"
	"mandashop/internal/app"
	"mandashop/internal/config"
	"mandashop/internal/logging"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Config file (JSON or YAML)")
	addr := flag.String("addr", "", "Server address (overrides config)")
	envFile := flag.String("env-file", ".env", "Environment file loaded outside production")
	flag.Parse()

	// .env values override the process environment in development only
	envLoaded := false
	if os.Getenv("ENV") != "production" {
		envLoaded = godotenv.Overload(*envFile) == nil
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()
	logger := logging.Logger

	if envLoaded {
		logger.Info("loaded environment file", zap.String("path", *envFile))
	}

	components, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}

	opts := []api.Option{
		api.WithLogger(logger),
		api.WithAuditLogger(api.NewZapAuditLogger(logger)),
	}
	if components.Notifier != nil {
		opts = append(opts, api.WithNotifier(components.Notifier))
	}
	server := api.NewServer(version, components.Resolver, components.Composer, opts...)

	logger.Info("mandashop server starting",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr),
		zap.Bool("notifications", components.Notifier != nil),
		zap.Bool("species_checks", components.Species != nil))

	if err := server.ListenAndServe(cfg.Server.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
