package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cheapflyer/internal/config"
	"cheapflyer/internal/daemon"
)

const shutdownTimeout = 10 * time.Second

func initLogger(cfg *config.Config) {
	// Levels are validated by config.Load; anything else stays at info
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler).With("service", "cheapflyer"))
}

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	envFile := flag.String("env-file", ".env", "Path to a dotenv file, ignored when missing")
	flag.Parse()

	// Logger isn't initialized yet, report startup errors on stderr
	basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		basicLogger.Error("Failed to load env file", "path", *envFile, "error", err)
		os.Exit(1)
	}

	if *configPath != "" {
		os.Setenv("CHEAPFLYER_CONFIG_PATH", *configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		basicLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	d, err := daemon.New(cfg)
	if err != nil {
		slog.Error("Failed to initialize daemon", "error", err)
		os.Exit(1)
	}

	if err := d.Start(); err != nil {
		slog.Error("Failed to start daemon", "error", err)
		d.Stop(context.Background())
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	slog.Info("Received signal, shutting down...", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := d.Stop(ctx); err != nil {
		slog.Error("Shutdown finished with errors", "error", err)
		os.Exit(1)
	}

	slog.Info("Shutdown complete")
}
