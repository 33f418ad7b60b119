package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farxc/favorita_features/internal/env"
	"github.com/farxc/favorita_features/internal/forecast"
	"github.com/farxc/favorita_features/internal/forecast/files"
	"github.com/farxc/favorita_features/internal/logger"
)

type config struct {
	dataDir         string
	encoding        string
	logLevel        string
	monitorEnabled  bool
	monitorInterval time.Duration
}

func loadConfig() config {
	return config{
		dataDir:         files.ResolveDataDir(env.GetString("DATA_DIR", "")),
		encoding:        env.GetString("INPUT_ENCODING", "utf-8"),
		logLevel:        env.GetString("LOG_LEVEL", "info"),
		monitorEnabled:  env.GetBool("MONITOR_ENABLED", true),
		monitorInterval: time.Duration(env.GetInt("MONITOR_INTERVAL_MS", 400)) * time.Millisecond,
	}
}

func main() {
	const component = "Main"
	var appLogger = &logger.Logger{MinLevel: logger.LevelInfo}

	// Configure log output format
	log.SetFlags(0) // Remove default timestamp since we add our own

	if err := env.Load(".env"); err != nil {
		appLogger.Fatal(component, "Failed to load .env: error=%v", err)
		return
	}

	cfg := loadConfig()
	level, err := logger.ParseLevel(cfg.logLevel)
	if err != nil {
		appLogger.Warn(component, "Invalid log level, using info: value=%s", cfg.logLevel)
	}
	appLogger.SetLogLevel(level)

	monitorOn := cfg.monitorEnabled && cfg.monitorInterval > 0
	monitor := NewMonitor()
	if monitorOn {
		monitor.Start(cfg.monitorInterval, appLogger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startingTime := time.Now()
	appLogger.Info(component, "Application started: dataDir=%s encoding=%s logLevel=%s", cfg.dataDir, cfg.encoding, cfg.logLevel)

	runner := forecast.NewRunner(forecast.Config{
		DataDir:  cfg.dataDir,
		Encoding: cfg.encoding,
	}, appLogger)

	res, err := runner.Run(ctx)
	if err != nil {
		appLogger.Fatal(component, "Feature build failed: error=%v", err)
		return
	}

	if monitorOn {
		stats := monitor.Stop()
		appLogger.Info(component, "Resource usage: peakGoroutines=%d peakMemoryMB=%d", stats.PeakGoroutines, stats.PeakMemoryMB)
	}

	appLogger.Info(component, "Application completed successfully: output=%s rows=%d duration=%.2f seconds", res.OutputPath, res.Rows, time.Since(startingTime).Seconds())
}
