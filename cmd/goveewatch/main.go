// Govee Watcher - BLE Sensor Status Daemon
//
// This is the main entry point for the govee-watcher application. It
// consumes Bluetooth advertisement frames published by an external scanner,
// decodes the Govee vendor payloads, and serves the latest reading per
// device over a line-oriented TCP protocol.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nerrad567/govee-watcher/internal/device"
	"github.com/nerrad567/govee-watcher/internal/infrastructure/config"
	"github.com/nerrad567/govee-watcher/internal/infrastructure/logging"
	"github.com/nerrad567/govee-watcher/internal/intake"
	"github.com/nerrad567/govee-watcher/internal/statusd"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// metricsShutdownTimeout bounds the metrics server drain on shutdown.
const metricsShutdownTimeout = 5 * time.Second

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting govee-watcher",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Build the device registry from configuration
	registry, err := device.NewRegistry(cfg.DeviceMap())
	if err != nil {
		return fmt.Errorf("building device registry: %w", err)
	}
	log.Info("device registry initialised", "devices", registry.Len())

	// Latest-reading store shared by the intake pipeline and status server
	store := device.NewStore()

	// Connect the advertisement source
	source, err := intake.NewSource(cfg.Source, log)
	if err != nil {
		return fmt.Errorf("creating advertisement source: %w", err)
	}
	if startErr := source.Start(ctx); startErr != nil {
		return fmt.Errorf("starting advertisement source: %w", startErr)
	}
	defer func() {
		log.Info("closing advertisement source")
		if closeErr := source.Close(); closeErr != nil {
			log.Error("error closing advertisement source", "error", closeErr)
		}
	}()
	log.Info("advertisement source started", "backend", cfg.Source.Backend)

	// Run the intake pipeline
	in := intake.New(registry, store)
	in.SetLogger(log)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		in.Run(ctx, source.Events())
	}()

	// Start the status server
	srv := statusd.New(store, statusd.Options{
		Addr:         cfg.StatusAddr(),
		SingleDevice: cfg.Status.SingleDevice,
	})
	srv.SetLogger(log)
	if startErr := srv.Start(); startErr != nil {
		return fmt.Errorf("starting status server: %w", startErr)
	}
	defer func() {
		log.Info("stopping status server")
		if stopErr := srv.Stop(); stopErr != nil {
			log.Error("error stopping status server", "error", stopErr)
		}
	}()

	// Expose Prometheus metrics (optional)
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:              cfg.MetricsAddr(),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if serveErr := metricsSrv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				log.Error("metrics server failed", "error", serveErr)
			}
		}()
		defer func() {
			log.Info("stopping metrics server")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer shutdownCancel()
			if shutdownErr := metricsSrv.Shutdown(shutdownCtx); shutdownErr != nil {
				log.Error("error stopping metrics server", "error", shutdownErr)
			}
		}()
		log.Info("metrics server listening", "addr", cfg.MetricsAddr())
	} else {
		log.Info("metrics disabled")
	}

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Wait for the intake pipeline to drain before the deferred Close()
	// calls tear down the source and servers.
	wg.Wait()

	log.Info("govee-watcher stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses GOVEEWATCH_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("GOVEEWATCH_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
