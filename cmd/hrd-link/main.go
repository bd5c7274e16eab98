package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/radioforge/hrd-link/pkg/config"
	"github.com/radioforge/hrd-link/pkg/database"
	"github.com/radioforge/hrd-link/pkg/logger"
	"github.com/radioforge/hrd-link/pkg/metrics"
	"github.com/radioforge/hrd-link/pkg/protocol"
	"github.com/radioforge/hrd-link/pkg/radio"
	"github.com/radioforge/hrd-link/pkg/transport"
	"github.com/radioforge/hrd-link/pkg/web"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Parse command line flags
	configFile := flag.String("config", "config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	validate := flag.Bool("validate", false, "Validate configuration and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("HRD-Link %s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	// Initialize logger (basic console logger until config is loaded)
	log := logger.New(logger.Config{
		Level:  "info",
		Format: "text",
	})

	log.Info("Starting HRD-Link",
		logger.String("version", version),
		logger.String("build_time", buildTime))

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Error("Failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	if *validate {
		log.Info("Configuration is valid")
		os.Exit(0)
	}

	// Reconfigure logging per config
	log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	log.Info("Configuration loaded successfully",
		logger.String("config_file", *configFile))

	web.SetVersionInfo(version, buildTime)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	metricsCollector := metrics.NewCollector()

	// Start Prometheus metrics server if enabled
	if cfg.Metrics.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			metricsServer := metrics.NewPrometheusServer(
				metrics.PrometheusConfig{
					Enabled: cfg.Metrics.Enabled,
					Port:    cfg.Metrics.Port,
					Path:    cfg.Metrics.Path,
				},
				metricsCollector,
				log.WithComponent("metrics"),
			)
			if err := metricsServer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("Prometheus metrics server error", logger.Error(err))
			}
		}()
		log.Info("Prometheus metrics server started",
			logger.Int("port", cfg.Metrics.Port),
			logger.String("path", cfg.Metrics.Path))
	}

	// Open the snapshot store if enabled
	var (
		snapshots *database.SnapshotRepository
		events    *database.StatusEventRepository
	)
	if cfg.Database.Enabled {
		db, err := database.NewDB(database.Config{Path: cfg.Database.Path}, log.WithComponent("database"))
		if err != nil {
			log.Error("Failed to open database", logger.Error(err))
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		snapshots = database.NewSnapshotRepository(db.GetDB())
		events = database.NewStatusEventRepository(db.GetDB())
	}

	// Connect to the device bridge
	tr, err := transport.DialTCP(ctx, cfg.Device.Address,
		time.Duration(cfg.Device.ConnectTimeout)*time.Second, log)
	if err != nil {
		log.Error("Failed to connect to device", logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = tr.Close() }()

	controller := radio.NewController(radio.Config{
		SyncOnConnect:    cfg.Device.SyncOnConnect,
		StatusInterval:   time.Duration(cfg.Device.StatusInterval) * time.Second,
		HandshakeTimeout: time.Duration(cfg.Device.HandshakeTimeout) * time.Second,
	}, tr, metricsCollector, log)

	// Start web server if enabled, wired to the controller and store
	var webServer *web.Server
	if cfg.Web.Enabled {
		webServer = web.NewServer(cfg.Web, controller, snapshots, events, log.WithComponent("web"))
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := webServer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("Web server error", logger.Error(err))
			}
		}()
		log.Info("Web server started",
			logger.String("host", cfg.Web.Host),
			logger.Int("port", cfg.Web.Port))
	}

	// Fan decoded packets out to the store and the live monitor
	controller.OnState(func(state protocol.RadioState) {
		if snapshots != nil {
			if err := snapshots.Create(&database.StateSnapshot{
				BandCode:       state.BandCode,
				BandName:       state.BandName,
				FrequencyValue: state.FrequencyValue,
				FrequencyHex:   state.FrequencyHex,
				UnitIsMHz:      state.UnitIsMHz,
				SignalStrength: state.SignalStrength,
				SignalBars:     state.SignalBars,
				RawHex:         state.RawHex,
				ReceivedAt:     time.Now(),
			}); err != nil {
				log.Warn("Failed to store snapshot", logger.Error(err))
			}
		}
		if webServer != nil {
			webServer.GetHub().BroadcastState(state)
		}
	})
	controller.OnStatus(func(msg protocol.StatusMessage) {
		if events != nil {
			if err := events.Create(&database.StatusEvent{
				TypeCode:   msg.Type,
				Label:      msg.Label,
				Value:      msg.Value,
				RawHex:     fmt.Sprintf("%x", msg.Raw),
				ReceivedAt: time.Now(),
			}); err != nil {
				log.Warn("Failed to store status event", logger.Error(err))
			}
		}
		if webServer != nil {
			webServer.GetHub().BroadcastStatus(msg)
		}
	})
	controller.OnUnknown(func(packet []byte) {
		log.Debug("Unrecognized packet passed through", logger.Hex("data", packet))
	})

	// Run the radio session
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := controller.Start(ctx); err != nil && err != context.Canceled {
			log.Error("Radio session error", logger.Error(err))
		}
	}()

	log.Info("HRD-Link initialized",
		logger.String("device", cfg.Device.Address))

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal",
		logger.String("signal", sig.String()))

	cancel()
	_ = tr.Close()
	wg.Wait()

	log.Info("HRD-Link stopped")
}
