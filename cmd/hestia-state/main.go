// Command hestia-state runs a home automation state daemon.
//
// The daemon keeps an in-memory store of entity states, dispatches
// change notifications to subscribed consumers and persists the store
// to a JSON snapshot. An interactive console allows inspecting and
// changing state variables, and watching them for changes.
//
// Usage:
//
//	hestia-state [flags]
//
// Flags:
//
//	-config string     Configuration file path (YAML)
//	-state string      Snapshot file path (default "hestia-state.json")
//	-listen string     Prometheus metrics listen address (default ":9464")
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-log-file string   Event log file path (.hlog, disabled if empty)
//	-advertise         Advertise the daemon via mDNS
//	-name string       mDNS instance name (default hostname based)
//	-interactive       Run the interactive console (default true)
//
// Examples:
//
//	# Start with defaults and the interactive console
//	hestia-state
//
//	# Start with a config file, event log and mDNS advertising
//	hestia-state -config /etc/hestia/state.yaml -log-file state.hlog -advertise
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hestia-automation/hestia-go/cmd/hestia-state/interactive"
	"github.com/hestia-automation/hestia-go/pkg/config"
	"github.com/hestia-automation/hestia-go/pkg/discovery"
	"github.com/hestia-automation/hestia-go/pkg/log"
	"github.com/hestia-automation/hestia-go/pkg/metrics"
	"github.com/hestia-automation/hestia-go/pkg/persistence"
	"github.com/hestia-automation/hestia-go/pkg/state"
	"github.com/hestia-automation/hestia-go/pkg/version"
)

var flags struct {
	ConfigFile  string
	StatePath   string
	Listen      string
	LogLevel    string
	LogFile     string
	Advertise   bool
	Name        string
	Interactive bool
}

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&flags.StatePath, "state", "", "Snapshot file path")
	flag.StringVar(&flags.Listen, "listen", "", "Prometheus metrics listen address")
	flag.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&flags.LogFile, "log-file", "", "Event log file path (.hlog)")
	flag.BoolVar(&flags.Advertise, "advertise", false, "Advertise the daemon via mDNS")
	flag.StringVar(&flags.Name, "name", "", "mDNS instance name")
	flag.BoolVar(&flags.Interactive, "interactive", true, "Run the interactive console")
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	slogger := setupLogging(cfg.Log.Level)

	slogger.Info("hestia-state starting",
		slog.String("version", version.Current),
		slog.String("state_path", cfg.StatePath))

	// Event logger: structured slog output, plus a binary event log
	// file when configured.
	eventLogger, fileLogger, err := setupEventLogger(cfg, slogger)
	if err != nil {
		slogger.Error("failed to open event log", slog.Any("error", err))
		os.Exit(1)
	}
	if fileLogger != nil {
		defer fileLogger.Close()
	}

	// Metrics
	m := metrics.New()
	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.ListenAddress, slogger)
	}

	// Store and snapshot persistence
	store := state.NewMemoryStore()
	snapshots := persistence.NewSnapshotStore(cfg.StatePath)
	if err := restoreSnapshot(store, snapshots); err != nil {
		slogger.Error("failed to load snapshot", slog.Any("error", err))
		os.Exit(1)
	}
	slogger.Info("store ready", slog.Int("entities", len(store.EntityIDs())))

	// Dispatcher wired to store changes
	dispatcher := state.NewDispatcher()
	dispatcher.SetLogger(eventLogger)
	dispatcher.SetMetrics(m)
	store.Subscribe(dispatcher)

	// Accessor surface
	accessor := state.NewAccessor(store)
	accessor.SetLogger(eventLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// mDNS advertising
	var advertiser discovery.Advertiser
	if cfg.Discovery.Enabled {
		advertiser, err = startAdvertising(ctx, cfg, dispatcher.InstanceID(), store)
		if err != nil {
			slogger.Warn("mDNS advertising failed", slog.Any("error", err))
		} else {
			slogger.Info("advertising via mDNS",
				slog.String("instance", cfg.Discovery.InstanceName))
		}
	}

	// Periodic snapshot saves
	if cfg.SaveInterval > 0 {
		go runSnapshotLoop(ctx, store, snapshots, cfg.SaveInterval, slogger)
	}

	// Interactive console
	if flags.Interactive {
		console, err := interactive.New(accessor, dispatcher, store, cfg.QueueBuffer)
		if err != nil {
			slogger.Error("failed to start console", slog.Any("error", err))
			os.Exit(1)
		}
		go console.Run(ctx, cancel)
	}

	// Wait for shutdown signal or console exit
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		slogger.Info("received signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
	}

	slogger.Info("shutting down")

	if advertiser != nil {
		_ = advertiser.Stop()
	}

	// Final snapshot
	if err := saveSnapshot(store, snapshots); err != nil {
		slogger.Error("failed to save snapshot", slog.Any("error", err))
	}
}

// loadConfig builds the effective configuration from the config file
// and command line flags. Flags override file settings.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if flags.ConfigFile != "" {
		loaded, err := config.Load(flags.ConfigFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if flags.StatePath != "" {
		cfg.StatePath = flags.StatePath
	}
	if flags.Listen != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.ListenAddress = flags.Listen
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFile != "" {
		cfg.Log.File = flags.LogFile
	}
	if flags.Advertise {
		cfg.Discovery.Enabled = true
	}
	if flags.Name != "" {
		cfg.Discovery.InstanceName = flags.Name
	}
	if cfg.Discovery.InstanceName == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "hestia"
		}
		cfg.Discovery.InstanceName = "hestia-state-" + host
	}

	return cfg, cfg.Validate()
}

func setupLogging(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// setupEventLogger builds the event logger chain. The slog adapter is
// always active; a file logger is added when a log file is configured.
func setupEventLogger(cfg config.Config, slogger *slog.Logger) (log.Logger, *log.FileLogger, error) {
	adapter := log.NewSlogAdapter(slogger)
	if cfg.Log.File == "" {
		return adapter, nil, nil
	}

	fileLogger, err := log.NewFileLogger(cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	return log.NewMultiLogger(fileLogger, adapter), fileLogger, nil
}

func serveMetrics(addr string, slogger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	slogger.Info("metrics endpoint listening", slog.String("address", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		slogger.Error("metrics endpoint failed", slog.Any("error", err))
	}
}

// restoreSnapshot loads the snapshot file into the store. A missing
// file means an empty store.
func restoreSnapshot(store *state.MemoryStore, snapshots *persistence.SnapshotStore) error {
	snap, err := snapshots.Load()
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}

	states := make(map[string]state.EntityState, len(snap.Entities))
	for entityID, rec := range snap.Entities {
		states[entityID] = state.EntityState{
			Value:       rec.Value,
			Attributes:  rec.Attributes,
			LastChanged: rec.LastChanged,
		}
	}
	store.Restore(states)
	return nil
}

// saveSnapshot writes the store contents to the snapshot file.
func saveSnapshot(store *state.MemoryStore, snapshots *persistence.SnapshotStore) error {
	states := store.States()
	entities := make(map[string]persistence.EntityRecord, len(states))
	for entityID, st := range states {
		entities[entityID] = persistence.EntityRecord{
			Value:       st.Value,
			Attributes:  st.Attributes,
			LastChanged: st.LastChanged,
		}
	}

	return snapshots.Save(&persistence.Snapshot{
		SavedAt:  time.Now(),
		Entities: entities,
	})
}

func runSnapshotLoop(ctx context.Context, store *state.MemoryStore, snapshots *persistence.SnapshotStore, interval time.Duration, slogger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := saveSnapshot(store, snapshots); err != nil {
				slogger.Error("periodic snapshot failed", slog.Any("error", err))
			}
		}
	}
}

func startAdvertising(ctx context.Context, cfg config.Config, instanceID string, store *state.MemoryStore) (discovery.Advertiser, error) {
	advertiser, err := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
	if err != nil {
		return nil, err
	}

	info := &discovery.ServiceInfo{
		InstanceName: cfg.Discovery.InstanceName,
		InstanceID:   instanceID,
		Version:      version.Current,
		EntityCount:  len(store.EntityIDs()),
		Port:         uint16(cfg.Discovery.Port),
	}
	if err := advertiser.Advertise(ctx, info); err != nil {
		return nil, err
	}
	return advertiser, nil
}
