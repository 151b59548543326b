// Command fedstub serves an in-memory (or SQLite backed) subset of the
// identity platform admin API for local work with fedctl.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marmos91/fedctl/internal/adminstub"
	"github.com/marmos91/fedctl/internal/adminstub/store"
	"github.com/marmos91/fedctl/internal/logger"
	"github.com/marmos91/fedctl/internal/telemetry"
	"github.com/marmos91/fedctl/pkg/config"
	"github.com/marmos91/fedctl/pkg/metrics"
)

// Build-time variables injected via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configFile string
	port       int
	dbPath     string
	realms     []string
)

var rootCmd = &cobra.Command{
	Use:   "fedstub",
	Short: "Stub OpenID Federation admin API",
	Long: `fedstub serves the realm, trust anchor and identity provider endpoints
of the admin API so fedctl can be used without a full identity platform.

Examples:
  # Serve the master realm in memory on :8080
  fedstub

  # Persist to SQLite and seed two realms
  fedstub --db ./fedstub.db --realm master --realm demo

  # Enable debug logging
  FEDCTL_LOGGING_LEVEL=DEBUG fedstub --port 9090`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to config file (default: $XDG_CONFIG_HOME/fedctl/config.yaml)")
	rootCmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides stub.port)")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path, or :memory: (overrides stub.database.path)")
	rootCmd.Flags().StringSliceVar(&realms, "realm", nil, "Realms created on startup (overrides stub.realms)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Stub.Port = port
	}
	if cmd.Flags().Changed("db") {
		cfg.Stub.Database.Path = dbPath
	}
	if cmd.Flags().Changed("realm") {
		cfg.Stub.Realms = realms
	}

	if err := logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: cfg.Logging.Output}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx := cmd.Context()

	tcfg := telemetry.DefaultConfig()
	tcfg.Enabled = cfg.Telemetry.Enabled
	tcfg.ServiceName = "fedstub"
	tcfg.ServiceVersion = version
	tcfg.Endpoint = cfg.Telemetry.Endpoint
	tcfg.Insecure = cfg.Telemetry.Insecure
	tcfg.SampleRate = cfg.Telemetry.SampleRate
	telemetryShutdown, err := telemetry.Init(ctx, tcfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown error", logger.Err(err))
		}
	}()

	profilingShutdown, err := telemetry.InitProfiling(telemetry.ProfilingConfig{
		Enabled:        cfg.Telemetry.Profiling.Enabled,
		ServiceName:    "fedstub",
		ServiceVersion: version,
		Endpoint:       cfg.Telemetry.Profiling.Endpoint,
		ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("profiling shutdown error", logger.Err(err))
		}
	}()

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		logger.Info("Metrics enabled", logger.Path("/metrics"))
	}
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	}

	st, err := store.New(cfg.Stub.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open stub store: %w", err)
	}
	defer func() { _ = st.Close() }()

	srv, err := adminstub.NewServer(ctx, cfg.Stub, st, version)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "fedstub %s serving realms %v on port %d\n", version, cfg.Stub.Realms, cfg.Stub.Port)
	logger.Info("fedstub starting", "port", cfg.Stub.Port, "database", cfg.Stub.Database.Path, "realms", cfg.Stub.Realms)
	return srv.Start(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
