// Package cmdutil provides shared utilities for fedctl commands.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/marmos91/fedctl/internal/cli/credentials"
	"github.com/marmos91/fedctl/internal/cli/output"
	"github.com/marmos91/fedctl/internal/cli/prompt"
	"github.com/marmos91/fedctl/internal/logger"
	"github.com/marmos91/fedctl/internal/telemetry"
	"github.com/marmos91/fedctl/pkg/apiclient"
	"github.com/marmos91/fedctl/pkg/config"
	"github.com/marmos91/fedctl/pkg/metrics"
	metricsprom "github.com/marmos91/fedctl/pkg/metrics/prometheus"
)

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

// GlobalFlags holds the global flag values.
type GlobalFlags struct {
	ServerURL  string
	Realm      string
	Token      string
	Output     string
	ConfigFile string
	NoColor    bool
	Verbose    bool
}

var (
	loaded            *config.Config
	telemetryShutdown func(context.Context) error
)

// Setup loads the configuration and initialises logging, metrics and
// tracing. outputChanged reports whether -o was given explicitly.
func Setup(ctx context.Context, version string, outputChanged bool) error {
	cfg, err := config.Load(Flags.ConfigFile)
	if err != nil {
		return err
	}
	loaded = cfg

	logCfg := logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: cfg.Logging.Output}
	if Flags.Verbose {
		logCfg.Level = "DEBUG"
	}
	if err := logger.Init(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !outputChanged {
		Flags.Output = defaultOutput(cfg)
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	tcfg := telemetry.DefaultConfig()
	tcfg.Enabled = cfg.Telemetry.Enabled
	tcfg.ServiceVersion = version
	tcfg.Endpoint = cfg.Telemetry.Endpoint
	tcfg.Insecure = cfg.Telemetry.Insecure
	tcfg.SampleRate = cfg.Telemetry.SampleRate
	shutdown, err := telemetry.Init(ctx, tcfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	telemetryShutdown = shutdown
	return nil
}

// Teardown flushes telemetry. It is safe to call when Setup failed.
func Teardown(ctx context.Context) {
	if telemetryShutdown == nil {
		return
	}
	if err := telemetryShutdown(ctx); err != nil {
		logger.Debug("telemetry shutdown error", logger.Err(err))
	}
	telemetryShutdown = nil
}

// defaultOutput prefers the stored preference over the config file.
func defaultOutput(cfg *config.Config) string {
	if store, err := credentials.NewStore(); err == nil {
		if p := store.Preferences().DefaultOutput; p != "" {
			return p
		}
	}
	return cfg.Output
}

// Config returns the loaded configuration, or the defaults before Setup.
func Config() *config.Config {
	if loaded == nil {
		return config.GetDefaultConfig()
	}
	return loaded
}

// Connection is where commands send requests.
type Connection struct {
	// Context names the stored context in use, "" when none applies.
	Context   string
	ServerURL string
	Realm     string
	Token     string
}

// ResolveConnection merges, highest precedence first, the global flags,
// the current stored context and the configuration file.
func ResolveConnection(store *credentials.Store, now time.Time) (Connection, error) {
	cfg := Config()
	conn := Connection{ServerURL: cfg.ServerURL, Realm: cfg.Realm}

	if store != nil {
		name, stored, err := store.Current()
		switch {
		case err == nil:
			conn.Context = name
			conn.ServerURL = stored.ServerURL
			conn.Realm = stored.Realm
			conn.Token = stored.AccessToken
			if Flags.Token == "" && stored.AccessToken != "" && stored.TokenExpired(now) {
				return Connection{}, fmt.Errorf("token of context %q has expired. Run 'fedctl context set %s --token <token>'", name, name)
			}
		case errors.Is(err, credentials.ErrNoCurrentContext):
		default:
			return Connection{}, err
		}
	}

	if Flags.ServerURL != "" {
		conn.ServerURL = Flags.ServerURL
	}
	if Flags.Realm != "" {
		conn.Realm = Flags.Realm
	}
	if Flags.Token != "" {
		conn.Token = Flags.Token
	}
	if conn.Realm == "" {
		conn.Realm = config.DefaultRealm
	}

	if conn.ServerURL == "" {
		return Connection{}, fmt.Errorf("no server configured. Run 'fedctl context set <name> --server <url>' or pass --server")
	}
	return conn, nil
}

// GetClient returns an admin API client for the resolved connection.
func GetClient() (*apiclient.Client, error) {
	store, err := credentials.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}
	conn, err := ResolveConnection(store, time.Now())
	if err != nil {
		return nil, err
	}
	return NewClient(conn), nil
}

// NewClient builds the client for conn with the configured timeout and
// request metrics.
func NewClient(conn Connection) *apiclient.Client {
	client := apiclient.New(conn.ServerURL).
		WithRealm(conn.Realm).
		WithHTTPClient(&http.Client{Timeout: Config().Timeout}).
		WithMetrics(metricsprom.NewAPIClientMetrics())
	if conn.Token != "" {
		client = client.WithToken(conn.Token)
	}
	logger.Debug("admin client ready", "server", conn.ServerURL, logger.Realm(conn.Realm), "context", conn.Context)
	return client
}

// GetOutputFormat returns the output format string.
func GetOutputFormat() string {
	return Flags.Output
}

// GetOutputFormatParsed returns the parsed output format.
func GetOutputFormatParsed() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

// IsColorDisabled returns whether color output is disabled.
func IsColorDisabled() bool {
	return Flags.NoColor
}

// Printer returns a printer for w in the selected format. Notices go to
// errOut so stdout stays parseable.
func Printer(w, errOut io.Writer) *output.Printer {
	format, err := GetOutputFormatParsed()
	if err != nil {
		format = output.FormatTable
	}
	return output.NewPrinter(w, format, !IsColorDisabled()).WithErrWriter(errOut)
}

// PrintOutput prints data in the specified format (JSON, YAML, or table).
// For table format, it displays emptyMsg if data is empty, otherwise uses the tableRenderer.
func PrintOutput(w io.Writer, data any, isEmpty bool, emptyMsg string, tableRenderer output.TableRenderer) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		if isEmpty {
			_, _ = fmt.Fprintln(w, emptyMsg)
			return nil
		}
		return output.PrintTable(w, tableRenderer)
	}
}

// PrintResource prints a resource in the specified format.
// For table format, it uses the provided tableRenderer. For JSON/YAML, it outputs the resource.
func PrintResource(w io.Writer, data any, tableRenderer output.TableRenderer) error {
	return PrintOutput(w, data, false, "", tableRenderer)
}

// PrintKeyValue prints pairs as a two column table, or data for JSON/YAML.
func PrintKeyValue(w io.Writer, data any, pairs [][2]string) error {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(w, data)
	case output.FormatYAML:
		return output.PrintYAML(w, data)
	default:
		return output.KeyValue(w, pairs)
	}
}

// RunDeleteWithConfirmation prompts for confirmation (unless force is true) and runs deleteFn.
func RunDeleteWithConfirmation(w io.Writer, resourceType, name string, force bool, deleteFn func() error) error {
	confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete %s '%s'?", resourceType, name), force)
	if err != nil {
		return HandleAbort(w, err)
	}
	if !confirmed {
		_, _ = fmt.Fprintln(w, "Aborted.")
		return nil
	}
	return deleteFn()
}

// ParseCommaSeparatedList parses a comma-separated string into a slice of trimmed strings.
func ParseCommaSeparatedList(s string) []string {
	if s == "" {
		return nil
	}
	var result []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// BoolToYesNo converts a boolean to "yes" or "no" string.
func BoolToYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// EmptyOr returns the value if not empty, otherwise returns the fallback.
// Useful for table display where empty fields should show "-".
func EmptyOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// JoinOr joins values with ", ", or returns fallback for an empty list.
func JoinOr(values []string, fallback string) string {
	return EmptyOr(strings.Join(values, ", "), fallback)
}

// HandleAbort checks if error is an abort (Ctrl+C) and prints a message.
// Returns nil for abort (user cancelled), otherwise returns the original error.
func HandleAbort(w io.Writer, err error) error {
	if prompt.IsAborted(err) {
		_, _ = fmt.Fprintln(w, "\nAborted.")
		return nil
	}
	return err
}
