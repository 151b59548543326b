package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "WARN", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, DefaultStubPort, cfg.Stub.Port)
	assert.Equal(t, []string{"master"}, cfg.Stub.Realms)
	assert.Equal(t, ":memory:", cfg.Stub.Database.Path)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server_url: "http://localhost:8180"
realm: acme
timeout: 5s
output: JSON
logging:
  level: debug
stub:
  port: 9999
  realms: [master, acme]
  database:
    path: /tmp/fedstub.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8180", cfg.ServerURL)
	assert.Equal(t, "acme", cfg.Realm)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format, "defaults fill the rest")
	assert.Equal(t, 9999, cfg.Stub.Port)
	assert.Equal(t, []string{"master", "acme"}, cfg.Stub.Realms)
	assert.Equal(t, "/tmp/fedstub.db", cfg.Stub.Database.Path)
}

func TestLoadBareNumberDurationIsSeconds(t *testing.T) {
	cfg, err := Load(writeConfig(t, "timeout: 45\n"))
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "realm: from-file\n")
	t.Setenv("FEDCTL_REALM", "from-env")
	t.Setenv("FEDCTL_LOGGING_LEVEL", "ERROR")
	t.Setenv("FEDCTL_STUB_DATABASE_PATH", "/var/lib/fedstub.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Realm)
	assert.Equal(t, "ERROR", cfg.Logging.Level)
	assert.Equal(t, "/var/lib/fedstub.db", cfg.Stub.Database.Path)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"LogLevel", "logging:\n  level: LOUD\n", "logging.level"},
		{"Output", "output: xml\n", "output"},
		{"ServerURL", "server_url: not-a-url\n", "server_url"},
		{"StubPort", "stub:\n  port: 70000\n", "stub.port"},
		{"SampleRate", "telemetry:\n  sample_rate: 2\n", "telemetry.sample_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "logging: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestMustLoadMissingFile(t *testing.T) {
	_, err := MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Realm = "acme"
	cfg.ServerURL = "http://localhost:8080"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, SaveConfig(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetConfigDirHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "fedctl", "config.yaml"), GetDefaultConfigPath())
}

func TestSnake(t *testing.T) {
	assert.Equal(t, "server_url", snake("ServerURL"))
	assert.Equal(t, "shutdown_timeout", snake("ShutdownTimeout"))
	assert.Equal(t, "port", snake("Port"))
}

func TestValidateDefaults(t *testing.T) {
	assert.NoError(t, Validate(GetDefaultConfig()))
}
