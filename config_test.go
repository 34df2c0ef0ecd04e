package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func _WriteConfig(t *testing.T, data string) string {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(data), 0o644))
	return file
}

func TestReadConfigMissingFile(t *testing.T) {
	config, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestReadConfig(t *testing.T) {
	file := _WriteConfig(t, `
logging:
  level: debug
  add-source: true
serialization:
  file: ./data/moscow.db
routing:
  workers: 4
catalogue:
  strict-stop-references: true
server:
  port: 8080
  cors-origins:
    - http://localhost:5173
telemetry:
  tracing: true
  endpoint: collector:4318
`)
	config, err := ReadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, LoggingOptions{Level: "debug", AddSource: true}, config.Logging)
	assert.Equal(t, "./data/moscow.db", config.Serialization.File)
	assert.Equal(t, 4, config.Routing.Workers)
	assert.True(t, config.Catalogue.StrictStopReferences)
	assert.Equal(t, ServerOptions{Port: 8080, CorsOrigins: []string{"http://localhost:5173"}}, config.Server)
	assert.True(t, config.Telemetry.Tracing)
	assert.False(t, config.Telemetry.Metrics)
	assert.Equal(t, "collector:4318", config.Telemetry.Endpoint)
	// untouched keys keep their defaults
	assert.Equal(t, "go-transit", config.Telemetry.ServiceName)
}

func TestReadConfigEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("TRANSIT_SNAPSHOT", "/tmp/other.db")
	file := _WriteConfig(t, "logging:\n  level: debug\n")

	config, err := ReadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, "/tmp/other.db", config.Serialization.File)
}

func TestReadConfigInvalid(t *testing.T) {
	cases := map[string]string{
		"level":    "logging:\n  level: verbose\n",
		"workers":  "routing:\n  workers: -1\n",
		"port":     "server:\n  port: 70000\n",
		"endpoint": "telemetry:\n  metrics: true\n  endpoint: \"\"\n",
		"syntax":   "server: [\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadConfig(_WriteConfig(t, data))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
