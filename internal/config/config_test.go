package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nicolagi/taskflow"
	"github.com/nicolagi/taskflow/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{"TASKFLOW_BASE_URL", "TASKFLOW_WIRE_LOG", "TASKFLOW_TIMEOUT", "TASKFLOW_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.Nil(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Nil(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, taskflow.DefaultEndpoint, cfg.BaseURL)

	d, err := cfg.TimeoutDuration()
	require.Nil(t, err)
	assert.Equal(t, 10*time.Second, d)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
base_url = "http://tasks.example.com:8080"
wire_log = "/tmp/wire.log"
timeout = "3s"
log_level = "debug"
colour = "blue"
`)
	cfg, err := config.Load(path)
	require.Nil(t, err)
	assert.Equal(t, &config.Config{
		BaseURL:  "http://tasks.example.com:8080",
		WireLog:  "/tmp/wire.log",
		Timeout:  "3s",
		LogLevel: "debug",
	}, cfg)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `base_url = "http://from-file"
timeout = "3s"
`)
	t.Setenv("TASKFLOW_BASE_URL", "http://from-env")
	t.Setenv("TASKFLOW_LOG_LEVEL", "warning")
	cfg, err := config.Load(path)
	require.Nil(t, err)
	assert.Equal(t, "http://from-env", cfg.BaseURL)
	assert.Equal(t, "3s", cfg.Timeout)
	assert.Equal(t, "warning", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	_, err := config.Load(writeConfig(t, `base_url = `))
	assert.NotNil(t, err)

	_, err = config.Load(writeConfig(t, `timeout = "soon"`))
	assert.NotNil(t, err)

	_, err = config.Load(writeConfig(t, `timeout = "-1s"`))
	assert.NotNil(t, err)

	_, err = config.Load(writeConfig(t, `log_level = "chatty"`))
	assert.NotNil(t, err)

	_, err = config.Load(writeConfig(t, `base_url = ""`))
	assert.NotNil(t, err)
}

func TestNewClient(t *testing.T) {
	cfg := config.Default()
	cfg.BaseURL = "https://tasks.example.com/"
	cfg.WireLog = filepath.Join(t.TempDir(), "wire.log")
	client, err := cfg.NewClient()
	require.Nil(t, err)
	assert.Equal(t, "https://tasks.example.com", client.Endpoint())
	_, err = os.Stat(cfg.WireLog)
	assert.Nil(t, err)

	cfg.BaseURL = "localhost:3001"
	_, err = cfg.NewClient()
	assert.NotNil(t, err)
}
