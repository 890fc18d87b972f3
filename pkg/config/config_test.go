package config

import (
	"testing"
	"time"

	"github.com/payperplay/mcstatus/pkg/mcstatus"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_NAME", "DEBUG", "PORT", "MCSTATUS_API_URL", "MCSTATUS_TIMEOUT", "MCSTATUS_QUERY", "INFLUXDB_URL", "INFLUXDB_TOKEN"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "mcstatus", cfg.AppName)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, mcstatus.DefaultBaseURL, cfg.APIBaseURL)
	assert.Equal(t, mcstatus.DefaultTimeout, cfg.DefaultTimeout)
	assert.True(t, cfg.DefaultQuery)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.False(t, cfg.InfluxDBEnabled())
	assert.Same(t, cfg, AppConfig)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MCSTATUS_API_URL", "http://localhost:1234/v2")
	t.Setenv("MCSTATUS_TIMEOUT", "2.5")
	t.Setenv("MCSTATUS_QUERY", "false")
	t.Setenv("HISTORY_LIMIT", "25")
	t.Setenv("INFLUXDB_URL", "http://influx:8086")
	t.Setenv("INFLUXDB_TOKEN", "secret")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://localhost:1234/v2", cfg.APIBaseURL)
	assert.Equal(t, 2.5, cfg.DefaultTimeout)
	assert.False(t, cfg.DefaultQuery)
	assert.Equal(t, 25, cfg.HistoryLimit)
	assert.True(t, cfg.InfluxDBEnabled())
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("DEBUG", "maybe")
	t.Setenv("MCSTATUS_TIMEOUT", "-3")
	t.Setenv("HISTORY_LIMIT", "lots")

	cfg := Load()

	assert.False(t, cfg.Debug)
	assert.Equal(t, mcstatus.DefaultTimeout, cfg.DefaultTimeout)
	assert.Equal(t, 100, cfg.HistoryLimit)
}

func TestLoadWatchList(t *testing.T) {
	t.Setenv("WATCH_JAVA", " mc.example.com, ,play.example.net:25566 ")
	t.Setenv("WATCH_BEDROCK", "")
	t.Setenv("WATCH_INTERVAL", "15")

	cfg := Load()

	assert.Equal(t, []string{"mc.example.com", "play.example.net:25566"}, cfg.WatchJava)
	assert.Empty(t, cfg.WatchBedrock)
	assert.Equal(t, 15*time.Second, cfg.WatchInterval)
	assert.True(t, cfg.WatchEnabled())
}

func TestLoadWatchDisabled(t *testing.T) {
	t.Setenv("WATCH_JAVA", "")
	t.Setenv("WATCH_BEDROCK", "")
	t.Setenv("WATCH_INTERVAL", "0")

	cfg := Load()

	assert.False(t, cfg.WatchEnabled())
	assert.Equal(t, 60*time.Second, cfg.WatchInterval)
}

func TestLogJSONFromEnv(t *testing.T) {
	t.Setenv("LOG_JSON", "true")
	assert.True(t, LogJSONFromEnv())

	t.Setenv("LOG_JSON", "nope")
	assert.False(t, LogJSONFromEnv())

	t.Setenv("LOG_JSON", "")
	assert.False(t, LogJSONFromEnv())
}
