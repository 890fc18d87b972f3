package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/payperplay/mcstatus/pkg/logger"
	"github.com/payperplay/mcstatus/pkg/mcstatus"
)

type Config struct {
	// Application
	AppName string
	Debug   bool
	Port    string

	// Logging
	LogLevel string
	LogJSON  bool

	// mcstatus.io API
	APIBaseURL     string
	DefaultTimeout float64 // seconds, forwarded to the API
	DefaultQuery   bool    // Java lookups use the query protocol by default
	UserAgent      string

	// History endpoint
	HistoryLimit int

	// Background watcher (polls these addresses and records snapshots)
	WatchJava     []string
	WatchBedrock  []string
	WatchInterval time.Duration

	// InfluxDB (status snapshot export, optional)
	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string
}

var AppConfig *Config

// Load loads configuration from environment
func Load() *Config {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		AppName:        getEnv("APP_NAME", "mcstatus"),
		Debug:          getEnvBool("DEBUG", false),
		Port:           getEnv("PORT", "8000"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		LogJSON:        getEnvBool("LOG_JSON", false),
		APIBaseURL:     getEnv("MCSTATUS_API_URL", mcstatus.DefaultBaseURL),
		DefaultTimeout: getEnvFloat("MCSTATUS_TIMEOUT", mcstatus.DefaultTimeout),
		DefaultQuery:   getEnvBool("MCSTATUS_QUERY", true),
		UserAgent:      getEnv("USER_AGENT", mcstatus.DefaultUserAgent),
		HistoryLimit:   getEnvInt("HISTORY_LIMIT", 100),
		WatchJava:      getEnvList("WATCH_JAVA"),
		WatchBedrock:   getEnvList("WATCH_BEDROCK"),
		WatchInterval:  time.Duration(getEnvInt("WATCH_INTERVAL", 60)) * time.Second,
		InfluxDBURL:    getEnv("INFLUXDB_URL", ""),
		InfluxDBToken:  getEnv("INFLUXDB_TOKEN", ""),
		InfluxDBOrg:    getEnv("INFLUXDB_ORG", "mcstatus"),
		InfluxDBBucket: getEnv("INFLUXDB_BUCKET", "status"),
	}

	if config.DefaultTimeout <= 0 || math.IsNaN(config.DefaultTimeout) || math.IsInf(config.DefaultTimeout, 0) {
		logger.Warn("Invalid MCSTATUS_TIMEOUT, using default", map[string]interface{}{
			"value":   config.DefaultTimeout,
			"default": mcstatus.DefaultTimeout,
		})
		config.DefaultTimeout = mcstatus.DefaultTimeout
	}

	if config.HistoryLimit <= 0 {
		config.HistoryLimit = 100
	}
	if config.WatchInterval <= 0 {
		config.WatchInterval = 60 * time.Second
	}

	AppConfig = config
	return config
}

// LogJSONFromEnv reads LOG_JSON without logging, so the logger used during
// Load can already honor it. Unparsable values read as false.
func LogJSONFromEnv() bool {
	v, err := strconv.ParseBool(os.Getenv("LOG_JSON"))
	return err == nil && v
}

// InfluxDBEnabled reports whether snapshot export is configured.
func (c *Config) InfluxDBEnabled() bool {
	return c.InfluxDBURL != "" && c.InfluxDBToken != ""
}

// WatchEnabled reports whether any address is configured for polling.
func (c *Config) WatchEnabled() bool {
	return len(c.WatchJava) > 0 || len(c.WatchBedrock) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			logger.Warn("Invalid boolean in environment, using default", map[string]interface{}{
				"key":     key,
				"default": defaultValue,
			})
			return defaultValue
		}
		return boolVal
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			logger.Warn("Invalid integer in environment, using default", map[string]interface{}{
				"key":     key,
				"default": defaultValue,
			})
			return defaultValue
		}
		return intVal
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		floatVal, err := strconv.ParseFloat(value, 64)
		if err != nil {
			logger.Warn("Invalid float in environment, using default", map[string]interface{}{
				"key":     key,
				"default": defaultValue,
			})
			return defaultValue
		}
		return floatVal
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string) []string {
	var list []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
