// Package config reads runtime settings from the environment, with an
// optional .env file loaded first.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Data source kinds.
const (
	DataSourceCSV      = "csv"
	DataSourceDatabase = "database"
)

// Config holds application configuration
type Config struct {
	Env      string
	Port     string
	LogLevel string

	// Price data
	DataSource        string
	DataBasePath      string
	NameOverridesFile string
	RequestTimeout    time.Duration
	FetchRetries      int
	ReloadInterval    time.Duration

	// HTTP surface
	ReloadAPIKey    string
	CORSAllowOrigin string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

var appConfig *Config

// Load reads configuration from the environment. Malformed durations and
// integers fall back to their defaults with a warning; an unknown
// DATA_SOURCE is an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		DataSource:        getEnv("DATA_SOURCE", DataSourceCSV),
		DataBasePath:      getEnv("DATA_BASE_PATH", "data/"),
		NameOverridesFile: getEnv("NAME_OVERRIDES_FILE", "product_names.csv"),
		RequestTimeout:    getDuration("REQUEST_TIMEOUT", 15*time.Second),
		FetchRetries:      getInt("FETCH_RETRIES", 2),
		ReloadInterval:    getDuration("RELOAD_INTERVAL", 0),

		ReloadAPIKey:    getEnv("RELOAD_API_KEY", ""),
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "ramadan"),
		DBPassword: getEnv("DB_PASSWORD", "ramadan"),
		DBName:     getEnv("DB_NAME", "ramadan"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	switch config.DataSource {
	case DataSourceCSV, DataSourceDatabase:
	default:
		return nil, fmt.Errorf("invalid DATA_SOURCE %q (use %s or %s)", config.DataSource, DataSourceCSV, DataSourceDatabase)
	}
	if config.FetchRetries < 0 {
		log.Printf("Warning: negative FETCH_RETRIES %d, using 0\n", config.FetchRetries)
		config.FetchRetries = 0
	}

	appConfig = config
	return config, nil
}

// Get returns the loaded configuration, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}
