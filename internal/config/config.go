package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

const (
	DefaultDashboardID       = "6b20240d-6c10-4c96-824c-3bb47183fc10"
	DefaultOutputDir         = "./csv_output"
	DefaultResolution        = "120"
	DefaultDashboardJSONPath = "dashboard.json"

	dashboardsPath   = "/api/config/v1/dashboards/"
	metricsQueryPath = "/api/v2/metrics/query"
)

var (
	ErrMissingTenant   = errors.New("TENANT is required")
	ErrMissingAPIToken = errors.New("DB_CSV_API_TOKEN is required")
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	TenantURL         string
	APIToken          string
	DashboardEndpoint string
	DashboardID       string
	OutputDir         string
	DefaultResolution string
	DashboardJSONPath string
	HTTPTimeout       time.Duration
	LogLevel          string

	// ClickHouse export ledger; disabled when ClickHouseAddr is empty.
	ClickHouseAddr        string
	ClickHouseDatabase    string
	ClickHouseUser        string
	ClickHousePassword    string
	ClickHouseDialTimeout time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		TenantURL:             strings.TrimRight(os.Getenv("TENANT"), "/"),
		APIToken:              os.Getenv("DB_CSV_API_TOKEN"),
		DashboardID:           getEnv("DASHBOARD_ID", DefaultDashboardID),
		OutputDir:             getEnv("OUTPUT_DIR", DefaultOutputDir),
		DefaultResolution:     getEnv("DEFAULT_RESOLUTION", DefaultResolution),
		DashboardJSONPath:     getEnv("DASHBOARD_JSON_PATH", DefaultDashboardJSONPath),
		HTTPTimeout:           parseDurationEnv("HTTP_TIMEOUT", 30*time.Second),
		LogLevel:              strings.ToLower(getEnv("LOG_LEVEL", "info")),
		ClickHouseAddr:        os.Getenv("CLICKHOUSE_ADDR"),
		ClickHouseDatabase:    getEnv("CLICKHOUSE_DATABASE", "default"),
		ClickHouseUser:        getEnv("CLICKHOUSE_USER", "default"),
		ClickHousePassword:    os.Getenv("CLICKHOUSE_PASSWORD"),
		ClickHouseDialTimeout: parseDurationEnv("CLICKHOUSE_DIAL_TIMEOUT", 5*time.Second),
	}

	if cfg.TenantURL == "" {
		return nil, ErrMissingTenant
	}
	if cfg.APIToken == "" {
		return nil, ErrMissingAPIToken
	}

	cfg.DashboardEndpoint = getEnv("ENDPOINT", cfg.TenantURL+dashboardsPath)

	return cfg, nil
}

// MetricsQueryURL is the metrics v2 query endpoint of the tenant.
func (c *Config) MetricsQueryURL() string {
	return c.TenantURL + metricsQueryPath
}

// LedgerEnabled reports whether exports are recorded in ClickHouse.
func (c *Config) LedgerEnabled() bool {
	return c.ClickHouseAddr != ""
}

// TenantName derives a directory name from the tenant URL:
// "https://abc12345.live.example.com" becomes "abc12345" and
// "http://localhost:8080" becomes "localhost_8080".
func (c *Config) TenantName() string {
	return TenantName(c.TenantURL)
}

func TenantName(tenantURL string) string {
	name := tenantURL
	if i := strings.Index(name, "//"); i >= 0 {
		name = name[i+2:]
	}
	if i := strings.IndexAny(name, "./"); i >= 0 {
		name = name[:i]
	}
	return strings.ReplaceAll(name, ":", "_")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
