package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Host        string
	Port        int
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// backend API the user data is fetched from
	BackendApiUrl     string   `toml:"backend_api_url"`
	BackendApiTimeout Duration `toml:"backend_api_timeout"`
	// caching
	CacheSizeMB int      `toml:"cache_size_mb"`
	CacheTTL    Duration `toml:"cache_ttl"`
	RedisHost   string   `toml:"redis_host"`
	RedisPort   string   `toml:"redis_port"`
	// rendering
	RenderRateLimitAllowedPerMin int     `toml:"render_rate_limit_allowed_per_min"`
	DefaultChartWidth            float64 `toml:"default_chart_width"`
	DefaultChartHeight           float64 `toml:"default_chart_height"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
}

// Duration lets TOML carry values like "5s" or "10m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Toml struct {
	Development *Config
	Production  *Config
	DockerDev   *Config `toml:"dockerdev"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	case "ddev", "dockerdev":
		cfg = t.DockerDev
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.Environment = strings.ToLower(env)
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env.
// FITDASH_BACKEND_API_URL overrides the configured backend url.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if apiUrl := os.Getenv("FITDASH_BACKEND_API_URL"); apiUrl != "" {
		cfg.BackendApiUrl = apiUrl
	}

	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.BackendApiTimeout.Duration == 0 {
		c.BackendApiTimeout.Duration = 10 * time.Second
	}
	if c.CacheSizeMB == 0 {
		c.CacheSizeMB = 10
	}
	if c.CacheTTL.Duration == 0 {
		c.CacheTTL.Duration = time.Minute
	}
	if c.DefaultChartWidth == 0 {
		c.DefaultChartWidth = 258
	}
	if c.DefaultChartHeight == 0 {
		c.DefaultChartHeight = 263
	}
	if c.RenderRateLimitAllowedPerMin == 0 {
		c.RenderRateLimitAllowedPerMin = 600
	}
}
