package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig    `mapstructure:"server"`
	Graph   GraphConfig   `mapstructure:"graph"`
	Logging LoggingConfig `mapstructure:"log"`
	Data    DataConfig    `mapstructure:"data"`
	Search  SearchConfig  `mapstructure:"search"`
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	MetricsEnabled    bool          `mapstructure:"metrics_enabled"`
	AllowedOriginsCSV string        `mapstructure:"allowed_origins"`
}

// GraphConfig describes connectivity to the Neo4j database used for import and export.
type GraphConfig struct {
	URI            string `mapstructure:"uri"`
	Database       string `mapstructure:"database"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `mapstructure:"level"`
	Format        string `mapstructure:"format"` // text|json
	Colored       bool   `mapstructure:"color"`
	IncludeCaller bool   `mapstructure:"include_caller"`
}

// DataConfig says where the people/movies dataset comes from.
type DataConfig struct {
	Dir    string `mapstructure:"dir"`
	Source string `mapstructure:"source"` // csv|graph
}

// SearchConfig tunes the search engine.
type SearchConfig struct {
	Strategy string        `mapstructure:"strategy"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// BreakerConfig configures the circuit breaker wrapped around the graph client.
type BreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	ReadyToTripRatio float64       `mapstructure:"ready_to_trip_ratio"`
}

// Data sources.
const (
	SourceCSV   = "csv"
	SourceGraph = "graph"
)

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
	defaultDataDir          = "large"
	defaultSearchTimeout    = 30 * time.Second
)

// env maps config keys to the environment variables that override them.
var env = map[string]string{
	"server.host":                 "SERVER_HOST",
	"server.port":                 "SERVER_PORT",
	"server.read_timeout":         "SERVER_READ_TIMEOUT",
	"server.write_timeout":        "SERVER_WRITE_TIMEOUT",
	"server.idle_timeout":         "SERVER_IDLE_TIMEOUT",
	"server.shutdown_timeout":     "SERVER_SHUTDOWN_TIMEOUT",
	"server.metrics_enabled":      "SERVER_METRICS_ENABLED",
	"server.allowed_origins":      "SERVER_ALLOWED_ORIGINS",
	"log.level":                   "LOG_LEVEL",
	"log.format":                  "LOG_FORMAT",
	"log.color":                   "LOG_COLOR",
	"log.include_caller":          "LOG_INCLUDE_CALLER",
	"graph.uri":                   "GRAPH_URI",
	"graph.database":              "GRAPH_DATABASE",
	"graph.username":              "GRAPH_USERNAME",
	"graph.password":              "GRAPH_PASSWORD",
	"graph.max_connections":       "GRAPH_MAX_CONNECTIONS",
	"data.dir":                    "DATA_DIR",
	"data.source":                 "DATA_SOURCE",
	"search.strategy":             "SEARCH_STRATEGY",
	"search.timeout":              "SEARCH_TIMEOUT",
	"breaker.enabled":             "BREAKER_ENABLED",
	"breaker.max_requests":        "BREAKER_MAX_REQUESTS",
	"breaker.interval":            "BREAKER_INTERVAL",
	"breaker.timeout":             "BREAKER_TIMEOUT",
	"breaker.ready_to_trip_ratio": "BREAKER_READY_TO_TRIP_RATIO",
}

// Load reads configuration from an optional file and environment variables, applying
// defaults. An empty path skips the file.
func Load(path string) (Config, error) {
	return load(viper.New(), path)
}

// LoadWith is Load over a caller-supplied viper instance, so command flags bound to it
// take precedence over the environment.
func LoadWith(v *viper.Viper, path string) (Config, error) {
	return load(v, path)
}

func load(v *viper.Viper, path string) (Config, error) {
	setDefaults(v)
	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", name, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", defaultHost)
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.read_timeout", defaultReadTimeout)
	v.SetDefault("server.write_timeout", defaultWriteTimeout)
	v.SetDefault("server.idle_timeout", defaultIdleTimeout)
	v.SetDefault("server.shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("server.metrics_enabled", false)
	v.SetDefault("server.allowed_origins", "")

	v.SetDefault("log.level", defaultLoggingLevel)
	v.SetDefault("log.format", defaultLoggingFormat)
	v.SetDefault("log.color", false)
	v.SetDefault("log.include_caller", false)

	v.SetDefault("graph.uri", "")
	v.SetDefault("graph.database", "")
	v.SetDefault("graph.username", "")
	v.SetDefault("graph.password", "")
	v.SetDefault("graph.max_connections", defaultGraphMaxSessions)

	v.SetDefault("data.dir", defaultDataDir)
	v.SetDefault("data.source", SourceCSV)

	v.SetDefault("search.strategy", "bfs")
	v.SetDefault("search.timeout", defaultSearchTimeout)

	v.SetDefault("breaker.enabled", true)
	v.SetDefault("breaker.max_requests", 1)
	v.SetDefault("breaker.interval", time.Minute)
	v.SetDefault("breaker.timeout", 30*time.Second)
	v.SetDefault("breaker.ready_to_trip_ratio", 0.6)
}

func (c Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.HTTP.Port)
	}
	switch strings.ToLower(c.Data.Source) {
	case SourceCSV, SourceGraph:
	default:
		return fmt.Errorf("invalid DATA_SOURCE %q: want %s or %s", c.Data.Source, SourceCSV, SourceGraph)
	}
	if c.Search.Timeout < 0 {
		return errors.New("search timeout must not be negative")
	}
	return nil
}

// AllowedOrigins splits the comma separated origin list.
func (c HTTPConfig) AllowedOrigins() []string {
	if c.AllowedOriginsCSV == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(c.AllowedOriginsCSV, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
