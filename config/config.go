package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Database      DatabaseConfig      `yaml:"database"`
	JWT           JWTConfig           `yaml:"jwt"`
	Auth          AuthConfig          `yaml:"auth"`
	Places        PlacesConfig        `yaml:"places"`
	Map           MapConfig           `yaml:"map"`
	Rounds        RoundsConfig        `yaml:"rounds"`
	Events        EventsConfig        `yaml:"events"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	SecureCookies  bool     `yaml:"secure_cookies"`

	// RequestsPerSecond bounds each client IP; zero disables the limiter.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Driver      string `yaml:"driver"` // postgres|pgx|sqlite
	DSN         string `yaml:"dsn"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// JWTConfig holds session token configuration.
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// AuthConfig holds account bootstrap settings.
type AuthConfig struct {
	// Developers are promoted to the developer role at startup.
	Developers []string `yaml:"developers"`
}

// PlacesConfig holds the places-search API configuration.
type PlacesConfig struct {
	APIKey            string        `yaml:"api_key"`
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// MapConfig holds map defaults.
type MapConfig struct {
	DefaultLat     float64 `yaml:"default_lat"`
	DefaultLon     float64 `yaml:"default_lon"`
	CourseRadius   int     `yaml:"course_radius"`
	RetailerRadius int     `yaml:"retailer_radius"`
	TileURL        string  `yaml:"tile_url"`
	TileAttr       string  `yaml:"tile_attribution"`
}

// RoundsConfig holds round tracking settings.
type RoundsConfig struct {
	// SessionIdle drops in-progress rounds untouched for this long.
	SessionIdle time.Duration `yaml:"session_idle"`
}

// EventsConfig selects the domain event transport. An empty NATS URL keeps
// events in-process.
type EventsConfig struct {
	NATSURL string `yaml:"nats_url"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"` // text|json
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	cfg := defaults()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:              ":8080",
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Database: DatabaseConfig{
			Driver:      "postgres",
			AutoMigrate: true,
		},
		JWT: JWTConfig{
			TTL: 24 * time.Hour,
		},
		Places: PlacesConfig{
			BaseURL:           "https://maps.googleapis.com",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
		},
		Map: MapConfig{
			DefaultLat:     35.1983,
			DefaultLon:     -111.6513,
			CourseRadius:   20000,
			RetailerRadius: 10000,
			TileURL:        "https://mt1.google.com/vt/lyrs=s&x={x}&y={y}&z={z}",
			TileAttr:       "Google Satellite",
		},
		Rounds: RoundsConfig{
			SessionIdle: 12 * time.Hour,
		},
		Observability: ObservabilityConfig{
			Environment:    "development",
			LogLevel:       "info",
			LogFormat:      "text",
			MetricsEnabled: true,
		},
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		cfg.HTTP.SecureCookies = v == "true"
	}
	if v := os.Getenv("HTTP_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RPS value: %v", err)
		}
		cfg.HTTP.RequestsPerSecond = f
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_AUTO_MIGRATE"); v != "" {
		cfg.Database.AutoMigrate = v == "true"
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_TTL value: %v", err)
		}
		cfg.JWT.TTL = d
	}
	if v := os.Getenv("DEVELOPERS"); v != "" {
		cfg.Auth.Developers = splitList(v)
	}
	if v := os.Getenv("PLACES_API_KEY"); v != "" {
		cfg.Places.APIKey = v
	}
	if v := os.Getenv("PLACES_BASE_URL"); v != "" {
		cfg.Places.BaseURL = v
	}
	if v := os.Getenv("PLACES_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PLACES_TIMEOUT value: %v", err)
		}
		cfg.Places.Timeout = d
	}
	if v := os.Getenv("PLACES_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid PLACES_RPS value: %v", err)
		}
		cfg.Places.RequestsPerSecond = f
	}
	if v := os.Getenv("ROUND_SESSION_IDLE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ROUND_SESSION_IDLE value: %v", err)
		}
		cfg.Rounds.SessionIdle = d
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.Events.NATSURL = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Observability.MetricsEnabled = v == "true"
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
