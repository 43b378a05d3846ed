package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIBaseURL = "http://localhost:8080/api"
	// DefaultSessionSecret signs cookies when SESSION_SECRET is unset. It is
	// public, so release deployments must override it.
	DefaultSessionSecret = "default-secret-key"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	API       APIConfig       `yaml:"api"`
	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Search    SearchConfig    `yaml:"search"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	LogLevel  string          `yaml:"log_level"`
}

type ServerConfig struct {
	Port         string `yaml:"port"`
	Mode         string `yaml:"mode"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
	// TrustedProxies lists the proxy addresses or CIDRs allowed to set
	// X-Forwarded-For. Empty means the peer address is the client.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// APIConfig points the console at the review backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // seconds
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type SessionConfig struct {
	Secret        string `yaml:"secret"`
	IdleTTL       int    `yaml:"idle_ttl"`       // hours
	SweepInterval int    `yaml:"sweep_interval"` // minutes
}

type SearchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

type RateLimitConfig struct {
	LoginRPS   float64 `yaml:"login_rps"`
	LoginBurst int     `yaml:"login_burst"`
}

var AppConfig *Config

// Default returns the built-in configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "3000",
			Mode:         "release",
			ReadTimeout:  15,
			WriteTimeout: 30,
		},
		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
			Timeout: 30,
		},
		Database: DatabaseConfig{
			Path: "./handsoff-console.db",
		},
		Session: SessionConfig{
			Secret:        DefaultSessionSecret,
			IdleTTL:       168,
			SweepInterval: 30,
		},
		Search: SearchConfig{
			DebounceMS: 500,
		},
		RateLimit: RateLimitConfig{
			LoginRPS:   1,
			LoginBurst: 5,
		},
		LogLevel: "info",
	}
}

// Load loads configuration from the optional YAML file, the .env file and
// environment variables, in that order of increasing precedence.
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return err
		}
	}

	applyEnv(cfg)
	AppConfig = cfg

	return nil
}

// loadFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current values.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.Mode = getEnv("GIN_MODE", cfg.Server.Mode)
	cfg.Server.ReadTimeout = getEnvAsInt("READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.TrustedProxies = getEnvAsList("TRUSTED_PROXIES", cfg.Server.TrustedProxies)

	cfg.API.BaseURL = getEnv("API_BASE_URL", cfg.API.BaseURL)
	cfg.API.Timeout = getEnvAsInt("API_TIMEOUT", cfg.API.Timeout)

	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)

	cfg.Session.Secret = getEnv("SESSION_SECRET", cfg.Session.Secret)
	cfg.Session.IdleTTL = getEnvAsInt("SESSION_IDLE_TTL", cfg.Session.IdleTTL)
	cfg.Session.SweepInterval = getEnvAsInt("SESSION_SWEEP_INTERVAL", cfg.Session.SweepInterval)

	cfg.Search.DebounceMS = getEnvAsInt("SEARCH_DEBOUNCE_MS", cfg.Search.DebounceMS)

	cfg.RateLimit.LoginRPS = getEnvAsFloat("LOGIN_RATE_LIMIT_RPS", cfg.RateLimit.LoginRPS)
	cfg.RateLimit.LoginBurst = getEnvAsInt("LOGIN_RATE_LIMIT_BURST", cfg.RateLimit.LoginBurst)

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
}

// APITimeout returns the backend request timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Second
}

// InsecureSecret reports whether a release build would sign cookies with
// the public default secret.
func (c *Config) InsecureSecret() bool {
	return c.Server.Mode == "release" && c.Session.Secret == DefaultSessionSecret
}

func (c *Config) SessionIdleTTL() time.Duration {
	return time.Duration(c.Session.IdleTTL) * time.Hour
}

func (c *Config) SessionSweepInterval() time.Duration {
	return time.Duration(c.Session.SweepInterval) * time.Minute
}

func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blank items.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
