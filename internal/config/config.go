// File: internal/config/config.go
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"telegram-announce-relay/internal/domain"
)

//go:embed relay.yaml
var relayYAML []byte

type RuntimeConfig struct {
	Version string
	Commit  string
}

type BotConfig struct {
	Token          string
	Operator       string   `yaml:"operator"` // username without '@'
	Mentions       []string `yaml:"mentions"`
	Workers        int      // dispatcher shards
	PollTimeout    int      // long-poll seconds
	RequestTimeout time.Duration
}

type HTTPConfig struct {
	Port        int
	MetricsPort int // 0 disables the metrics listener
}

type LogConfig struct {
	Level      string // trace|debug|info|warn|error
	Format     string // json|console
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type Config struct {
	Bot  BotConfig
	HTTP HTTPConfig
	Log  LogConfig

	Runtime RuntimeConfig
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadConfig reads .env (if present) and the process environment.
// Variables already set in the environment win over .env.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Load(os.LookupEnv)
}

// Load builds the config from the embedded relay.yaml and lookup.
func Load(lookup LookupFunc) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(relayYAML, &cfg.Bot); err != nil {
		return nil, fmt.Errorf("parse relay.yaml: %w", err)
	}

	env := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg.Bot.Token = env("TELEGRAM_TOKEN")
	cfg.Log.Level = env("LOG_LEVEL")
	cfg.Log.Format = env("LOG_FORMAT")
	cfg.Log.File = env("LOG_FILE")

	var err error
	if cfg.HTTP.Port, err = intEnv(env, "PORT", 8000); err != nil {
		return nil, err
	}
	if cfg.HTTP.MetricsPort, err = intEnv(env, "METRICS_PORT", 0); err != nil {
		return nil, err
	}
	if cfg.Bot.Workers, err = intEnv(env, "BOT_WORKERS", 1); err != nil {
		return nil, err
	}
	if v := env("BOT_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%w: BOT_REQUEST_TIMEOUT: %v", domain.ErrInvalidConfig, err)
		}
		cfg.Bot.RequestTimeout = d
	}

	// defaults
	if cfg.Bot.PollTimeout <= 0 {
		cfg.Bot.PollTimeout = 60
	}
	if cfg.Bot.RequestTimeout <= 0 {
		cfg.Bot.RequestTimeout = time.Duration(cfg.Bot.PollTimeout+15) * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	cfg.Log.MaxSizeMB = 50
	cfg.Log.MaxBackups = 3
	cfg.Log.MaxAgeDays = 14
	cfg.Bot.Operator = strings.TrimPrefix(strings.TrimSpace(cfg.Bot.Operator), "@")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("%w: TELEGRAM_TOKEN is required", domain.ErrInvalidConfig)
	}
	if c.Bot.Operator == "" {
		return fmt.Errorf("%w: operator is empty in relay.yaml", domain.ErrInvalidConfig)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: PORT out of range: %d", domain.ErrInvalidConfig, c.HTTP.Port)
	}
	if c.HTTP.MetricsPort < 0 || c.HTTP.MetricsPort > 65535 {
		return fmt.Errorf("%w: METRICS_PORT out of range: %d", domain.ErrInvalidConfig, c.HTTP.MetricsPort)
	}
	if c.HTTP.MetricsPort != 0 && c.HTTP.MetricsPort == c.HTTP.Port {
		return fmt.Errorf("%w: METRICS_PORT must differ from PORT", domain.ErrInvalidConfig)
	}
	if c.Bot.Workers <= 0 {
		return fmt.Errorf("%w: BOT_WORKERS must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

func intEnv(env func(string) string, key string, def int) (int, error) {
	v := env(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, key, err)
	}
	return n, nil
}
