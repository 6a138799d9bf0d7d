// Package config loads organizeme settings from a TOML file and applies
// environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "organizeme.db"
	DefaultLogName        = "organizeme.log"
)

type Suggest struct {
	// Endpoint is the base URL of a companion server. When empty the client
	// talks to the OpenAI-compatible API directly.
	Endpoint       string `toml:"endpoint"`
	OpenAIEndpoint string `toml:"openai_endpoint"`
	OpenAIKey      string `toml:"openai_api_key"`
	Model          string `toml:"model"`
	DebounceMS     int    `toml:"debounce_ms"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	CacheMinutes   int    `toml:"cache_minutes"`
}

type Server struct {
	Addr     string `toml:"addr"`
	RedisURL string `toml:"redis_url"`
	// AllowOrigins lists browser origins allowed by CORS. With "*" credentials
	// are not allowed, so /api/state only sees cookies from same-origin pages.
	// List explicit origins to serve the state endpoint cross-origin.
	AllowOrigins []string `toml:"allow_origins"`
}

type Config struct {
	DBPath       string  `toml:"db_path"`
	LogPath      string  `toml:"log_path"`
	LogLevel     string  `toml:"log_level"`
	StateTTLDays int     `toml:"state_ttl_days"`
	Suggest      Suggest `toml:"suggest"`
	Server       Server  `toml:"server"`
}

func Default() Config {
	return Config{
		DBPath:       DefaultDBName,
		LogPath:      DefaultLogName,
		LogLevel:     "info",
		StateTTLDays: 7,
		Suggest: Suggest{
			OpenAIEndpoint: "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			DebounceMS:     500,
			TimeoutSeconds: 15,
			CacheMinutes:   60,
		},
		Server: Server{
			Addr:         ":8080",
			AllowOrigins: []string{"*"},
		},
	}
}

// DefaultPath is config.toml under the user config directory, or the working
// directory when that cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "organizeme", DefaultConfigFileName)
}

// LoadOrCreate reads path, writing the defaults there first when the file
// does not exist. Missing keys keep their default values.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// FromEnv applies ORGANIZEME_* and OPENAI_* overrides to base.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("ORGANIZEME_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("ORGANIZEME_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvString("ORGANIZEME_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvInt("ORGANIZEME_STATE_TTL_DAYS"); ok && v > 0 {
		cfg.StateTTLDays = v
	}
	if v, ok := getEnvString("ORGANIZEME_SUGGEST_ENDPOINT"); ok {
		cfg.Suggest.Endpoint = v
	}
	if v, ok := getEnvString("OPENAI_API_KEY"); ok {
		cfg.Suggest.OpenAIKey = v
	}
	if v, ok := getEnvString("OPENAI_MODEL"); ok {
		cfg.Suggest.Model = v
	}
	if v, ok := getEnvInt("ORGANIZEME_SUGGEST_DEBOUNCE_MS"); ok && v > 0 {
		cfg.Suggest.DebounceMS = v
	}
	if v, ok := getEnvString("ORGANIZEME_SERVER_ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := getEnvString("ORGANIZEME_REDIS_URL"); ok {
		cfg.Server.RedisURL = v
	}
	if v, ok := getEnvString("ORGANIZEME_ALLOW_ORIGINS"); ok {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.Server.AllowOrigins = origins
		}
	}
	return cfg.normalized()
}

func (c Config) normalized() Config {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.StateTTLDays <= 0 {
		c.StateTTLDays = def.StateTTLDays
	}
	if c.Suggest.DebounceMS <= 0 {
		c.Suggest.DebounceMS = def.Suggest.DebounceMS
	}
	if c.Suggest.TimeoutSeconds <= 0 {
		c.Suggest.TimeoutSeconds = def.Suggest.TimeoutSeconds
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	return c
}

func (c Config) StateTTL() time.Duration {
	return time.Duration(c.StateTTLDays) * 24 * time.Hour
}

func (c Config) Debounce() time.Duration {
	return time.Duration(c.Suggest.DebounceMS) * time.Millisecond
}

func (c Config) SuggestTimeout() time.Duration {
	return time.Duration(c.Suggest.TimeoutSeconds) * time.Second
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Suggest.CacheMinutes) * time.Minute
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
