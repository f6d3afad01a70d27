package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application-level configuration: where the backend
// lives and how to present output. Sources, later wins: defaults,
// optional config file, TWS_* environment, bound flags.
type Config struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	LogLevel string        `mapstructure:"log_level"`
	Output   string        `mapstructure:"output"`
	Color    bool          `mapstructure:"color"`
}

// Dir returns the per-user directory holding the config file and the
// persisted preference files.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "tws"), nil
}

// Load reads configuration through the supplied viper instance, which
// the caller may have already bound flags onto.
func Load(v *viper.Viper) (Config, error) {
	v.SetDefault("base_url", "http://127.0.0.1:8000")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("log_level", "warn")
	v.SetDefault("output", "table")
	v.SetDefault("color", true)

	v.SetEnvPrefix("TWS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if dir, err := Dir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.BaseURL == "" {
		return Config{}, errors.New("base_url must not be empty")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	switch cfg.Output {
	case "table", "json":
	default:
		return Config{}, fmt.Errorf("output must be table or json, got %q", cfg.Output)
	}
	if cfg.Timeout <= 0 {
		return Config{}, errors.New("timeout must be positive")
	}
	return cfg, nil
}

// NewLogger builds the process logger at the configured level.
func NewLogger(level string) *slog.Logger {
	lvl := slog.LevelWarn
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(h)
}
