// Package config loads stimer settings from defaults, an optional YAML file,
// STIMER_* environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DirName is the per-user data directory under $HOME.
	DirName = ".stimer"
	// EnvPrefix is the prefix for environment overrides, e.g. STIMER_DB.
	EnvPrefix = "STIMER"
)

// Config holds all stimer settings.
type Config struct {
	// DB is the path of the SQLite database file.
	DB    string      `mapstructure:"db" yaml:"db"`
	Log   LogConfig   `mapstructure:"log" yaml:"log"`
	Watch WatchConfig `mapstructure:"watch" yaml:"watch"`
}

// LogConfig describes the rotating diagnostic log. Rotation follows lumberjack semantics.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"` // empty disables file logging
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// WatchConfig configures the live view.
type WatchConfig struct {
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}

// Dir returns the default data directory, ~/.stimer.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig(dir string) *Config {
	return &Config{
		DB: filepath.Join(dir, "stimer.db"),
		Log: LogConfig{
			Level:      "info",
			File:       filepath.Join(dir, "stimer.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Watch: WatchConfig{
			Interval: time.Second,
		},
	}
}

// Load builds the configuration. configPath may be empty, in which case
// ~/.stimer/config.yaml is read if it exists. flags may be nil; when set, its
// "db" and "log-level" flags override the file and environment if changed.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	def := DefaultConfig(dir)

	v := viper.New()
	v.SetDefault("db", def.DB)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.max_size_mb", def.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", def.Log.MaxBackups)
	v.SetDefault("log.max_age_days", def.Log.MaxAgeDays)
	v.SetDefault("log.compress", def.Log.Compress)
	v.SetDefault("watch.interval", def.Watch.Interval)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		for key, name := range map[string]string{"db": "db", "log.level": "log-level"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DB == "" {
		return nil, fmt.Errorf("config: db path must not be empty")
	}
	if cfg.Watch.Interval <= 0 {
		cfg.Watch.Interval = def.Watch.Interval
	}
	return &cfg, nil
}
