// Package config loads lq settings from an optional YAML file, with
// LIFEQUEST_* environment variables taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

type Config struct {
	DBPath           string `mapstructure:"db_path" env:"LIFEQUEST_DB"`
	LogLevel         string `mapstructure:"log_level" env:"LIFEQUEST_LOG_LEVEL"`
	LogFormat        string `mapstructure:"log_format" env:"LIFEQUEST_LOG_FORMAT"`
	Timezone         string `mapstructure:"timezone" env:"LIFEQUEST_TZ"`
	PlayerName       string `mapstructure:"player_name" env:"LIFEQUEST_PLAYER"`
	StreakGoal       int    `mapstructure:"streak_goal" env:"LIFEQUEST_STREAK_GOAL"`
	AchievementsFile string `mapstructure:"achievements_file" env:"LIFEQUEST_ACHIEVEMENTS"`
}

const (
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
	DefaultPlayerName = "Adventurer"
	DefaultStreakGoal = 7
)

// DefaultDir is where config.yaml is looked up when no explicit file is given.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "lifequest"), nil
}

// Load reads path (or config.yaml from DefaultDir when path is empty), then
// applies environment overrides. A missing default file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("db_path", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("timezone", "")
	v.SetDefault("player_name", DefaultPlayerName)
	v.SetDefault("streak_goal", DefaultStreakGoal)
	v.SetDefault("achievements_file", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	if cfg.StreakGoal <= 0 {
		cfg.StreakGoal = DefaultStreakGoal
	}
	return cfg, nil
}

// Location resolves Timezone; empty means the local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
