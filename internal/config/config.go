package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env     string `yaml:"env" env:"STUDYTRACK_ENV" env-default:"local"`
	DBPath  string `yaml:"db_path" env:"STUDYTRACK_DB"`
	LogPath string `yaml:"log_path" env:"STUDYTRACK_LOG"`
	Media   `yaml:"media"`
	Export  `yaml:"export"`
}

type Media struct {
	PhotoMaxSide    int `yaml:"photo_max_side" env:"STUDYTRACK_PHOTO_MAX_SIDE" env-default:"256"`
	ScheduleMaxSide int `yaml:"schedule_max_side" env:"STUDYTRACK_SCHEDULE_MAX_SIDE" env-default:"1280"`
}

type Export struct {
	Dir string `yaml:"dir" env:"STUDYTRACK_EXPORT_DIR"`
}

// Load reads configuration from the YAML file named by STUDYTRACK_CONFIG, or
// from <config dir>/studytrack/config.yaml when that exists, and falls back to
// environment variables only. A .env file in the working directory is loaded
// first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	path := os.Getenv("STUDYTRACK_CONFIG")
	explicit := path != ""
	if !explicit {
		if dir, err := Dir(); err == nil {
			path = filepath.Join(dir, "config.yaml")
		}
	}

	_, statErr := os.Stat(path)
	switch {
	case path != "" && statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config file does not exist: %s", path)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	}

	if err := cfg.fillDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// Dir is <user config dir>/studytrack.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "studytrack"), nil
}

func (c *Config) fillDefaults() error {
	if c.DBPath != "" && c.LogPath != "" && c.Export.Dir != "" {
		return nil
	}
	dir, err := Dir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, "studytrack.db")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(dir, "studytrack.log")
	}
	if c.Export.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = dir
		}
		c.Export.Dir = home
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	if c.PhotoMaxSide <= 0 || c.ScheduleMaxSide <= 0 {
		return errors.New("media sizes must be positive")
	}
	return nil
}
