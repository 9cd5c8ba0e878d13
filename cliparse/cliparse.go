package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          int
	DatabaseURL   string
	RedisURL      string
	AdminKeySalt  string
	GroupSlugSalt string
}

// fileConfig mirrors Config for the optional YAML config file.
type fileConfig struct {
	Port          int    `yaml:"port"`
	DatabaseURL   string `yaml:"database_url"`
	RedisURL      string `yaml:"redis_url"`
	AdminKeySalt  string `yaml:"admin_key_salt"`
	GroupSlugSalt string `yaml:"group_slug_salt"`
}

// ParseFlags validates flags and assembles the configuration.
// Precedence: CLI flags > environment variables > YAML config file > defaults.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var configPath string

	fs := flag.NewFlagSet("gift-draw", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.RedisURL, "r", "", "Redis URL for draw-completed events (optional)")
	fs.StringVar(&configPath, "c", "", "Path to YAML config file")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.GroupSlugSalt, "slug-salt", "", "Group slug salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if configPath == "" {
		configPath = os.Getenv("CONFIG_FILE")
	}
	var file fileConfig
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Fall back to environment variables, then the config file
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if file.Port != 0 {
			cfg.Port = file.Port
		} else {
			cfg.Port = 3319 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = file.DatabaseURL
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = file.RedisURL
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = file.AdminKeySalt
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.GroupSlugSalt == "" {
		cfg.GroupSlugSalt = os.Getenv("GROUP_SLUG_SALT")
	}
	if cfg.GroupSlugSalt == "" {
		cfg.GroupSlugSalt = file.GroupSlugSalt
	}
	if cfg.GroupSlugSalt == "" {
		return Config{}, errors.New("GROUP_SLUG_SALT required")
	}

	return cfg, nil
}
